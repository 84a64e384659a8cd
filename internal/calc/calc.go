// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package calc evaluates stored arithmetic calculations.
//
// Calculations are the oldest feature of the product: a user keeps small
// named computations (monthly budget splits, loan payment checks) alongside
// the cars they track. Each calculation has a type and an ordered list of
// at least two operands; the result is computed once on create or update
// and persisted with the record.
//
// Evaluation is left to right: subtraction and division fold the first
// operand through the rest, so {100, 10, 5} with type division is
// 100 / 10 / 5 = 2.
package calc

import "errors"

// Calculation types accepted by Evaluate.
const (
	TypeAddition       = "addition"
	TypeSubtraction    = "subtraction"
	TypeMultiplication = "multiplication"
	TypeDivision       = "division"
)

var (
	ErrUnsupportedType = errors.New("unsupported calculation type")
	ErrTooFewInputs    = errors.New("calculation requires at least two inputs")
	ErrDivideByZero    = errors.New("cannot divide by zero")
)

// Evaluate computes the result for a calculation type over its inputs.
// Division by zero is a client error, reported before any partial result.
func Evaluate(calcType string, inputs []float64) (float64, error) {
	if len(inputs) < 2 {
		return 0, ErrTooFewInputs
	}

	switch calcType {
	case TypeAddition:
		var sum float64
		for _, v := range inputs {
			sum += v
		}
		return sum, nil
	case TypeSubtraction:
		result := inputs[0]
		for _, v := range inputs[1:] {
			result -= v
		}
		return result, nil
	case TypeMultiplication:
		result := inputs[0]
		for _, v := range inputs[1:] {
			result *= v
		}
		return result, nil
	case TypeDivision:
		result := inputs[0]
		for _, v := range inputs[1:] {
			if v == 0 {
				return 0, ErrDivideByZero
			}
			result /= v
		}
		return result, nil
	default:
		return 0, ErrUnsupportedType
	}
}
