// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package models

import "time"

// Calculation is a stored arithmetic computation owned by a user. The
// result is computed when the record is created or its inputs change,
// never on read.
type Calculation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Inputs    []float64 `json:"inputs"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalculationCreate carries the fields a client supplies when storing a
// calculation. At least two inputs are required; the server computes the
// result.
type CalculationCreate struct {
	Type   string    `json:"type" validate:"required,oneof=addition subtraction multiplication division"`
	Inputs []float64 `json:"inputs" validate:"required,min=2"`
}

// CalculationPatch is a partial update for a Calculation. Only the inputs
// can change; the type of an existing calculation is fixed. A non-nil
// inputs slice triggers recomputation of the result.
type CalculationPatch struct {
	Inputs []float64 `json:"inputs,omitempty" validate:"omitempty,min=2"`
}

// IsEmpty reports whether the patch carries no changes.
func (p *CalculationPatch) IsEmpty() bool {
	return p.Inputs == nil
}
