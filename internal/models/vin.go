// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package models

// VINDecodeResult holds the vehicle attributes extracted from an NHTSA
// vPIC DecodeVin response. Fields the decoder could not determine are nil.
type VINDecodeResult struct {
	VIN   string  `json:"vin"`
	Year  *string `json:"year"`
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Trim  *string `json:"trim"`
}
