// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package models

// ComparisonStats holds the aggregate statistics computed over all listings
// of a single car. Pointer fields are nil when no listing qualifies for the
// statistic, which serializes to JSON null.
//
// Semantics:
//   - Count: number of listings considered, 0 for an empty set.
//   - MinPrice/MaxPrice/AvgPrice: over all listings, nil when Count is 0.
//   - AvgPricePerMile: mean of per-listing price/mileage ratios, computed
//     only over listings with mileage strictly greater than zero. A mileage
//     of 0 or nil means "no odometer data" and excludes the listing. Nil
//     when no listing qualifies.
//   - BestDealListingID: id of the listing with the lowest price/mileage
//     ratio among qualifying listings, nil when none qualify.
//
// All monetary and ratio values are rounded to 2 decimal places.
type ComparisonStats struct {
	Count             int      `json:"count"`
	MinPrice          *float64 `json:"min_price"`
	MaxPrice          *float64 `json:"max_price"`
	AvgPrice          *float64 `json:"avg_price"`
	AvgPricePerMile   *float64 `json:"avg_price_per_mile"`
	BestDealListingID *string  `json:"best_deal_listing_id"`
}
