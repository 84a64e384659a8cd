// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package models

// RecommendationRequest describes the buyer's preferences used to score
// the built-in vehicle catalog. Every field is optional; an empty request
// still returns the top-scored vehicles.
type RecommendationRequest struct {
	BudgetMin       *float64 `json:"budget_min,omitempty" validate:"omitempty,min=0"`
	BudgetMax       *float64 `json:"budget_max,omitempty" validate:"omitempty,min=0"`
	BodyStyles      []string `json:"body_styles,omitempty"`
	YearMin         *int     `json:"year_min,omitempty" validate:"omitempty,min=1900"`
	YearMax         *int     `json:"year_max,omitempty" validate:"omitempty,max=2030"`
	Brands          []string `json:"brands,omitempty"`
	MileageMax      *int     `json:"mileage_max,omitempty" validate:"omitempty,min=0"`
	Features        []string `json:"features,omitempty"`
	FuelType        *string  `json:"fuel_type,omitempty"`
	Transmission    *string  `json:"transmission,omitempty"`
	AdditionalNotes *string  `json:"additional_notes,omitempty"`
}

// Recommendation is a single scored vehicle suggestion.
type Recommendation struct {
	Year            int      `json:"year"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Trim            *string  `json:"trim,omitempty"`
	EstimatedPrice  *float64 `json:"estimated_price,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	Reason          string   `json:"reason"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// RecommendationResponse wraps the scored suggestions with a summary of
// the criteria that produced them.
type RecommendationResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalCount      int              `json:"total_count"`
	SearchSummary   string           `json:"search_summary"`
}
