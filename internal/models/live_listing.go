// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package models

// LiveListingSearch describes a marketplace search. All filters are
// optional; Radius defaults to 50 miles when unset.
type LiveListingSearch struct {
	Make       *string  `json:"make,omitempty"`
	Model      *string  `json:"model,omitempty"`
	YearMin    *int     `json:"year_min,omitempty" validate:"omitempty,min=1990,max=2030"`
	YearMax    *int     `json:"year_max,omitempty" validate:"omitempty,min=1990,max=2030"`
	PriceMin   *float64 `json:"price_min,omitempty" validate:"omitempty,min=0"`
	PriceMax   *float64 `json:"price_max,omitempty" validate:"omitempty,min=0"`
	MileageMax *int     `json:"mileage_max,omitempty" validate:"omitempty,min=0"`
	ZipCode    *string  `json:"zip_code,omitempty"`
	Radius     *int     `json:"radius,omitempty" validate:"omitempty,min=0,max=500"`
}

// LiveListing is a single marketplace result.
type LiveListing struct {
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	Trim          *string  `json:"trim,omitempty"`
	Price         float64  `json:"price"`
	Mileage       *int     `json:"mileage,omitempty"`
	Location      *string  `json:"location,omitempty"`
	DealerName    *string  `json:"dealer_name,omitempty"`
	URL           string   `json:"url"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Source        string   `json:"source"`
	VIN           *string  `json:"vin,omitempty"`
	ExteriorColor *string  `json:"exterior_color,omitempty"`
	InteriorColor *string  `json:"interior_color,omitempty"`
	Transmission  *string  `json:"transmission,omitempty"`
	FuelType      *string  `json:"fuel_type,omitempty"`
	Drivetrain    *string  `json:"drivetrain,omitempty"`
	Features      []string `json:"features"`
	DaysListed    *int     `json:"days_listed,omitempty"`
	PriceDrop     *float64 `json:"price_drop,omitempty"`
	IsCertified   bool     `json:"is_certified"`
}

// LiveListingResponse wraps search results with the sources consulted.
type LiveListingResponse struct {
	Listings       []LiveListing `json:"listings"`
	TotalCount     int           `json:"total_count"`
	SearchSummary  string        `json:"search_summary"`
	SourcesScanned []string      `json:"sources_scanned"`
}
