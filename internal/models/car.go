// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package models

import (
	"time"
)

// User represents a registered account. PasswordHash holds the bcrypt
// digest and is excluded from JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns the JSON-safe projection of the user.
func (u *User) Public() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Car represents a vehicle tracked by a user. A car can have multiple
// listings across marketplaces or points in time. Cars belong to exactly
// one user and are deleted together with their listings when the owner
// is removed.
type Car struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Year      int       `json:"year"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Trim      *string   `json:"trim,omitempty"`
	VIN       *string   `json:"vin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarCreate carries the fields a client supplies when adding a car.
type CarCreate struct {
	Year  int     `json:"year" validate:"required,min=1900,max=2030"`
	Make  string  `json:"make" validate:"required,min=1,max=100"`
	Model string  `json:"model" validate:"required,min=1,max=100"`
	Trim  *string `json:"trim,omitempty" validate:"omitempty,max=100"`
	VIN   *string `json:"vin,omitempty" validate:"omitempty,len=17"`
}

// CarPatch is a partial update for a Car. Nil fields are left untouched;
// non-nil fields overwrite the current value. Clearing an optional field
// is not supported through the API.
type CarPatch struct {
	Year  *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2030"`
	Make  *string `json:"make,omitempty" validate:"omitempty,min=1,max=100"`
	Model *string `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Trim  *string `json:"trim,omitempty" validate:"omitempty,max=100"`
	VIN   *string `json:"vin,omitempty" validate:"omitempty,len=17"`
}

// IsEmpty reports whether the patch carries no changes.
func (p *CarPatch) IsEmpty() bool {
	return p.Year == nil && p.Make == nil && p.Model == nil && p.Trim == nil && p.VIN == nil
}

// Apply copies the patch's non-nil fields onto the car and touches the
// modification timestamp. It does nothing when the patch is empty.
func (p *CarPatch) Apply(c *Car, now time.Time) {
	if p.IsEmpty() {
		return
	}
	if p.Year != nil {
		c.Year = *p.Year
	}
	if p.Make != nil {
		c.Make = *p.Make
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Trim != nil {
		c.Trim = p.Trim
	}
	if p.VIN != nil {
		c.VIN = p.VIN
	}
	c.UpdatedAt = now
}

// Listing represents a marketplace posting of a specific price and mileage
// for a car the user tracks. Mileage is a pointer: nil means the posting
// carried no odometer reading, which is distinct from a literal zero.
type Listing struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CarID     string    `json:"car_id"`
	Price     float64   `json:"price"`
	Mileage   *int      `json:"mileage,omitempty"`
	Source    string    `json:"source"`
	URL       *string   `json:"url,omitempty"`
	Location  *string   `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListingCreate carries the fields a client supplies when recording a listing.
// The parent car comes from the request path; car_id in the body is optional
// and must agree with it when present. Price must be strictly positive; a
// mileage of zero is accepted but treated as "no odometer data" by the
// comparison statistics.
type ListingCreate struct {
	CarID    string  `json:"car_id,omitempty" validate:"omitempty,uuid4"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Mileage  *int    `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Source   string  `json:"source" validate:"required,min=1,max=100"`
	URL      *string `json:"url,omitempty" validate:"omitempty,url"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// ListingPatch is a partial update for a Listing. Nil fields are left
// untouched. The car_id of an existing listing cannot be changed.
type ListingPatch struct {
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Mileage  *int     `json:"mileage,omitempty" validate:"omitempty,min=0"`
	Source   *string  `json:"source,omitempty" validate:"omitempty,min=1,max=100"`
	URL      *string  `json:"url,omitempty" validate:"omitempty,url"`
	Location *string  `json:"location,omitempty" validate:"omitempty,max=200"`
}

// IsEmpty reports whether the patch carries no changes.
func (p *ListingPatch) IsEmpty() bool {
	return p.Price == nil && p.Mileage == nil && p.Source == nil && p.URL == nil && p.Location == nil
}

// Apply copies the patch's non-nil fields onto the listing and touches the
// modification timestamp. It does nothing when the patch is empty.
func (p *ListingPatch) Apply(l *Listing, now time.Time) {
	if p.IsEmpty() {
		return
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Mileage != nil {
		l.Mileage = p.Mileage
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.URL != nil {
		l.URL = p.URL
	}
	if p.Location != nil {
		l.Location = p.Location
	}
	l.UpdatedAt = now
}
