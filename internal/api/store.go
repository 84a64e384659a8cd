// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"context"

	"github.com/mpreston/carcompare/internal/models"
)

// Store is the persistence surface the HTTP handlers depend on.
// *database.DB satisfies it; tests substitute an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	CreateCar(ctx context.Context, car *models.Car) error
	GetCar(ctx context.Context, id, userID string) (*models.Car, error)
	ListCars(ctx context.Context, userID string) ([]models.Car, error)
	UpdateCar(ctx context.Context, id, userID string, patch *models.CarPatch) (*models.Car, error)
	DeleteCar(ctx context.Context, id, userID string) error

	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, id, userID string) (*models.Listing, error)
	ListListings(ctx context.Context, userID string) ([]models.Listing, error)
	ListListingsByCar(ctx context.Context, carID, userID string) ([]models.Listing, error)
	UpdateListing(ctx context.Context, id, userID string, patch *models.ListingPatch) (*models.Listing, error)
	DeleteListing(ctx context.Context, id, userID string) error

	CreateCalculation(ctx context.Context, calculation *models.Calculation) error
	GetCalculation(ctx context.Context, id, userID string) (*models.Calculation, error)
	ListCalculations(ctx context.Context, userID string) ([]models.Calculation, error)
	UpdateCalculation(ctx context.Context, id, userID string, inputs []float64, result float64) (*models.Calculation, error)
	DeleteCalculation(ctx context.Context, id, userID string) error

	Ping(ctx context.Context) error
}

// VINDecoder resolves a VIN to vehicle attributes.
type VINDecoder interface {
	Decode(ctx context.Context, vin string) (*models.VINDecodeResult, error)
}
