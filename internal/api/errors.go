// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"errors"
	"net/http"

	"github.com/mpreston/carcompare/internal/database"
	"github.com/mpreston/carcompare/internal/vin"
)

// respondStoreError maps persistence errors to HTTP responses. Rows
// owned by another account surface as plain not-found, never as an
// authorization failure.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	case errors.Is(err, database.ErrCarNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Car not found", nil)
	case errors.Is(err, database.ErrListingNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Listing not found", nil)
	case errors.Is(err, database.ErrCalculationNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Calculation not found", nil)
	case errors.Is(err, database.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "CONFLICT", "Username is already taken", nil)
	case errors.Is(err, database.ErrEmailTaken):
		respondError(w, http.StatusConflict, "CONFLICT", "Email is already registered", nil)
	default:
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Database operation failed", err)
	}
}

// respondVINError maps decoder failures onto upstream-aware status
// codes: bad input 400, upstream failure 502, circuit open 503.
func respondVINError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vin.ErrInvalidVIN):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "VIN must be 17 characters", nil)
	case errors.Is(err, vin.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "UPSTREAM_ERROR", "VIN decoder is temporarily unavailable", err)
	case errors.Is(err, vin.ErrUpstream):
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "VIN decoder upstream request failed", err)
	default:
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "VIN decode failed", err)
	}
}
