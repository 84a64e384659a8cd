// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/database"
	"github.com/mpreston/carcompare/internal/models"
)

// CreateListing records a marketplace listing against the car in the
// path. Referencing another account's car reports the car as not found.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, ok := pathID(w, r, "id", "Invalid car id format")
	if !ok {
		return
	}

	var req models.ListingCreate
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if req.CarID != "" && req.CarID != carID {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "car_id in body must match the car in the path", nil)
		return
	}

	listing := &models.Listing{
		UserID:   claims.UserID,
		CarID:    carID,
		Price:    req.Price,
		Mileage:  req.Mileage,
		Source:   req.Source,
		URL:      req.URL,
		Location: req.Location,
	}
	if err := h.store.CreateListing(r.Context(), listing); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateCompare(claims.UserID, listing.CarID)
	respondData(w, http.StatusCreated, listing, models.Metadata{})
}

// ListListings returns every listing owned by the authenticated
// account, across all cars.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	start := time.Now()
	listings, err := h.store.ListListings(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, listings, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}

// ListCarListings returns the listings tracked for one owned car.
func (h *Handler) ListCarListings(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, ok := pathID(w, r, "id", "Invalid car id format")
	if !ok {
		return
	}

	start := time.Now()
	listings, err := h.store.ListListingsByCar(r.Context(), carID, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, listings, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}

// listingIDs validates both identifiers in a nested listing path.
func listingIDs(w http.ResponseWriter, r *http.Request) (carID, listingID string, ok bool) {
	if carID, ok = pathID(w, r, "id", "Invalid car id format"); !ok {
		return "", "", false
	}
	if listingID, ok = pathID(w, r, "listingID", "Invalid listing id format"); !ok {
		return "", "", false
	}
	return carID, listingID, true
}

// getCarListing fetches a listing and checks it belongs to the given
// car. A listing reached through the wrong car is reported as not
// found, the same as a listing owned by another account.
func (h *Handler) getCarListing(ctx context.Context, carID, listingID, userID string) (*models.Listing, error) {
	listing, err := h.store.GetListing(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}
	if listing.CarID != carID {
		return nil, database.ErrListingNotFound
	}
	return listing, nil
}

// GetListing returns one listing.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, listingID, ok := listingIDs(w, r)
	if !ok {
		return
	}

	listing, err := h.getCarListing(r.Context(), carID, listingID, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, listing, models.Metadata{})
}

// UpdateListing applies a partial update and drops any cached
// comparison for the affected car.
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, listingID, ok := listingIDs(w, r)
	if !ok {
		return
	}

	var patch models.ListingPatch
	if apiErr := decodeAndValidate(r, &patch); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if patch.IsEmpty() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "At least one field must be provided", nil)
		return
	}

	if _, err := h.getCarListing(r.Context(), carID, listingID, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	listing, err := h.store.UpdateListing(r.Context(), listingID, claims.UserID, &patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateCompare(claims.UserID, listing.CarID)
	respondData(w, http.StatusOK, listing, models.Metadata{})
}

// DeleteListing removes a listing.
func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, listingID, ok := listingIDs(w, r)
	if !ok {
		return
	}

	// Fetch first to verify the car scope and so the cache entry for
	// the parent car can be dropped.
	listing, err := h.getCarListing(r.Context(), carID, listingID, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := h.store.DeleteListing(r.Context(), listing.ID, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateCompare(claims.UserID, listing.CarID)
	w.WriteHeader(http.StatusNoContent)
}
