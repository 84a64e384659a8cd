// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"
	"time"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/models"
)

// CreateCar adds a car to the authenticated account's garage.
func (h *Handler) CreateCar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	var req models.CarCreate
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	car := &models.Car{
		UserID: claims.UserID,
		Year:   req.Year,
		Make:   req.Make,
		Model:  req.Model,
		Trim:   req.Trim,
		VIN:    req.VIN,
	}
	if err := h.store.CreateCar(r.Context(), car); err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusCreated, car, models.Metadata{})
}

// ListCars returns every car owned by the authenticated account.
func (h *Handler) ListCars(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	start := time.Now()
	cars, err := h.store.ListCars(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, cars, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}

// GetCar returns one car. Cars owned by other accounts are
// indistinguishable from cars that do not exist.
func (h *Handler) GetCar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, ok := pathID(w, r, "id", "Invalid car id format")
	if !ok {
		return
	}

	car, err := h.store.GetCar(r.Context(), carID, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, car, models.Metadata{})
}

// UpdateCar applies a partial update.
func (h *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, ok := pathID(w, r, "id", "Invalid car id format")
	if !ok {
		return
	}

	var patch models.CarPatch
	if apiErr := decodeAndValidate(r, &patch); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if patch.IsEmpty() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "At least one field must be provided", nil)
		return
	}

	car, err := h.store.UpdateCar(r.Context(), carID, claims.UserID, &patch)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateCompare(claims.UserID, carID)
	respondData(w, http.StatusOK, car, models.Metadata{})
}

// DeleteCar removes a car and all of its listings.
func (h *Handler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, ok := pathID(w, r, "id", "Invalid car id format")
	if !ok {
		return
	}

	if err := h.store.DeleteCar(r.Context(), carID, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateCompare(claims.UserID, carID)
	w.WriteHeader(http.StatusNoContent)
}
