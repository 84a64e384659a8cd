// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/calc"
	"github.com/mpreston/carcompare/internal/models"
)

// respondCalcError maps evaluation failures to responses. Every
// evaluation error is the client's doing: bad operands or a type the
// request validator should have caught.
func respondCalcError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calc.ErrDivideByZero):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot divide by zero", nil)
	case errors.Is(err, calc.ErrTooFewInputs):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "At least two inputs are required", nil)
	default:
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unsupported calculation type", nil)
	}
}

// CreateCalculation stores a calculation and computes its result.
func (h *Handler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	var req models.CalculationCreate
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	result, err := calc.Evaluate(req.Type, req.Inputs)
	if err != nil {
		respondCalcError(w, err)
		return
	}

	calculation := &models.Calculation{
		UserID: claims.UserID,
		Type:   req.Type,
		Inputs: req.Inputs,
		Result: result,
	}
	if err := h.store.CreateCalculation(r.Context(), calculation); err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusCreated, calculation, models.Metadata{})
}

// ListCalculations returns every calculation owned by the authenticated
// account.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	start := time.Now()
	calculations, err := h.store.ListCalculations(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, calculations, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}

// GetCalculation returns one calculation.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	id, ok := pathID(w, r, "id", "Invalid calculation id format")
	if !ok {
		return
	}

	calculation, err := h.store.GetCalculation(r.Context(), id, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, calculation, models.Metadata{})
}

// UpdateCalculation replaces the inputs of a calculation and recomputes
// its result. The calculation's type is fixed at creation.
func (h *Handler) UpdateCalculation(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	id, ok := pathID(w, r, "id", "Invalid calculation id format")
	if !ok {
		return
	}

	var patch models.CalculationPatch
	if apiErr := decodeAndValidate(r, &patch); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}
	if patch.IsEmpty() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "At least one field must be provided", nil)
		return
	}

	existing, err := h.store.GetCalculation(r.Context(), id, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	result, err := calc.Evaluate(existing.Type, patch.Inputs)
	if err != nil {
		respondCalcError(w, err)
		return
	}

	calculation, err := h.store.UpdateCalculation(r.Context(), id, claims.UserID, patch.Inputs, result)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, calculation, models.Metadata{})
}

// DeleteCalculation removes a calculation.
func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	id, ok := pathID(w, r, "id", "Invalid calculation id format")
	if !ok {
		return
	}

	if err := h.store.DeleteCalculation(r.Context(), id, claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
