// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mpreston/carcompare/internal/models"
)

// DecodeVIN resolves a VIN to year, make, model, and trim through the
// NHTSA vPIC service, behind the client's cache and circuit breaker.
func (h *Handler) DecodeVIN(w http.ResponseWriter, r *http.Request) {
	if h.decoder == nil {
		respondError(w, http.StatusServiceUnavailable, "UPSTREAM_ERROR", "VIN decoding is not configured", nil)
		return
	}

	start := time.Now()
	result, err := h.decoder.Decode(r.Context(), chi.URLParam(r, "vin"))
	if err != nil {
		respondVINError(w, err)
		return
	}

	respondData(w, http.StatusOK, result, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}
