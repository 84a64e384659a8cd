// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"
	"time"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/cache"
	"github.com/mpreston/carcompare/internal/compare"
	"github.com/mpreston/carcompare/internal/metrics"
	"github.com/mpreston/carcompare/internal/models"
)

type compareKeyParams struct {
	UserID string `json:"user_id"`
	CarID  string `json:"car_id"`
}

func compareKey(userID, carID string) string {
	return cache.GenerateKey("compare", compareKeyParams{UserID: userID, CarID: carID})
}

func (h *Handler) invalidateCompare(userID, carID string) {
	h.compareCache.Delete(compareKey(userID, carID))
}

// CompareCar computes price statistics across the listings tracked for
// one owned car. Results are cached per user and car; any write to the
// car or its listings invalidates the entry.
func (h *Handler) CompareCar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	carID, ok := pathID(w, r, "id", "Invalid car id format")
	if !ok {
		return
	}
	key := compareKey(claims.UserID, carID)

	if cached, ok := h.compareCache.Get(key); ok {
		if stats, ok := cached.(models.ComparisonStats); ok {
			respondData(w, http.StatusOK, stats, models.Metadata{Cached: true})
			return
		}
	}

	start := time.Now()
	listings, err := h.store.ListListingsByCar(r.Context(), carID, claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	stats := compare.Stats(listings)
	metrics.RecordCompareComputation(len(listings))
	h.compareCache.Set(key, stats)

	respondData(w, http.StatusOK, stats, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}
