// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"

	"github.com/mpreston/carcompare/internal/models"
	"github.com/mpreston/carcompare/internal/recommend"
)

// Recommendations scores the vehicle catalog against the caller's
// stated preferences.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	respondData(w, http.StatusOK, recommend.Generate(req), models.Metadata{})
}

// LiveListings searches the marketplace aggregator.
func (h *Handler) LiveListings(w http.ResponseWriter, r *http.Request) {
	var req models.LiveListingSearch
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	respondData(w, http.StatusOK, h.marketplace.Search(req), models.Metadata{})
}
