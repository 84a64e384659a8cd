// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package api implements the HTTP surface: authentication, car and
// listing CRUD, comparison statistics, VIN decoding, and discovery
// endpoints, all returning the standard response envelope.
package api

import (
	"time"

	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/cache"
	"github.com/mpreston/carcompare/internal/config"
	"github.com/mpreston/carcompare/internal/livelistings"
)

// Handler bundles the dependencies shared by all endpoint methods.
type Handler struct {
	store        Store
	jwt          *auth.JWTManager
	decoder      VINDecoder
	compareCache *cache.Cache
	marketplace  *livelistings.Generator
	cfg          *config.Config
	startTime    time.Time
}

// NewHandler wires a Handler. decoder may be nil when the VIN service
// is not configured; the endpoint then reports upstream unavailability.
func NewHandler(store Store, jwt *auth.JWTManager, decoder VINDecoder, cfg *config.Config) *Handler {
	return &Handler{
		store:        store,
		jwt:          jwt,
		decoder:      decoder,
		compareCache: cache.New("compare", cfg.API.CompareCacheTTL),
		marketplace:  livelistings.New(),
		cfg:          cfg,
		startTime:    time.Now(),
	}
}
