// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"
	"time"

	"github.com/mpreston/carcompare/internal/models"
)

// Health reports overall service health including database
// reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "up"
	httpStatus := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	respondData(w, httpStatus, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, models.Metadata{})
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"}, models.Metadata{})
}

// HealthReady is the readiness probe: dependencies are reachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR", "Database is not ready", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"}, models.Metadata{})
}
