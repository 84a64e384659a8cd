// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/mpreston/carcompare/internal/config"
)

// healthRateLimit is permissive so monitoring probes are never shed.
var healthRateLimit = rateLimit{requests: 1000, window: time.Minute}

type rateLimit struct {
	requests int
	window   time.Duration
}

// ChiMiddleware builds the CORS and rate-limiting middleware stack
// from configuration.
type ChiMiddleware struct {
	cfg  *config.SecurityConfig
	cors func(http.Handler) http.Handler
}

// NewChiMiddleware creates the middleware factory. CORS origins default
// to empty, which rejects all cross-origin browser requests until
// explicitly configured.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	})

	return &ChiMiddleware{cfg: cfg, cors: corsHandler}
}

// CORS returns the configured CORS middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the general API rate limiter, keyed by client IP.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(rateLimit{requests: m.cfg.RateLimitReqs, window: m.cfg.RateLimitWindow})
}

// RateLimitLogin returns the strict limiter for credential endpoints.
func (m *ChiMiddleware) RateLimitLogin() func(http.Handler) http.Handler {
	return m.limit(rateLimit{requests: m.cfg.LoginRateLimitReqs, window: m.cfg.LoginRateLimitWindow})
}

// RateLimitHealth returns the permissive limiter for health probes.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limit(healthRateLimit)
}

func (m *ChiMiddleware) limit(rl rateLimit) func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		rl.requests,
		rl.window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
		}),
	)
}
