// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/mpreston/carcompare/internal/logging"
	"github.com/mpreston/carcompare/internal/models"
)

type contextKey string

// ClaimsContextKey is the request context key holding the authenticated
// user's *Claims.
const ClaimsContextKey contextKey = "claims"

// TokenCookieName is the HTTP-only cookie carrying the session token for
// browser clients. API clients use the Authorization header instead.
const TokenCookieName = "carcompare_token"

// Middleware enforces JWT authentication on protected routes.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates an authentication middleware.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate validates the request's token and injects the claims into
// the request context. The token is read from the Authorization header
// (Bearer scheme) first, then from the session cookie.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			unauthorized(w, "Authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			logging.Debug().Err(err).Msg("Token validation failed")
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the authenticated user's claims, or nil when
// the request did not pass through Authenticate.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie(TokenCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Warn().Err(err).Msg("Failed to encode unauthorized response")
	}
}
