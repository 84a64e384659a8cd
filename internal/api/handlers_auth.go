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
	"github.com/mpreston/carcompare/internal/database"
	"github.com/mpreston/carcompare/internal/logging"
	"github.com/mpreston/carcompare/internal/metrics"
	"github.com/mpreston/carcompare/internal/models"
)

// Register creates a new account. Password hashing happens here so the
// storage layer only ever sees the bcrypt digest.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Password could not be processed", err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		metrics.RecordAuthAttempt("register", false)
		respondStoreError(w, err)
		return
	}

	metrics.RecordAuthAttempt("register", true)
	logging.Info().Str("username", sanitizeLogValue(user.Username)).Msg("Account created")
	respondData(w, http.StatusCreated, user.Public(), models.Metadata{})
}

// Login verifies credentials and issues a session token, returned in
// the body and mirrored in an HTTP-only cookie. Unknown usernames and
// wrong passwords produce the identical response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		metrics.RecordAuthAttempt("login", false)
		if errorsIsNotFound(err) {
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		metrics.RecordAuthAttempt("login", false)
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user.Username, user.ID)
	if err != nil {
		metrics.RecordAuthAttempt("login", false)
		respondError(w, http.StatusInternalServerError, "AUTHENTICATION_ERROR", "Session token could not be issued", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	})

	metrics.RecordAuthAttempt("login", true)
	logging.Info().Str("username", sanitizeLogValue(user.Username)).Msg("Login")
	respondData(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		UserID:    user.ID,
	}, models.Metadata{})
}

// Logout clears the session cookie. The JWT itself stays valid until
// expiry; clients must also discard any bearer copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.cfg.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	})
	respondData(w, http.StatusOK, map[string]string{"message": "Logged out"}, models.Metadata{})
}

// Me returns the authenticated account's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, user.Public(), models.Metadata{})
}

// DeleteAccount removes the account and everything it owns.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required", nil)
		return
	}

	if err := h.store.DeleteUser(r.Context(), claims.UserID); err != nil {
		respondStoreError(w, err)
		return
	}

	h.compareCache.Clear()
	logging.Info().Str("user_id", claims.UserID).Msg("Account deleted")
	respondData(w, http.StatusOK, map[string]string{"message": "Account deleted"}, models.Metadata{})
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, database.ErrUserNotFound) ||
		errors.Is(err, database.ErrCarNotFound) ||
		errors.Is(err, database.ErrListingNotFound)
}
