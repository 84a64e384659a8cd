// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/mpreston/carcompare/internal/logging"
)

// Sentinel errors returned by the data access layer. Handlers map these to
// HTTP status codes; "not found" covers both missing rows and rows owned by
// a different user so that existence is never leaked across accounts.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCarNotFound         = errors.New("car not found")
	ErrListingNotFound     = errors.New("listing not found")
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrUsernameTaken       = errors.New("username already registered")
	ErrEmailTaken          = errors.New("email already registered")
)

// closeWithLog closes a resource and logs any error.
// Use this for cleanup operations where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup operations in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// isUniqueConstraintError reports whether err is a DuckDB unique or primary
// key constraint violation. The driver does not expose typed errors for
// constraint failures, so this matches on the message text.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "primary key")
}
