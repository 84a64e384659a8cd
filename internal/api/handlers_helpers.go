// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mpreston/carcompare/internal/logging"
	"github.com/mpreston/carcompare/internal/models"
	"github.com/mpreston/carcompare/internal/validation"
)

// maxRequestBody caps request body size at 1 MiB. No endpoint accepts
// payloads anywhere near this.
const maxRequestBody = 1 << 20

// pathID extracts the named path parameter and checks it parses as a
// UUID. A malformed identifier is a client error and must never reach
// the database, where the failed UUID cast would surface as a 500.
func pathID(w http.ResponseWriter, r *http.Request, name, message string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
		return "", false
	}
	return id, true
}

// sanitizeLogValue removes control characters from strings to prevent
// log injection. Newlines in attacker-controlled values could otherwise
// forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData wraps payload in the success envelope.
func respondData(w http.ResponseWriter, status int, payload interface{}, meta models.Metadata) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     payload,
		Metadata: meta,
	})
}

// generateETag creates a weak ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidationError sends the structured field details from a
// failed request validation.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: apiErr,
	})
}

// decodeAndValidate reads the JSON request body into v and runs struct
// validation. A non-nil return has already been converted to the API
// error format.
func decodeAndValidate(r *http.Request, v interface{}) *models.APIError {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "Request body is not valid JSON",
		}
	}
	return validateRequest(v)
}

// validateRequest validates a struct using go-playground/validator and
// converts any failure to the API error format.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
