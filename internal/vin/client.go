// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package vin decodes Vehicle Identification Numbers through the NHTSA
// vPIC API. The upstream is a free public service, so the client is
// deliberately polite: a token-bucket rate limiter throttles outbound
// calls, a circuit breaker stops hammering the API when it is down, and
// decoded results are cached persistently because VIN attributes never
// change for a given vehicle.
package vin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mpreston/carcompare/internal/config"
	"github.com/mpreston/carcompare/internal/logging"
	"github.com/mpreston/carcompare/internal/metrics"
	"github.com/mpreston/carcompare/internal/models"
)

// Client errors. ErrInvalidVIN maps to 400, ErrUpstream to 502, and
// ErrUnavailable (breaker open or rate limit wait cancelled) to 503.
var (
	ErrInvalidVIN  = errors.New("vin must be exactly 17 characters")
	ErrUpstream    = errors.New("vin decoder upstream failure")
	ErrUnavailable = errors.New("vin decoder temporarily unavailable")
)

const breakerName = "nhtsa_vin"

// nhtsaResponse mirrors the vPIC DecodeVin payload: a Results array of
// Variable/Value pairs rather than a flat object.
type nhtsaResponse struct {
	Results []nhtsaResult `json:"Results"`
}

type nhtsaResult struct {
	Variable string  `json:"Variable"`
	Value    *string `json:"Value"`
}

// Client calls the NHTSA vPIC DecodeVin endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*models.VINDecodeResult]
	cache      *Cache
}

// NewClient creates a VIN decoder client. cache may be nil, in which case
// every lookup goes upstream.
func NewClient(cfg *config.VINConfig, cache *Cache) *Client {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		breaker:    gobreaker.NewCircuitBreaker[*models.VINDecodeResult](settings),
		cache:      cache,
	}
}

// Decode resolves a 17-character VIN to its vehicle attributes. Results are
// served from the cache when present; otherwise the call waits for a rate
// limiter slot and goes through the circuit breaker to the upstream API.
func (c *Client) Decode(ctx context.Context, vin string) (*models.VINDecodeResult, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if len(vin) != 17 {
		return nil, ErrInvalidVIN
	}

	if c.cache != nil {
		if result, ok := c.cache.Get(vin); ok {
			return result, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (*models.VINDecodeResult, error) {
		return c.fetch(ctx, vin)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordVINLookup("rejected", 0)
			return nil, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		metrics.RecordVINLookup("failure", time.Since(start))
		return nil, err
	}
	metrics.RecordVINLookup("success", time.Since(start))

	if c.cache != nil {
		if err := c.cache.Set(vin, result); err != nil {
			logging.Warn().Err(err).Str("vin", vin).Msg("Failed to cache vin result")
		}
	}

	return result, nil
}

// fetch performs the actual upstream call.
func (c *Client) fetch(ctx context.Context, vin string) (*models.VINDecodeResult, error) {
	url := fmt.Sprintf("%s/%s?format=json", c.baseURL, vin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build vin request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var payload nhtsaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %s", ErrUpstream, err)
	}

	return parseResults(vin, payload.Results), nil
}

// parseResults flattens the Variable/Value pairs into the fields we care
// about. Empty and whitespace-only values are treated as absent. Trim
// falls back to Series, which is where several manufacturers report it.
func parseResults(vin string, results []nhtsaResult) *models.VINDecodeResult {
	lookup := make(map[string]string, len(results))
	for _, r := range results {
		if r.Value == nil {
			continue
		}
		value := strings.TrimSpace(*r.Value)
		if value == "" {
			continue
		}
		lookup[r.Variable] = value
	}

	result := &models.VINDecodeResult{VIN: vin}
	if v, ok := lookup["Model Year"]; ok {
		result.Year = &v
	}
	if v, ok := lookup["Make"]; ok {
		result.Make = &v
	}
	if v, ok := lookup["Model"]; ok {
		result.Model = &v
	}
	if v, ok := lookup["Trim"]; ok {
		result.Trim = &v
	} else if v, ok := lookup["Series"]; ok {
		result.Trim = &v
	}

	return result
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
