// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package main is the entry point for the CarCompare server.
//
// CarCompare is a self-hosted car shopping tracker: users save cars they are
// considering, record dealer listings with prices and mileage, and compare
// listings per car with computed statistics (price range, average, best deal
// by price-per-mile). It also decodes VINs against the NHTSA vPIC API and
// serves browse-mode recommendations and simulated marketplace listings.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB and run schema migrations
//  3. Authentication: JWT token manager (HS256, bcrypt password hashing)
//  4. VIN decoder: NHTSA client with circuit breaker and BadgerDB cache
//  5. HTTP Server: Chi router under a suture supervision tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Required settings:
//   - JWT_SECRET: 32+ character secret for token signing
//   - DATABASE_PATH: DuckDB database file path
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the VIN cache and database connections
//
// # Example Usage
//
// Development:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export DATABASE_PATH=./carcompare.duckdb
//	export VIN_CACHE_PATH=./vincache
//	./carcompare
//
// Docker:
//
//	docker run -d \
//	  -e JWT_SECRET=your-32-char-secret \
//	  -v carcompare-data:/data \
//	  -p 8337:8337 \
//	  ghcr.io/mpreston/carcompare
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mpreston/carcompare/internal/api"
	"github.com/mpreston/carcompare/internal/auth"
	"github.com/mpreston/carcompare/internal/config"
	"github.com/mpreston/carcompare/internal/database"
	"github.com/mpreston/carcompare/internal/logging"
	"github.com/mpreston/carcompare/internal/supervisor"
	"github.com/mpreston/carcompare/internal/vin"
)

const checkpointInterval = 15 * time.Minute

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting CarCompare with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	logging.Info().Msg("JWT authentication enabled")

	// VIN decoding is optional. A missing base URL disables the endpoint,
	// and a missing cache path disables persistent caching but keeps the
	// decoder alive.
	var decoder api.VINDecoder
	var vinCache *vin.Cache
	if cfg.VIN.BaseURL != "" {
		if cfg.VIN.CachePath != "" {
			vinCache, err = vin.OpenCache(cfg.VIN.CachePath, cfg.VIN.CacheTTL)
			if err != nil {
				logging.Warn().Err(err).Str("path", cfg.VIN.CachePath).
					Msg("Failed to open VIN cache, continuing without persistent caching")
				vinCache = nil
			}
		}
		decoder = vin.NewClient(&cfg.VIN, vinCache)
		logging.Info().
			Str("base_url", cfg.VIN.BaseURL).
			Bool("cached", vinCache != nil).
			Msg("VIN decoder enabled")
	} else {
		logging.Info().Msg("VIN decoding disabled (VIN_BASE_URL not set)")
	}
	defer func() {
		if vinCache != nil {
			if err := vinCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing VIN cache")
			}
		}
	}()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for local development and tests!")
	}

	handler := api.NewHandler(db, jwtManager, decoder, cfg)
	authMW := auth.NewMiddleware(jwtManager)
	router := api.NewRouter(handler, authMW, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(supervisor.NewCheckpointService(db, checkpointInterval))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
