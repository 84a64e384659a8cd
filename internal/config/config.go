// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

// Package config provides layered application configuration via Koanf v2.
//
// Configuration is loaded from three sources (highest priority wins):
//  1. Environment variables
//  2. Optional YAML config file
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	VIN      VINConfig      `koanf:"vin"`
	API      APIConfig      `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads controls DuckDB parallelism. 0 = use runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Minimum 32 characters.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	// LoginRateLimitReqs caps login attempts per window (brute force prevention).
	LoginRateLimitReqs   int           `koanf:"login_rate_limit_reqs"`
	LoginRateLimitWindow time.Duration `koanf:"login_rate_limit_window"`
	CORSOrigins          []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// VINConfig holds NHTSA VIN decoder client settings.
type VINConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	// RatePerSecond limits outbound NHTSA calls. 0 disables the limiter.
	RatePerSecond float64 `koanf:"rate_per_second"`
	// CachePath is the BadgerDB directory for decoded VINs.
	// Empty disables the persistent cache.
	CachePath string        `koanf:"cache_path"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// CompareCacheTTL bounds staleness of cached comparison statistics.
	CompareCacheTTL time.Duration `koanf:"compare_cache_ttl"`
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be in [4, 31], got %d", c.Security.BcryptCost)
	}
	if c.VIN.Timeout <= 0 {
		return fmt.Errorf("vin.timeout must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment != "production"
}

// Addr returns the host:port listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
