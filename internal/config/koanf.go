// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/carcompare/config.yaml",
	"/etc/carcompare/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMapping translates well-known environment variables to koanf paths.
// Variables not in this table are ignored, which keeps unrelated process
// environment out of the configuration tree.
var envMapping = map[string]string{
	"SERVER_HOST":             "server.host",
	"SERVER_PORT":             "server.port",
	"SERVER_TIMEOUT":          "server.timeout",
	"ENVIRONMENT":             "server.environment",
	"DATABASE_PATH":           "database.path",
	"DATABASE_MAX_MEMORY":     "database.max_memory",
	"DATABASE_THREADS":        "database.threads",
	"JWT_SECRET":              "security.jwt_secret",
	"SESSION_TIMEOUT":         "security.session_timeout",
	"BCRYPT_COST":             "security.bcrypt_cost",
	"RATE_LIMIT_REQS":         "security.rate_limit_reqs",
	"RATE_LIMIT_WINDOW":       "security.rate_limit_window",
	"DISABLE_RATE_LIMIT":      "security.rate_limit_disabled",
	"LOGIN_RATE_LIMIT_REQS":   "security.login_rate_limit_reqs",
	"LOGIN_RATE_LIMIT_WINDOW": "security.login_rate_limit_window",
	"CORS_ORIGINS":            "security.cors_origins",
	"LOG_LEVEL":               "logging.level",
	"LOG_FORMAT":              "logging.format",
	"LOG_CALLER":              "logging.caller",
	"VIN_BASE_URL":            "vin.base_url",
	"VIN_TIMEOUT":             "vin.timeout",
	"VIN_RATE_PER_SECOND":     "vin.rate_per_second",
	"VIN_CACHE_PATH":          "vin.cache_path",
	"VIN_CACHE_TTL":           "vin.cache_ttl",
	"COMPARE_CACHE_TTL":       "api.compare_cache_ttl",
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8337,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:      "/data/carcompare.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Security: SecurityConfig{
			JWTSecret:            "",
			SessionTimeout:       24 * time.Hour,
			BcryptCost:           12,
			RateLimitReqs:        100,
			RateLimitWindow:      time.Minute,
			RateLimitDisabled:    false,
			LoginRateLimitReqs:   5,
			LoginRateLimitWindow: 5 * time.Minute,
			CORSOrigins:          []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		VIN: VINConfig{
			BaseURL:       "https://vpic.nhtsa.dot.gov/api/vehicles/DecodeVin",
			Timeout:       10 * time.Second,
			RatePerSecond: 2,
			CachePath:     "/data/vincache",
			CacheTTL:      30 * 24 * time.Hour,
		},
		API: APIConfig{
			CompareCacheTTL: 5 * time.Minute,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if exists)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", func(key string) string {
		return envMapping[key]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// CORS_ORIGINS arrives as a comma-separated string from the environment
	if origins := k.String("security.cors_origins"); origins != "" && strings.Contains(origins, ",") {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("security.cors_origins", parts); err != nil {
			return nil, fmt.Errorf("failed to split cors_origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
