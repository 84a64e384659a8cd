// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8337 {
		t.Errorf("Server.Port = %d, want 8337", cfg.Server.Port)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want 12", cfg.Security.BcryptCost)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 24h", cfg.Security.SessionTimeout)
	}
	if cfg.VIN.BaseURL == "" {
		t.Error("VIN.BaseURL should have a default")
	}
	if cfg.API.CompareCacheTTL <= 0 {
		t.Error("API.CompareCacheTTL should default to a positive duration")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Security.JWTSecret = testSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "port"},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, "database"},
		{"missing jwt secret", func(c *Config) { c.Security.JWTSecret = "" }, "jwt"},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, "jwt"},
		{"zero session timeout", func(c *Config) { c.Security.SessionTimeout = 0 }, "session"},
		{"bcrypt cost too low", func(c *Config) { c.Security.BcryptCost = 3 }, "bcrypt"},
		{"bcrypt cost too high", func(c *Config) { c.Security.BcryptCost = 32 }, "bcrypt"},
		{"zero vin timeout", func(c *Config) { c.VIN.Timeout = 0 }, "vin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Security.JWTSecret != testSecret {
		t.Error("JWT_SECRET env var not applied")
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8444\nsecurity:\n  jwt_secret: " + testSecret + "\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8444 {
		t.Errorf("Server.Port = %d, want 8444 from config file", cfg.Server.Port)
	}
	// File did not set a host, so the default must survive layering.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load() without JWT_SECRET should fail validation")
	}
}

func TestAddr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8337}
	if got := cfg.Addr(); got != "127.0.0.1:8337" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8337", got)
	}
}
