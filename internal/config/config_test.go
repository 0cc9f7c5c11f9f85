// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Geocoder.RequestInterval != time.Second {
		t.Errorf("Geocoder.RequestInterval = %v, want 1s", cfg.Geocoder.RequestInterval)
	}
	if cfg.Search.RelatedLimit != 8 {
		t.Errorf("Search.RelatedLimit = %d, want 8", cfg.Search.RelatedLimit)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
search:
  default_radius_km: 25
security:
  cors_origins:
    - https://vitrine.example
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Search.DefaultRadiusKm != 25 {
		t.Errorf("Search.DefaultRadiusKm = %v, want 25 from file", cfg.Search.DefaultRadiusKm)
	}
	if want := []string{"https://vitrine.example"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	// Untouched sections keep their defaults.
	if cfg.Geocoder.BaseURL != "https://nominatim.openstreetmap.org" {
		t.Errorf("Geocoder.BaseURL = %q, want default", cfg.Geocoder.BaseURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("VITRINE_SERVER_PORT", "7070")
	t.Setenv("VITRINE_GEOCODER_USER_AGENT", "vitrine-test/0.1")
	t.Setenv("VITRINE_SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want env value 7070", cfg.Server.Port)
	}
	if cfg.Geocoder.UserAgent != "vitrine-test/0.1" {
		t.Errorf("Geocoder.UserAgent = %q", cfg.Geocoder.UserAgent)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"VITRINE_SERVER_PORT", "server.port"},
		{"VITRINE_GEOCODER_BASE_URL", "geocoder.base_url"},
		{"VITRINE_SEARCH_NEAREST_CITY_MAX_KM", "search.nearest_city_max_km"},
		{"VITRINE_LOGGING_LEVEL", "logging.level"},
		{"VITRINE_UNKNOWN_KEY", ""},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 0 }, true},
		{"relative geocoder url", func(c *Config) { c.Geocoder.BaseURL = "/nominatim" }, true},
		{"missing user agent", func(c *Config) { c.Geocoder.UserAgent = "" }, true},
		{"negative radius", func(c *Config) { c.Search.DefaultRadiusKm = -1 }, true},
		{"zero related limit", func(c *Config) { c.Search.RelatedLimit = 0 }, true},
		{"rate limit without window", func(c *Config) { c.Security.RateLimitWindow = 0 }, true},
		{"rate limiting disabled", func(c *Config) {
			c.Security.RateLimitRequests = 0
			c.Security.RateLimitWindow = 0
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"console format", func(c *Config) { c.Logging.Format = "console" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
