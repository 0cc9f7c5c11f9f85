// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package config defines the application configuration and its layered
// loader. Precedence is ENV > config file > built-in defaults.
package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Geocoder GeocoderConfig `koanf:"geocoder"`
	Search   SearchConfig   `koanf:"search"`
	Listings ListingsConfig `koanf:"listings"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// GeocoderConfig holds the upstream geocoding client settings.
type GeocoderConfig struct {
	// BaseURL is the Nominatim-compatible endpoint.
	BaseURL string `koanf:"base_url"`
	// UserAgent identifies this deployment to the upstream service, as its
	// usage policy requires.
	UserAgent string `koanf:"user_agent"`
	// RequestInterval is the minimum spacing between upstream requests.
	RequestInterval time.Duration `koanf:"request_interval"`
	Timeout         time.Duration `koanf:"timeout"`
	// CachePath is the directory for the persistent result cache. Empty
	// disables caching.
	CachePath string        `koanf:"cache_path"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// SearchConfig holds search and recommendation tuning.
type SearchConfig struct {
	// DefaultRadiusKm applies when a request enables distance filtering
	// without specifying a radius.
	DefaultRadiusKm float64 `koanf:"default_radius_km"`
	// NearestCityMaxKm bounds the nearest-city fallback acceptance radius.
	NearestCityMaxKm float64 `koanf:"nearest_city_max_km"`
	// RelatedLimit is the default number of related listings returned.
	RelatedLimit int `koanf:"related_limit"`
}

// ListingsConfig holds the listing store settings.
type ListingsConfig struct {
	// SeedPath is the JSON fixture file the in-memory store loads at start.
	SeedPath string `koanf:"seed_path"`
}

// SecurityConfig holds public API protection settings.
type SecurityConfig struct {
	// RateLimitRequests is the allowed request count per client IP within
	// RateLimitWindow. Zero disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied. These are the
// lowest-precedence layer; file and environment values override them.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL:   "https://nominatim.openstreetmap.org",
			UserAgent: "vitrine/1.0 (contact@vitrine.live)",
			// The public Nominatim usage policy caps at 1 req/s.
			RequestInterval: time.Second,
			Timeout:         10 * time.Second,
			CachePath:       "/data/geocode-cache",
			CacheTTL:        7 * 24 * time.Hour,
		},
		Search: SearchConfig{
			DefaultRadiusKm:  10,
			NearestCityMaxKm: 50,
			RelatedLimit:     8,
		},
		Listings: ListingsConfig{
			SeedPath: "/data/listings.json",
		},
		Security: SecurityConfig{
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
