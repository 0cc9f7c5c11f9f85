// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateGeocoder(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}

func (c *Config) validateGeocoder() error {
	u, err := url.Parse(c.Geocoder.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("geocoder.base_url must be an absolute URL, got %q", c.Geocoder.BaseURL)
	}
	if c.Geocoder.UserAgent == "" {
		return fmt.Errorf("geocoder.user_agent is required by the upstream usage policy")
	}
	if c.Geocoder.RequestInterval < 0 {
		return fmt.Errorf("geocoder.request_interval must not be negative")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.DefaultRadiusKm < 0 {
		return fmt.Errorf("search.default_radius_km must not be negative")
	}
	if c.Search.NearestCityMaxKm < 0 {
		return fmt.Errorf("search.nearest_city_max_km must not be negative")
	}
	if c.Search.RelatedLimit < 1 {
		return fmt.Errorf("search.related_limit must be at least 1, got %d", c.Search.RelatedLimit)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitRequests < 0 {
		return fmt.Errorf("security.rate_limit_requests must not be negative")
	}
	if c.Security.RateLimitRequests > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
