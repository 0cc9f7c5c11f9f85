// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package geocode resolves postal addresses to coordinates and coordinates
// back to localities using a Nominatim-compatible service, degrading through
// a cascading fallback chain down to the static city coordinate table. All
// upstream traffic passes through a shared Limiter and a circuit breaker;
// both resolvers suspend on the limiter rather than failing fast.
package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/logging"
	"github.com/vitrine-live/vitrine/internal/metrics"
)

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// maxResponseBytes caps upstream response bodies. Nominatim responses for
// limit=1 queries are a few hundred bytes; 1 MiB leaves generous headroom.
const maxResponseBytes = 1 << 20

// searchResult is one candidate from a forward geocoding query.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// reverseResult is the structured response of a reverse lookup. Locality
// fields vary by region; the extractor list in reverse.go deals with that.
type reverseResult struct {
	Address reverseAddress `json:"address"`
}

type reverseAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
	StateCode    string `json:"ISO3166-2-lvl4"`
}

// ClientConfig configures the upstream geocoding client.
type ClientConfig struct {
	// BaseURL is the Nominatim-compatible endpoint. Default: DefaultBaseURL.
	BaseURL string

	// UserAgent identifies this deployment to the upstream service. The
	// public Nominatim instance rejects requests without one.
	UserAgent string

	// Timeout bounds a single upstream request. Default: 10s.
	Timeout time.Duration

	// Limiter gates upstream requests. Default: a shared 1 req/s
	// IntervalLimiter.
	Limiter Limiter
}

// Client talks to the upstream geocoding service. It is safe for concurrent
// use; the limiter and breaker serialize and protect the upstream.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a geocoding client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "vitrine/1.0 (+https://github.com/vitrine-live/vitrine)"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Limiter == nil {
		cfg.Limiter = NewIntervalLimiter(time.Second)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		limiter:    cfg.Limiter,
		breaker:    newBreaker("geocoder"),
	}
}

// newBreaker builds the circuit breaker guarding the upstream service.
// Opens after a 60% failure rate over at least 10 requests; recovery is
// probed after 2 minutes.
func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// search submits a free-text forward geocoding query and returns the ranked
// candidates. An empty slice with a nil error means the service answered but
// found nothing.
func (c *Client) search(ctx context.Context, query string) ([]searchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("search", "error").Inc()
		return nil, err
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		metrics.GeocodeRequests.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("malformed search response: %w", err)
	}

	if len(results) == 0 {
		metrics.GeocodeRequests.WithLabelValues("search", "empty").Inc()
	} else {
		metrics.GeocodeRequests.WithLabelValues("search", "ok").Inc()
	}
	return results, nil
}

// reverse submits a coordinate for reverse geocoding.
func (c *Client) reverse(ctx context.Context, coord geo.Coordinate) (*reverseResult, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Set("format", "json")

	body, err := c.get(ctx, "/reverse", params)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("reverse", "error").Inc()
		return nil, err
	}

	var result reverseResult
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.GeocodeRequests.WithLabelValues("reverse", "error").Inc()
		return nil, fmt.Errorf("malformed reverse response: %w", err)
	}

	metrics.GeocodeRequests.WithLabelValues("reverse", "ok").Inc()
	return &result, nil
}

// get performs a rate-limited, breaker-guarded GET and returns the response
// body. The limiter is acquired before the breaker so an open breaker does
// not burn the request budget.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		reqURL := c.baseURL + path + "?" + params.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("geocoder request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read geocoder response: %w", err)
		}
		return body, nil
	})
}
