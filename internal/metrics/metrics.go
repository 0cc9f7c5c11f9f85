// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package metrics registers the Prometheus instruments for search, geocoding,
// and recommendation paths. Everything is registered through promauto on the
// default registry and exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitrine_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrine_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Geocoding metrics

	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_geocode_requests_total",
			Help: "Total upstream geocoding requests by operation and outcome",
		},
		[]string{"operation", "outcome"}, // operation: search|reverse, outcome: ok|empty|error
	)

	// GeocodeFallbackDepth counts at which step of the cascading fallback a
	// forward resolution succeeded. Depth 0 is the full query; "static" is
	// the city coordinate table; "unresolved" means every step failed.
	GeocodeFallbackDepth = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_geocode_fallback_total",
			Help: "Forward geocode resolutions by fallback depth",
		},
		[]string{"depth"},
	)

	GeocodeRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitrine_geocode_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the upstream rate limiter",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5},
		},
	)

	GeocodeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrine_geocode_cache_hits_total",
			Help: "Geocode results served from the persistent cache",
		},
	)

	GeocodeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrine_geocode_cache_misses_total",
			Help: "Geocode lookups not present in the persistent cache",
		},
	)

	// CircuitBreakerState tracks the upstream breaker: 0 closed, 1 half-open,
	// 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vitrine_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Search and recommendation metrics

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitrine_search_duration_seconds",
			Help:    "Duration of filter evaluation over the listing set",
			Buckets: prometheus.DefBuckets,
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitrine_search_results",
			Help:    "Number of listings surviving the filter pipeline",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitrine_recommend_duration_seconds",
			Help:    "Duration of related-listing ranking",
			Buckets: prometheus.DefBuckets,
		},
	)
)
