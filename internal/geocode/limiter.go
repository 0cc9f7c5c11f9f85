// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package geocode

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/vitrine-live/vitrine/internal/metrics"
)

// Limiter gates requests against the upstream geocoding service. Acquire
// blocks the caller until a request slot is available or the context is
// done; it never rejects. The limiter is injected into the client rather
// than held as package state so tests can substitute NopLimiter.
type Limiter interface {
	// Acquire blocks until the next request may start. Returns the context
	// error if ctx is cancelled while waiting.
	Acquire(ctx context.Context) error
}

// IntervalLimiter enforces a minimum spacing between requests, measured from
// request start to request start, shared across all callers. The public
// Nominatim usage policy allows at most one request per second; forward and
// reverse lookups share one instance so the spacing holds globally.
type IntervalLimiter struct {
	limiter *rate.Limiter
}

// NewIntervalLimiter creates a limiter spacing requests at least interval
// apart. The burst of one means the first call proceeds immediately and
// concurrent callers are serialized rather than rejected.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	if interval <= 0 {
		interval = time.Second
	}
	return &IntervalLimiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Acquire blocks until the spacing from the previous request has elapsed.
func (l *IntervalLimiter) Acquire(ctx context.Context) error {
	start := time.Now()
	err := l.limiter.Wait(ctx)
	metrics.GeocodeRateLimitWait.Observe(time.Since(start).Seconds())
	return err
}

// NopLimiter never waits. For tests and for deployments pointing at a
// self-hosted geocoder with no usage policy.
type NopLimiter struct{}

// Acquire returns immediately.
func (NopLimiter) Acquire(context.Context) error { return nil }
