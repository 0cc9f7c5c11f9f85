// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Listings int    `json:"listings"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:   "ok",
		Uptime:   time.Since(h.startTime).Truncate(time.Second).String(),
		Listings: h.store.Count(),
	})
}

// HealthLive handles GET /api/v1/health/live. Liveness means the process is
// serving; it never inspects dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires the
// listing pool to be loaded; an empty pool means the seed failed and search
// would answer nothing.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.store.Count() == 0 {
		rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "listing store is empty")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
