// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitrine-live/vitrine/internal/config"
	"github.com/vitrine-live/vitrine/internal/middleware"
)

// NewRouter assembles the HTTP routing tree. Health endpoints stay outside
// the rate limiter so orchestrator probes are never throttled.
func NewRouter(handler *Handler, security config.SecurityConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)

	if len(security.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: security.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", handler.Health)
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		if security.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(security.RateLimitRequests, security.RateLimitWindow))
		}

		r.Post("/search", handler.Search)
		r.Get("/listings/{id}/related", handler.Related)
		r.Post("/location/resolve", handler.ResolveLocation)
		r.Get("/location/reverse", handler.ReverseLocation)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
