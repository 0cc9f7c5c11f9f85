// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Command server runs the Vitrine discovery API: listing search with
// multi-criteria filtering, related-listing recommendations, and forward
// and reverse geocoding with cascading fallback.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitrine-live/vitrine/internal/api"
	"github.com/vitrine-live/vitrine/internal/config"
	"github.com/vitrine-live/vitrine/internal/geocode"
	"github.com/vitrine-live/vitrine/internal/logging"
	"github.com/vitrine-live/vitrine/internal/store"
	"github.com/vitrine-live/vitrine/internal/supervisor"
	"github.com/vitrine-live/vitrine/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, so this uses the default logger.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("starting vitrine")

	listings, err := store.OpenSeedFile(cfg.Listings.SeedPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Listings.SeedPath).Msg("failed to load listing seed")
	}

	var cache *geocode.Cache
	if cfg.Geocoder.CachePath != "" {
		cache, err = geocode.OpenCache(cfg.Geocoder.CachePath, cfg.Geocoder.CacheTTL)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to open geocode cache")
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logging.Error().Err(err).Msg("failed to close geocode cache")
			}
		}()
	}

	// Forward and reverse lookups share one client so the request spacing
	// holds across both.
	client := geocode.NewClient(geocode.ClientConfig{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Limiter:   geocode.NewIntervalLimiter(cfg.Geocoder.RequestInterval),
	})
	forward := geocode.NewResolver(client, cache)
	reverse := geocode.NewReverseResolver(client)

	handler := api.NewHandler(listings, forward, reverse, cfg.Search)
	router := api.NewRouter(handler, cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Int("listings", listings.Count()).Msg("http server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("services failed to stop within timeout")
	}

	logging.Info().Msg("vitrine stopped")
}
