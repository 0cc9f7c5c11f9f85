// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package api

import (
	"context"
	"time"

	"github.com/vitrine-live/vitrine/internal/config"
	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/geocode"
	"github.com/vitrine-live/vitrine/internal/store"
)

// ForwardGeocoder resolves a postal address to a coordinate.
type ForwardGeocoder interface {
	Resolve(ctx context.Context, q geocode.Query) (geo.Coordinate, error)
}

// ReverseGeocoder resolves a coordinate to a city/state pair.
type ReverseGeocoder interface {
	ResolveCity(ctx context.Context, coord geo.Coordinate) (*geocode.Place, error)
}

// Handler holds the dependencies shared by all HTTP handlers. The geocoder
// dependencies are interfaces so tests can substitute stubs without a
// network.
type Handler struct {
	store     store.ListingStore
	forward   ForwardGeocoder
	reverse   ReverseGeocoder
	search    config.SearchConfig
	startTime time.Time
}

// NewHandler creates the handler set.
func NewHandler(s store.ListingStore, forward ForwardGeocoder, reverse ReverseGeocoder, search config.SearchConfig) *Handler {
	return &Handler{
		store:     s,
		forward:   forward,
		reverse:   reverse,
		search:    search,
		startTime: time.Now(),
	}
}
