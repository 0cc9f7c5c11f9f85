// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package geocode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/logging"
	"github.com/vitrine-live/vitrine/internal/metrics"
	"github.com/vitrine-live/vitrine/internal/textfold"
)

// ErrUnresolvable is returned when every fallback step, including the static
// city table, failed to place the query. Callers surface it; the resolver
// never substitutes a placeholder coordinate.
var ErrUnresolvable = errors.New("location unresolvable")

// country is appended to every forward query. The static city table and the
// state code table are Brazilian; constraining the query keeps the first
// result on the right continent.
const country = "Brasil"

// Query describes the address to resolve, from most to least specific.
// Only City is required for the static-table fallback to have a chance.
type Query struct {
	// Street is the street address, optionally with number.
	Street string

	// Neighborhood narrows the query within the city.
	Neighborhood string

	// Reference is a free-text annotation ("próximo ao metrô"); it is the
	// first thing dropped when the full query fails.
	Reference string

	// City and State anchor the query. State may be a code or full name.
	City  string
	State string
}

// queries returns the cascade of query strings, most specific first:
//
//	0: street + neighborhood + reference + city + state + country
//	1: drop the free-text reference
//	2: additionally drop the street address, leaving neighborhood + city + state
//
// Levels that would duplicate an earlier one (because the dropped field was
// already empty) are skipped.
func (q *Query) queries() []string {
	levels := [][]string{
		{q.Street, q.Neighborhood, q.Reference, q.City, q.State, country},
		{q.Street, q.Neighborhood, q.City, q.State, country},
		{q.Neighborhood, q.City, q.State, country},
	}

	out := make([]string, 0, len(levels))
	var prev string
	for _, parts := range levels {
		joined := joinQuery(parts)
		if joined == "" || joined == prev {
			continue
		}
		out = append(out, joined)
		prev = joined
	}
	return out
}

// joinQuery concatenates non-empty address parts with commas.
func joinQuery(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// cacheKey identifies a query in the persistent cache.
func (q *Query) cacheKey() string {
	return textfold.Fold(joinQuery([]string{q.Street, q.Neighborhood, q.Reference, q.City, q.State}))
}

// Resolver performs forward geocoding with cascading specificity reduction.
type Resolver struct {
	client *Client
	cache  *Cache // optional; nil disables caching
}

// NewResolver creates a forward resolver. cache may be nil.
func NewResolver(client *Client, cache *Cache) *Resolver {
	return &Resolver{client: client, cache: cache}
}

// Resolve turns a postal address into a coordinate. It tries the cascade of
// textual queries against the upstream service, falls back to the static
// city coordinate table, and returns ErrUnresolvable only when the city is
// unknown there too. Transient upstream failures are recovered by the
// cascade and never surfaced unless everything failed.
func (r *Resolver) Resolve(ctx context.Context, q Query) (geo.Coordinate, error) {
	if coord, ok := r.cacheGet(q); ok {
		return coord, nil
	}

	for depth, query := range q.queries() {
		coord, ok, err := r.lookup(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return geo.Coordinate{}, err
			}
			logging.Debug().Err(err).Str("query", query).Msg("geocode attempt failed")
			continue
		}
		if !ok {
			logging.Debug().Str("query", query).Msg("geocode attempt returned no results")
			continue
		}

		metrics.GeocodeFallbackDepth.WithLabelValues(strconv.Itoa(depth)).Inc()
		r.cachePut(q, coord)
		return coord, nil
	}

	// Every textual attempt failed: fall back to the static city table.
	if coord, ok := geo.CityCoordinate(q.City); ok {
		metrics.GeocodeFallbackDepth.WithLabelValues("static").Inc()
		logging.Info().Str("city", q.City).Msg("geocode resolved from static city table")
		r.cachePut(q, coord)
		return coord, nil
	}

	metrics.GeocodeFallbackDepth.WithLabelValues("unresolved").Inc()
	return geo.Coordinate{}, fmt.Errorf("%w: %s", ErrUnresolvable, joinQuery([]string{q.City, q.State}))
}

// lookup runs one forward query. ok is false when the service answered but
// found nothing.
func (r *Resolver) lookup(ctx context.Context, query string) (geo.Coordinate, bool, error) {
	results, err := r.client.search(ctx, query)
	if err != nil {
		return geo.Coordinate{}, false, err
	}
	if len(results) == 0 {
		return geo.Coordinate{}, false, nil
	}

	// The resolver takes the first (best ranked) result only.
	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return geo.Coordinate{}, false, fmt.Errorf("malformed coordinates in result: %q/%q", results[0].Lat, results[0].Lon)
	}

	return geo.Coordinate{Lat: lat, Lon: lon}, true, nil
}

func (r *Resolver) cacheGet(q Query) (geo.Coordinate, bool) {
	if r.cache == nil {
		return geo.Coordinate{}, false
	}
	coord, ok := r.cache.Get(q.cacheKey())
	if ok {
		metrics.GeocodeCacheHits.Inc()
	} else {
		metrics.GeocodeCacheMisses.Inc()
	}
	return coord, ok
}

func (r *Resolver) cachePut(q Query, coord geo.Coordinate) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(q.cacheKey(), coord); err != nil {
		logging.Warn().Err(err).Msg("failed to cache geocode result")
	}
}
