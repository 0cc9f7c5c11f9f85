// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package geocode

import (
	"context"
	"strings"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/logging"
)

// Place is a resolved locality: city name plus two-letter state code.
type Place struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// cityExtractors pick the city-like field out of the heterogeneous reverse
// geocoding response, in priority order. Depending on locality the service
// reports the city under city, town, municipality, or county; the first
// non-empty field wins. Modeled as an explicit ordered list rather than ad
// hoc property probing.
var cityExtractors = []func(a *reverseAddress) string{
	func(a *reverseAddress) string { return a.City },
	func(a *reverseAddress) string { return a.Town },
	func(a *reverseAddress) string { return a.Municipality },
	func(a *reverseAddress) string { return a.County },
}

// ReverseResolver turns device coordinates into localities. It shares the
// client (and therefore the rate limiter) with the forward Resolver.
type ReverseResolver struct {
	client *Client
}

// NewReverseResolver creates a reverse resolver on the given client.
func NewReverseResolver(client *Client) *ReverseResolver {
	return &ReverseResolver{client: client}
}

// ResolveCity resolves a coordinate to a city/state pair.
//
// Returns (nil, nil) when the service responded but no usable city or state
// could be extracted; that is an expected "unknown" outcome, not an error.
// An error is returned only when the upstream call itself failed. In both
// cases callers are expected to fall back to NearestKnownCity.
func (r *ReverseResolver) ResolveCity(ctx context.Context, coord geo.Coordinate) (*Place, error) {
	result, err := r.client.reverse(ctx, coord)
	if err != nil {
		return nil, err
	}

	city := extractCity(&result.Address)
	if city == "" {
		logging.Debug().
			Float64("lat", coord.Lat).
			Float64("lon", coord.Lon).
			Msg("reverse geocode response had no usable city field")
		return nil, nil
	}

	state, ok := extractState(&result.Address)
	if !ok {
		return nil, nil
	}

	return &Place{City: city, State: state}, nil
}

// extractState normalizes the administrative region to a two-letter code.
// The ISO3166-2 field ("BR-SP") is authoritative when present; otherwise the
// full state name goes through the fixed name-to-code table.
func extractState(a *reverseAddress) (string, bool) {
	if len(a.StateCode) == 5 && strings.HasPrefix(a.StateCode, "BR-") {
		if code, ok := geo.StateCode(a.StateCode[3:]); ok {
			return code, true
		}
	}
	return geo.StateCode(a.State)
}

// extractCity returns the first non-empty city-like field.
func extractCity(a *reverseAddress) string {
	for _, extract := range cityExtractors {
		if v := extract(a); v != "" {
			return v
		}
	}
	return ""
}

// NearestKnownCity is the caller-side fallback when ResolveCity returned
// nothing usable: the closest static-table city within maxKm (50 km default
// when maxKm <= 0). Returns nil when no city is close enough, which callers
// surface as an "unable to confirm location" state.
func NearestKnownCity(coord geo.Coordinate, maxKm float64) *Place {
	city, dist := geo.NearestCity(coord, maxKm)
	if city == nil {
		return nil
	}
	logging.Debug().
		Str("city", city.Name).
		Float64("distance_km", dist).
		Msg("locality confirmed by nearest known city")
	return &Place{City: city.Name, State: city.State}
}
