// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/geocode"
)

// ResolveRequest is the body of POST /api/v1/location/resolve.
type ResolveRequest struct {
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Reference    string `json:"reference,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// ResolveResponse carries the resolved coordinate.
type ResolveResponse struct {
	Coordinate geo.Coordinate `json:"coordinate"`
}

// ReverseResponse carries the city/state a coordinate maps to. Source tells
// the client whether the geocoder confirmed it or the nearest known city was
// substituted.
type ReverseResponse struct {
	City   string `json:"city"`
	State  string `json:"state"`
	Source string `json:"source"`
}

// Reverse resolution sources.
const (
	SourceGeocoder    = "geocoder"
	SourceNearestCity = "nearest_city"
)

// ResolveLocation handles POST /api/v1/location/resolve: turn a postal
// address into a coordinate through the geocoding cascade.
func (h *Handler) ResolveLocation(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body: " + err.Error())
		return
	}
	if req.City == "" {
		rw.BadRequest("city is required")
		return
	}

	coord, err := h.forward.Resolve(r.Context(), geocode.Query{
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
		Reference:    req.Reference,
		City:         req.City,
		State:        req.State,
	})
	if err != nil {
		if errors.Is(err, geocode.ErrUnresolvable) {
			rw.Error(http.StatusNotFound, ErrCodeUnresolvable, "location could not be resolved")
			return
		}
		rw.ExternalServiceError("geocoder", err)
		return
	}

	rw.Success(ResolveResponse{Coordinate: coord})
}

// ReverseLocation handles GET /api/v1/location/reverse?lat=&lon=: map a
// device coordinate to a city and state. When the geocoder cannot name a
// usable city, the nearest city from the built-in table substitutes; when
// nothing is close enough the location is reported as not found.
func (h *Handler) ReverseLocation(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		rw.BadRequest("lat and lon query parameters are required and must be numbers")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		rw.BadRequest("lat/lon out of range")
		return
	}

	coord := geo.Coordinate{Lat: lat, Lon: lon}

	place, err := h.reverse.ResolveCity(r.Context(), coord)
	if err != nil {
		// The upstream failed outright; the nearest-city fallback still
		// gives the client a usable answer.
		place = nil
	}
	if place != nil {
		rw.Success(ReverseResponse{City: place.City, State: place.State, Source: SourceGeocoder})
		return
	}

	if nearest := geocode.NearestKnownCity(coord, h.search.NearestCityMaxKm); nearest != nil {
		rw.Success(ReverseResponse{City: nearest.City, State: nearest.State, Source: SourceNearestCity})
		return
	}

	rw.Error(http.StatusNotFound, ErrCodeUnresolvable, "no known city near the given coordinate")
}
