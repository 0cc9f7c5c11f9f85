// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/listing"
	"github.com/vitrine-live/vitrine/internal/metrics"
)

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	// Filters carries the user-selected criteria. Absent fields match
	// everything.
	Filters listing.FilterSpec `json:"filters"`

	// Location is the caller's location context: either a typed city/state
	// pair or a live coordinate with radius. Optional.
	Location *LocationRequest `json:"location,omitempty"`
}

// LocationRequest describes where the caller is searching from.
type LocationRequest struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`

	// Lat/Lon carry a live device position. RadiusKm bounds the distance
	// filter; zero applies the configured default.
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	RadiusKm float64  `json:"radius_km,omitempty"`
}

// locationContext converts the wire shape to the evaluator's context.
func (h *Handler) locationContext(req *LocationRequest) *listing.LocationContext {
	if req == nil {
		return nil
	}

	lc := &listing.LocationContext{
		City:  req.City,
		State: req.State,
	}
	if req.Lat != nil && req.Lon != nil {
		lc.Coordinate = &geo.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
		lc.RadiusKm = req.RadiusKm
		if lc.RadiusKm <= 0 {
			lc.RadiusKm = h.search.DefaultRadiusKm
		}
	}
	return lc
}

// Search handles POST /api/v1/search: apply the filter criteria over the
// listing pool and return the passing subset in stable order.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body: " + err.Error())
		return
	}

	start := time.Now()
	results := listing.Apply(h.store.All(), req.Filters, h.locationContext(req.Location))
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(len(results)))

	rw.SuccessWithMeta(results, &APIMeta{Count: len(results)})
}
