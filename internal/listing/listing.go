// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package listing defines the published profile entity and the filter
// pipeline that produces the visible result set for a search. The evaluator
// is pure and synchronous: it never touches the network and never mutates
// its inputs, so it is safe to call from any number of concurrent requests.
package listing

import (
	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/textfold"
)

// Listing is a published service-provider profile. Listings are owned by the
// external listing store; this package treats them as read-only input.
type Listing struct {
	// ID is the unique listing identifier.
	ID string `json:"id"`

	// Category classifies the offered service (e.g. "Massagista").
	Category string `json:"category"`

	// Name is the display name shown on the profile card.
	Name string `json:"name"`

	// Description is the free-text profile description.
	Description string `json:"description,omitempty"`

	// City, State, Neighborhood place the listing. State is a two-letter
	// federative-unit code.
	City         string `json:"city"`
	State        string `json:"state"`
	Neighborhood string `json:"neighborhood,omitempty"`

	// Coordinate is the precise location when the advertiser provided one.
	// Listings without it fall back to the static city coordinate table for
	// distance filtering.
	Coordinate *geo.Coordinate `json:"coordinate,omitempty"`

	// Price is the advertised base price. Zero means not informed.
	Price float64 `json:"price,omitempty"`

	// Age is the advertiser's age. Zero means not informed.
	Age int `json:"age,omitempty"`

	// Classification attributes. Each is a single value on the listing side;
	// filters match against requested sets.
	Gender    string `json:"gender,omitempty"`
	HairColor string `json:"hair_color,omitempty"`
	BodyType  string `json:"body_type,omitempty"`
	Ethnicity string `json:"ethnicity,omitempty"`

	// Capability flags.
	HasPlace   bool `json:"has_place,omitempty"`
	VideoCall  bool `json:"video_call,omitempty"`
	Verified   bool `json:"verified,omitempty"`
	OnlineOnly bool `json:"online_only,omitempty"`

	// List-valued attributes.
	Services         []string `json:"services,omitempty"`
	ServiceTo        []string `json:"service_to,omitempty"`
	ServiceLocations []string `json:"service_locations,omitempty"`
	PaymentMethods   []string `json:"payment_methods,omitempty"`

	// Views is the profile view counter used for popularity scoring.
	Views int `json:"views,omitempty"`
}

// nationwideCategories are the remote-service categories whose listings serve
// every location. The category alone decides the exemption; VideoCall,
// OnlineOnly and location fields play no part in it.
var nationwideCategories = map[string]struct{}{
	"videochamada":       {},
	"atendimento online": {},
	"conteudo digital":   {},
}

// Nationwide reports whether the listing belongs to a nationwide/remote
// category and is therefore exempt from location and distance filtering.
func (l *Listing) Nationwide() bool {
	_, ok := nationwideCategories[textfold.Fold(l.Category)]
	return ok
}

// resolvedCoordinate returns the coordinate used for distance filtering:
// the precise coordinate when present, else the static table entry for the
// listing's city. The second return is false when neither exists.
func (l *Listing) resolvedCoordinate() (geo.Coordinate, bool) {
	if l.Coordinate != nil {
		return *l.Coordinate, true
	}
	return geo.CityCoordinate(l.City)
}
