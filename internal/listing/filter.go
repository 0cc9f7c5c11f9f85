// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package listing

import (
	"strings"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/textfold"
)

// FilterSpec is a snapshot of the user-selected filter criteria. The zero
// value matches everything: an empty or unset criterion never excludes a
// listing. Criteria combine conjunctively across dimensions.
type FilterSpec struct {
	// Keyword matches case-insensitively against name, description, and the
	// joined services list.
	Keyword string `json:"keyword,omitempty"`

	// Category is an exact-match filter.
	Category string `json:"category,omitempty"`

	// Location criteria. State matches exactly; City and Neighborhood also
	// match on either-direction containment, tolerating partial typing. All
	// comparisons ignore case and diacritics.
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`

	// Range criteria. Zero bounds are inactive; each price bound is
	// independent.
	PriceMin float64 `json:"price_min,omitempty"`
	PriceMax float64 `json:"price_max,omitempty"`
	AgeMin   int     `json:"age_min,omitempty"`
	AgeMax   int     `json:"age_max,omitempty"`

	// Set-membership criteria: a listing passes when its value is in the
	// requested set (single-valued attributes) or the sets intersect
	// (list-valued attributes). Empty sets are inactive.
	Genders          []string `json:"genders,omitempty"`
	HairColors       []string `json:"hair_colors,omitempty"`
	BodyTypes        []string `json:"body_types,omitempty"`
	Ethnicities      []string `json:"ethnicities,omitempty"`
	Services         []string `json:"services,omitempty"`
	PaymentMethods   []string `json:"payment_methods,omitempty"`
	ServiceTo        []string `json:"service_to,omitempty"`
	ServiceLocations []string `json:"service_locations,omitempty"`

	// VerifiedOnly keeps only verified listings when true.
	VerifiedOnly bool `json:"verified_only,omitempty"`

	// HasPlace and VideoCall are tri-state: nil means "don't care", true
	// keeps only listings with the capability. False-as-filter is not a
	// thing the UI produces, so a non-nil false also means "don't care".
	HasPlace  *bool `json:"has_place,omitempty"`
	VideoCall *bool `json:"video_call,omitempty"`
}

// LocationContext is the resolved "where is the user" state. Exactly one
// shape is authoritative at a time: a typed city/state pair, or a live device
// coordinate with a search radius. Mutual exclusion is a UI invariant; the
// evaluator accepts either shape and never requires both.
type LocationContext struct {
	// City and State describe a typed locality selection.
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`

	// Coordinate is the live device position, with RadiusKm bounding the
	// acceptable distance. The distance predicate activates only when both
	// are set.
	Coordinate *geo.Coordinate `json:"coordinate,omitempty"`
	RadiusKm   float64         `json:"radius_km,omitempty"`
}

// live reports whether the context carries a usable device coordinate.
func (lc *LocationContext) live() bool {
	return lc != nil && lc.Coordinate != nil && lc.RadiusKm > 0
}

// Apply filters listings through every active predicate of spec, returning
// the subset that passes all of them in their original order. It is a stable
// filter, not a sort; presentation-level ordering is the caller's concern.
func Apply(listings []Listing, spec FilterSpec, loc *LocationContext) []Listing {
	result := make([]Listing, 0, len(listings))
	for i := range listings {
		if matches(&listings[i], &spec, loc) {
			result = append(result, listings[i])
		}
	}
	return result
}

// matches evaluates all predicates conjunctively for one listing.
func matches(l *Listing, spec *FilterSpec, loc *LocationContext) bool {
	return matchKeyword(l, spec.Keyword) &&
		matchCategory(l, spec.Category) &&
		matchLocation(l, spec, loc) &&
		matchSingleValued(l.Gender, spec.Genders) &&
		matchDistance(l, loc) &&
		matchAge(l, spec) &&
		matchPrice(l, spec) &&
		matchFlags(l, spec) &&
		matchSingleValued(l.HairColor, spec.HairColors) &&
		matchSingleValued(l.BodyType, spec.BodyTypes) &&
		matchSingleValued(l.Ethnicity, spec.Ethnicities) &&
		matchIntersection(l.PaymentMethods, spec.PaymentMethods) &&
		matchIntersection(l.Services, spec.Services) &&
		matchIntersection(l.ServiceTo, spec.ServiceTo) &&
		matchIntersection(l.ServiceLocations, spec.ServiceLocations)
}

// matchKeyword matches the keyword against name, description, and the joined
// services list.
func matchKeyword(l *Listing, keyword string) bool {
	if keyword == "" {
		return true
	}
	return textfold.Contains(l.Name, keyword) ||
		textfold.Contains(l.Description, keyword) ||
		textfold.Contains(strings.Join(l.Services, " "), keyword)
}

func matchCategory(l *Listing, category string) bool {
	if category == "" {
		return true
	}
	return textfold.Equal(l.Category, category)
}

// matchLocation applies the state, city, and neighborhood predicates.
// Nationwide listings are exempt from all three: their category alone
// determines eligibility.
func matchLocation(l *Listing, spec *FilterSpec, loc *LocationContext) bool {
	if l.Nationwide() {
		return true
	}

	// A typed LocationContext supplies city/state when the spec has none.
	state, city := spec.State, spec.City
	if loc != nil && !loc.live() {
		if state == "" {
			state = loc.State
		}
		if city == "" {
			city = loc.City
		}
	}

	if state != "" && !textfold.Equal(l.State, state) {
		return false
	}
	if city != "" && !textfold.EitherContains(l.City, city) {
		return false
	}
	if spec.Neighborhood != "" && !textfold.EitherContains(l.Neighborhood, spec.Neighborhood) {
		return false
	}
	return true
}

// matchDistance applies the radius predicate when a live device coordinate is
// present. Nationwide listings are exempt identically to matchLocation. A
// listing with no precise coordinate and no static-table city is excluded.
func matchDistance(l *Listing, loc *LocationContext) bool {
	if !loc.live() {
		return true
	}
	if l.Nationwide() {
		return true
	}

	coord, ok := l.resolvedCoordinate()
	if !ok {
		return false
	}
	return geo.DistanceKm(*loc.Coordinate, coord) <= loc.RadiusKm
}

// matchAge checks the closed interval [AgeMin, AgeMax]. A listing with no
// age counts as 0, which fails any realistic floor.
func matchAge(l *Listing, spec *FilterSpec) bool {
	if spec.AgeMin > 0 && l.Age < spec.AgeMin {
		return false
	}
	if spec.AgeMax > 0 && l.Age > spec.AgeMax {
		return false
	}
	return true
}

// matchPrice checks the independent min/max bounds. A listing with no price
// counts as 0.
func matchPrice(l *Listing, spec *FilterSpec) bool {
	if spec.PriceMin > 0 && l.Price < spec.PriceMin {
		return false
	}
	if spec.PriceMax > 0 && l.Price > spec.PriceMax {
		return false
	}
	return true
}

func matchFlags(l *Listing, spec *FilterSpec) bool {
	if spec.VerifiedOnly && !l.Verified {
		return false
	}
	if spec.HasPlace != nil && *spec.HasPlace && !l.HasPlace {
		return false
	}
	if spec.VideoCall != nil && *spec.VideoCall && !l.VideoCall {
		return false
	}
	return true
}

// matchSingleValued reports whether the requested set contains the listing's
// value. Empty requested sets are inactive.
func matchSingleValued(value string, requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, want := range requested {
		if textfold.Equal(value, want) {
			return true
		}
	}
	return false
}

// matchIntersection reports whether any requested value appears in the
// listing's list. Empty requested sets are inactive.
func matchIntersection(values, requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, want := range requested {
		for _, have := range values {
			if textfold.Equal(have, want) {
				return true
			}
		}
	}
	return false
}
