// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package listing

import (
	"reflect"
	"testing"

	"github.com/vitrine-live/vitrine/internal/geo"
)

func boolPtr(b bool) *bool { return &b }

func sampleListings() []Listing {
	return []Listing{
		{
			ID: "l1", Category: "Massagista", Name: "Ana", City: "São Paulo", State: "SP",
			Neighborhood: "Moema", Price: 50, Age: 25, Gender: "feminino",
			HairColor: "loiro", Services: []string{"massagem relaxante"}, Verified: true,
			HasPlace: true, Views: 1200,
		},
		{
			ID: "l2", Category: "Acompanhante", Name: "Bruna", City: "Rio de Janeiro", State: "RJ",
			Neighborhood: "Copacabana", Price: 150, Age: 30, Gender: "feminino",
			HairColor: "castanho", Services: []string{"jantar", "eventos"}, VideoCall: true,
		},
		{
			ID: "l3", Category: "Massagista", Name: "Carlos", City: "Belo Horizonte", State: "MG",
			Price: 300, Age: 40, Gender: "masculino",
			Services: []string{"massagem desportiva"},
		},
		{
			ID: "l4", Category: "Videochamada", Name: "Duda", City: "", State: "",
			Price: 80, Age: 22, Gender: "feminino", OnlineOnly: true, VideoCall: true,
		},
	}
}

func ids(listings []Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestApplyEmptySpecIsIdentity(t *testing.T) {
	in := sampleListings()
	got := Apply(in, FilterSpec{}, nil)
	if !reflect.DeepEqual(ids(got), ids(in)) {
		t.Errorf("Apply(empty spec) = %v, want %v", ids(got), ids(in))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	in := sampleListings()
	spec := FilterSpec{Genders: []string{"feminino"}, PriceMax: 200}
	once := Apply(in, spec, nil)
	twice := Apply(once, spec, nil)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("Apply twice = %v, want %v", ids(twice), ids(once))
	}
}

func TestApplyPreservesInputOrder(t *testing.T) {
	in := sampleListings()
	got := Apply(in, FilterSpec{Genders: []string{"feminino"}}, nil)
	want := []string{"l1", "l2", "l4"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Apply() order = %v, want %v", ids(got), want)
	}
}

func TestApplyPriceRange(t *testing.T) {
	// Prices are [50, 150, 300, 80]; the closed range [100, 200] keeps only 150.
	got := Apply(sampleListings(), FilterSpec{PriceMin: 100, PriceMax: 200}, nil)
	if !reflect.DeepEqual(ids(got), []string{"l2"}) {
		t.Errorf("Apply(price 100-200) = %v, want [l2]", ids(got))
	}
}

func TestApplyPriceBoundsIndependent(t *testing.T) {
	gotMin := Apply(sampleListings(), FilterSpec{PriceMin: 100}, nil)
	if !reflect.DeepEqual(ids(gotMin), []string{"l2", "l3"}) {
		t.Errorf("Apply(price >= 100) = %v, want [l2 l3]", ids(gotMin))
	}
	gotMax := Apply(sampleListings(), FilterSpec{PriceMax: 100}, nil)
	if !reflect.DeepEqual(ids(gotMax), []string{"l1", "l4"}) {
		t.Errorf("Apply(price <= 100) = %v, want [l1 l4]", ids(gotMax))
	}
}

func TestApplyMissingPriceDefaultsToZero(t *testing.T) {
	in := []Listing{{ID: "free", Category: "Massagista"}}
	if got := Apply(in, FilterSpec{PriceMin: 10}, nil); len(got) != 0 {
		t.Errorf("listing with no price survived PriceMin: %v", ids(got))
	}
}

func TestApplyAgeRangeInclusive(t *testing.T) {
	got := Apply(sampleListings(), FilterSpec{AgeMin: 25, AgeMax: 30}, nil)
	if !reflect.DeepEqual(ids(got), []string{"l1", "l2"}) {
		t.Errorf("Apply(age 25-30) = %v, want [l1 l2]", ids(got))
	}
}

func TestApplyMissingAgeFailsFloor(t *testing.T) {
	in := []Listing{{ID: "noage", Category: "Massagista"}}
	if got := Apply(in, FilterSpec{AgeMin: 18}, nil); len(got) != 0 {
		t.Errorf("listing with no age survived AgeMin: %v", ids(got))
	}
}

func TestApplyKeyword(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"matches name", "ana", []string{"l1"}},
		{"matches services", "massagem", []string{"l1", "l3"}},
		{"accent insensitive", "MASSAGEM DESPORTIVA", []string{"l3"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleListings(), FilterSpec{Keyword: tt.keyword}, nil)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(keyword %q) = %v, want %v", tt.keyword, ids(got), tt.want)
			}
		})
	}
}

func TestApplyLocationMatching(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{"state exact", FilterSpec{State: "SP"}, []string{"l1", "l4"}},
		{"city partial typing", FilterSpec{City: "são pa"}, []string{"l1", "l4"}},
		{"city reversed containment", FilterSpec{City: "Grande São Paulo"}, []string{"l1", "l4"}},
		{"city accent insensitive", FilterSpec{City: "sao paulo"}, []string{"l1", "l4"}},
		{"neighborhood", FilterSpec{Neighborhood: "moema"}, []string{"l1", "l4"}},
		{"state and city", FilterSpec{State: "RJ", City: "rio"}, []string{"l2", "l4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleListings(), tt.spec, nil)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(%+v) = %v, want %v", tt.spec, ids(got), tt.want)
			}
		})
	}
}

func TestNationwideExemptFromLocation(t *testing.T) {
	// l4 has no city or state at all; it must survive every location filter
	// because its category is nationwide.
	got := Apply(sampleListings(), FilterSpec{State: "MG", City: "Belo Horizonte", Neighborhood: "Savassi"}, nil)
	found := false
	for _, l := range got {
		if l.ID == "l4" {
			found = true
		}
	}
	if !found {
		t.Errorf("nationwide listing excluded by location filter: %v", ids(got))
	}
}

func TestNationwideExemptionDoesNotLeak(t *testing.T) {
	// The exemption covers location and distance only. Nationwide listings
	// still fail price, gender, and every other predicate.
	got := Apply(sampleListings(), FilterSpec{State: "MG", PriceMin: 100}, nil)
	for _, l := range got {
		if l.ID == "l4" {
			t.Error("nationwide exemption leaked through the price predicate")
		}
	}
}

func TestApplyTypedLocationContext(t *testing.T) {
	loc := &LocationContext{City: "São Paulo", State: "SP"}
	got := Apply(sampleListings(), FilterSpec{}, loc)
	if !reflect.DeepEqual(ids(got), []string{"l1", "l4"}) {
		t.Errorf("Apply with typed LocationContext = %v, want [l1 l4]", ids(got))
	}
}

func TestApplyDistanceFilter(t *testing.T) {
	user := geo.Coordinate{Lat: -23.5505, Lon: -46.6333}
	// ~5 km and ~15 km due south of the user coordinate.
	near := geo.Coordinate{Lat: -23.5955, Lon: -46.6333}
	far := geo.Coordinate{Lat: -23.6855, Lon: -46.6333}

	in := []Listing{
		{ID: "near", Category: "Massagista", City: "São Paulo", State: "SP", Coordinate: &near},
		{ID: "far", Category: "Massagista", City: "São Paulo", State: "SP", Coordinate: &far},
	}

	loc := &LocationContext{Coordinate: &user, RadiusKm: 10}
	got := Apply(in, FilterSpec{}, loc)
	if !reflect.DeepEqual(ids(got), []string{"near"}) {
		t.Errorf("Apply(radius 10km) = %v, want [near]", ids(got))
	}
}

func TestApplyDistanceFallsBackToCityTable(t *testing.T) {
	user := geo.Coordinate{Lat: -23.5505, Lon: -46.6333}
	in := []Listing{
		// No precise coordinate: resolved via the static city table.
		{ID: "sp", Category: "Massagista", City: "São Paulo", State: "SP"},
		{ID: "rio", Category: "Massagista", City: "Rio de Janeiro", State: "RJ"},
		// Neither coordinate nor known city: excluded.
		{ID: "lost", Category: "Massagista", City: "Vila Inexistente", State: "SP"},
	}

	loc := &LocationContext{Coordinate: &user, RadiusKm: 30}
	got := Apply(in, FilterSpec{}, loc)
	if !reflect.DeepEqual(ids(got), []string{"sp"}) {
		t.Errorf("Apply(city-table distance) = %v, want [sp]", ids(got))
	}
}

func TestNationwideExemptFromDistance(t *testing.T) {
	user := geo.Coordinate{Lat: -23.5505, Lon: -46.6333}
	in := []Listing{
		{ID: "remote", Category: "Videochamada"},
	}
	loc := &LocationContext{Coordinate: &user, RadiusKm: 10}
	got := Apply(in, FilterSpec{}, loc)
	if !reflect.DeepEqual(ids(got), []string{"remote"}) {
		t.Errorf("nationwide listing excluded by distance filter: %v", ids(got))
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{"verified only", FilterSpec{VerifiedOnly: true}, []string{"l1"}},
		{"has place", FilterSpec{HasPlace: boolPtr(true)}, []string{"l1"}},
		{"video call", FilterSpec{VideoCall: boolPtr(true)}, []string{"l2", "l4"}},
		{"explicit false means dont care", FilterSpec{HasPlace: boolPtr(false)}, []string{"l1", "l2", "l3", "l4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleListings(), tt.spec, nil)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(%s) = %v, want %v", tt.name, ids(got), tt.want)
			}
		})
	}
}

func TestApplySetPredicates(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{"gender membership", FilterSpec{Genders: []string{"masculino"}}, []string{"l3"}},
		{"hair color", FilterSpec{HairColors: []string{"loiro", "ruivo"}}, []string{"l1"}},
		{"services intersection", FilterSpec{Services: []string{"eventos", "viagens"}}, []string{"l2"}},
		{"no intersection", FilterSpec{Services: []string{"viagens"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleListings(), tt.spec, nil)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(%s) = %v, want %v", tt.name, ids(got), tt.want)
			}
		})
	}
}

func TestApplyCategoryExact(t *testing.T) {
	got := Apply(sampleListings(), FilterSpec{Category: "massagista"}, nil)
	if !reflect.DeepEqual(ids(got), []string{"l1", "l3"}) {
		t.Errorf("Apply(category) = %v, want [l1 l3]", ids(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sampleListings()
	before := ids(in)
	_ = Apply(in, FilterSpec{Genders: []string{"feminino"}}, nil)
	if !reflect.DeepEqual(ids(in), before) {
		t.Error("Apply() mutated its input slice")
	}
}

func TestNationwide(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"Videochamada", true},
		{"videochamada", true},
		{"Atendimento Online", true},
		{"Conteúdo Digital", true},
		{"Massagista", false},
		{"", false},
	}

	for _, tt := range tests {
		l := Listing{Category: tt.category}
		if got := l.Nationwide(); got != tt.want {
			t.Errorf("Nationwide(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
