// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package textfold

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase ascii unchanged", "centro", "centro"},
		{"uppercase folded", "CENTRO", "centro"},
		{"diacritics stripped", "São Paulo", "sao paulo"},
		{"cedilla stripped", "Criciúma Açu", "criciuma acu"},
		{"surrounding whitespace trimmed", "  Niterói ", "niteroi"},
		{"empty string", "", ""},
		{"full state name", "Espírito Santo", "espirito santo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal("SÃO PAULO", "sao paulo") {
		t.Error("Equal() = false for accent/case variants, want true")
	}
	if Equal("sao paulo", "rio de janeiro") {
		t.Error("Equal() = true for different strings, want false")
	}
}

func TestEitherContains(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "Moema", "moema", true},
		{"partial typing", "São Paulo", "são pa", true},
		{"reversed containment", "são pa", "São Paulo", true},
		{"no overlap", "Copacabana", "Moema", false},
		{"empty listing side never matches", "", "Moema", false},
		{"both empty never match", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EitherContains(tt.a, tt.b); got != tt.want {
				t.Errorf("EitherContains(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
