// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package textfold normalizes user-supplied text for accent- and
// case-insensitive comparison. Brazilian place names and filter values arrive
// with inconsistent casing and diacritics ("São Paulo", "sao paulo",
// "SAO PAULO"); every textual match in the filter pipeline goes through Fold
// so that all three compare equal.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper removes combining marks after canonical decomposition, which
// reduces accented letters to their base form (ã -> a, ç -> c).
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s lowercased, trimmed, and with diacritics removed.
// Invalid UTF-8 is passed through unchanged rather than rejected; folding is
// best-effort normalization, not validation.
func Fold(s string) string {
	folded, _, err := transform.String(stripper, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Equal reports whether a and b are equal after folding.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Contains reports whether the folded form of s contains the folded form of
// substr. An empty substr matches everything, mirroring strings.Contains.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// EitherContains reports whether either string contains the other after
// folding. The filter pipeline uses this to tolerate partially typed city and
// neighborhood names in both directions. An empty side never matches: a
// listing with no neighborhood does not satisfy a neighborhood filter.
func EitherContains(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}
