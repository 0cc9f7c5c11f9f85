// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package geo

import (
	"strings"

	"github.com/vitrine-live/vitrine/internal/textfold"
)

// stateCodes maps folded federative-unit names to their two-letter codes.
// Reverse geocoders return either form depending on locality; everything is
// normalized to the code before comparison. Covers all 27 federative units.
var stateCodes = map[string]string{
	"acre":                "AC",
	"alagoas":             "AL",
	"amapa":               "AP",
	"amazonas":            "AM",
	"bahia":               "BA",
	"ceara":               "CE",
	"distrito federal":    "DF",
	"espirito santo":      "ES",
	"goias":               "GO",
	"maranhao":            "MA",
	"mato grosso":         "MT",
	"mato grosso do sul":  "MS",
	"minas gerais":        "MG",
	"para":                "PA",
	"paraiba":             "PB",
	"parana":              "PR",
	"pernambuco":          "PE",
	"piaui":               "PI",
	"rio de janeiro":      "RJ",
	"rio grande do norte": "RN",
	"rio grande do sul":   "RS",
	"rondonia":            "RO",
	"roraima":             "RR",
	"santa catarina":      "SC",
	"sao paulo":           "SP",
	"sergipe":             "SE",
	"tocantins":           "TO",
}

// validCodes is the set of two-letter codes, for pass-through validation.
var validCodes = buildValidCodes()

func buildValidCodes() map[string]struct{} {
	set := make(map[string]struct{}, len(stateCodes))
	for _, code := range stateCodes {
		set[code] = struct{}{}
	}
	return set
}

// StateCode normalizes a federative-unit name or code to the two-letter code.
// Accepts the full name in any casing with or without diacritics ("São
// Paulo", "sao paulo") or an existing code ("sp", "SP"). Returns false when
// the input matches no federative unit.
func StateCode(nameOrCode string) (string, bool) {
	folded := textfold.Fold(nameOrCode)
	if folded == "" {
		return "", false
	}

	if code, ok := stateCodes[folded]; ok {
		return code, true
	}

	upper := strings.ToUpper(folded)
	if _, ok := validCodes[upper]; ok {
		return upper, true
	}

	return "", false
}
