// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package geo

import "github.com/vitrine-live/vitrine/internal/textfold"

// City is an entry in the static city coordinate table.
type City struct {
	Name  string
	State string
	Coord Coordinate
}

// DefaultNearestCityMaxKm is the acceptance radius for NearestCity. A device
// coordinate more than 50 km from every known city cannot be confidently
// mapped to one.
const DefaultNearestCityMaxKm = 50.0

// cities is the static city coordinate table: all 27 state capitals plus the
// large metro cities that dominate listing volume. It is the fallback of last
// resort for geocoding and the source of truth for distance-based matching
// when a listing has no precise coordinate.
var cities = []City{
	{"São Paulo", "SP", Coordinate{-23.5505, -46.6333}},
	{"Rio de Janeiro", "RJ", Coordinate{-22.9068, -43.1729}},
	{"Belo Horizonte", "MG", Coordinate{-19.9167, -43.9345}},
	{"Brasília", "DF", Coordinate{-15.7939, -47.8828}},
	{"Salvador", "BA", Coordinate{-12.9777, -38.5016}},
	{"Fortaleza", "CE", Coordinate{-3.7319, -38.5267}},
	{"Curitiba", "PR", Coordinate{-25.4284, -49.2733}},
	{"Manaus", "AM", Coordinate{-3.1190, -60.0217}},
	{"Recife", "PE", Coordinate{-8.0476, -34.8770}},
	{"Porto Alegre", "RS", Coordinate{-30.0346, -51.2177}},
	{"Belém", "PA", Coordinate{-1.4558, -48.4902}},
	{"Goiânia", "GO", Coordinate{-16.6869, -49.2648}},
	{"São Luís", "MA", Coordinate{-2.5307, -44.3068}},
	{"Maceió", "AL", Coordinate{-9.6658, -35.7353}},
	{"Natal", "RN", Coordinate{-5.7945, -35.2110}},
	{"Campo Grande", "MS", Coordinate{-20.4697, -54.6201}},
	{"Teresina", "PI", Coordinate{-5.0892, -42.8019}},
	{"João Pessoa", "PB", Coordinate{-7.1195, -34.8450}},
	{"Aracaju", "SE", Coordinate{-10.9472, -37.0731}},
	{"Cuiabá", "MT", Coordinate{-15.6010, -56.0974}},
	{"Florianópolis", "SC", Coordinate{-27.5954, -48.5480}},
	{"Vitória", "ES", Coordinate{-20.3155, -40.3128}},
	{"Porto Velho", "RO", Coordinate{-8.7612, -63.9004}},
	{"Macapá", "AP", Coordinate{0.0349, -51.0694}},
	{"Boa Vista", "RR", Coordinate{2.8235, -60.6758}},
	{"Rio Branco", "AC", Coordinate{-9.9747, -67.8243}},
	{"Palmas", "TO", Coordinate{-10.1844, -48.3336}},
	{"Guarulhos", "SP", Coordinate{-23.4543, -46.5337}},
	{"Campinas", "SP", Coordinate{-22.9099, -47.0626}},
	{"Santo André", "SP", Coordinate{-23.6737, -46.5432}},
	{"Osasco", "SP", Coordinate{-23.5325, -46.7917}},
	{"São Bernardo do Campo", "SP", Coordinate{-23.6914, -46.5646}},
	{"São José dos Campos", "SP", Coordinate{-23.2237, -45.9009}},
	{"Ribeirão Preto", "SP", Coordinate{-21.1775, -47.8103}},
	{"Sorocaba", "SP", Coordinate{-23.5015, -47.4526}},
	{"Santos", "SP", Coordinate{-23.9618, -46.3322}},
	{"Niterói", "RJ", Coordinate{-22.8832, -43.1034}},
	{"Duque de Caxias", "RJ", Coordinate{-22.7856, -43.3117}},
	{"Nova Iguaçu", "RJ", Coordinate{-22.7592, -43.4511}},
	{"Contagem", "MG", Coordinate{-19.9320, -44.0539}},
	{"Uberlândia", "MG", Coordinate{-18.9186, -48.2772}},
	{"Juiz de Fora", "MG", Coordinate{-21.7642, -43.3503}},
	{"Joinville", "SC", Coordinate{-26.3044, -48.8487}},
	{"Londrina", "PR", Coordinate{-23.3045, -51.1696}},
	{"Feira de Santana", "BA", Coordinate{-12.2664, -38.9663}},
	{"Jaboatão dos Guararapes", "PE", Coordinate{-8.1130, -35.0149}},
	{"Aparecida de Goiânia", "GO", Coordinate{-16.8198, -49.2469}},
}

// cityIndex maps the folded city name to its table entry.
var cityIndex = buildCityIndex()

func buildCityIndex() map[string]*City {
	idx := make(map[string]*City, len(cities))
	for i := range cities {
		idx[textfold.Fold(cities[i].Name)] = &cities[i]
	}
	return idx
}

// CityByName looks up a city in the static table by name, ignoring case and
// diacritics. Returns nil when the city is unknown.
func CityByName(name string) *City {
	return cityIndex[textfold.Fold(name)]
}

// CityCoordinate returns the static table coordinate for the given city name.
func CityCoordinate(name string) (Coordinate, bool) {
	if c := CityByName(name); c != nil {
		return c.Coord, true
	}
	return Coordinate{}, false
}

// NearestCity returns the static-table city closest to coord, along with the
// distance to it in kilometers. The city is accepted only when it is within
// maxKm (DefaultNearestCityMaxKm when maxKm <= 0); beyond that the location
// cannot be confirmed and nil is returned.
func NearestCity(coord Coordinate, maxKm float64) (*City, float64) {
	if maxKm <= 0 {
		maxKm = DefaultNearestCityMaxKm
	}

	var best *City
	bestDist := 0.0
	for i := range cities {
		d := DistanceKm(coord, cities[i].Coord)
		if best == nil || d < bestDist {
			best = &cities[i]
			bestDist = d
		}
	}

	if best == nil || bestDist > maxKm {
		return nil, 0
	}
	return best, bestDist
}
