// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package recommend computes similarity scores between a reference listing
// and candidates. It powers the "related profiles" strip on a profile page
// and the ranking of seeded mock data when no real pool is available.
//
// Scoring is a fixed-weight additive model, synchronous and pure; it is safe
// to call concurrently from any number of request goroutines.
package recommend

import (
	"math"
	"sort"

	"github.com/vitrine-live/vitrine/internal/listing"
	"github.com/vitrine-live/vitrine/internal/textfold"
)

// Fixed weights of the additive scoring model. Not configurable.
const (
	categoryWeight = 50
	cityWeight     = 30
	stateWeight    = 10
	verifiedWeight = 20
	serviceWeight  = 5 // per shared service
	priceWeight    = 5

	// Popularity tiers on the candidate's view counter. Mutually exclusive;
	// only the highest applicable tier counts.
	viewsTier1Threshold = 1000
	viewsTier1Weight    = 10
	viewsTier2Threshold = 500
	viewsTier2Weight    = 5
	viewsTier3Threshold = 100
	viewsTier3Weight    = 2

	// priceSimilarityRatio is the tolerated price difference, relative to
	// the reference price.
	priceSimilarityRatio = 0.20
)

// DefaultLimit is the number of related listings returned when the caller
// does not specify one.
const DefaultLimit = 8

// ScoredListing pairs a candidate with its accumulated score. Ordering is by
// score descending; equal scores keep their input order.
type ScoredListing struct {
	Listing listing.Listing `json:"listing"`
	Score   float64         `json:"score"`
}

// Score computes the similarity score between a reference listing and a
// candidate. The score is a non-negative sum of independent bonuses.
//
// City and state bonuses stack when both match: they are independent fields
// and the model is additive, not exclusive.
func Score(reference, candidate *listing.Listing) float64 {
	var score float64

	if textfold.Equal(reference.Category, candidate.Category) && reference.Category != "" {
		score += categoryWeight
	}
	if textfold.Equal(reference.City, candidate.City) && reference.City != "" {
		score += cityWeight
	}
	if textfold.Equal(reference.State, candidate.State) && reference.State != "" {
		score += stateWeight
	}
	if candidate.Verified {
		score += verifiedWeight
	}

	score += float64(sharedServices(reference.Services, candidate.Services)) * serviceWeight
	score += popularityBonus(candidate.Views)

	if reference.Price > 0 && candidate.Price > 0 {
		if math.Abs(reference.Price-candidate.Price) <= priceSimilarityRatio*reference.Price {
			score += priceWeight
		}
	}

	return score
}

// sharedServices counts services present in both lists, compared after
// folding. Each shared service counts once.
func sharedServices(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[textfold.Fold(s)] = struct{}{}
	}

	shared := 0
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		folded := textfold.Fold(s)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		if _, ok := set[folded]; ok {
			shared++
		}
	}
	return shared
}

// popularityBonus returns the highest applicable view-count tier bonus.
func popularityBonus(views int) float64 {
	switch {
	case views > viewsTier1Threshold:
		return viewsTier1Weight
	case views > viewsTier2Threshold:
		return viewsTier2Weight
	case views > viewsTier3Threshold:
		return viewsTier3Weight
	default:
		return 0
	}
}

// Rank scores every pool member against the reference, excluding the
// reference itself by ID, and returns the top limit listings in descending
// score order. Ties keep their input order. A non-positive limit applies
// DefaultLimit.
func Rank(reference *listing.Listing, pool []listing.Listing, limit int) []listing.Listing {
	scored := RankScored(reference, pool, limit)
	out := make([]listing.Listing, len(scored))
	for i, s := range scored {
		out[i] = s.Listing
	}
	return out
}

// RankScored is Rank with the accumulated scores attached, for callers that
// surface them (diagnostics, API responses).
func RankScored(reference *listing.Listing, pool []listing.Listing, limit int) []ScoredListing {
	if limit <= 0 {
		limit = DefaultLimit
	}

	scored := make([]ScoredListing, 0, len(pool))
	for i := range pool {
		if pool[i].ID == reference.ID {
			continue
		}
		scored = append(scored, ScoredListing{
			Listing: pool[i],
			Score:   Score(reference, &pool[i]),
		})
	}

	// Stable sort keeps input order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
