// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

// Package store supplies the raw listing pool the search and recommendation
// layers operate on. The current backing is an in-memory snapshot seeded
// from a JSON fixture file; the interface keeps callers independent of that
// so a database-backed implementation can replace it without touching the
// handlers.
package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/vitrine-live/vitrine/internal/listing"
	"github.com/vitrine-live/vitrine/internal/logging"
)

// ListingStore provides read access to the listing pool.
type ListingStore interface {
	// All returns a snapshot of every listing. Callers may mutate the
	// returned slice freely.
	All() []listing.Listing
	// Get returns the listing with the given ID.
	Get(id string) (listing.Listing, bool)
	// Count returns the number of listings held.
	Count() int
}

// MemoryStore is an immutable in-memory ListingStore. Safe for concurrent
// use; the pool is fixed at construction.
type MemoryStore struct {
	mu       sync.RWMutex
	listings []listing.Listing
	byID     map[string]int
}

// NewMemoryStore builds a store over the given listings. Listings with
// duplicate IDs keep the first occurrence for Get but all remain in All.
func NewMemoryStore(listings []listing.Listing) *MemoryStore {
	byID := make(map[string]int, len(listings))
	for i, l := range listings {
		if _, ok := byID[l.ID]; !ok {
			byID[l.ID] = i
		}
	}
	return &MemoryStore{listings: listings, byID: byID}
}

// OpenSeedFile loads a JSON array of listings from path and returns a store
// over them.
func OpenSeedFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var listings []listing.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	logging.Info().Int("listings", len(listings)).Str("path", path).Msg("listing store seeded")
	return NewMemoryStore(listings), nil
}

// All returns a copy of the listing pool.
func (s *MemoryStore) All() []listing.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]listing.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Get returns the listing with the given ID.
func (s *MemoryStore) Get(id string) (listing.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return listing.Listing{}, false
	}
	return s.listings[i], true
}

// Count returns the number of listings held.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}
