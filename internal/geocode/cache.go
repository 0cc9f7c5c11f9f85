// Vitrine - Classifieds Discovery and Geographic Search
// Copyright 2026 The Vitrine Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitrine-live/vitrine

package geocode

import (
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/vitrine-live/vitrine/internal/geo"
	"github.com/vitrine-live/vitrine/internal/logging"
)

// DefaultCacheTTL is how long resolved coordinates stay valid. Addresses
// move rarely; a week keeps repeat searches off the 1 req/s upstream budget
// without pinning stale data forever.
const DefaultCacheTTL = 7 * 24 * time.Hour

// keyPrefix namespaces geocode entries within the badger store.
const keyPrefix = "geocode:"

// Cache persists resolved coordinates in a badger database so repeated
// searches do not consume the upstream request budget across restarts.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenCache opens (or creates) the badger-backed geocode cache at path.
// A non-positive ttl applies DefaultCacheTTL.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is noisy; failures surface as errors

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open geocode cache at %s: %w", path, err)
	}

	logging.Info().Str("path", path).Dur("ttl", ttl).Msg("geocode cache opened")
	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached coordinate for key, if present and not expired.
func (c *Cache) Get(key string) (geo.Coordinate, bool) {
	var coord geo.Coordinate
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &coord)
		})
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
		}
		return geo.Coordinate{}, false
	}
	return coord, true
}

// Set stores a coordinate under key with the configured TTL.
func (c *Cache) Set(key string, coord geo.Coordinate) error {
	val, err := json.Marshal(coord)
	if err != nil {
		return fmt.Errorf("failed to encode coordinate: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(keyPrefix+key), val).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Close releases the underlying badger database.
func (c *Cache) Close() error {
	return c.db.Close()
}
