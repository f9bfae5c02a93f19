// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const dedupKeyPrefix = "dedup:"

// MemoryDeduplicator remembers keys for a TTL in a bounded LRU.
// It implements the watermill middleware.ExpiringKeyRepository interface.
type MemoryDeduplicator struct {
	cache *LRUCache[time.Time]
}

// NewMemoryDeduplicator creates a deduplicator holding up to capacity keys.
func NewMemoryDeduplicator(capacity int, ttl time.Duration) *MemoryDeduplicator {
	return &MemoryDeduplicator{cache: NewLRUCache[time.Time](capacity, ttl)}
}

// IsDuplicate reports whether key was seen within the TTL and records it otherwise.
func (d *MemoryDeduplicator) IsDuplicate(_ context.Context, key string) (bool, error) {
	return d.cache.IsDuplicate(key, d.cache.now()), nil
}

// Close is a no-op.
func (d *MemoryDeduplicator) Close() error {
	return nil
}

// BadgerDeduplicator persists seen keys with a BadgerDB TTL so redelivered
// events stay deduplicated across restarts.
type BadgerDeduplicator struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerDeduplicator opens a BadgerDB at path. An empty path opens an
// in-memory database.
func OpenBadgerDeduplicator(path string, ttl time.Duration) (*BadgerDeduplicator, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for deduplication: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &BadgerDeduplicator{db: db, ttl: ttl}, nil
}

// IsDuplicate reports whether key was seen within the TTL and records it otherwise.
func (d *BadgerDeduplicator) IsDuplicate(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	k := []byte(dedupKeyPrefix + key)
	duplicate := false
	err := d.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		if err == nil {
			duplicate = true
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		seen, err := time.Now().UTC().MarshalBinary()
		if err != nil {
			return err
		}
		return txn.SetEntry(badger.NewEntry(k, seen).WithTTL(d.ttl))
	})
	if err != nil {
		return false, fmt.Errorf("dedup key %s: %w", key, err)
	}
	return duplicate, nil
}

// Close closes the database.
func (d *BadgerDeduplicator) Close() error {
	return d.db.Close()
}
