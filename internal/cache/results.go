// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// ResultCache stores ranked recommendation results keyed by request and
// indexed by reader so a rental can drop every entry of that reader.
// Backend failures are logged and reported as misses.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]models.Book, bool)
	Set(ctx context.Context, userID, key string, books []models.Book)
	InvalidateUser(ctx context.Context, userID string)
	Close() error
}

// MemoryResultCache is an in-process ResultCache backed by LRUCache.
type MemoryResultCache struct {
	lru *LRUCache[memoryResult]

	mu     sync.Mutex
	byUser map[string]map[string]struct{}
}

type memoryResult struct {
	userID string
	books  []models.Book
}

var _ ResultCache = (*MemoryResultCache)(nil)

// NewMemoryResultCache creates a cache holding at most maxEntries results for ttl.
func NewMemoryResultCache(maxEntries int, ttl time.Duration) *MemoryResultCache {
	c := &MemoryResultCache{
		lru:    NewLRUCache[memoryResult](maxEntries, ttl),
		byUser: make(map[string]map[string]struct{}),
	}
	c.lru.OnEvict(func(key string, v memoryResult) {
		c.unindex(v.userID, key)
	})
	return c
}

// Get returns a copy of the cached books.
func (c *MemoryResultCache) Get(_ context.Context, key string) ([]models.Book, bool) {
	v, ok := c.lru.Get(key)
	metrics.RecordCacheLookup(CacheTypeMemory, ok)
	if !ok {
		return nil, false
	}
	return append([]models.Book(nil), v.books...), true
}

// Set stores a copy of books under key for userID.
func (c *MemoryResultCache) Set(_ context.Context, userID, key string, books []models.Book) {
	c.mu.Lock()
	keys, ok := c.byUser[userID]
	if !ok {
		keys = make(map[string]struct{})
		c.byUser[userID] = keys
	}
	keys[key] = struct{}{}
	c.mu.Unlock()

	c.lru.Add(key, memoryResult{userID: userID, books: append([]models.Book(nil), books...)})
}

// InvalidateUser removes every cached result of userID.
func (c *MemoryResultCache) InvalidateUser(_ context.Context, userID string) {
	c.mu.Lock()
	keys := c.byUser[userID]
	delete(c.byUser, userID)
	c.mu.Unlock()

	for key := range keys {
		c.lru.Remove(key)
	}
}

// Len returns the number of cached results.
func (c *MemoryResultCache) Len() int {
	return c.lru.Len()
}

// Close is a no-op.
func (c *MemoryResultCache) Close() error {
	return nil
}

// unindex runs from the eviction callback with the LRU lock held.
func (c *MemoryResultCache) unindex(userID, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := c.byUser[userID]
	delete(keys, key)
	if len(keys) == 0 {
		delete(c.byUser, userID)
	}
}
