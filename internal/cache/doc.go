// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package cache provides the recommendation result caches and the event
// deduplication stores.
//
// Components:
//   - LRUCache: generic O(1) LRU with lazy TTL expiry and an eviction callback
//   - MemoryResultCache: per-process results with a per-reader key index
//   - RedisResultCache: shared results in Redis with a per-reader key set
//   - MemoryDeduplicator, BadgerDeduplicator: ExpiringKeyRepository
//     implementations for the Watermill deduplication middleware
//
// Result caches never fail a request: backend errors are counted in
// cache_errors_total, logged, and served as misses.
package cache
