// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/config"
)

// Cache type labels used in metrics.
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Deduplicator remembers event keys for a TTL.
type Deduplicator interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Close() error
}

// NewResultCache builds the configured result cache. It returns nil when
// caching is disabled. A redis backend must answer a ping before it is used.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResultCache(ctx context.Context, cfg *config.CacheConfig, logger zerolog.Logger) (ResultCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendMemory, "":
		return NewMemoryResultCache(cfg.MaxEntries, cfg.TTL), nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		rc := NewRedisResultCache(client, cfg.TTL, cfg.KeyPrefix, logger)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// NewDeduplicator builds the configured event deduplicator.
func NewDeduplicator(cfg *config.EventsConfig) (Deduplicator, error) {
	switch cfg.DedupBackend {
	case config.DedupBackendMemory, "":
		return NewMemoryDeduplicator(10000, cfg.DedupTTL), nil
	case config.DedupBackendBadger:
		return OpenBadgerDeduplicator(cfg.DedupPath, cfg.DedupTTL)
	default:
		return nil, fmt.Errorf("unknown dedup backend %q", cfg.DedupBackend)
	}
}
