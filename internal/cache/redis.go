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

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// RedisResultCache is a ResultCache shared between service instances.
// Results are JSON strings; each reader has a set of its result keys.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

var _ ResultCache = (*RedisResultCache)(nil)

// NewRedisResultCache wraps an existing client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedisResultCache(client *redis.Client, ttl time.Duration, prefix string, logger zerolog.Logger) *RedisResultCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisResultCache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// Ping checks connectivity.
func (c *RedisResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Get returns the cached books or a miss.
func (c *RedisResultCache) Get(ctx context.Context, key string) ([]models.Book, bool) {
	data, err := c.client.Get(ctx, c.resultKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup(CacheTypeRedis, false)
		return nil, false
	}
	if err != nil {
		c.fail(err, "Redis get failed")
		return nil, false
	}

	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		c.fail(err, "Redis value corrupt")
		return nil, false
	}
	metrics.RecordCacheLookup(CacheTypeRedis, true)
	return books, true
}

// Set stores books and adds key to the reader's key set.
func (c *RedisResultCache) Set(ctx context.Context, userID, key string, books []models.Book) {
	data, err := json.Marshal(books)
	if err != nil {
		c.fail(err, "Redis value encode failed")
		return
	}

	userKey := c.userKey(userID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.resultKey(key), data, c.ttl)
		pipe.SAdd(ctx, userKey, key)
		pipe.Expire(ctx, userKey, c.ttl)
		return nil
	})
	if err != nil {
		c.fail(err, "Redis set failed")
	}
}

// InvalidateUser deletes every result of the reader and the key set itself.
func (c *RedisResultCache) InvalidateUser(ctx context.Context, userID string) {
	userKey := c.userKey(userID)
	keys, err := c.client.SMembers(ctx, userKey).Result()
	if err != nil {
		c.fail(err, "Redis invalidate failed")
		return
	}

	del := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		del = append(del, c.resultKey(key))
	}
	del = append(del, userKey)
	if err := c.client.Del(ctx, del...).Err(); err != nil {
		c.fail(err, "Redis invalidate failed")
	}
}

// Close closes the client.
func (c *RedisResultCache) Close() error {
	return c.client.Close()
}

func (c *RedisResultCache) resultKey(key string) string {
	return c.prefix + key
}

func (c *RedisResultCache) userKey(userID string) string {
	return c.prefix + "user:" + userID
}

func (c *RedisResultCache) fail(err error, msg string) {
	metrics.RecordCacheError(CacheTypeRedis)
	c.logger.Warn().Err(err).Msg(msg)
}
