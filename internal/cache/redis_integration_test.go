// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/testinfra"
)

func TestRedisResultCache_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container)

	client := redis.NewClient(&redis.Options{Addr: container.Addr})
	c := NewRedisResultCache(client, time.Minute, "folio:test:", zerolog.Nop())
	defer c.Close()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	if _, ok := c.Get(ctx, "rec:u1:5"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	c.Set(ctx, "u1", "rec:u1:5", testBooks("a", "b"))
	c.Set(ctx, "u1", "rec:u1:10", testBooks("a"))
	c.Set(ctx, "u2", "rec:u2:5", testBooks("c"))

	got, ok := c.Get(ctx, "rec:u1:5")
	if !ok || len(got) != 2 || got[0].ID != "a" || got[1].Title != "Title b" {
		t.Fatalf("Get() = %v, %v", got, ok)
	}

	ttl, err := client.TTL(ctx, "folio:test:rec:u1:5").Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, %v", ttl, err)
	}

	c.InvalidateUser(ctx, "u1")
	if _, ok := c.Get(ctx, "rec:u1:5"); ok {
		t.Error("Expected rec:u1:5 invalidated")
	}
	if _, ok := c.Get(ctx, "rec:u1:10"); ok {
		t.Error("Expected rec:u1:10 invalidated")
	}
	if _, ok := c.Get(ctx, "rec:u2:5"); !ok {
		t.Error("Other readers must keep their results")
	}
	if n, _ := client.Exists(ctx, "folio:test:user:u1").Result(); n != 0 {
		t.Error("Reader key set not deleted")
	}
}

func TestRedisResultCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	c := NewRedisResultCache(client, time.Minute, "", zerolog.Nop())
	defer c.Close()

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get() on unreachable redis must miss")
	}
	c.Set(ctx, "u1", "k", testBooks("a"))
	c.InvalidateUser(ctx, "u1")
}
