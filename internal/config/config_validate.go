// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Backend {
	case BackendMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("MONGO_URI is required when DATABASE_BACKEND=mongo")
		}
		if err := validateMongoURI(c.Database.URI); err != nil {
			return fmt.Errorf("MONGO_URI is invalid: %w", err)
		}
		if c.Database.Name == "" {
			return fmt.Errorf("MONGO_DATABASE is required when DATABASE_BACKEND=mongo")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("DATABASE_BACKEND must be %q or %q, got %q", BackendMongo, BackendMemory, c.Database.Backend)
	}

	if c.Database.Timeout <= 0 {
		return fmt.Errorf("DATABASE_TIMEOUT must be positive, got %v", c.Database.Timeout)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory:
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", c.Cache.MaxEntries)
		}
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, c.Cache.Backend)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit <= 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be positive, got %d", c.Recommend.DefaultLimit)
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be >= RECOMMEND_DEFAULT_LIMIT, got %d < %d",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	if c.Recommend.Timeout <= 0 {
		return fmt.Errorf("RECOMMEND_TIMEOUT must be positive, got %v", c.Recommend.Timeout)
	}
	return nil
}

// validateEvents validates the rental event consumer (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}

	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	if c.Events.Stream == "" || strings.ContainsAny(c.Events.Stream, ".*> \t") {
		return fmt.Errorf("EVENTS_STREAM must be a non-empty name without dots, wildcards or spaces, got %q", c.Events.Stream)
	}
	if !c.Events.EmbeddedServer {
		if c.Events.URL == "" {
			return fmt.Errorf("NATS_URL is required unless NATS_EMBEDDED=true")
		}
		if err := validateNATSURL(c.Events.URL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	if c.Events.EmbeddedServer && (c.Events.ServerPort < 1 || c.Events.ServerPort > 65535) {
		return fmt.Errorf("NATS_PORT must be between 1 and 65535, got %d", c.Events.ServerPort)
	}
	if c.Events.SubscribersCount <= 0 {
		return fmt.Errorf("NATS_SUBSCRIBERS must be positive, got %d", c.Events.SubscribersCount)
	}

	switch c.Events.DedupBackend {
	case DedupBackendMemory:
	case DedupBackendBadger:
		if c.Events.DedupPath == "" {
			return fmt.Errorf("EVENTS_DEDUP_PATH is required when EVENTS_DEDUP_BACKEND=badger")
		}
	default:
		return fmt.Errorf("EVENTS_DEDUP_BACKEND must be %q or %q, got %q",
			DedupBackendMemory, DedupBackendBadger, c.Events.DedupBackend)
	}

	if c.Events.DedupTTL <= 0 {
		return fmt.Errorf("EVENTS_DEDUP_TTL must be positive, got %v", c.Events.DedupTTL)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if err := validateOriginURL(origin); err != nil {
			return fmt.Errorf("CORS_ORIGINS entry %q is invalid: %w", origin, err)
		}
	}

	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
