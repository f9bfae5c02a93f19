// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/folio/config.yaml",
	"/etc/folio/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Backend:        BackendMongo,
			URI:            "mongodb://localhost:27017",
			Name:           "folio",
			ConnectTimeout: 10 * time.Second,
			Timeout:        5 * time.Second,
			FixturesPath:   "",
			CircuitBreaker: true,
			SkipIndexes:    false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Backend:    CacheBackendMemory,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			RedisAddr:  "localhost:6379",
			RedisDB:    0,
			KeyPrefix:  "folio:recs:",
		},
		Recommend: RecommendConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
			Timeout:      10 * time.Second,
			Debug:        false,
		},
		Events: EventsConfig{
			Enabled:              false,
			URL:                  "nats://127.0.0.1:4222",
			Topic:                "rental.completed",
			Stream:               "RENTALS",
			StreamMaxAge:         7 * 24 * time.Hour,
			DuplicateWindow:      2 * time.Minute,
			EmbeddedServer:       false,
			ServerHost:           "127.0.0.1",
			ServerPort:           4222,
			StoreDir:             "/data/nats/jetstream",
			MaxMemory:            256 << 20, // 256MB
			MaxStore:             1 << 30,   // 1GB
			DurableName:          "folio-recommendations",
			QueueGroup:           "recommenders",
			SubscribersCount:     2,
			AckWaitTimeout:       30 * time.Second,
			MaxDeliver:           5,
			RetryCount:           3,
			RetryInitialInterval: 100 * time.Millisecond,
			CloseTimeout:         30 * time.Second,
			DedupBackend:         DedupBackendMemory,
			DedupPath:            "/data/dedup",
			DedupTTL:             24 * time.Hour,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// MONGO_URI -> database.uri
	// RECOMMEND_MAX_LIMIT -> recommend.max_limit
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Database mappings
	"database_backend":         "database.backend",
	"mongo_uri":                "database.uri",
	"mongo_database":           "database.name",
	"mongo_connect_timeout":    "database.connect_timeout",
	"database_timeout":         "database.timeout",
	"database_fixtures":        "database.fixtures_path",
	"database_circuit_breaker": "database.circuit_breaker",
	"database_skip_indexes":    "database.skip_indexes",

	// Cache mappings
	"cache_enabled":     "cache.enabled",
	"cache_backend":     "cache.backend",
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",
	"redis_addr":        "cache.redis_addr",
	"redis_password":    "cache.redis_password",
	"redis_db":          "cache.redis_db",
	"cache_key_prefix":  "cache.key_prefix",

	// Recommendation engine mappings
	"recommend_default_limit": "recommend.default_limit",
	"recommend_max_limit":     "recommend.max_limit",
	"recommend_timeout":       "recommend.timeout",
	"recommend_debug":         "recommend.debug",

	// Event consumer mappings
	"events_enabled":        "events.enabled",
	"nats_url":              "events.url",
	"events_topic":          "events.topic",
	"events_stream":         "events.stream",
	"events_stream_max_age": "events.stream_max_age",
	"nats_duplicate_window": "events.duplicate_window",
	"nats_embedded":         "events.embedded_server",
	"nats_host":             "events.server_host",
	"nats_port":             "events.server_port",
	"nats_store_dir":        "events.store_dir",
	"nats_max_memory":       "events.max_memory",
	"nats_max_store":        "events.max_store",
	"nats_durable_name":     "events.durable_name",
	"nats_queue_group":      "events.queue_group",
	"nats_subscribers":      "events.subscribers_count",
	"nats_ack_wait":         "events.ack_wait_timeout",
	"nats_max_deliver":      "events.max_deliver",
	"events_retry_count":    "events.retry_count",
	"events_retry_interval": "events.retry_initial_interval",
	"events_close_timeout":  "events.close_timeout",
	"events_dedup_backend":  "events.dedup_backend",
	"events_dedup_path":     "events.dedup_path",
	"events_dedup_ttl":      "events.dedup_ttl",

	// Security mappings
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",
	"cors_origins":       "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - MONGO_URI -> database.uri
//   - REDIS_ADDR -> cache.redis_addr
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// The caller is responsible for mutex protection when accessing
// configuration during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
