// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Configuration is loaded in layers (see LoadWithKoanf):
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH or one of DefaultConfigPaths)
//  3. Environment variables
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// Database backends.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// DatabaseConfig holds document store settings.
//
// Environment Variables:
//   - DATABASE_BACKEND: "mongo" (default) or "memory"
//   - MONGO_URI: MongoDB connection string (default: mongodb://localhost:27017)
//   - MONGO_DATABASE: Database name (default: folio)
//   - DATABASE_TIMEOUT: Per-operation timeout (default: 5s)
//   - DATABASE_FIXTURES: JSON fixture file loaded by the memory backend
//   - DATABASE_CIRCUIT_BREAKER: Wrap the store with a circuit breaker (default: true)
type DatabaseConfig struct {
	Backend        string        `koanf:"backend"`
	URI            string        `koanf:"uri"`
	Name           string        `koanf:"name"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	Timeout        time.Duration `koanf:"timeout"`
	FixturesPath   string        `koanf:"fixtures_path"`
	CircuitBreaker bool          `koanf:"circuit_breaker"`
	SkipIndexes    bool          `koanf:"skip_indexes"` // Skip index creation (fast test setup)
}

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig holds recommendation result cache settings.
type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Backend       string        `koanf:"backend"`
	TTL           time.Duration `koanf:"ttl"`
	MaxEntries    int           `koanf:"max_entries"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	KeyPrefix     string        `koanf:"key_prefix"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_LIMIT: Books returned when the caller sends no limit (default: 10)
//   - RECOMMEND_MAX_LIMIT: Upper bound on the requested limit (default: 50)
//   - RECOMMEND_TIMEOUT: Budget for one recommendation call (default: 10s)
//   - RECOMMEND_DEBUG: Log catalog facets and stage counts on every call
type RecommendConfig struct {
	DefaultLimit int           `koanf:"default_limit"`
	MaxLimit     int           `koanf:"max_limit"`
	Timeout      time.Duration `koanf:"timeout"`
	Debug        bool          `koanf:"debug"`
}

// Deduplication backends for the rental event consumer.
const (
	DedupBackendMemory = "memory"
	DedupBackendBadger = "badger"
)

// EventsConfig holds rental event consumer settings (Watermill over NATS JetStream).
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	Topic   string `koanf:"topic"`

	// JetStream stream bound to Topic
	Stream          string        `koanf:"stream"`
	StreamMaxAge    time.Duration `koanf:"stream_max_age"`
	DuplicateWindow time.Duration `koanf:"duplicate_window"`

	// Embedded NATS server
	EmbeddedServer bool   `koanf:"embedded_server"`
	ServerHost     string `koanf:"server_host"`
	ServerPort     int    `koanf:"server_port"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`

	// Subscriber
	DurableName      string        `koanf:"durable_name"`
	QueueGroup       string        `koanf:"queue_group"`
	SubscribersCount int           `koanf:"subscribers_count"`
	AckWaitTimeout   time.Duration `koanf:"ack_wait_timeout"`
	MaxDeliver       int           `koanf:"max_deliver"`

	// Router
	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`

	// Deduplication by event ID
	DedupBackend string        `koanf:"dedup_backend"`
	DedupPath    string        `koanf:"dedup_path"`
	DedupTTL     time.Duration `koanf:"dedup_ttl"`
}

// SecurityConfig holds HTTP hardening settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and
// environment variables.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// ListenAddr returns the host:port the HTTP server binds to.
func (s *ServerConfig) ListenAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
