// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Backend != BackendMongo {
		t.Errorf("Database.Backend = %q, want %q", cfg.Database.Backend, BackendMongo)
	}
	if cfg.Database.Name != "folio" {
		t.Errorf("Database.Name = %q, want folio", cfg.Database.Name)
	}
	if !cfg.Database.CircuitBreaker {
		t.Error("Database.CircuitBreaker should be true by default")
	}
	if cfg.Cache.Backend != CacheBackendMemory {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Recommend.DefaultLimit != 10 || cfg.Recommend.MaxLimit != 50 {
		t.Errorf("Recommend limits = %d/%d, want 10/50", cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	}
	if cfg.Events.Enabled {
		t.Error("Events.Enabled should be false by default")
	}
	if cfg.Events.Topic != "rental.completed" {
		t.Errorf("Events.Topic = %q, want rental.completed", cfg.Events.Topic)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

// TestLoadWithKoanf_EnvOverrides verifies environment variables override defaults
func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_BACKEND", "memory")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("RECOMMEND_MAX_LIMIT", "25")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Backend != BackendMemory {
		t.Errorf("Database.Backend = %q, want memory", cfg.Database.Backend)
	}
	if cfg.Cache.Backend != CacheBackendRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v, want redis at cache:6379", cfg.Cache)
	}
	if cfg.Recommend.MaxLimit != 25 {
		t.Errorf("Recommend.MaxLimit = %d, want 25", cfg.Recommend.MaxLimit)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

// TestLoadWithKoanf_ConfigFile verifies the YAML layer sits between defaults and env
func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7070
database:
  backend: memory
  fixtures_path: /tmp/books.json
recommend:
  default_limit: 5
  max_limit: 20
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_DEFAULT_LIMIT", "8")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070 from file", cfg.Server.Port)
	}
	if cfg.Database.FixturesPath != "/tmp/books.json" {
		t.Errorf("Database.FixturesPath = %q", cfg.Database.FixturesPath)
	}
	if cfg.Recommend.DefaultLimit != 8 {
		t.Errorf("Recommend.DefaultLimit = %d, want 8 from env", cfg.Recommend.DefaultLimit)
	}
	if cfg.Recommend.MaxLimit != 20 {
		t.Errorf("Recommend.MaxLimit = %d, want 20 from file", cfg.Recommend.MaxLimit)
	}
}

// TestLoadWithKoanf_InvalidConfig verifies validation errors surface from Load
func TestLoadWithKoanf_InvalidConfig(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_BACKEND", "postgres")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("LoadWithKoanf() should fail for unknown backend")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"MONGO_URI", "database.uri"},
		{"REDIS_ADDR", "cache.redis_addr"},
		{"NATS_EMBEDDED", "events.embedded_server"},
		{"LOG_FORMAT", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestServerConfig_ListenAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.ListenAddr(); got != "127.0.0.1:8080" {
		t.Errorf("ListenAddr() = %q", got)
	}
}
