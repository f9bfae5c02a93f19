// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package config provides centralized configuration management for Folio.

This package handles loading, validation, and parsing of configuration for all
application components.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - YAML file from CONFIG_PATH or DefaultConfigPaths
  - Environment variables, mapped explicitly by envTransformFunc

# Configuration Structure

  - ServerConfig: HTTP server settings (host, port, timeouts)
  - DatabaseConfig: MongoDB or in-memory store selection and timeouts
  - CacheConfig: Recommendation result cache (memory LRU or Redis)
  - RecommendConfig: Engine limits and debug switch
  - EventsConfig: Rental event consumer (NATS JetStream via Watermill)
  - SecurityConfig: CORS and rate limiting
  - LoggingConfig: zerolog level and format

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal("Failed to load config:", err)
	}
	store, err := database.Open(ctx, &cfg.Database)
*/
package config
