// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database/memory"
)

// Open creates the store selected by cfg.Backend. Fixtures are loaded into the
// memory backend, or upserted into MongoDB when a fixture path is configured.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (catalog.Store, error) {
	logger = logger.With().Str("component", "database").Logger()

	var fixtures *memory.Fixtures
	if cfg.FixturesPath != "" {
		f, err := memory.LoadFixtures(cfg.FixturesPath)
		if err != nil {
			return nil, err
		}
		fixtures = f
		logger.Info().Str("path", cfg.FixturesPath).Int("books", len(f.Books)).Int("users", len(f.Users)).Msg("Loaded fixtures")
	}

	var store catalog.Store
	switch cfg.Backend {
	case config.BackendMemory:
		store = memory.NewWithFixtures(fixtures)
	case config.BackendMongo:
		mongoStore, err := NewMongoStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if fixtures != nil {
			if err := mongoStore.Seed(ctx, fixtures.Books, fixtures.Users); err != nil {
				_ = mongoStore.Close(context.Background())
				return nil, err
			}
		}
		store = mongoStore
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}

	if cfg.CircuitBreaker {
		store = NewCircuitBreakerStore(store, "store-"+cfg.Backend)
	}

	logger.Info().Str("backend", cfg.Backend).Bool("circuit_breaker", cfg.CircuitBreaker).Msg("Store opened")
	return store, nil
}
