// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

// buildEngineConfig overlays the recommend section on the engine defaults.
// Zero values keep the defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	if cfg.Recommend.DefaultLimit > 0 {
		engineCfg.Limits.DefaultLimit = cfg.Recommend.DefaultLimit
	}
	if cfg.Recommend.MaxLimit > 0 {
		engineCfg.Limits.MaxLimit = cfg.Recommend.MaxLimit
	}
	if cfg.Recommend.Timeout > 0 {
		engineCfg.Timeout = cfg.Recommend.Timeout
	}
	return engineCfg
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newEngine(cfg *config.Config, store catalog.Store, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)
	logger.Info().
		Int("default_limit", engineCfg.Limits.DefaultLimit).
		Int("max_limit", engineCfg.Limits.MaxLimit).
		Dur("timeout", engineCfg.Timeout).
		Msg("Initializing recommendation engine")
	return recommend.NewEngine(engineCfg, store, store, logger)
}

// newConsumerService supervises the rental event consumer. Each restart
// builds a fresh consumer with its own connection and dedup store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newConsumerService(cfg *config.Config, store catalog.Store, engine *recommend.Engine, logger zerolog.Logger) *services.ConsumerService {
	return services.NewConsumerService(func(ctx context.Context) (services.Runner, error) {
		consumer, err := events.NewConsumer(ctx, &cfg.Events, store, engine, logger)
		if err != nil {
			return nil, err
		}
		return consumer, nil
	}, logger)
}
