// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package main is the entry point of the Folio recommendation server.
//
// Startup order:
//
//  1. Configuration: koanf layering of defaults, config.yaml and environment
//  2. Logging: zerolog global logger from the logging section
//  3. Store: MongoDB behind a circuit breaker, or the in-memory store
//  4. Engine: recommendation engine with the configured result cache
//  5. Events (optional): JetStream rental-completion consumer
//  6. HTTP server: chi router with the recommendation API
//
// Long-running parts run under a suture supervisor tree and stop gracefully
// on SIGINT or SIGTERM.
//
// # Example Usage
//
// In-memory catalog loaded from a fixture file:
//
//	export DATABASE_BACKEND=memory
//	export DATABASE_FIXTURES=./testdata/catalog.json
//	./folio
//
// MongoDB with Redis caching and the embedded NATS server:
//
//	export MONGO_URI=mongodb://localhost:27017
//	export CACHE_ENABLED=true
//	export CACHE_BACKEND=redis
//	export REDIS_ADDR=localhost:6379
//	export EVENTS_ENABLED=true
//	export NATS_EMBEDDED=true
//	./folio
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/folio/internal/api"
	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/supervisor"
	"github.com/tomtom215/folio/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	latencySamples   = 10000
	slowRequestLimit = 500 * time.Millisecond
)

//nolint:gocyclo // sequential startup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "folio",
		Version:   version,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Database.Backend).
		Str("cache", cfg.Cache.Backend).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting Folio recommendation server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := database.Open(startupCtx, &cfg.Database, logging.WithComponent("database"))
	startupCancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			logging.Warn().Err(err).Msg("Closing catalog store failed")
		}
	}()

	engine, err := newEngine(cfg, store, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	results, err := cache.NewResultCache(ctx, &cfg.Cache, logging.WithComponent("cache"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create result cache")
	}
	if results != nil {
		defer func() {
			if err := results.Close(); err != nil {
				logging.Warn().Err(err).Msg("Closing result cache failed")
			}
		}()
		engine.SetCache(results)
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Events.Enabled {
		tree.AddMessagingService(newConsumerService(cfg, store, engine, logging.WithComponent("events")))
		logging.Info().
			Str("topic", cfg.Events.Topic).
			Str("stream", cfg.Events.Stream).
			Bool("embedded", cfg.Events.EmbeddedServer).
			Msg("Rental event consumer added to supervisor tree")
	}

	monitor := middleware.NewLatencyMonitor(latencySamples, slowRequestLimit)
	handler := api.NewHandler(engine, store, cfg, monitor)
	handler.SetVersion(version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Folio stopped")
}
