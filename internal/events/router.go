// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/folio/internal/config"
)

// HandlerName names the rental consumer in router logs.
const HandlerName = "rental_completed"

// RouterConfig holds configuration for the Watermill router.
type RouterConfig struct {
	Topic                string
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// RouterConfigFrom derives the router settings from the events configuration.
func RouterConfigFrom(cfg *config.EventsConfig) RouterConfig {
	return RouterConfig{
		Topic:                cfg.Topic,
		CloseTimeout:         cfg.CloseTimeout,
		RetryMaxRetries:      cfg.RetryCount,
		RetryInitialInterval: cfg.RetryInitialInterval,
		RetryMaxInterval:     10 * time.Second,
		RetryMultiplier:      2.0,
	}
}

// ExpiringKeyRepository is the deduplication store used by the router.
type ExpiringKeyRepository interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
}

// NewRouter creates a Watermill router that feeds messages from sub to handler.
// dedup may be nil to disable deduplication.
func NewRouter(
	cfg RouterConfig,
	sub message.Subscriber,
	handler *RentalHandler,
	dedup ExpiringKeyRepository,
	logger watermill.LoggerAdapter,
) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)

	// Deduplication sits outside Retry so retries of one delivery are not
	// mistaken for redeliveries.
	if dedup != nil {
		d := middleware.Deduplicator{
			KeyFactory: dedupKey,
			Repository: dedup,
			Timeout:    5 * time.Second,
		}
		router.AddMiddleware(d.Middleware)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddConsumerHandler(HandlerName, cfg.Topic, sub, handler.Handle)
	return router, nil
}
