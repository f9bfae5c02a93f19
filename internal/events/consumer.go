// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
)

// Consumer owns the event pipeline: the optional embedded server, the
// subscriber, the deduplication store and the router.
type Consumer struct {
	router *message.Router
	sub    message.Subscriber
	dedup  cache.Deduplicator
	server *EmbeddedServer
	logger zerolog.Logger
}

// NewConsumer assembles the pipeline from configuration and provisions the
// stream. Nothing is consumed until Serve is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(ctx context.Context, cfg *config.EventsConfig, store RentalRecorder, invalidator Invalidator, logger zerolog.Logger) (*Consumer, error) {
	c := &Consumer{logger: logger.With().Str("component", "events").Logger()}
	if err := c.build(ctx, cfg, store, invalidator, logger); err != nil {
		c.close(context.Background())
		return nil, err
	}
	return c, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (c *Consumer) build(ctx context.Context, cfg *config.EventsConfig, store RentalRecorder, invalidator Invalidator, logger zerolog.Logger) error {
	var err error

	url := cfg.URL
	if cfg.EmbeddedServer {
		c.server, err = NewEmbeddedServer(cfg)
		if err != nil {
			return err
		}
		url = c.server.ClientURL()
		c.logger.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	if err = ProvisionStream(ctx, url, cfg); err != nil {
		return err
	}

	wmLogger := logging.NewWatermillAdapter(c.logger)

	c.sub, err = NewSubscriber(cfg, url, wmLogger)
	if err != nil {
		return err
	}

	c.dedup, err = cache.NewDeduplicator(cfg)
	if err != nil {
		return fmt.Errorf("create deduplicator: %w", err)
	}

	handler := NewRentalHandler(store, invalidator, logger)
	c.router, err = NewRouter(RouterConfigFrom(cfg), c.sub, handler, c.dedup, wmLogger)
	if err != nil {
		return err
	}
	return nil
}

// Serve runs the router until ctx is canceled, then releases every resource.
func (c *Consumer) Serve(ctx context.Context) error {
	defer c.close(context.Background())

	c.logger.Info().Msg("Rental event consumer starting")
	if err := c.router.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logging.
func (c *Consumer) String() string {
	return "rental-event-consumer"
}

// close releases resources in reverse order of creation. Safe on a partially built consumer.
func (c *Consumer) close(ctx context.Context) {
	if c.router != nil {
		if err := c.router.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Closing router failed")
		}
	}
	if c.sub != nil {
		if err := c.sub.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Closing subscriber failed")
		}
	}
	if c.dedup != nil {
		if err := c.dedup.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Closing deduplicator failed")
		}
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Stopping NATS server failed")
		}
	}
}
