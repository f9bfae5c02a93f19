// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Runner is a component that consumes until ctx is canceled and releases its
// resources on return, such as *events.Consumer.
type Runner interface {
	Serve(ctx context.Context) error
}

// ConsumerFactory builds a fresh Runner. It is called once per (re)start.
type ConsumerFactory func(ctx context.Context) (Runner, error)

// ConsumerService supervises the rental event consumer. A Runner cannot be
// reused after Serve returns, so every restart builds a new one through the
// factory.
type ConsumerService struct {
	factory ConsumerFactory
	logger  zerolog.Logger
	name    string
}

// NewConsumerService wraps factory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumerService(factory ConsumerFactory, logger zerolog.Logger) *ConsumerService {
	return &ConsumerService{
		factory: factory,
		logger:  logger.With().Str("service", "rental-event-consumer").Logger(),
		name:    "rental-event-consumer",
	}
}

// Serve implements suture.Service.
func (s *ConsumerService) Serve(ctx context.Context) error {
	start := time.Now()
	runner, err := s.factory(ctx)
	if err != nil {
		return fmt.Errorf("build rental event consumer: %w", err)
	}
	s.logger.Debug().Dur("setup", time.Since(start)).Msg("Rental event consumer built")

	return runner.Serve(ctx)
}

// String implements fmt.Stringer for supervisor logging.
func (s *ConsumerService) String() string {
	return s.name
}
