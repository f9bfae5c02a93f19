// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// CircuitBreakerStore wraps a catalog.Store with the circuit breaker pattern.
// Missing documents and canceled requests count as successes; only store
// failures move the breaker toward open.
type CircuitBreakerStore struct {
	store catalog.Store
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

var _ catalog.Store = (*CircuitBreakerStore)(nil)

// NewCircuitBreakerStore wraps store. Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerStore(store catalog.Store, name string) *CircuitBreakerStore {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: isBenign,
	})

	return &CircuitBreakerStore{
		store: store,
		cb:    cb,
		name:  name,
	}
}

// State returns the current breaker state.
func (c *CircuitBreakerStore) State() gobreaker.State {
	return c.cb.State()
}

// execute runs fn under the breaker and records the outcome.
func (c *CircuitBreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := c.cb.Execute(fn)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Str("breaker", c.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		case isBenign(err):
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
			counts := c.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return result, nil
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// FindBooks runs a book query with circuit breaker protection
func (c *CircuitBreakerStore) FindBooks(ctx context.Context, q *catalog.BookQuery) ([]models.Book, error) {
	return castResult[[]models.Book](c.execute(func() (any, error) {
		return c.store.FindBooks(ctx, q)
	}))
}

// Distinct lists distinct field values with circuit breaker protection
func (c *CircuitBreakerStore) Distinct(ctx context.Context, field string) ([]string, error) {
	return castResult[[]string](c.execute(func() (any, error) {
		return c.store.Distinct(ctx, field)
	}))
}

// FindUserByID loads a reader with circuit breaker protection
func (c *CircuitBreakerStore) FindUserByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return castResult[*models.UserProfile](c.execute(func() (any, error) {
		return c.store.FindUserByID(ctx, id)
	}))
}

// FindUsers runs a reader query with circuit breaker protection
func (c *CircuitBreakerStore) FindUsers(ctx context.Context, q *catalog.UserQuery) ([]models.UserProfile, error) {
	return castResult[[]models.UserProfile](c.execute(func() (any, error) {
		return c.store.FindUsers(ctx, q)
	}))
}

// RecordRental applies a rental with circuit breaker protection
func (c *CircuitBreakerStore) RecordRental(ctx context.Context, event *models.RentalCompletedEvent) error {
	_, err := c.execute(func() (any, error) {
		return nil, c.store.RecordRental(ctx, event)
	})
	return err
}

// Seed bypasses the breaker.
func (c *CircuitBreakerStore) Seed(ctx context.Context, books []models.Book, users []models.UserProfile) error {
	return c.store.Seed(ctx, books, users)
}

// Ping verifies connectivity with circuit breaker protection
func (c *CircuitBreakerStore) Ping(ctx context.Context) error {
	_, err := c.execute(func() (any, error) {
		return nil, c.store.Ping(ctx)
	})
	return err
}

// Close closes the wrapped store.
func (c *CircuitBreakerStore) Close(ctx context.Context) error {
	return c.store.Close(ctx)
}
