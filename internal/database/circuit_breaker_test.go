// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

var errStoreDown = errors.New("connection refused")

// flakyStore fails every call while err is set.
type flakyStore struct {
	err   error
	calls int
}

func (f *flakyStore) FindBooks(context.Context, *catalog.BookQuery) ([]models.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []models.Book{{ID: "b1"}}, nil
}

func (f *flakyStore) Distinct(context.Context, string) ([]string, error) {
	f.calls++
	return []string{"Fiction"}, f.err
}

func (f *flakyStore) FindUserByID(_ context.Context, id string) (*models.UserProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserProfile{ID: id}, nil
}

func (f *flakyStore) FindUsers(context.Context, *catalog.UserQuery) ([]models.UserProfile, error) {
	f.calls++
	return nil, f.err
}

func (f *flakyStore) RecordRental(context.Context, *models.RentalCompletedEvent) error {
	f.calls++
	return f.err
}

func (f *flakyStore) Seed(context.Context, []models.Book, []models.UserProfile) error { return nil }
func (f *flakyStore) Ping(context.Context) error                                    { return f.err }
func (f *flakyStore) Close(context.Context) error                                   { return nil }

// TestCircuitBreakerStore_OpensAfterFailures verifies the circuit opens after exceeding the failure threshold
func TestCircuitBreakerStore_OpensAfterFailures(t *testing.T) {
	inner := &flakyStore{err: errStoreDown}
	cbs := NewCircuitBreakerStore(inner, "test-opens")
	ctx := context.Background()

	if cbs.State() != gobreaker.StateClosed {
		t.Fatalf("Expected initial state to be Closed, got %v", cbs.State())
	}

	// ReadyToTrip is consulted after each failure once 10 requests are counted
	for i := 0; i < 10; i++ {
		if _, err := cbs.FindBooks(ctx, &catalog.BookQuery{}); !errors.Is(err, errStoreDown) {
			t.Fatalf("call %d: expected store error, got %v", i, err)
		}
	}

	if cbs.State() != gobreaker.StateOpen {
		t.Fatalf("Expected circuit to be Open after 100%% failures, got %v", cbs.State())
	}

	calls := inner.calls
	_, err := cbs.FindBooks(ctx, &catalog.BookQuery{})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState when circuit is open, got %v", err)
	}
	if inner.calls != calls {
		t.Error("Open circuit must not reach the wrapped store")
	}
}

// TestCircuitBreakerStore_DoesNotOpenBelowThreshold verifies the circuit stays closed at a 50% failure rate
func TestCircuitBreakerStore_DoesNotOpenBelowThreshold(t *testing.T) {
	inner := &flakyStore{}
	cbs := NewCircuitBreakerStore(inner, "test-below")
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			inner.err = errStoreDown
		} else {
			inner.err = nil
		}
		_, _ = cbs.FindBooks(ctx, &catalog.BookQuery{})
	}

	if cbs.State() != gobreaker.StateClosed {
		t.Errorf("Expected circuit to remain Closed with 50%% failure rate, got %v", cbs.State())
	}
}

// TestCircuitBreakerStore_NotFoundIsNotAFailure verifies missing readers never trip the breaker
func TestCircuitBreakerStore_NotFoundIsNotAFailure(t *testing.T) {
	inner := &flakyStore{err: fmt.Errorf("user u9: %w", catalog.ErrNotFound)}
	cbs := NewCircuitBreakerStore(inner, "test-notfound")
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := cbs.FindUserByID(ctx, "u9")
		if !errors.Is(err, catalog.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound to pass through, got %v", err)
		}
	}

	if cbs.State() != gobreaker.StateClosed {
		t.Errorf("Expected circuit to remain Closed, got %v", cbs.State())
	}
}

// TestCircuitBreakerStore_PassesResults verifies typed results survive the breaker
func TestCircuitBreakerStore_PassesResults(t *testing.T) {
	cbs := NewCircuitBreakerStore(&flakyStore{}, "test-results")
	ctx := context.Background()

	books, err := cbs.FindBooks(ctx, &catalog.BookQuery{})
	if err != nil || len(books) != 1 || books[0].ID != "b1" {
		t.Errorf("FindBooks = %v, %v", books, err)
	}

	user, err := cbs.FindUserByID(ctx, "u1")
	if err != nil || user.ID != "u1" {
		t.Errorf("FindUserByID = %v, %v", user, err)
	}

	users, err := cbs.FindUsers(ctx, &catalog.UserQuery{})
	if err != nil || users != nil {
		t.Errorf("FindUsers = %v, %v, want nil slice", users, err)
	}

	genres, err := cbs.Distinct(ctx, catalog.FieldGenre)
	if err != nil || len(genres) != 1 {
		t.Errorf("Distinct = %v, %v", genres, err)
	}

	if err := cbs.RecordRental(ctx, &models.RentalCompletedEvent{}); err != nil {
		t.Errorf("RecordRental: %v", err)
	}
	if err := cbs.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestCastResult(t *testing.T) {
	if _, err := castResult[[]string](42, nil); err == nil {
		t.Error("Expected error for mismatched type")
	}
	if _, err := castResult[[]string](nil, errStoreDown); !errors.Is(err, errStoreDown) {
		t.Errorf("Expected passthrough error, got %v", err)
	}
	got, err := castResult[[]string]([]string{"a"}, nil)
	if err != nil || len(got) != 1 {
		t.Errorf("castResult = %v, %v", got, err)
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.f {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.f)
		}
		if got := stateToString(tt.state); got != tt.s {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.s)
		}
	}
}
