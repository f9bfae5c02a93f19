// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/cache"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/models"
)

const testTopic = "rentals.completed"

func testRouterConfig() RouterConfig {
	return RouterConfig{
		Topic:                testTopic,
		CloseTimeout:         time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
		RetryMultiplier:      2.0,
	}
}

// startRouter runs a router over an in-process pub/sub whose Publish blocks
// until the handler acks.
func startRouter(t *testing.T, rec RentalRecorder, inv Invalidator, dedup ExpiringKeyRepository) *gochannel.GoChannel {
	t.Helper()

	logger := watermill.NopLogger{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, logger)

	router, err := NewRouter(testRouterConfig(), pubSub, NewRentalHandler(rec, inv, zerolog.Nop()), dedup, logger)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := router.Run(ctx); err != nil {
			t.Errorf("router.Run() error = %v", err)
		}
	}()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		<-done
		_ = pubSub.Close()
	})
	return pubSub
}

func publish(t *testing.T, pub message.Publisher, event *models.RentalCompletedEvent) {
	t.Helper()
	msg, err := EncodeRental(event)
	if err != nil {
		t.Fatalf("EncodeRental() error = %v", err)
	}
	if err := pub.Publish(testTopic, msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestRouterDropsRedeliveredEvents(t *testing.T) {
	store := newStore(t)
	inv := &recordingInvalidator{}
	pubSub := startRouter(t, store, inv, cache.NewMemoryDeduplicator(100, time.Minute))

	publish(t, pubSub, rental("evt-1", "u1", "b1"))
	publish(t, pubSub, rental("evt-1", "u1", "b1"))
	publish(t, pubSub, rental("evt-2", "u1", "b2"))

	if got := findBook(t, store, "b1").RentalCount; got != 1 {
		t.Errorf("b1 RentalCount = %d, want 1", got)
	}
	if got := findBook(t, store, "b2").RentalCount; got != 1 {
		t.Errorf("b2 RentalCount = %d, want 1", got)
	}
	if got := inv.invalidated(); len(got) != 2 {
		t.Errorf("invalidated = %v, want two entries", got)
	}
}

func TestRouterWithoutDeduplication(t *testing.T) {
	store := newStore(t)
	pubSub := startRouter(t, store, nil, nil)

	publish(t, pubSub, rental("evt-1", "u1", "b1"))
	publish(t, pubSub, rental("evt-1", "u1", "b1"))

	if got := findBook(t, store, "b1").RentalCount; got != 2 {
		t.Errorf("b1 RentalCount = %d, want 2", got)
	}
}

// flakyRecorder fails the first failures calls and then delegates.
type flakyRecorder struct {
	mu       sync.Mutex
	next     RentalRecorder
	failures int
	calls    int
}

func (f *flakyRecorder) RecordRental(ctx context.Context, event *models.RentalCompletedEvent) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return errors.New("temporary failure")
	}
	return f.next.RecordRental(ctx, event)
}

func TestRouterRetriesTransientFailures(t *testing.T) {
	store := newStore(t)
	rec := &flakyRecorder{next: store, failures: 2}
	pubSub := startRouter(t, rec, nil, cache.NewMemoryDeduplicator(100, time.Minute))

	publish(t, pubSub, rental("evt-1", "u1", "b1"))

	if got := findBook(t, store, "b1").RentalCount; got != 1 {
		t.Errorf("RentalCount = %d, want 1", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.calls != 3 {
		t.Errorf("RecordRental calls = %d, want 3", rec.calls)
	}
}

func TestRouterConfigFrom(t *testing.T) {
	cfg := config.EventsConfig{
		Topic:                "rental.completed",
		RetryCount:           4,
		RetryInitialInterval: 250 * time.Millisecond,
		CloseTimeout:         10 * time.Second,
	}
	got := RouterConfigFrom(&cfg)
	if got.Topic != cfg.Topic {
		t.Errorf("Topic = %q, want %q", got.Topic, cfg.Topic)
	}
	if got.RetryMaxRetries != cfg.RetryCount {
		t.Errorf("RetryMaxRetries = %d, want %d", got.RetryMaxRetries, cfg.RetryCount)
	}
	if got.RetryInitialInterval != cfg.RetryInitialInterval {
		t.Errorf("RetryInitialInterval = %v, want %v", got.RetryInitialInterval, cfg.RetryInitialInterval)
	}
	if got.CloseTimeout != cfg.CloseTimeout {
		t.Errorf("CloseTimeout = %v, want %v", got.CloseTimeout, cfg.CloseTimeout)
	}
}
