// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type blockingRunner struct {
	served atomic.Int32
}

func (r *blockingRunner) Serve(ctx context.Context) error {
	r.served.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

var _ suture.Service = (*ConsumerService)(nil)

func TestConsumerServiceFactoryError(t *testing.T) {
	dialErr := errors.New("nats: no servers available for connection")
	svc := NewConsumerService(func(context.Context) (Runner, error) {
		return nil, dialErr
	}, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, dialErr) {
		t.Errorf("Serve = %v, want wrapped dial error", err)
	}
	if svc.String() != "rental-event-consumer" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestConsumerServiceRebuildsAfterFailure(t *testing.T) {
	var builds atomic.Int32
	runner := &blockingRunner{}
	svc := NewConsumerService(func(context.Context) (Runner, error) {
		if builds.Add(1) <= 2 {
			return nil, errors.New("stream not ready")
		}
		return runner, nil
	}, zerolog.Nop())

	sup := suture.New("test", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for runner.served.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("runner never served after %d builds", builds.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-errCh

	if got := builds.Load(); got != 3 {
		t.Errorf("factory calls = %d, want 3", got)
	}
}
