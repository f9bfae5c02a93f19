// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// Rental event results used as metric labels.
const (
	ResultApplied = "applied"
	ResultInvalid = "invalid"
	ResultUnknown = "unknown_entity"
	ResultFailed  = "failed"
)

// RentalRecorder applies a completed rental to the catalog.
type RentalRecorder interface {
	RecordRental(ctx context.Context, event *models.RentalCompletedEvent) error
}

// Invalidator drops cached recommendations of a reader.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

// RentalHandler folds rental events into the catalog.
type RentalHandler struct {
	store       RentalRecorder
	invalidator Invalidator
	logger      zerolog.Logger
}

// NewRentalHandler creates a handler. invalidator may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRentalHandler(store RentalRecorder, invalidator Invalidator, logger zerolog.Logger) *RentalHandler {
	return &RentalHandler{
		store:       store,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "rental_handler").Logger(),
	}
}

// Handle processes one message. Returning an error nacks the message for retry,
// so only transient failures are returned.
func (h *RentalHandler) Handle(msg *message.Message) error {
	start := time.Now()
	ctx := msg.Context()

	event, err := DecodeRental(msg)
	if err != nil {
		metrics.RecordRentalEvent(ResultInvalid, time.Since(start))
		h.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping invalid rental event")
		return nil
	}

	logger := h.logger.With().
		Str("event_id", event.EventID).
		Str("user_id", event.UserID).
		Str("book_id", event.BookID).
		Logger()

	if err := h.store.RecordRental(ctx, event); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			metrics.RecordRentalEvent(ResultUnknown, time.Since(start))
			logger.Warn().Err(err).Msg("Dropping rental event for unknown book or reader")
			return nil
		}
		metrics.RecordRentalEvent(ResultFailed, time.Since(start))
		logger.Error().Err(err).Msg("Recording rental failed")
		return err
	}

	if h.invalidator != nil {
		h.invalidator.InvalidateUser(ctx, event.UserID)
	}

	metrics.RecordRentalEvent(ResultApplied, time.Since(start))
	logger.Debug().Msg("Rental recorded")
	return nil
}
