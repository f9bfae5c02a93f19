// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/validation"
)

// MetadataEventID carries the event ID in message metadata.
const MetadataEventID = "event_id"

// ErrInvalidEvent marks an event that can never be processed.
var ErrInvalidEvent = errors.New("invalid rental event")

// EncodeRental builds a message for the event. The message UUID is the event
// ID so JetStream and the router deduplicate republished events.
func EncodeRental(event *models.RentalCompletedEvent) (*message.Message, error) {
	if verr := validation.ValidateStruct(event); verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, verr)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal rental event: %w", err)
	}

	msg := message.NewMessage(event.EventID, payload)
	msg.Metadata.Set(MetadataEventID, event.EventID)
	return msg, nil
}

// DecodeRental parses and validates a message payload.
func DecodeRental(msg *message.Message) (*models.RentalCompletedEvent, error) {
	var event models.RentalCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if verr := validation.ValidateStruct(&event); verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, verr)
	}
	return &event, nil
}

// dedupKey identifies a message for the deduplication middleware.
func dedupKey(msg *message.Message) (string, error) {
	if id := msg.Metadata.Get(MetadataEventID); id != "" {
		return id, nil
	}
	return msg.UUID, nil
}
