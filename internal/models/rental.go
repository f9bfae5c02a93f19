// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import "time"

// RentalCompletedEvent is published on the message bus when a reader finishes a rental.
type RentalCompletedEvent struct {
	EventID    string     `json:"eventId" validate:"required"`
	UserID     string     `json:"userId" validate:"required"`
	BookID     string     `json:"bookId" validate:"required"`
	RentedAt   time.Time  `json:"rentedAt" validate:"required"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}
