// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tomtom215/folio/internal/catalog"
)

// errEmptyMatch marks a query that can match no document.
var errEmptyMatch = errors.New("query matches nothing")

// translateError maps driver errors onto catalog errors, wrapping them with the operation name.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, catalog.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isBenign reports errors that say nothing about the health of the store.
func isBenign(err error) bool {
	return err == nil ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, context.Canceled)
}
