// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/database/memory"
	"github.com/tomtom215/folio/internal/models"
)

var rentedAt = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	books := []models.Book{
		{ID: "b1", Title: "Dune", Genre: "Science Fiction", Language: "English", Rating: 4.5, StockQuantity: 3},
		{ID: "b2", Title: "Emma", Genre: "Classic", Language: "English", Rating: 4.1, StockQuantity: 1},
	}
	users := []models.UserProfile{{ID: "u1", Name: "Reader One"}}
	if err := store.Seed(context.Background(), books, users); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return store
}

func rental(eventID, userID, bookID string) *models.RentalCompletedEvent {
	return &models.RentalCompletedEvent{
		EventID:  eventID,
		UserID:   userID,
		BookID:   bookID,
		RentedAt: rentedAt,
	}
}

func findBook(t *testing.T, store *memory.Store, id string) models.Book {
	t.Helper()
	books, err := store.FindBooks(context.Background(), &catalog.BookQuery{IDsIn: []string{id}})
	if err != nil {
		t.Fatalf("FindBooks() error = %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("FindBooks(%s) returned %d books", id, len(books))
	}
	return books[0]
}

type recordingInvalidator struct {
	mu    sync.Mutex
	users []string
}

func (r *recordingInvalidator) InvalidateUser(_ context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
}

func (r *recordingInvalidator) invalidated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.users...)
}

type failingRecorder struct {
	err   error
	calls int
}

func (f *failingRecorder) RecordRental(context.Context, *models.RentalCompletedEvent) error {
	f.calls++
	return f.err
}
