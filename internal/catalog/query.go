// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

// Book document fields that queries may sort on or ask distinct values of.
const (
	FieldID          = "_id"
	FieldTitle       = "title"
	FieldGenre       = "genre"
	FieldLanguage    = "language"
	FieldRating      = "rating"
	FieldRentalCount = "rentalCount"
	FieldLastRented  = "lastRented"
	FieldCreatedAt   = "createdAt"
)

// ErrNotFound is returned by UserStore.FindUserByID when no reader has the ID.
var ErrNotFound = errors.New("not found")

// SortSpec orders results by one field.
type SortSpec struct {
	Field      string
	Descending bool
}

// ByRatingDesc is the ordering used by most retrievers.
var ByRatingDesc = []SortSpec{{Field: FieldRating, Descending: true}}

// BookQuery selects books. Zero-valued fields do not constrain the result.
type BookQuery struct {
	// Genre and Language are ANDed when both are set.
	Genre    *TextMatch
	Language *TextMatch

	// IDsIn restricts results to the listed IDs when non-nil. An empty non-nil
	// slice matches nothing.
	IDsIn []string

	// IDsNotIn removes the listed IDs.
	IDsNotIn []string

	// ReadByAny keeps books read by at least one of the listed readers when non-nil.
	ReadByAny []string

	// InStockOnly keeps books with stockQuantity > 0.
	InStockOnly bool

	// MinRating keeps books with rating >= *MinRating.
	MinRating *float64

	// MinRentalCount keeps books with rentalCount >= MinRentalCount when positive.
	MinRentalCount int

	// RentedSince keeps books whose lastRented is at or after the instant.
	RentedSince *time.Time

	Sort  []SortSpec
	Limit int
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int
	Max int
}

// UserQuery selects readers. Set fields are ANDed.
type UserQuery struct {
	Age        *IntRange
	Location   string
	Occupation string

	// ReadAnyOf keeps readers whose history contains at least one of the books.
	ReadAnyOf []string

	// ExcludeIDs removes the listed readers.
	ExcludeIDs []string

	Limit int
}

// BookStore reads the book catalog.
type BookStore interface {
	FindBooks(ctx context.Context, q *BookQuery) ([]models.Book, error)
	Distinct(ctx context.Context, field string) ([]string, error)
}

// UserStore reads reader profiles.
type UserStore interface {
	// FindUserByID returns ErrNotFound when the reader does not exist.
	FindUserByID(ctx context.Context, id string) (*models.UserProfile, error)
	FindUsers(ctx context.Context, q *UserQuery) ([]models.UserProfile, error)
}

// Store is the full persistence surface used by the service.
type Store interface {
	BookStore
	UserStore

	// RecordRental applies a completed rental: the reader joins the book's readBy
	// set, rentalCount is incremented, lastRented advances and the reader's history
	// gains an entry.
	RecordRental(ctx context.Context, event *models.RentalCompletedEvent) error

	// Seed upserts books and readers by ID.
	Seed(ctx context.Context, books []models.Book, users []models.UserProfile) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
