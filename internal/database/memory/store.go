// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package memory implements catalog.Store in process.
//
// The store evaluates catalog queries with the same predicates and ordering the
// MongoDB repositories express as filters, which makes it a faithful stand-in for
// tests, the CLI and single-node deployments seeded from JSON fixtures.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

// Store is a thread-safe in-memory catalog. Iteration follows insertion order.
type Store struct {
	mu        sync.RWMutex
	books     map[string]*models.Book
	bookOrder []string
	users     map[string]*models.UserProfile
	userOrder []string
}

var _ catalog.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		books: make(map[string]*models.Book),
		users: make(map[string]*models.UserProfile),
	}
}

// NewWithFixtures creates a store pre-populated from fixtures.
func NewWithFixtures(f *Fixtures) *Store {
	s := New()
	if f != nil {
		s.put(f.Books, f.Users)
	}
	return s
}

// FindBooks returns the books matching q, ordered by q.Sort and truncated to q.Limit.
func (s *Store) FindBooks(ctx context.Context, q *catalog.BookQuery) ([]models.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	results := make([]models.Book, 0)
	for _, id := range s.bookOrder {
		b := s.books[id]
		if q.Matches(b) {
			results = append(results, cloneBook(b))
		}
	}
	s.mu.RUnlock()

	if len(q.Sort) > 0 {
		catalog.SortBooks(results, q.Sort)
	}
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// Distinct returns the sorted distinct non-empty values of a book field.
func (s *Store) Distinct(ctx context.Context, field string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, id := range s.bookOrder {
		v, ok := catalog.FieldValue(s.books[id], field)
		if !ok {
			return nil, fmt.Errorf("distinct: unsupported field %q", field)
		}
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// FindUserByID returns a copy of the reader or catalog.ErrNotFound.
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, catalog.ErrNotFound)
	}
	clone := cloneUser(u)
	return &clone, nil
}

// FindUsers returns readers matching q in insertion order.
func (s *Store) FindUsers(ctx context.Context, q *catalog.UserQuery) ([]models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.UserProfile, 0)
	for _, id := range s.userOrder {
		u := s.users[id]
		if !q.Matches(u) {
			continue
		}
		results = append(results, cloneUser(u))
		if q.Limit > 0 && len(results) == q.Limit {
			break
		}
	}
	return results, nil
}

// RecordRental applies a completed rental to the book and the reader.
func (s *Store) RecordRental(ctx context.Context, event *models.RentalCompletedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[event.BookID]
	if !ok {
		return fmt.Errorf("book %s: %w", event.BookID, catalog.ErrNotFound)
	}
	user, ok := s.users[event.UserID]
	if !ok {
		return fmt.Errorf("user %s: %w", event.UserID, catalog.ErrNotFound)
	}

	if !containsString(book.ReadBy, event.UserID) {
		book.ReadBy = append(book.ReadBy, event.UserID)
	}
	book.RentalCount++
	if book.LastRented == nil || event.RentedAt.After(*book.LastRented) {
		rentedAt := event.RentedAt
		book.LastRented = &rentedAt
	}

	user.ReadingHistory = append(user.ReadingHistory, models.ReadingEntry{
		BookID:     event.BookID,
		RentedAt:   event.RentedAt,
		ReturnedAt: event.ReturnedAt,
	})
	return nil
}

// Seed upserts books and readers by ID.
func (s *Store) Seed(ctx context.Context, books []models.Book, users []models.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.put(books, users)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

func (s *Store) put(books []models.Book, users []models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range books {
		b := cloneBook(&books[i])
		if _, exists := s.books[b.ID]; !exists {
			s.bookOrder = append(s.bookOrder, b.ID)
		}
		s.books[b.ID] = &b
	}
	for i := range users {
		u := cloneUser(&users[i])
		if _, exists := s.users[u.ID]; !exists {
			s.userOrder = append(s.userOrder, u.ID)
		}
		s.users[u.ID] = &u
	}
}

func cloneBook(b *models.Book) models.Book {
	c := *b
	if b.ReadBy != nil {
		c.ReadBy = append([]string(nil), b.ReadBy...)
	}
	if b.LastRented != nil {
		t := *b.LastRented
		c.LastRented = &t
	}
	return c
}

func cloneUser(u *models.UserProfile) models.UserProfile {
	c := *u
	if u.FavoriteGenres != nil {
		c.FavoriteGenres = append([]string(nil), u.FavoriteGenres...)
	}
	if u.PreferredLanguages != nil {
		c.PreferredLanguages = append([]string(nil), u.PreferredLanguages...)
	}
	if u.ReadingHistory != nil {
		c.ReadingHistory = append([]models.ReadingEntry(nil), u.ReadingHistory...)
	}
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	if u.RentalPreferences != nil {
		prefs := *u.RentalPreferences
		c.RentalPreferences = &prefs
	}
	return c
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
