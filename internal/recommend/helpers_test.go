// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/database/memory"
	"github.com/tomtom215/folio/internal/models"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

var errStoreDown = errors.New("store unavailable")

func newBook(id, genre, language string, rating float64) models.Book {
	return models.Book{
		ID:            id,
		Title:         "Title " + id,
		Author:        "Author " + id,
		Genre:         genre,
		Language:      language,
		Rating:        rating,
		StockQuantity: 2,
		CreatedAt:     testNow.Add(-24 * time.Hour),
	}
}

func outOfStock(b models.Book) models.Book {
	b.StockQuantity = 0
	return b
}

func intPtr(v int) *int {
	return &v
}

func bookIDs(books []models.Book) []string {
	return models.BookIDs(books)
}

func equalIDs(t *testing.T, got []models.Book, want ...string) {
	t.Helper()
	ids := bookIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

// faultyStore wraps the memory store with injectable failures.
type faultyStore struct {
	*memory.Store

	findUserErr     error
	findUsersErr    error
	findBooksErr    error
	panicFindUser   bool
	panicFindUsers  bool
	panicFindBooks  bool
	sawDeadline     atomic.Bool
	findBooksCalls  atomic.Int32
	findUsersCalled atomic.Int32
}

func (f *faultyStore) FindUserByID(ctx context.Context, id string) (*models.UserProfile, error) {
	if f.panicFindUser {
		panic("user lookup exploded")
	}
	if f.findUserErr != nil {
		return nil, f.findUserErr
	}
	return f.Store.FindUserByID(ctx, id)
}

func (f *faultyStore) FindUsers(ctx context.Context, q *catalog.UserQuery) ([]models.UserProfile, error) {
	f.findUsersCalled.Add(1)
	if f.panicFindUsers {
		panic("peer lookup exploded")
	}
	if f.findUsersErr != nil {
		return nil, f.findUsersErr
	}
	return f.Store.FindUsers(ctx, q)
}

func (f *faultyStore) FindBooks(ctx context.Context, q *catalog.BookQuery) ([]models.Book, error) {
	f.findBooksCalls.Add(1)
	if _, ok := ctx.Deadline(); ok {
		f.sawDeadline.Store(true)
	}
	if f.panicFindBooks {
		panic("book query exploded")
	}
	if f.findBooksErr != nil {
		return nil, f.findBooksErr
	}
	return f.Store.FindBooks(ctx, q)
}

func seedStore(t *testing.T, books []models.Book, users []models.UserProfile) *memory.Store {
	t.Helper()
	store := memory.New()
	if err := store.Seed(context.Background(), books, users); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return store
}

func newTestEngine(t *testing.T, books catalog.BookStore, users catalog.UserStore) *Engine {
	t.Helper()
	engine, err := NewEngine(nil, books, users, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetClock(func() time.Time { return testNow })
	return engine
}

func newMemoryEngine(t *testing.T, books []models.Book, users []models.UserProfile) *Engine {
	t.Helper()
	store := seedStore(t, books, users)
	return newTestEngine(t, store, store)
}

func newFaultyEngine(t *testing.T, books []models.Book, users []models.UserProfile) (*Engine, *faultyStore) {
	t.Helper()
	store := &faultyStore{Store: seedStore(t, books, users)}
	return newTestEngine(t, store, store), store
}

func testRequest(user *models.UserProfile, limit int) *request {
	return &request{
		user:   NormalizeUser(user),
		limit:  limit,
		logger: zerolog.Nop(),
	}
}

// mapCache is a ResultCache backed by a map.
type mapCache struct {
	mu          sync.Mutex
	entries     map[string][]models.Book
	sets        int
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]models.Book)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]models.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	books, ok := c.entries[key]
	return books, ok
}

func (c *mapCache) Set(_ context.Context, _, key string, books []models.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = books
	c.sets++
}

func (c *mapCache) InvalidateUser(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	c.entries = make(map[string][]models.Book)
}
