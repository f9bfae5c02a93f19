// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database/memory"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

var errPingFailed = errors.New("ping failed")

// downStore answers every ping with an error.
type downStore struct {
	*memory.Store
}

func (downStore) Ping(context.Context) error { return errPingFailed }

func testBook(id, genre, language string, rating float64) models.Book {
	return models.Book{
		ID:            id,
		Title:         "Title " + id,
		Author:        "Author " + id,
		Genre:         genre,
		Language:      language,
		Rating:        rating,
		StockQuantity: 3,
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testCatalog(t *testing.T) *memory.Store {
	t.Helper()

	recent := time.Now().Add(-48 * time.Hour)
	hot := testBook("hot1", "Thriller", "English", 4.0)
	hot.RentalCount = 9
	hot.LastRented = &recent

	books := []models.Book{
		testBook("f1", "Fantasy", "English", 4.8),
		testBook("f2", "Fantasy", "English", 4.2),
		testBook("f3", "Fantasy", "English", 3.9),
		testBook("m1", "Mystery", "French", 4.9),
		hot,
	}
	users := []models.UserProfile{{
		ID:                 "u1",
		Name:               "Reader One",
		FavoriteGenres:     []string{"Fantasy"},
		PreferredLanguages: []string{"English"},
	}}

	store := memory.New()
	if err := store.Seed(context.Background(), books, users); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Backend: config.BackendMemory},
		Security: config.SecurityConfig{
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"https://app.example.com"},
		},
	}
}

type testServer struct {
	handler http.Handler
	monitor *middleware.LatencyMonitor
}

func newTestServer(t *testing.T, store catalog.Store, cfg *config.Config) *testServer {
	t.Helper()

	engine, err := recommend.NewEngine(nil, store, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	monitor := middleware.NewLatencyMonitor(100, 0)
	h := NewHandler(engine, store, cfg, monitor)
	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security)))
	return &testServer{handler: router.Setup(), monitor: monitor}
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// envelope mirrors models.APIResponse with a raw payload.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

func bookIDs(books []models.Book) []string {
	ids := make([]string, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
