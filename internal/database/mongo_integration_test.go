// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

//go:build integration

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database/memory"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/testinfra"
)

func intPtr(v int) *int { return &v }

func integrationCatalog() ([]models.Book, []models.UserProfile) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Millisecond)

	books := []models.Book{
		{ID: "b1", Title: "Chemmeen", Genre: "Fiction", Language: "Malayalam", Rating: 4.6, StockQuantity: 2, CreatedAt: created},
		{ID: "b2", Title: "Aadujeevitham", Genre: "fiction", Language: "Malayalam", Rating: 4.6, StockQuantity: 1, CreatedAt: created.Add(time.Hour)},
		{ID: "b3", Title: "Sapiens", Genre: "History", Language: "English", Rating: 4.4, StockQuantity: 0, CreatedAt: created.Add(2 * time.Hour)},
		{ID: "b4", Title: "Science Fiction Stories", Genre: "Science Fiction", Language: "English", Rating: 3.9, StockQuantity: 4,
			RentalCount: 5, LastRented: &recent, CreatedAt: created.Add(3 * time.Hour), ReadBy: []string{"u2"}},
	}
	users := []models.UserProfile{
		{ID: "u1", Age: intPtr(28), Location: "Kochi", ReadingHistory: []models.ReadingEntry{{BookID: "b1", RentedAt: created}}},
		{ID: "u2", Age: intPtr(31), Location: "Kochi", ReadingHistory: []models.ReadingEntry{{BookID: "b1", RentedAt: created}, {BookID: "b4", RentedAt: created}}},
	}
	return books, users
}

// TestMongoStore_MatchesMemoryStore runs the same queries against MongoDB and the
// memory store and expects identical ordered results.
func TestMongoStore_MatchesMemoryStore(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container)

	cfg := &config.DatabaseConfig{
		Backend:        config.BackendMongo,
		URI:            container.URI,
		Name:           "folio_test",
		ConnectTimeout: 30 * time.Second,
		Timeout:        10 * time.Second,
	}
	store, err := NewMongoStore(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer store.Close(ctx)

	books, users := integrationCatalog()
	if err := store.Seed(ctx, books, users); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	mem := memory.New()
	if err := mem.Seed(ctx, books, users); err != nil {
		t.Fatalf("memory Seed: %v", err)
	}

	minRating := 4.0
	since := time.Now().Add(-30 * 24 * time.Hour)
	queries := map[string]*catalog.BookQuery{
		"exact genre":     {Genre: catalog.Exact("fiction"), InStockOnly: true, Sort: catalog.ByRatingDesc},
		"contains genre":  {Genre: catalog.Contains("fic"), Sort: catalog.ByRatingDesc},
		"word pair":       {Genre: catalog.Word("fiction"), Language: catalog.Contains("eng")},
		"read by peers":   {ReadByAny: []string{"u2"}, InStockOnly: true},
		"ids":             {IDsIn: []string{"b1", "b2", "b3"}, IDsNotIn: []string{"b2"}, Sort: catalog.ByRatingDesc},
		"min rating":      {MinRating: &minRating, Sort: catalog.ByRatingDesc, Limit: 2},
		"trending window": {RentedSince: &since, MinRentalCount: 3, Sort: []catalog.SortSpec{{Field: catalog.FieldRentalCount, Descending: true}}},
		"newest":          {InStockOnly: true, Sort: []catalog.SortSpec{{Field: catalog.FieldCreatedAt, Descending: true}}, Limit: 2},
		"empty terms":     {Genre: catalog.Exact()},
	}

	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			got, err := store.FindBooks(ctx, q)
			if err != nil {
				t.Fatalf("mongo FindBooks: %v", err)
			}
			want, err := mem.FindBooks(ctx, q)
			if err != nil {
				t.Fatalf("memory FindBooks: %v", err)
			}
			gotIDs, wantIDs := models.BookIDs(got), models.BookIDs(want)
			if len(gotIDs) != len(wantIDs) {
				t.Fatalf("mongo = %v, memory = %v", gotIDs, wantIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != wantIDs[i] {
					t.Fatalf("mongo = %v, memory = %v", gotIDs, wantIDs)
				}
			}
		})
	}

	peers, err := store.FindUsers(ctx, &catalog.UserQuery{Age: &catalog.IntRange{Min: 26, Max: 36}, Location: "Kochi", ExcludeIDs: []string{"u1"}})
	if err != nil || len(peers) != 1 || peers[0].ID != "u2" {
		t.Errorf("FindUsers = %v, %v", peers, err)
	}

	genres, err := store.Distinct(ctx, catalog.FieldGenre)
	if err != nil || len(genres) != 4 {
		t.Errorf("Distinct = %v, %v", genres, err)
	}

	if _, err := store.FindUserByID(ctx, "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("FindUserByID(missing) err = %v, want ErrNotFound", err)
	}

	rentedAt := time.Now().UTC().Truncate(time.Millisecond)
	if err := store.RecordRental(ctx, &models.RentalCompletedEvent{EventID: "e1", UserID: "u1", BookID: "b2", RentedAt: rentedAt}); err != nil {
		t.Fatalf("RecordRental: %v", err)
	}
	rented, err := store.FindBooks(ctx, &catalog.BookQuery{ReadByAny: []string{"u1"}})
	if err != nil || len(rented) != 1 || rented[0].RentalCount != 1 {
		t.Errorf("rented books = %v, %v", rented, err)
	}
	u1, err := store.FindUserByID(ctx, "u1")
	if err != nil || len(u1.ReadingHistory) != 2 {
		t.Errorf("u1 history = %v, %v", u1, err)
	}

	err = store.RecordRental(ctx, &models.RentalCompletedEvent{EventID: "e2", UserID: "nobody", BookID: "b2", RentedAt: rentedAt})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("RecordRental(unknown user) err = %v, want ErrNotFound", err)
	}
}
