// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"testing"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

func TestForcedScore(t *testing.T) {
	t.Parallel()

	user := NormalizeUser(&models.UserProfile{FavoriteGenres: []string{"Fantasy"}, PreferredLanguages: []string{"english"}})

	tests := []struct {
		name     string
		genre    string
		language string
		want     float64
	}{
		{"no overlap", "horror", "german", 1},
		{"genre containment", "dark fantasy", "german", 3},
		{"genre contained", "fan", "german", 3},
		{"exact genre", "FANTASY", "german", 4},
		{"language containment", "horror", "english (uk)", 3},
		{"exact both", "fantasy", "English", 7},
		{"empty attributes", "", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newBook("x", tt.genre, tt.language, 1)
			if got := forcedScore(&b, user); got != tt.want {
				t.Errorf("forcedScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForcedQueries_Order(t *testing.T) {
	t.Parallel()

	user := &models.UserProfile{FavoriteGenres: []string{"g1", "g2"}, PreferredLanguages: []string{"l1"}}
	queries := forcedQueries(user)

	if len(queries) != 7 {
		t.Fatalf("got %d queries, want 7", len(queries))
	}

	tests := []struct {
		genreMode, languageMode catalog.MatchMode
		genre, language         string
	}{
		{catalog.MatchContains, -1, "g1", ""},
		{catalog.MatchContains, -1, "g2", ""},
		{-1, catalog.MatchContains, "", "l1"},
		{catalog.MatchWord, catalog.MatchWord, "g1", "l1"},
		{catalog.MatchContains, catalog.MatchContains, "g1", "l1"},
		{catalog.MatchWord, catalog.MatchWord, "g2", "l1"},
		{catalog.MatchContains, catalog.MatchContains, "g2", "l1"},
	}
	for i, tt := range tests {
		q := queries[i]
		checkForcedText(t, i, "genre", q.Genre, tt.genreMode, tt.genre)
		checkForcedText(t, i, "language", q.Language, tt.languageMode, tt.language)
	}
}

// checkForcedText asserts one text predicate of a forced query. A negative
// mode means the predicate must be absent.
func checkForcedText(t *testing.T, i int, field string, m *catalog.TextMatch, mode catalog.MatchMode, term string) {
	t.Helper()
	if mode < 0 {
		if m != nil {
			t.Errorf("query %d: unexpected %s predicate %+v", i, field, m)
		}
		return
	}
	if m == nil {
		t.Errorf("query %d: missing %s predicate", i, field)
		return
	}
	if m.Mode != mode || len(m.Terms) != 1 || m.Terms[0] != term {
		t.Errorf("query %d: %s = %s %v, want %s [%s]", i, field, m.Mode, m.Terms, mode, term)
	}
}

func TestForcedMatches_StopsAtLimit(t *testing.T) {
	t.Parallel()

	books := []models.Book{
		newBook("a", "fantasy", "english", 4.0),
		newBook("b", "fantasy", "english", 4.5),
		newBook("c", "urban fantasy", "english", 5.0),
	}
	engine, store := newFaultyEngine(t, books, nil)

	req := testRequest(&models.UserProfile{FavoriteGenres: []string{"fantasy"}, PreferredLanguages: []string{"english"}}, 2)
	got, err := engine.forcedMatches(context.Background(), req)
	if err != nil {
		t.Fatalf("forcedMatches() error = %v", err)
	}
	// The first query fills the limit; b outranks c on exact genre.
	equalIDs(t, got, "b", "c")
	if calls := store.findBooksCalls.Load(); calls != 1 {
		t.Errorf("FindBooks calls = %d, want 1", calls)
	}
}

func TestForcedMatches_Errors(t *testing.T) {
	t.Parallel()

	engine, store := newFaultyEngine(t, []models.Book{newBook("a", "fantasy", "english", 4)}, nil)
	store.findBooksErr = errStoreDown

	req := testRequest(&models.UserProfile{FavoriteGenres: []string{"fantasy"}}, 5)
	if _, err := engine.forcedMatches(context.Background(), req); err == nil {
		t.Error("forcedMatches() expected error")
	}

	got, err := engine.forcedMatches(context.Background(), testRequest(&models.UserProfile{}, 5))
	if err != nil || len(got) != 0 {
		t.Errorf("no preferences: got %v, %v", got, err)
	}
}

func TestDirectMatches_RespectsExclusion(t *testing.T) {
	t.Parallel()

	engine := newMemoryEngine(t, []models.Book{
		newBook("a", "poetry", "hindi", 4.0),
		newBook("b", "poetry", "hindi", 4.5),
		newBook("c", "poetry", "urdu", 4.8),
	}, nil)

	req := testRequest(&models.UserProfile{FavoriteGenres: []string{"poetry"}, PreferredLanguages: []string{"hindi"}}, 5)
	req.exclude = []string{"b"}
	got, err := engine.directMatches(context.Background(), req, 10)
	if err != nil {
		t.Fatalf("directMatches() error = %v", err)
	}
	equalIDs(t, got, "a")
}
