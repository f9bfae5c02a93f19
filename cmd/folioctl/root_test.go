// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/folio/internal/models"
)

func writeFixtures(t *testing.T) string {
	t.Helper()

	recent := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
	doc := `{
  "books": [
    {"id": "f1", "title": "The Long Road", "author": "A. Writer", "genre": "Fantasy", "language": "English", "rating": 4.8, "stockQuantity": 2},
    {"id": "f2", "title": "Ember", "author": "B. Writer", "genre": "Fantasy", "language": "English", "rating": 4.1, "stockQuantity": 1},
    {"id": "m1", "title": "La Nuit", "author": "C. Auteur", "genre": "Mystery", "language": "French", "rating": 4.6, "stockQuantity": 1},
    {"id": "hot", "title": "Runaway", "author": "D. Writer", "genre": "Thriller", "language": "English", "rating": 4.0, "stockQuantity": 4, "rentalCount": 12, "lastRented": "` + recent + `"}
  ],
  "users": [
    {"id": "u1", "name": "Reader", "favoriteGenres": ["Fantasy"], "preferredLanguages": ["English"]}
  ]
}`

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendCommand(t *testing.T) {
	fixtures := writeFixtures(t)

	out, err := run(t, "recommend", "u1", "--fixtures", fixtures, "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "The Long Road")
	assert.Contains(t, out, "Ember")
	assert.NotContains(t, out, "La Nuit")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.True(t, strings.HasPrefix(lines[0], "#"))
}

func TestRecommendCommandJSON(t *testing.T) {
	fixtures := writeFixtures(t)

	out, err := run(t, "recommend", "u1", "--fixtures", fixtures, "--limit", "2", "--exclude", "f1", "--json")
	require.NoError(t, err)

	var books []models.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	ids := models.BookIDs(books)
	assert.Contains(t, ids, "f2")
	for _, b := range books {
		assert.NotEqual(t, "f1", b.ID)
	}
}

func TestRecommendCommandRequiresUser(t *testing.T) {
	_, err := run(t, "recommend", "--fixtures", writeFixtures(t))
	assert.Error(t, err)
}

func TestTrendingCommand(t *testing.T) {
	fixtures := writeFixtures(t)

	out, err := run(t, "trending", "--fixtures", fixtures, "--json")
	require.NoError(t, err)

	var books []models.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	assert.Equal(t, []string{"hot"}, models.BookIDs(books))

	out, err = run(t, "trending", "--fixtures", fixtures, "--user", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "Runaway")

	out, err = run(t, "trending", "--fixtures", fixtures, "--exclude", "hot")
	require.NoError(t, err)
	assert.Equal(t, "no books\n", out)
}

func TestFacetsCommand(t *testing.T) {
	out, err := run(t, "facets", "--fixtures", writeFixtures(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Fantasy")
	assert.Contains(t, out, "French")
}

func TestSeedCommand(t *testing.T) {
	out, err := run(t, "seed", writeFixtures(t), "--backend", "memory")
	require.NoError(t, err)
	assert.Equal(t, "seeded 4 books and 1 readers into memory\n", out)

	_, err = run(t, "seed", filepath.Join(t.TempDir(), "missing.json"), "--backend", "memory")
	assert.Error(t, err)
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, "facets", "--backend", "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefghij", 5))
}
