// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package memory

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/models"
)

// Fixtures is the JSON document used to seed a catalog.
//
//	{"books": [{"id": "b1", "title": "...", ...}], "users": [{"id": "u1", ...}]}
type Fixtures struct {
	Books []models.Book        `json:"books"`
	Users []models.UserProfile `json:"users"`
}

// ReadFixtures decodes fixtures from r, rejecting entries without an ID.
func ReadFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	for i := range f.Books {
		if f.Books[i].ID == "" {
			return nil, fmt.Errorf("fixtures: book at index %d has no id", i)
		}
	}
	for i := range f.Users {
		if f.Users[i].ID == "" {
			return nil, fmt.Errorf("fixtures: user at index %d has no id", i)
		}
	}
	return &f, nil
}

// LoadFixtures reads a fixture file from disk.
func LoadFixtures(path string) (*Fixtures, error) {
	file, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open fixtures %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return ReadFixtures(file)
}
