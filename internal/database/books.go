// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

// FindBooks runs a book query.
func (s *MongoStore) FindBooks(ctx context.Context, q *catalog.BookQuery) (books []models.Book, err error) {
	start := time.Now()
	defer func() { observe("find", booksCollection, start, err) }()

	filter, err := bookFilter(q)
	if errors.Is(err, errEmptyMatch) {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if sortDoc := bookSort(q.Sort); sortDoc != nil {
		opts.SetSort(sortDoc)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.books.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError("find books", err)
	}

	books = make([]models.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, translateError("decode books", err)
	}
	return books, nil
}

// Distinct returns the sorted distinct non-empty values of a book field.
func (s *MongoStore) Distinct(ctx context.Context, field string) (values []string, err error) {
	start := time.Now()
	defer func() { observe("distinct", booksCollection, start, err) }()

	switch field {
	case catalog.FieldGenre, catalog.FieldLanguage, catalog.FieldTitle, catalog.FieldID:
	default:
		return nil, fmt.Errorf("distinct: unsupported field %q", field)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var raw []string
	if err := s.books.Distinct(ctx, field, bson.D{}).Decode(&raw); err != nil {
		return nil, translateError("distinct "+field, err)
	}

	values = make([]string, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values, nil
}
