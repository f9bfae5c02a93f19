// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

// RecordRental applies a completed rental to the book and then to the reader.
func (s *MongoStore) RecordRental(ctx context.Context, event *models.RentalCompletedEvent) (err error) {
	start := time.Now()
	defer func() { observe("record_rental", booksCollection, start, err) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// Refuse rentals by unknown readers before touching the book.
	count, err := s.users.CountDocuments(ctx, bson.D{{Key: catalog.FieldID, Value: event.UserID}})
	if err != nil {
		return translateError("check user "+event.UserID, err)
	}
	if count == 0 {
		return fmt.Errorf("user %s: %w", event.UserID, catalog.ErrNotFound)
	}

	bookUpdate := bson.D{
		{Key: "$addToSet", Value: bson.D{{Key: fieldReadBy, Value: event.UserID}}},
		{Key: "$inc", Value: bson.D{{Key: catalog.FieldRentalCount, Value: 1}}},
		{Key: "$max", Value: bson.D{{Key: catalog.FieldLastRented, Value: event.RentedAt}}},
	}
	res, err := s.books.UpdateOne(ctx, bson.D{{Key: catalog.FieldID, Value: event.BookID}}, bookUpdate)
	if err != nil {
		return translateError("update book "+event.BookID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("book %s: %w", event.BookID, catalog.ErrNotFound)
	}

	entry := models.ReadingEntry{
		BookID:     event.BookID,
		RentedAt:   event.RentedAt,
		ReturnedAt: event.ReturnedAt,
	}
	userUpdate := bson.D{{Key: "$push", Value: bson.D{{Key: fieldHistory, Value: entry}}}}
	if _, err := s.users.UpdateOne(ctx, bson.D{{Key: catalog.FieldID, Value: event.UserID}}, userUpdate); err != nil {
		return translateError("update user "+event.UserID, err)
	}

	s.logger.Debug().
		Str("event_id", event.EventID).
		Str("user_id", event.UserID).
		Str("book_id", event.BookID).
		Msg("Rental recorded")
	return nil
}

// Seed upserts books and readers by ID.
func (s *MongoStore) Seed(ctx context.Context, books []models.Book, users []models.UserProfile) (err error) {
	start := time.Now()
	defer func() { observe("seed", booksCollection, start, err) }()

	if len(books) > 0 {
		writes := make([]mongo.WriteModel, len(books))
		for i := range books {
			writes[i] = mongo.NewReplaceOneModel().
				SetFilter(bson.D{{Key: catalog.FieldID, Value: books[i].ID}}).
				SetReplacement(books[i]).
				SetUpsert(true)
		}
		if _, err := s.books.BulkWrite(ctx, writes); err != nil {
			return translateError("seed books", err)
		}
	}

	if len(users) > 0 {
		writes := make([]mongo.WriteModel, len(users))
		for i := range users {
			writes[i] = mongo.NewReplaceOneModel().
				SetFilter(bson.D{{Key: catalog.FieldID, Value: users[i].ID}}).
				SetReplacement(users[i]).
				SetUpsert(true)
		}
		if _, err := s.users.BulkWrite(ctx, writes); err != nil {
			return translateError("seed users", err)
		}
	}

	s.logger.Info().Int("books", len(books)).Int("users", len(users)).Msg("Catalog seeded")
	return nil
}
