// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

// FindUserByID loads a reader profile. A missing reader yields catalog.ErrNotFound.
func (s *MongoStore) FindUserByID(ctx context.Context, id string) (user *models.UserProfile, err error) {
	start := time.Now()
	defer func() { observe("find_one", usersCollection, start, err) }()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var u models.UserProfile
	if err := s.users.FindOne(ctx, bson.D{{Key: catalog.FieldID, Value: id}}).Decode(&u); err != nil {
		return nil, translateError("find user "+id, err)
	}
	return &u, nil
}

// FindUsers runs a reader query in natural order.
func (s *MongoStore) FindUsers(ctx context.Context, q *catalog.UserQuery) (users []models.UserProfile, err error) {
	start := time.Now()
	defer func() { observe("find", usersCollection, start, err) }()

	filter, err := userFilter(q)
	if errors.Is(err, errEmptyMatch) {
		return []models.UserProfile{}, nil
	}
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError("find users", err)
	}

	users = make([]models.UserProfile, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, translateError("decode users", err)
	}
	return users, nil
}
