// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/metrics"
)

// MongoStore is the MongoDB-backed catalog.Store.
type MongoStore struct {
	client  *mongo.Client
	books   *mongo.Collection
	users   *mongo.Collection
	timeout time.Duration
	logger  zerolog.Logger
}

var _ catalog.Store = (*MongoStore)(nil)

// NewMongoStore connects to MongoDB, verifies the deployment is reachable and
// creates the catalog indexes unless cfg.SkipIndexes is set.
func NewMongoStore(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAppName("folio")

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	db := client.Database(cfg.Name)
	store := &MongoStore{
		client:  client,
		books:   db.Collection(booksCollection),
		users:   db.Collection(usersCollection),
		timeout: cfg.Timeout,
		logger:  logger.With().Str("backend", config.BackendMongo).Str("database", cfg.Name).Logger(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if !cfg.SkipIndexes {
		if err := store.ensureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	store.logger.Info().Msg("Connected to MongoDB")
	return store, nil
}

// ensureIndexes creates the indexes used by the retrievers. CreateMany is idempotent.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bookIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: catalog.FieldGenre, Value: 1}}, Options: options.Index().SetName("idx_books_genre")},
		{Keys: bson.D{{Key: catalog.FieldLanguage, Value: 1}}, Options: options.Index().SetName("idx_books_language")},
		{Keys: bson.D{{Key: catalog.FieldRating, Value: -1}}, Options: options.Index().SetName("idx_books_rating")},
		{Keys: bson.D{{Key: fieldReadBy, Value: 1}}, Options: options.Index().SetName("idx_books_read_by")},
		{Keys: bson.D{{Key: catalog.FieldLastRented, Value: -1}, {Key: catalog.FieldRentalCount, Value: -1}}, Options: options.Index().SetName("idx_books_trending")},
		{Keys: bson.D{{Key: catalog.FieldCreatedAt, Value: -1}}, Options: options.Index().SetName("idx_books_created_at")},
	}
	if _, err := s.books.Indexes().CreateMany(ctx, bookIndexes); err != nil {
		return fmt.Errorf("failed to create book indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: fieldHistoryBookID, Value: 1}}, Options: options.Index().SetName("idx_users_history_book")},
		{Keys: bson.D{{Key: fieldAge, Value: 1}, {Key: fieldLocation, Value: 1}, {Key: fieldOccupation, Value: 1}}, Options: options.Index().SetName("idx_users_demographics")},
	}
	if _, err := s.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	s.logger.Debug().Int("book_indexes", len(bookIndexes)).Int("user_indexes", len(userIndexes)).Msg("Indexes ensured")
	return nil
}

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}

// withTimeout bounds a single store operation by the configured timeout.
func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// observe records the duration and error of an operation.
func observe(operation, collection string, start time.Time, err error) {
	metrics.RecordStoreOperation(operation, collection, time.Since(start), err)
}
