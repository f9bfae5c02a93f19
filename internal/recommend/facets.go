// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// CatalogFacets returns the distinct genre and language labels in the catalog.
func (e *Engine) CatalogFacets(ctx context.Context) (*models.CatalogFacets, error) {
	genres, err := e.books.Distinct(ctx, catalog.FieldGenre)
	if err != nil {
		return nil, fmt.Errorf("distinct genres: %w", err)
	}
	languages, err := e.books.Distinct(ctx, catalog.FieldLanguage)
	if err != nil {
		return nil, fmt.Errorf("distinct languages: %w", err)
	}
	return &models.CatalogFacets{Genres: genres, Languages: languages}, nil
}

// logCatalogFacets is a debug aid; failures are logged and ignored.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) logCatalogFacets(ctx context.Context, logger zerolog.Logger) {
	facets, err := e.CatalogFacets(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("Catalog facets unavailable")
		return
	}
	logger.Debug().
		Strs("genres", facets.Genres).
		Strs("languages", facets.Languages).
		Msg("Catalog facets")
}

// GetTrendingBooks returns trending books, personalized when a user is given.
// Failures and panics yield an empty list.
func (e *Engine) GetTrendingBooks(ctx context.Context, excludeIDs []string, user *models.UserProfile, debugLog bool) (books []models.Book) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Trending query panicked")
			books = []models.Book{}
		}
	}()

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	normalized := NormalizeUser(user)
	books, err := e.trendingBooks(ctx, normalized, excludeIDs)
	metrics.RecordRetriever("trending", len(books), err)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Trending query failed")
		return []models.Book{}
	}
	if debugLog {
		e.logger.Debug().Int("results", len(books)).Msg("Trending books")
	}
	return books
}
