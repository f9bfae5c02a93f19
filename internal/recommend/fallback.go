// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

// fallbackStep is one query of the generic fallback chain.
type fallbackStep struct {
	name  string
	query func() *catalog.BookQuery
}

// genericFallback returns the first non-empty result of a chain of increasingly
// generic queries: the reader's genres, the reader's languages, well rated books,
// then the newest books. A nil user skips the preference steps. Failures yield
// an empty list.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) genericFallback(ctx context.Context, user *models.UserProfile, exclude []string, limit int, logger zerolog.Logger) (books []models.Book) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Generic fallback panicked")
			books = []models.Book{}
		}
	}()

	minRating := e.config.FallbackMinRating
	steps := make([]fallbackStep, 0, 4)
	if user != nil && len(user.FavoriteGenres) > 0 {
		steps = append(steps, fallbackStep{name: "genres", query: func() *catalog.BookQuery {
			return &catalog.BookQuery{Genre: catalog.Contains(user.FavoriteGenres...), Sort: catalog.ByRatingDesc}
		}})
	}
	if user != nil && len(user.PreferredLanguages) > 0 {
		steps = append(steps, fallbackStep{name: "languages", query: func() *catalog.BookQuery {
			return &catalog.BookQuery{Language: catalog.Contains(user.PreferredLanguages...), Sort: catalog.ByRatingDesc}
		}})
	}
	steps = append(steps,
		fallbackStep{name: "popular", query: func() *catalog.BookQuery {
			return &catalog.BookQuery{MinRating: &minRating, Sort: catalog.ByRatingDesc}
		}},
		fallbackStep{name: "newest", query: func() *catalog.BookQuery {
			return &catalog.BookQuery{Sort: []catalog.SortSpec{{Field: catalog.FieldCreatedAt, Descending: true}}}
		}},
	)

	for _, step := range steps {
		q := step.query()
		q.IDsNotIn = exclude
		q.InStockOnly = true
		q.Limit = limit

		result, err := e.books.FindBooks(ctx, q)
		if err != nil {
			logger.Warn().Err(err).Str("step", step.name).Msg("Generic fallback query failed")
			return []models.Book{}
		}
		if len(result) > 0 {
			logger.Debug().Str("step", step.name).Int("results", len(result)).Msg("Generic fallback served")
			return result
		}
	}
	return []models.Book{}
}
