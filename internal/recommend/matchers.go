// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
)

// directMatches returns in-stock books whose genre is a favorite genre and whose
// language is a preferred language, exact after case folding.
func (e *Engine) directMatches(ctx context.Context, req *request, limit int) ([]models.Book, error) {
	books, err := e.books.FindBooks(ctx, &catalog.BookQuery{
		Genre:       catalog.Exact(req.user.FavoriteGenres...),
		Language:    catalog.Exact(req.user.PreferredLanguages...),
		IDsNotIn:    req.exclude,
		InStockOnly: true,
		Sort:        catalog.ByRatingDesc,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("direct match query: %w", err)
	}
	return books, nil
}

// forcedMatches runs progressively broader queries built from each preference
// value, and each genre/language pair, until limit unique books are gathered.
// Results are re-ranked by forcedScore.
func (e *Engine) forcedMatches(ctx context.Context, req *request) ([]models.Book, error) {
	user := req.user
	if len(user.FavoriteGenres) == 0 && len(user.PreferredLanguages) == 0 {
		return []models.Book{}, nil
	}

	queries := forcedQueries(user)
	seen := make(map[string]struct{})
	found := make([]models.Book, 0, req.limit)

	for _, fq := range queries {
		if len(found) >= req.limit {
			break
		}
		q := fq
		q.IDsNotIn = req.exclude
		q.InStockOnly = true
		q.Sort = catalog.ByRatingDesc
		q.Limit = req.limit

		books, err := e.books.FindBooks(ctx, &q)
		if err != nil {
			return nil, fmt.Errorf("forced match query: %w", err)
		}
		for i := range books {
			if _, dup := seen[books[i].ID]; dup {
				continue
			}
			seen[books[i].ID] = struct{}{}
			found = append(found, books[i])
			if len(found) >= req.limit {
				break
			}
		}
	}

	scores := make(map[string]float64, len(found))
	for i := range found {
		scores[found[i].ID] = forcedScore(&found[i], user)
	}
	sort.SliceStable(found, func(i, j int) bool {
		return scores[found[i].ID] > scores[found[j].ID]
	})
	if len(found) > req.limit {
		found = found[:req.limit]
	}
	return found, nil
}

// forcedQueries lists the forced match queries in execution order.
func forcedQueries(user *models.UserProfile) []catalog.BookQuery {
	queries := make([]catalog.BookQuery, 0,
		len(user.FavoriteGenres)+len(user.PreferredLanguages)+2*len(user.FavoriteGenres)*len(user.PreferredLanguages))

	for _, g := range user.FavoriteGenres {
		queries = append(queries, catalog.BookQuery{Genre: catalog.Contains(g)})
	}
	for _, l := range user.PreferredLanguages {
		queries = append(queries, catalog.BookQuery{Language: catalog.Contains(l)})
	}
	for _, g := range user.FavoriteGenres {
		for _, l := range user.PreferredLanguages {
			queries = append(queries,
				catalog.BookQuery{Genre: catalog.Word(g), Language: catalog.Word(l)},
				catalog.BookQuery{Genre: catalog.Contains(g), Language: catalog.Contains(l)},
			)
		}
	}
	return queries
}

// forcedScore rates how closely a book matches the reader's preferences.
func forcedScore(book *models.Book, user *models.UserProfile) float64 {
	genre := strings.ToLower(book.Genre)
	language := strings.ToLower(book.Language)
	score := 1.0

	if genre != "" {
		for _, g := range user.FavoriteGenres {
			if strings.Contains(genre, g) || strings.Contains(g, genre) {
				score += 2
				break
			}
		}
		for _, g := range user.FavoriteGenres {
			if genre == g {
				score++
				break
			}
		}
	}
	if language != "" {
		for _, l := range user.PreferredLanguages {
			if strings.Contains(language, l) || strings.Contains(l, language) {
				score += 2
				break
			}
		}
		for _, l := range user.PreferredLanguages {
			if language == l {
				score++
				break
			}
		}
	}
	return score
}
