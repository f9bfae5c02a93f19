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
	"sync"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// retriever is a single-strategy candidate query.
type retriever struct {
	name string
	fn   func(ctx context.Context, req *request) ([]models.Book, error)
}

// retrieverLists holds the output of each retriever. A failed retriever
// contributes an empty list.
type retrieverLists struct {
	genre         []models.Book
	language      []models.Book
	demographic   []models.Book
	collaborative []models.Book
	trending      []models.Book
}

// retrieverResult holds the result of a single retriever.
type retrieverResult struct {
	name  string
	books []models.Book
	err   error
}

// runRetrievers runs the retrievers in parallel and unwraps failures to empty lists.
func (e *Engine) runRetrievers(ctx context.Context, req *request) retrieverLists {
	retrievers := []retriever{
		{name: "genre", fn: e.genreCandidates},
		{name: "language", fn: e.languageCandidates},
		{name: "demographic", fn: e.demographicCandidates},
		{name: "collaborative", fn: e.collaborativeCandidates},
	}
	if req.trending {
		retrievers = append(retrievers, retriever{name: "trending", fn: e.trendingCandidates})
	}

	results := make([]retrieverResult, len(retrievers))
	var wg sync.WaitGroup

	for i, r := range retrievers {
		wg.Add(1)
		go func(idx int, r retriever) {
			defer wg.Done()
			results[idx] = runRetriever(ctx, req, r)
		}(i, r)
	}

	wg.Wait()

	var lists retrieverLists
	for _, result := range results {
		metrics.RecordRetriever(result.name, len(result.books), result.err)

		books := result.books
		if result.err != nil {
			req.logger.Warn().
				Str("retriever", result.name).
				Err(result.err).
				Msg("Retriever failed")
			books = nil
		}
		if req.debug {
			req.logger.Debug().
				Str("retriever", result.name).
				Int("candidates", len(books)).
				Msg("Retriever finished")
		}

		switch result.name {
		case "genre":
			lists.genre = books
		case "language":
			lists.language = books
		case "demographic":
			lists.demographic = books
		case "collaborative":
			lists.collaborative = books
		case "trending":
			lists.trending = books
		}
	}
	return lists
}

// runRetriever converts a panic inside a retriever goroutine into an error.
func runRetriever(ctx context.Context, req *request, r retriever) (result retrieverResult) {
	result.name = r.name
	defer func() {
		if p := recover(); p != nil {
			result.books = nil
			result.err = fmt.Errorf("retriever %s panicked: %v", r.name, p)
		}
	}()
	result.books, result.err = r.fn(ctx, req)
	return result
}

// genreCandidates matches book genre exactly against the favorite genres.
func (e *Engine) genreCandidates(ctx context.Context, req *request) ([]models.Book, error) {
	if len(req.user.FavoriteGenres) == 0 {
		return []models.Book{}, nil
	}
	return e.books.FindBooks(ctx, &catalog.BookQuery{
		Genre:       catalog.Exact(req.user.FavoriteGenres...),
		IDsNotIn:    req.exclude,
		InStockOnly: true,
		Sort:        catalog.ByRatingDesc,
		Limit:       e.config.Retrieval.GenreCap,
	})
}

// languageCandidates matches book language exactly against the preferred languages.
func (e *Engine) languageCandidates(ctx context.Context, req *request) ([]models.Book, error) {
	if len(req.user.PreferredLanguages) == 0 {
		return []models.Book{}, nil
	}
	return e.books.FindBooks(ctx, &catalog.BookQuery{
		Language:    catalog.Exact(req.user.PreferredLanguages...),
		IDsNotIn:    req.exclude,
		InStockOnly: true,
		Sort:        catalog.ByRatingDesc,
		Limit:       e.config.Retrieval.LanguageCap,
	})
}

// demographicCandidates returns books read by readers of similar age, location and occupation.
func (e *Engine) demographicCandidates(ctx context.Context, req *request) ([]models.Book, error) {
	user := req.user
	if !user.HasDemographics() {
		return []models.Book{}, nil
	}

	q := &catalog.UserQuery{
		Location:   user.Location,
		Occupation: user.Occupation,
		ExcludeIDs: []string{user.ID},
	}
	if user.Age != nil {
		spread := e.config.Retrieval.AgeSpread
		q.Age = &catalog.IntRange{
			Min: max(e.config.Retrieval.MinPeerAge, *user.Age-spread),
			Max: *user.Age + spread,
		}
	}

	peers, err := e.users.FindUsers(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find demographic peers: %w", err)
	}
	if len(peers) == 0 {
		return []models.Book{}, nil
	}

	peerIDs := make([]string, len(peers))
	for i := range peers {
		peerIDs[i] = peers[i].ID
	}

	return e.books.FindBooks(ctx, &catalog.BookQuery{
		ReadByAny:   peerIDs,
		IDsNotIn:    req.exclude,
		InStockOnly: true,
		Sort:        catalog.ByRatingDesc,
		Limit:       e.config.Retrieval.DemographicCap,
	})
}

// collaborativeCandidates returns books read by readers who share a book with this reader.
func (e *Engine) collaborativeCandidates(ctx context.Context, req *request) ([]models.Book, error) {
	user := req.user
	readIDs := user.ReadBookIDs()
	if len(readIDs) == 0 {
		return []models.Book{}, nil
	}

	peers, err := e.users.FindUsers(ctx, &catalog.UserQuery{
		ReadAnyOf:  readIDs,
		ExcludeIDs: []string{user.ID},
		Limit:      e.config.Retrieval.CollaborativePeers,
	})
	if err != nil {
		return nil, fmt.Errorf("find collaborative peers: %w", err)
	}

	own := make(map[string]struct{}, len(readIDs))
	for _, id := range readIDs {
		own[id] = struct{}{}
	}
	candidates := make([]string, 0)
	seen := make(map[string]struct{})
	for i := range peers {
		for _, id := range peers[i].ReadBookIDs() {
			if _, mine := own[id]; mine {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return []models.Book{}, nil
	}

	return e.books.FindBooks(ctx, &catalog.BookQuery{
		IDsIn:       candidates,
		IDsNotIn:    req.exclude,
		InStockOnly: true,
		Sort:        catalog.ByRatingDesc,
		Limit:       e.config.Retrieval.CollaborativeCap,
	})
}

// trendingCandidates adapts trendingBooks to the retriever signature.
func (e *Engine) trendingCandidates(ctx context.Context, req *request) ([]models.Book, error) {
	return e.trendingBooks(ctx, req.user, req.exclude)
}

// trendingBooks returns recently and frequently rented books. With favorite
// genres the list is re-ranked by the number of genres that overlap each book's genre.
func (e *Engine) trendingBooks(ctx context.Context, user *models.UserProfile, exclude []string) ([]models.Book, error) {
	since := e.now().Add(-e.config.Retrieval.TrendingWindow)
	books, err := e.books.FindBooks(ctx, &catalog.BookQuery{
		RentedSince:    &since,
		MinRentalCount: e.config.Retrieval.TrendingMinRentals,
		IDsNotIn:       exclude,
		InStockOnly:    true,
		Sort: []catalog.SortSpec{
			{Field: catalog.FieldRentalCount, Descending: true},
			{Field: catalog.FieldRating, Descending: true},
		},
		Limit: e.config.Retrieval.TrendingCap,
	})
	if err != nil {
		return nil, err
	}

	if user == nil || len(user.FavoriteGenres) == 0 {
		return books, nil
	}

	scores := make(map[string]int, len(books))
	for i := range books {
		scores[books[i].ID] = genreOverlap(books[i].Genre, user.FavoriteGenres)
	}
	sort.SliceStable(books, func(i, j int) bool {
		return scores[books[i].ID] > scores[books[j].ID]
	})
	return books, nil
}

// genreOverlap counts the favorite genres that contain, or are contained in, genre.
// favorites are expected lower-cased.
func genreOverlap(genre string, favorites []string) int {
	genre = strings.ToLower(genre)
	if genre == "" {
		return 0
	}
	n := 0
	for _, fav := range favorites {
		if strings.Contains(genre, fav) || strings.Contains(fav, genre) {
			n++
		}
	}
	return n
}
