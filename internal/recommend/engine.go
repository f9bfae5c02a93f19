// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/models"
)

// ResultCache stores ranked results between calls. Implementations must be
// safe for concurrent use and treat backend failures as misses.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]models.Book, bool)
	Set(ctx context.Context, userID, key string, books []models.Book)
	InvalidateUser(ctx context.Context, userID string)
}

// Engine produces ranked book recommendations. It is safe for concurrent use.
type Engine struct {
	config *Config
	books  catalog.BookStore
	users  catalog.UserStore
	cache  ResultCache
	logger zerolog.Logger
	now    func() time.Time
}

// request carries the per-call state shared by the pipeline stages.
type request struct {
	user     *models.UserProfile
	exclude  []string
	limit    int
	trending bool
	debug    bool
	logger   zerolog.Logger
}

// NewEngine creates a recommendation engine over the given stores.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, books catalog.BookStore, users catalog.UserStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if books == nil || users == nil {
		return nil, errors.New("book and user stores are required")
	}

	return &Engine{
		config: cfg,
		books:  books,
		users:  users,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}, nil
}

// SetCache enables result caching.
func (e *Engine) SetCache(c ResultCache) {
	e.cache = c
}

// SetClock replaces the time source used for the trending window.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// InvalidateUser drops cached results for a reader.
func (e *Engine) InvalidateUser(ctx context.Context, userID string) {
	if e.cache != nil {
		e.cache.InvalidateUser(ctx, userID)
	}
}

// GetRecommendationsForUser returns up to opts.Limit in-stock books for the reader.
// It never fails: an unknown reader, an empty pipeline or an internal failure
// degrades to the generic fallback, which may itself be empty.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) GetRecommendationsForUser(ctx context.Context, userID string, opts Options) []models.Book {
	start := time.Now()
	opts = e.prepareOptions(opts)
	logger := e.requestLogger(ctx, userID, opts)

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	useCache := e.cache != nil && !opts.Debug
	key := cacheKey(userID, opts)
	if useCache {
		if books, ok := e.cache.Get(ctx, key); ok {
			logger.Debug().Int("results", len(books)).Msg("Served recommendations from cache")
			metrics.RecordRecommendation(string(OutcomeCached), time.Since(start), len(books))
			return books
		}
	}

	books, outcome := e.recommendSafely(ctx, userID, opts, logger)

	metrics.RecordRecommendation(string(outcome), time.Since(start), len(books))
	logger.Debug().
		Str("outcome", string(outcome)).
		Int("results", len(books)).
		Dur("duration", time.Since(start)).
		Msg("Recommendation complete")

	if useCache && outcome != OutcomeRecovered && len(books) > 0 {
		e.cache.Set(ctx, userID, key, books)
	}
	return books
}

// prepareOptions applies the configured limit defaults.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) prepareOptions(opts Options) Options {
	if opts.Limit <= 0 {
		opts.Limit = e.config.Limits.DefaultLimit
	}
	if opts.Limit > e.config.Limits.MaxLimit {
		opts.Limit = e.config.Limits.MaxLimit
	}
	return opts
}

// requestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) requestLogger(ctx context.Context, userID string, opts Options) zerolog.Logger {
	lc := e.logger.With().
		Str("user_id", userID).
		Int("limit", opts.Limit).
		Bool("trending", opts.IncludeTrending)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc.Logger()
}

// recommendSafely runs the pipeline and turns panics and store failures into
// the anonymous generic fallback.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) recommendSafely(ctx context.Context, userID string, opts Options, logger zerolog.Logger) (books []models.Book, outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Recommendation pipeline panicked, serving generic fallback")
			books = e.genericFallback(ctx, nil, opts.ExcludeBookIDs, opts.Limit, logger)
			outcome = OutcomeRecovered
		}
	}()

	books, outcome, err := e.recommend(ctx, userID, opts, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Recommendation pipeline failed, serving generic fallback")
		return e.genericFallback(ctx, nil, opts.ExcludeBookIDs, opts.Limit, logger), OutcomeRecovered
	}
	return books, outcome
}

// recommend is the orchestration pipeline.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) recommend(ctx context.Context, userID string, opts Options, logger zerolog.Logger) ([]models.Book, Outcome, error) {
	user, err := e.users.FindUserByID(ctx, userID)
	if errors.Is(err, catalog.ErrNotFound) || (err == nil && user == nil) {
		logger.Debug().Msg("Reader not found, serving generic fallback")
		return e.genericFallback(ctx, nil, opts.ExcludeBookIDs, opts.Limit, logger), OutcomeFallback, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("load reader %s: %w", userID, err)
	}

	req := &request{
		user:     NormalizeUser(user),
		exclude:  opts.ExcludeBookIDs,
		limit:    opts.Limit,
		trending: opts.IncludeTrending,
		debug:    opts.Debug,
		logger:   logger,
	}
	if req.debug {
		e.logCatalogFacets(ctx, logger)
	}

	hasGenres := len(req.user.FavoriteGenres) > 0
	hasLanguages := len(req.user.PreferredLanguages) > 0

	var direct []models.Book
	if hasGenres && hasLanguages {
		directLimit := min(req.limit*2, e.config.Limits.DirectMax)
		direct, err = e.directMatches(ctx, req, directLimit)
		metrics.RecordRetriever("direct", len(direct), err)
		if err != nil {
			logger.Warn().Err(err).Msg("Direct matcher failed")
			direct = nil
		}
		if len(direct) >= (req.limit+1)/2 {
			logger.Debug().Int("direct", len(direct)).Msg("Strong direct match signal")
		}
		if len(direct) >= req.limit {
			logger.Debug().Msg("Direct matches fill the request, short-circuiting")
			return direct[:req.limit], OutcomeDirect, nil
		}
	}

	lists := e.runRetrievers(ctx, req)

	var forced []models.Book
	if (len(lists.genre) == 0 || len(lists.language) == 0) && len(direct) == 0 {
		forced, err = e.forcedMatches(ctx, req)
		metrics.RecordRetriever("forced", len(forced), err)
		if err != nil {
			logger.Warn().Err(err).Msg("Forced matcher failed")
			forced = nil
		}
		if len(forced) >= req.limit {
			logger.Debug().Msg("Forced matches fill the request, short-circuiting")
			return forced[:req.limit], OutcomeForced, nil
		}
	}

	weights := CalculateWeights(req.user, e.config.Weights)
	if req.debug {
		logger.Debug().
			Strs("rules", appliedWeightRules(req.user)).
			Float64("genre", weights.Genre).
			Float64("language", weights.Language).
			Float64("demographic", weights.Demographic).
			Float64("collaborative", weights.Collaborative).
			Float64("trending", weights.Trending).
			Msg("Weights calculated")
	}

	ranked := e.combine(req.user, []candidateList{
		{tag: MatchGenre, weight: weights.Genre, books: unionBooks(lists.genre, direct, forced)},
		{tag: MatchLanguage, weight: weights.Language, books: lists.language},
		{tag: MatchDemographic, weight: weights.Demographic, books: lists.demographic},
		{tag: MatchCollaborative, weight: weights.Collaborative, books: lists.collaborative},
		{tag: MatchTrending, weight: weights.Trending, books: lists.trending},
	})
	if req.debug {
		for i := 0; i < len(ranked) && i < req.limit; i++ {
			logger.Debug().
				Int("rank", i+1).
				Str("book_id", ranked[i].Book.ID).
				Float64("score", ranked[i].Score).
				Str("matches", ranked[i].MatchTypes.String()).
				Msg("Ranked candidate")
		}
	}

	books := topBooks(ranked, req.limit)
	if len(books) == 0 {
		logger.Debug().Msg("Pipeline produced no candidates, serving generic fallback")
		return e.genericFallback(ctx, req.user, req.exclude, req.limit, logger), OutcomeFallback, nil
	}
	return books, OutcomeCombined, nil
}

// unionBooks concatenates lists, keeping the first occurrence of each book.
func unionBooks(lists ...[]models.Book) []models.Book {
	seen := make(map[string]struct{})
	out := make([]models.Book, 0)
	for _, list := range lists {
		for i := range list {
			if _, dup := seen[list[i].ID]; dup {
				continue
			}
			seen[list[i].ID] = struct{}{}
			out = append(out, list[i])
		}
	}
	return out
}

// cacheKey identifies a cacheable request.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func cacheKey(userID string, opts Options) string {
	exclude := append([]string(nil), opts.ExcludeBookIDs...)
	sort.Strings(exclude)
	return fmt.Sprintf("rec:%s:%d:%t:%s", userID, opts.Limit, opts.IncludeTrending, strings.Join(exclude, ","))
}
