// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// GetRecommendations handles GET /api/v1/recommendations/{userID}.
// Unknown readers receive the generic fallback, never 404.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := parseIntParam(r, "limit", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error(), nil)
		return
	}
	trending, err := parseBoolParam(r, "trending")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error(), nil)
		return
	}
	debug, err := parseBoolParam(r, "debug")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error(), nil)
		return
	}

	req := RecommendationsRequest{
		UserID:          chi.URLParam(r, "userID"),
		Limit:           limit,
		IncludeTrending: trending,
		Exclude:         parseListParam(r, "exclude"),
		Debug:           debug,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: metadata(r, time.Time{}),
			Error:    apiErr,
		})
		return
	}

	books := h.engine.GetRecommendationsForUser(r.Context(), req.UserID, recommend.Options{
		Limit:           req.Limit,
		IncludeTrending: req.IncludeTrending,
		ExcludeBookIDs:  req.Exclude,
		Debug:           req.Debug || h.debugDefault(),
	})

	respondSuccess(w, r, &models.RecommendationsResponse{
		UserID: req.UserID,
		Count:  len(books),
		Books:  books,
	}, start)
}

// GetTrending handles GET /api/v1/books/trending. With userID the list is
// personalized by the reader's favorite genres; an unknown reader gets the
// anonymous ranking.
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	debug, err := parseBoolParam(r, "debug")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidParameter, err.Error(), nil)
		return
	}

	req := TrendingRequest{
		UserID:  r.URL.Query().Get("userID"),
		Exclude: parseListParam(r, "exclude"),
		Debug:   debug,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: metadata(r, time.Time{}),
			Error:    apiErr,
		})
		return
	}

	var user *models.UserProfile
	if req.UserID != "" && h.store != nil {
		user, err = h.store.FindUserByID(r.Context(), req.UserID)
		if err != nil {
			if !errors.Is(err, catalog.ErrNotFound) {
				logging.Ctx(r.Context()).Warn().Err(err).
					Str("user_id", req.UserID).
					Msg("Reader lookup failed, serving anonymous trending")
			}
			user = nil
		}
	}

	books := h.engine.GetTrendingBooks(r.Context(), req.Exclude, user, req.Debug || h.debugDefault())

	respondSuccess(w, r, &models.TrendingResponse{
		Count: len(books),
		Books: books,
	}, start)
}

// GetCatalogFacets handles GET /api/v1/debug/catalog.
func (h *Handler) GetCatalogFacets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	facets, err := h.engine.CatalogFacets(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeCatalogError, "Catalog is unavailable", err)
		return
	}
	respondSuccess(w, r, facets, start)
}

// GetPerformance handles GET /api/v1/debug/performance.
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Performance monitoring is disabled", nil)
		return
	}
	respondSuccess(w, r, h.monitor.Stats(), time.Time{})
}

func (h *Handler) debugDefault() bool {
	return h.config != nil && h.config.Recommend.Debug
}
