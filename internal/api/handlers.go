// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"time"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/middleware"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	GetRecommendationsForUser(ctx context.Context, userID string, opts recommend.Options) []models.Book
	GetTrendingBooks(ctx context.Context, excludeIDs []string, user *models.UserProfile, debugLog bool) []models.Book
	CatalogFacets(ctx context.Context) (*models.CatalogFacets, error)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recommend.go: recommendation, trending and catalog endpoints
//   - handlers_health.go: health probes
type Handler struct {
	engine    Recommender
	store     catalog.Store
	config    *config.Config
	monitor   *middleware.LatencyMonitor
	startTime time.Time
	version   string
}

// NewHandler creates an API handler.
//
// store is used to resolve readers for personalized trending and for
// readiness probes. monitor may be nil, which disables the performance
// endpoint.
func NewHandler(engine Recommender, store catalog.Store, cfg *config.Config, monitor *middleware.LatencyMonitor) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		config:    cfg,
		monitor:   monitor,
		startTime: time.Now(),
		version:   "dev",
	}
}

// SetVersion sets the version reported by the health endpoint.
func (h *Handler) SetVersion(v string) {
	if v != "" {
		h.version = v
	}
}
