// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

// RecommendationsRequest holds the validated parameters of
// GET /api/v1/recommendations/{userID}.
type RecommendationsRequest struct {
	UserID          string   `query:"userID" validate:"required,entityid"`
	Limit           int      `query:"limit" validate:"gte=0"`
	IncludeTrending bool     `query:"trending"`
	Exclude         []string `query:"exclude" validate:"max=500,dive,entityid"`
	Debug           bool     `query:"debug"`
}

// TrendingRequest holds the validated parameters of GET /api/v1/books/trending.
type TrendingRequest struct {
	UserID  string   `query:"userID" validate:"omitempty,entityid"`
	Exclude []string `query:"exclude" validate:"max=500,dive,entityid"`
	Debug   bool     `query:"debug"`
}
