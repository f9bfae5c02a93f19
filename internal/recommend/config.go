// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights is the base WeightSet the weight rules are applied over.
	Weights WeightSet `json:"weights"`

	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// Retrieval contains per-retriever caps and windows.
	Retrieval RetrievalConfig `json:"retrieval"`

	// Scoring contains the bonus multipliers.
	Scoring ScoringConfig `json:"scoring"`

	// FallbackMinRating is the rating floor of the popular-books fallback.
	FallbackMinRating float64 `json:"fallback_min_rating"`

	// Timeout bounds a whole recommendation call. Zero disables the bound.
	Timeout time.Duration `json:"timeout"`
}

// LimitsConfig contains result size limits.
type LimitsConfig struct {
	// DefaultLimit applies when Options.Limit is zero or negative.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps Options.Limit.
	MaxLimit int `json:"max_limit"`

	// DirectMax caps the direct matcher request of limit*2.
	DirectMax int `json:"direct_max"`
}

// RetrievalConfig contains per-retriever caps and windows.
type RetrievalConfig struct {
	GenreCap         int `json:"genre_cap"`
	LanguageCap      int `json:"language_cap"`
	DemographicCap   int `json:"demographic_cap"`
	CollaborativeCap int `json:"collaborative_cap"`
	TrendingCap      int `json:"trending_cap"`

	// CollaborativePeers is the number of readers sharing a book that are consulted.
	CollaborativePeers int `json:"collaborative_peers"`

	// AgeSpread is the half-width of the demographic age window.
	AgeSpread int `json:"age_spread"`

	// MinPeerAge floors the lower bound of the age window.
	MinPeerAge int `json:"min_peer_age"`

	// TrendingWindow is how recently a book must have been rented to trend.
	TrendingWindow time.Duration `json:"trending_window"`

	// TrendingMinRentals is the rental count a book needs to trend.
	TrendingMinRentals int `json:"trending_min_rentals"`
}

// ScoringConfig contains the bonus multipliers.
type ScoringConfig struct {
	HighRatingThreshold float64 `json:"high_rating_threshold"`
	HighRatingBonus     float64 `json:"high_rating_bonus"`
	ExactGenreBonus     float64 `json:"exact_genre_bonus"`
	ExactLanguageBonus  float64 `json:"exact_language_bonus"`
	PerfectMatchBonus   float64 `json:"perfect_match_bonus"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: BaseWeights,
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
			DirectMax:    20,
		},
		Retrieval: RetrievalConfig{
			GenreCap:           30,
			LanguageCap:        20,
			DemographicCap:     15,
			CollaborativeCap:   20,
			TrendingCap:        15,
			CollaborativePeers: 25,
			AgeSpread:          5,
			MinPeerAge:         13,
			TrendingWindow:     30 * 24 * time.Hour,
			TrendingMinRentals: 3,
		},
		Scoring: ScoringConfig{
			HighRatingThreshold: 4.5,
			HighRatingBonus:     1.2,
			ExactGenreBonus:     1.3,
			ExactLanguageBonus:  1.3,
			PerfectMatchBonus:   1.5,
		},
		FallbackMinRating: 4,
		Timeout:           10 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	w := c.Weights
	if w.Genre < 0 || w.Language < 0 || w.Demographic < 0 || w.Collaborative < 0 || w.Trending < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.DirectMax <= 0 {
		return fmt.Errorf("limits.direct_max must be positive, got %d", c.Limits.DirectMax)
	}

	r := c.Retrieval
	caps := []struct {
		name  string
		value int
	}{
		{"retrieval.genre_cap", r.GenreCap},
		{"retrieval.language_cap", r.LanguageCap},
		{"retrieval.demographic_cap", r.DemographicCap},
		{"retrieval.collaborative_cap", r.CollaborativeCap},
		{"retrieval.trending_cap", r.TrendingCap},
		{"retrieval.collaborative_peers", r.CollaborativePeers},
	}
	for _, c := range caps {
		if c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", c.name, c.value)
		}
	}
	if r.AgeSpread < 0 {
		return fmt.Errorf("retrieval.age_spread must be non-negative, got %d", r.AgeSpread)
	}
	if r.TrendingWindow <= 0 {
		return fmt.Errorf("retrieval.trending_window must be positive, got %v", r.TrendingWindow)
	}
	if r.TrendingMinRentals < 0 {
		return fmt.Errorf("retrieval.trending_min_rentals must be non-negative, got %d", r.TrendingMinRentals)
	}

	s := c.Scoring
	if s.HighRatingBonus <= 0 || s.ExactGenreBonus <= 0 || s.ExactLanguageBonus <= 0 || s.PerfectMatchBonus <= 0 {
		return fmt.Errorf("scoring bonuses must be positive, got %+v", s)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
