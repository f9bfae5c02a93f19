// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/folio/internal/models"
)

// Options controls one recommendation call.
type Options struct {
	// Limit is the number of books wanted. Zero selects the configured default.
	Limit int

	// IncludeTrending enables the trending retriever.
	IncludeTrending bool

	// ExcludeBookIDs never appear in the result.
	ExcludeBookIDs []string

	// Debug logs catalog facets and per-stage counts, and bypasses the result cache.
	Debug bool
}

// WeightSet holds the relative multiplier of each candidate list.
// The values need not sum to one.
type WeightSet struct {
	Genre         float64 `json:"genre"`
	Language      float64 `json:"language"`
	Demographic   float64 `json:"demographic"`
	Collaborative float64 `json:"collaborative"`
	Trending      float64 `json:"trending"`
}

// BaseWeights applies to a reader without any preference signal.
var BaseWeights = WeightSet{
	Genre:         0.5,
	Language:      0.25,
	Demographic:   0.05,
	Collaborative: 0.15,
	Trending:      0.05,
}

// MatchType tags why a candidate was kept.
type MatchType string

// Match types recorded on scored candidates.
const (
	MatchGenre         MatchType = "genre"
	MatchLanguage      MatchType = "language"
	MatchDemographic   MatchType = "demographic"
	MatchCollaborative MatchType = "collaborative"
	MatchTrending      MatchType = "trending"
	MatchExactGenre    MatchType = "exactGenre"
	MatchExactLanguage MatchType = "exactLanguage"
	MatchPerfect       MatchType = "perfectMatch"
)

// MatchSet is a set of match tags.
type MatchSet map[MatchType]struct{}

// Add inserts a tag.
func (s MatchSet) Add(t MatchType) {
	s[t] = struct{}{}
}

// Has reports whether the tag is present.
func (s MatchSet) Has(t MatchType) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the tags in lexical order.
func (s MatchSet) Sorted() []string {
	tags := make([]string, 0, len(s))
	for t := range s {
		tags = append(tags, string(t))
	}
	sort.Strings(tags)
	return tags
}

// String joins the sorted tags with commas.
func (s MatchSet) String() string {
	return strings.Join(s.Sorted(), ",")
}

// ScoredCandidate is a book under consideration within one request.
type ScoredCandidate struct {
	Book       models.Book
	Score      float64
	MatchTypes MatchSet
}

// Outcome names the path that produced a result, used as a metric label.
type Outcome string

// Outcomes of a recommendation call.
const (
	OutcomeDirect    Outcome = "direct"
	OutcomeForced    Outcome = "forced"
	OutcomeCombined  Outcome = "combined"
	OutcomeFallback  Outcome = "fallback"
	OutcomeRecovered Outcome = "recovered"
	OutcomeCached    Outcome = "cached"
)
