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

// candidateList is one retriever's output with its weight and tag.
type candidateList struct {
	tag    MatchType
	weight float64
	books  []models.Book
}

// scoringRule transforms a candidate. Rules return a new candidate and never
// modify their input.
type scoringRule struct {
	name  string
	apply func(c ScoredCandidate, user *models.UserProfile) ScoredCandidate
}

// scoringRules returns the bonus pipeline in application order.
func (e *Engine) scoringRules() []scoringRule {
	s := e.config.Scoring
	return []scoringRule{
		{
			name: "high_rating",
			apply: func(c ScoredCandidate, _ *models.UserProfile) ScoredCandidate {
				if c.Book.Rating >= s.HighRatingThreshold {
					c.Score *= s.HighRatingBonus
				}
				return c
			},
		},
		{
			name: "exact_genre",
			apply: func(c ScoredCandidate, user *models.UserProfile) ScoredCandidate {
				if containsFold(user.FavoriteGenres, c.Book.Genre) {
					c.Score *= s.ExactGenreBonus
					c.MatchTypes = c.MatchTypes.with(MatchExactGenre)
				}
				return c
			},
		},
		{
			name: "exact_language",
			apply: func(c ScoredCandidate, user *models.UserProfile) ScoredCandidate {
				if containsFold(user.PreferredLanguages, c.Book.Language) {
					c.Score *= s.ExactLanguageBonus
					c.MatchTypes = c.MatchTypes.with(MatchExactLanguage)
				}
				return c
			},
		},
		{
			name: "perfect_match",
			apply: func(c ScoredCandidate, _ *models.UserProfile) ScoredCandidate {
				if c.MatchTypes.Has(MatchExactGenre) && c.MatchTypes.Has(MatchExactLanguage) {
					c.Score *= s.PerfectMatchBonus
					c.MatchTypes = c.MatchTypes.with(MatchPerfect)
				}
				return c
			},
		},
	}
}

// combine accumulates the weighted lists into candidates, applies the bonus
// pipeline and returns them ordered by score. Ties keep first-sighting order.
func (e *Engine) combine(user *models.UserProfile, lists []candidateList) []*ScoredCandidate {
	index := make(map[string]int)
	ranked := make([]*ScoredCandidate, 0)

	for _, list := range lists {
		for i := range list.books {
			book := list.books[i]
			pos, ok := index[book.ID]
			if !ok {
				pos = len(ranked)
				index[book.ID] = pos
				ranked = append(ranked, &ScoredCandidate{Book: book, MatchTypes: MatchSet{}})
			}
			ranked[pos].Score += list.weight
			ranked[pos].MatchTypes.Add(list.tag)
		}
	}

	rules := e.scoringRules()
	for i, c := range ranked {
		scored := *c
		for _, rule := range rules {
			scored = rule.apply(scored, user)
		}
		ranked[i] = &scored
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// topBooks returns the books of the first limit candidates.
func topBooks(ranked []*ScoredCandidate, limit int) []models.Book {
	n := min(len(ranked), limit)
	books := make([]models.Book, n)
	for i := 0; i < n; i++ {
		books[i] = ranked[i].Book
	}
	return books
}

// with returns a copy of the set containing t.
func (s MatchSet) with(t MatchType) MatchSet {
	out := make(MatchSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[t] = struct{}{}
	return out
}

// containsFold reports whether value equals any term, ignoring case.
func containsFold(terms []string, value string) bool {
	if value == "" {
		return false
	}
	for _, term := range terms {
		if strings.EqualFold(term, value) {
			return true
		}
	}
	return false
}
