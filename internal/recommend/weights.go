// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import "github.com/tomtom215/folio/internal/models"

// weightRule overrides fields of a WeightSet when its predicate holds.
type weightRule struct {
	name     string
	applies  func(u *models.UserProfile) bool
	override func(w WeightSet) WeightSet
}

// weightRules run in order; a later rule overrides fields set by an earlier one.
var weightRules = []weightRule{
	{
		name:    "prefers_trending",
		applies: func(u *models.UserProfile) bool { return u.PrefersTrending() },
		override: func(w WeightSet) WeightSet {
			w.Trending = 0.1
			w.Genre = 0.45
			return w
		},
	},
	{
		name:    "has_genres",
		applies: func(u *models.UserProfile) bool { return len(u.FavoriteGenres) > 0 },
		override: func(w WeightSet) WeightSet {
			w.Genre = 0.6
			return w
		},
	},
	{
		name:    "has_languages",
		applies: func(u *models.UserProfile) bool { return len(u.PreferredLanguages) > 0 },
		override: func(w WeightSet) WeightSet {
			w.Language = 0.35
			return w
		},
	},
	{
		name: "has_genres_and_languages",
		applies: func(u *models.UserProfile) bool {
			return len(u.FavoriteGenres) > 0 && len(u.PreferredLanguages) > 0
		},
		override: func(WeightSet) WeightSet {
			return WeightSet{
				Genre:         0.45,
				Language:      0.35,
				Demographic:   0.05,
				Collaborative: 0.10,
				Trending:      0.05,
			}
		},
	},
}

// CalculateWeights applies the weight rules to base for a normalized reader.
// base is passed by value and never modified.
//
//nolint:gocritic // hugeParam: WeightSet passed by value for immutability
func CalculateWeights(user *models.UserProfile, base WeightSet) WeightSet {
	w := base
	if user == nil {
		return w
	}
	for _, rule := range weightRules {
		if rule.applies(user) {
			w = rule.override(w)
		}
	}
	return w
}

// appliedWeightRules names the rules that fire for a reader, for debug logging.
func appliedWeightRules(user *models.UserProfile) []string {
	names := make([]string, 0, len(weightRules))
	for _, rule := range weightRules {
		if rule.applies(user) {
			names = append(names, rule.name)
		}
	}
	return names
}
