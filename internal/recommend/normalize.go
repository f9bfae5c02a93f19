// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package recommend

import (
	"strings"

	"github.com/tomtom215/folio/internal/models"
)

// NormalizeUser returns a copy of the reader whose genre and language preferences
// are trimmed, lower-cased and free of empty entries. The input is not modified.
func NormalizeUser(user *models.UserProfile) *models.UserProfile {
	if user == nil {
		return nil
	}
	normalized := *user
	normalized.FavoriteGenres = normalizeTerms(user.FavoriteGenres)
	normalized.PreferredLanguages = normalizeTerms(user.PreferredLanguages)
	return &normalized
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}
