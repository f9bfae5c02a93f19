// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import "time"

// UserProfile is a reader as seen by the recommendation engine.
//
// Empty or absent preference lists mean "no preference". Demographic attributes
// are optional; a nil Age means the reader did not provide one.
type UserProfile struct {
	ID                 string             `json:"id" bson:"_id"`
	Name               string             `json:"name,omitempty" bson:"name,omitempty"`
	FavoriteGenres     []string           `json:"favoriteGenres,omitempty" bson:"favoriteGenres,omitempty"`
	PreferredLanguages []string           `json:"preferredLanguages,omitempty" bson:"preferredLanguages,omitempty"`
	Age                *int               `json:"age,omitempty" bson:"age,omitempty"`
	Location           string             `json:"location,omitempty" bson:"location,omitempty"`
	Occupation         string             `json:"occupation,omitempty" bson:"occupation,omitempty"`
	RentalPreferences  *RentalPreferences `json:"rentalPreferences,omitempty" bson:"rentalPreferences,omitempty"`
	ReadingHistory     []ReadingEntry     `json:"readingHistory,omitempty" bson:"readingHistory,omitempty"`
}

// RentalPreferences holds optional reader toggles.
type RentalPreferences struct {
	PrefersTrending bool `json:"prefersTrending" bson:"prefersTrending"`
}

// ReadingEntry records one completed rental.
type ReadingEntry struct {
	BookID     string     `json:"bookId" bson:"bookId"`
	RentedAt   time.Time  `json:"rentedAt" bson:"rentedAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" bson:"returnedAt,omitempty"`
}

// HasDemographics reports whether any of age, location or occupation is set.
func (u *UserProfile) HasDemographics() bool {
	return u.Age != nil || u.Location != "" || u.Occupation != ""
}

// PrefersTrending reports the trending toggle, false when unset.
func (u *UserProfile) PrefersTrending() bool {
	return u.RentalPreferences != nil && u.RentalPreferences.PrefersTrending
}

// ReadBookIDs returns the distinct book IDs in the reading history, in first-read order.
func (u *UserProfile) ReadBookIDs() []string {
	if len(u.ReadingHistory) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(u.ReadingHistory))
	ids := make([]string, 0, len(u.ReadingHistory))
	for _, entry := range u.ReadingHistory {
		if entry.BookID == "" {
			continue
		}
		if _, ok := seen[entry.BookID]; ok {
			continue
		}
		seen[entry.BookID] = struct{}{}
		ids = append(ids, entry.BookID)
	}
	return ids
}
