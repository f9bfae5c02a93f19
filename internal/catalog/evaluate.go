// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package catalog

import (
	"sort"
	"strings"

	"github.com/tomtom215/folio/internal/models"
)

// Matches evaluates the query predicates against a book in process.
func (q *BookQuery) Matches(b *models.Book) bool {
	if q.Genre != nil && !q.Genre.Matches(b.Genre) {
		return false
	}
	if q.Language != nil && !q.Language.Matches(b.Language) {
		return false
	}
	if q.IDsIn != nil && !contains(q.IDsIn, b.ID) {
		return false
	}
	if contains(q.IDsNotIn, b.ID) {
		return false
	}
	if q.ReadByAny != nil && !intersects(q.ReadByAny, b.ReadBy) {
		return false
	}
	if q.InStockOnly && b.StockQuantity <= 0 {
		return false
	}
	if q.MinRating != nil && b.Rating < *q.MinRating {
		return false
	}
	if q.MinRentalCount > 0 && b.RentalCount < q.MinRentalCount {
		return false
	}
	if q.RentedSince != nil && (b.LastRented == nil || b.LastRented.Before(*q.RentedSince)) {
		return false
	}
	return true
}

// Matches evaluates the query predicates against a reader in process.
func (q *UserQuery) Matches(u *models.UserProfile) bool {
	if contains(q.ExcludeIDs, u.ID) {
		return false
	}
	if q.Age != nil && (u.Age == nil || *u.Age < q.Age.Min || *u.Age > q.Age.Max) {
		return false
	}
	if q.Location != "" && u.Location != q.Location {
		return false
	}
	if q.Occupation != "" && u.Occupation != q.Occupation {
		return false
	}
	if q.ReadAnyOf != nil && !intersects(q.ReadAnyOf, u.ReadBookIDs()) {
		return false
	}
	return true
}

// SortBooks orders books in place by specs, falling back to ascending ID so the
// order is total.
func SortBooks(books []models.Book, specs []SortSpec) {
	sort.SliceStable(books, func(i, j int) bool {
		for _, spec := range specs {
			c := compareField(&books[i], &books[j], spec.Field)
			if c == 0 {
				continue
			}
			if spec.Descending {
				return c > 0
			}
			return c < 0
		}
		return books[i].ID < books[j].ID
	})
}

// FieldValue returns the string form of a distinct-able book field.
func FieldValue(b *models.Book, field string) (string, bool) {
	switch field {
	case FieldGenre:
		return b.Genre, true
	case FieldLanguage:
		return b.Language, true
	case FieldTitle:
		return b.Title, true
	case FieldID:
		return b.ID, true
	default:
		return "", false
	}
}

func compareField(a, b *models.Book, field string) int {
	switch field {
	case FieldRating:
		return compareFloat(a.Rating, b.Rating)
	case FieldRentalCount:
		return a.RentalCount - b.RentalCount
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case FieldLastRented:
		switch {
		case a.LastRented == nil && b.LastRented == nil:
			return 0
		case a.LastRented == nil:
			return -1
		case b.LastRented == nil:
			return 1
		}
		return a.LastRented.Compare(*b.LastRented)
	default:
		av, _ := FieldValue(a, field)
		bv, _ := FieldValue(b, field)
		return strings.Compare(av, bv)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
