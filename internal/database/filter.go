// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package database

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tomtom215/folio/internal/catalog"
)

// Collection and field names that are not part of the catalog query model.
const (
	booksCollection = "books"
	usersCollection = "users"

	fieldStockQuantity = "stockQuantity"
	fieldReadBy        = "readBy"
	fieldAge           = "age"
	fieldLocation      = "location"
	fieldOccupation    = "occupation"
	fieldHistoryBookID = "readingHistory.bookId"
	fieldHistory       = "readingHistory"
)

// textFilter converts a TextMatch into a case-insensitive $regex value.
func textFilter(m *catalog.TextMatch) (bson.Regex, error) {
	if m.Empty() {
		return bson.Regex{}, errEmptyMatch
	}
	return bson.Regex{Pattern: m.Pattern(), Options: "i"}, nil
}

// bookFilter translates a BookQuery into a MongoDB filter document.
// It returns errEmptyMatch when the query cannot match any book.
func bookFilter(q *catalog.BookQuery) (bson.D, error) {
	filter := bson.D{}

	if q.Genre != nil {
		re, err := textFilter(q.Genre)
		if err != nil {
			return nil, err
		}
		filter = append(filter, bson.E{Key: catalog.FieldGenre, Value: re})
	}
	if q.Language != nil {
		re, err := textFilter(q.Language)
		if err != nil {
			return nil, err
		}
		filter = append(filter, bson.E{Key: catalog.FieldLanguage, Value: re})
	}

	idCond := bson.D{}
	if q.IDsIn != nil {
		if len(q.IDsIn) == 0 {
			return nil, errEmptyMatch
		}
		idCond = append(idCond, bson.E{Key: "$in", Value: q.IDsIn})
	}
	if len(q.IDsNotIn) > 0 {
		idCond = append(idCond, bson.E{Key: "$nin", Value: q.IDsNotIn})
	}
	if len(idCond) > 0 {
		filter = append(filter, bson.E{Key: catalog.FieldID, Value: idCond})
	}

	if q.ReadByAny != nil {
		if len(q.ReadByAny) == 0 {
			return nil, errEmptyMatch
		}
		filter = append(filter, bson.E{Key: fieldReadBy, Value: bson.D{{Key: "$in", Value: q.ReadByAny}}})
	}
	if q.InStockOnly {
		filter = append(filter, bson.E{Key: fieldStockQuantity, Value: bson.D{{Key: "$gt", Value: 0}}})
	}
	if q.MinRating != nil {
		filter = append(filter, bson.E{Key: catalog.FieldRating, Value: bson.D{{Key: "$gte", Value: *q.MinRating}}})
	}
	if q.MinRentalCount > 0 {
		filter = append(filter, bson.E{Key: catalog.FieldRentalCount, Value: bson.D{{Key: "$gte", Value: q.MinRentalCount}}})
	}
	if q.RentedSince != nil {
		filter = append(filter, bson.E{Key: catalog.FieldLastRented, Value: bson.D{{Key: "$gte", Value: *q.RentedSince}}})
	}

	return filter, nil
}

// bookSort converts sort specs into a sort document ending with _id ascending.
// It returns nil when the query is unsorted.
func bookSort(specs []catalog.SortSpec) bson.D {
	if len(specs) == 0 {
		return nil
	}

	sortDoc := make(bson.D, 0, len(specs)+1)
	hasID := false
	for _, spec := range specs {
		dir := 1
		if spec.Descending {
			dir = -1
		}
		if spec.Field == catalog.FieldID {
			hasID = true
		}
		sortDoc = append(sortDoc, bson.E{Key: spec.Field, Value: dir})
	}
	if !hasID {
		sortDoc = append(sortDoc, bson.E{Key: catalog.FieldID, Value: 1})
	}
	return sortDoc
}

// userFilter translates a UserQuery into a MongoDB filter document.
func userFilter(q *catalog.UserQuery) (bson.D, error) {
	filter := bson.D{}

	if len(q.ExcludeIDs) > 0 {
		filter = append(filter, bson.E{Key: catalog.FieldID, Value: bson.D{{Key: "$nin", Value: q.ExcludeIDs}}})
	}
	if q.Age != nil {
		filter = append(filter, bson.E{Key: fieldAge, Value: bson.D{
			{Key: "$gte", Value: q.Age.Min},
			{Key: "$lte", Value: q.Age.Max},
		}})
	}
	if q.Location != "" {
		filter = append(filter, bson.E{Key: fieldLocation, Value: q.Location})
	}
	if q.Occupation != "" {
		filter = append(filter, bson.E{Key: fieldOccupation, Value: q.Occupation})
	}
	if q.ReadAnyOf != nil {
		if len(q.ReadAnyOf) == 0 {
			return nil, errEmptyMatch
		}
		filter = append(filter, bson.E{Key: fieldHistoryBookID, Value: bson.D{{Key: "$in", Value: q.ReadAnyOf}}})
	}

	return filter, nil
}
