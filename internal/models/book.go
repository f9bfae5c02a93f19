// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package models

import "time"

// Book is a rentable catalog entry.
//
// Only books with StockQuantity > 0 are eligible for recommendation. ReadBy holds
// the IDs of readers who completed a rental of the book and is maintained by the
// rental event consumer.
type Book struct {
	ID            string     `json:"id" bson:"_id"`
	Title         string     `json:"title" bson:"title"`
	Author        string     `json:"author" bson:"author"`
	Genre         string     `json:"genre" bson:"genre"`
	Language      string     `json:"language" bson:"language"`
	Rating        float64    `json:"rating" bson:"rating"`
	StockQuantity int        `json:"stockQuantity" bson:"stockQuantity"`
	RentalCount   int        `json:"rentalCount" bson:"rentalCount"`
	LastRented    *time.Time `json:"lastRented,omitempty" bson:"lastRented,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	ReadBy        []string   `json:"readBy,omitempty" bson:"readBy,omitempty"`
}

// InStock reports whether the book can be rented.
func (b *Book) InStock() bool {
	return b.StockQuantity > 0
}

// BookIDs returns the IDs of books in order.
func BookIDs(books []Book) []string {
	ids := make([]string, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	return ids
}
