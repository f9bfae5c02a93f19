// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/models"
)

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeBooks prints books as an aligned table, or JSON with jsonOut.
func writeBooks(out io.Writer, books []models.Book, jsonOut bool) error {
	if jsonOut {
		return writeJSON(out, books)
	}
	if len(books) == 0 {
		_, err := fmt.Fprintln(out, "no books")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tTITLE\tAUTHOR\tGENRE\tLANGUAGE\tRATING\tRENTALS")
	for i := range books {
		b := &books[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%.1f\t%d\n",
			i+1, b.ID, truncate(b.Title, 40), truncate(b.Author, 24), b.Genre, b.Language, b.Rating, b.RentalCount)
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
