// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend"
)

func newFacetsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Show the distinct genres and languages in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withEngine(func(ctx context.Context, _ catalog.Store, engine *recommend.Engine) error {
				facets, err := engine.CatalogFacets(ctx)
				if err != nil {
					return err
				}
				if root.jsonOut {
					return writeJSON(root.out, facets)
				}
				_, err = fmt.Fprintf(root.out, "genres:    %s\nlanguages: %s\n",
					strings.Join(facets.Genres, ", "), strings.Join(facets.Languages, ", "))
				return err
			})
		},
	}
}
