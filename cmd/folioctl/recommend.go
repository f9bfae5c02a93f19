// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend"
)

func newRecommendCmd(root *rootOptions) *cobra.Command {
	var opts recommend.Options

	cmd := &cobra.Command{
		Use:   "recommend <userID>",
		Short: "Recommend books for a reader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withEngine(func(ctx context.Context, _ catalog.Store, engine *recommend.Engine) error {
				books := engine.GetRecommendationsForUser(ctx, args[0], opts)
				return writeBooks(root.out, books, root.jsonOut)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "number of books (default from config)")
	cmd.Flags().BoolVar(&opts.IncludeTrending, "trending", false, "include recently popular books")
	cmd.Flags().StringSliceVar(&opts.ExcludeBookIDs, "exclude", nil, "book IDs to leave out")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "log catalog facets and stage counts")
	return cmd
}
