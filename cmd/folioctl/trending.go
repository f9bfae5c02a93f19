// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/models"
	"github.com/tomtom215/folio/internal/recommend"
)

func newTrendingCmd(root *rootOptions) *cobra.Command {
	var (
		userID  string
		exclude []string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List books rented often in the trending window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withEngine(func(ctx context.Context, store catalog.Store, engine *recommend.Engine) error {
				var user *models.UserProfile
				if userID != "" {
					u, err := store.FindUserByID(ctx, userID)
					switch {
					case err == nil:
						user = u
					case errors.Is(err, catalog.ErrNotFound):
						cmd.PrintErrf("reader %q not found, listing for an anonymous reader\n", userID)
					default:
						return err
					}
				}
				books := engine.GetTrendingBooks(ctx, exclude, user, debug)
				return writeBooks(root.out, books, root.jsonOut)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "filter by this reader's preferences")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "book IDs to leave out")
	cmd.Flags().BoolVar(&debug, "debug", false, "log catalog facets")
	return cmd
}
