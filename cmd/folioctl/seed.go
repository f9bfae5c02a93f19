// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/database/memory"
)

func newSeedCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.json>",
		Short: "Upsert books and readers from a fixture file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := memory.LoadFixtures(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := root.context()
			defer cancel()

			// Seed explicitly rather than through the fixture path.
			root.cfg.Database.FixturesPath = ""
			store, err := root.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(context.Background()) }()

			if err := store.Seed(ctx, fixtures.Books, fixtures.Users); err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			_, err = fmt.Fprintf(root.out, "seeded %d books and %d readers into %s\n",
				len(fixtures.Books), len(fixtures.Users), root.cfg.Database.Backend)
			return err
		},
	}
}
