// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/database"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	fixtures string
	backend  string
	mongoURI string
	logLevel string
	jsonOut  bool
	timeout  time.Duration

	cfg *config.Config
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{out: out}

	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Folio recommendation engine tool",
		Long:          "Run recommendations against the catalog store, seed it from fixtures and publish rental events.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.fixtures, "fixtures", "", "fixture file to load; implies --backend memory unless set")
	flags.StringVar(&opts.backend, "backend", "", "store backend: mongo or memory (default from config)")
	flags.StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI (default from config)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall command timeout")

	root.AddCommand(
		newRecommendCmd(opts),
		newTrendingCmd(opts),
		newFacetsCmd(opts),
		newSeedCmd(opts),
		newPublishRentalCmd(opts),
	)
	return root
}

// load reads the server configuration and applies flag overrides.
func (o *rootOptions) load() error {
	logging.Init(logging.Config{
		Level:     o.logLevel,
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	})

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if o.fixtures != "" {
		cfg.Database.FixturesPath = o.fixtures
		if o.backend == "" {
			cfg.Database.Backend = config.BackendMemory
		}
	}
	if o.backend != "" {
		cfg.Database.Backend = o.backend
	}
	if o.mongoURI != "" {
		cfg.Database.URI = o.mongoURI
	}

	o.cfg = cfg
	return nil
}

func (o *rootOptions) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}

// openStore opens the configured store. The caller closes it.
func (o *rootOptions) openStore(ctx context.Context) (catalog.Store, error) {
	store, err := database.Open(ctx, &o.cfg.Database, logging.WithComponent("database"))
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", o.cfg.Database.Backend, err)
	}
	return store, nil
}

// withEngine opens the store, builds an engine over it and runs fn.
func (o *rootOptions) withEngine(fn func(ctx context.Context, store catalog.Store, engine *recommend.Engine) error) error {
	ctx, cancel := o.context()
	defer cancel()

	store, err := o.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	engineCfg := recommend.DefaultConfig()
	if o.cfg.Recommend.DefaultLimit > 0 {
		engineCfg.Limits.DefaultLimit = o.cfg.Recommend.DefaultLimit
	}
	if o.cfg.Recommend.MaxLimit > 0 {
		engineCfg.Limits.MaxLimit = o.cfg.Recommend.MaxLimit
	}

	engine, err := recommend.NewEngine(engineCfg, store, store, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}
	return fn(ctx, store, engine)
}
