// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/models"
)

type publishOptions struct {
	userID    string
	bookID    string
	eventID   string
	rentedAt  string
	url       string
	provision bool
}

func newPublishRentalCmd(root *rootOptions) *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish-rental",
		Short: "Publish a rental-completed event to JetStream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			event, err := opts.event(time.Now())
			if err != nil {
				return err
			}
			msg, err := events.EncodeRental(event)
			if err != nil {
				return err
			}

			url := opts.url
			if url == "" {
				url = root.cfg.Events.URL
			}

			ctx, cancel := root.context()
			defer cancel()

			if opts.provision {
				if err := events.ProvisionStream(ctx, url, &root.cfg.Events); err != nil {
					return err
				}
			}

			pub, err := events.NewPublisher(url, logging.NewWatermillAdapter(logging.WithComponent("events")))
			if err != nil {
				return err
			}
			defer func() { _ = pub.Close() }()

			if err := pub.Publish(root.cfg.Events.Topic, msg); err != nil {
				return fmt.Errorf("publish to %s: %w", root.cfg.Events.Topic, err)
			}
			_, err = fmt.Fprintf(root.out, "published %s (user %s, book %s)\n", event.EventID, event.UserID, event.BookID)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.userID, "user", "", "reader who rented the book")
	flags.StringVar(&opts.bookID, "book", "", "rented book")
	flags.StringVar(&opts.eventID, "event-id", "", "event ID (default: random UUID)")
	flags.StringVar(&opts.rentedAt, "rented-at", "", "rental time in RFC 3339 (default: now)")
	flags.StringVar(&opts.url, "nats-url", "", "NATS server URL (default from config)")
	flags.BoolVar(&opts.provision, "provision", true, "create or update the stream before publishing")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("book")
	return cmd
}

// event builds the event from the flags.
func (o *publishOptions) event(now time.Time) (*models.RentalCompletedEvent, error) {
	event := &models.RentalCompletedEvent{
		EventID:  o.eventID,
		UserID:   o.userID,
		BookID:   o.bookID,
		RentedAt: now.UTC(),
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if o.rentedAt != "" {
		t, err := time.Parse(time.RFC3339, o.rentedAt)
		if err != nil {
			return nil, fmt.Errorf("--rented-at: %w", err)
		}
		event.RentedAt = t.UTC()
	}
	return event, nil
}
