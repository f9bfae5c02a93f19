// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishOptionsEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("defaults", func(t *testing.T) {
		opts := &publishOptions{userID: "u1", bookID: "b1"}
		event, err := opts.event(now)
		require.NoError(t, err)
		assert.NotEmpty(t, event.EventID)
		assert.Equal(t, now.UTC(), event.RentedAt)
		assert.Equal(t, "u1", event.UserID)
		assert.Equal(t, "b1", event.BookID)
	})

	t.Run("explicit id and time", func(t *testing.T) {
		opts := &publishOptions{userID: "u1", bookID: "b1", eventID: "evt-9", rentedAt: "2026-02-14T08:30:00Z"}
		event, err := opts.event(now)
		require.NoError(t, err)
		assert.Equal(t, "evt-9", event.EventID)
		assert.Equal(t, time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC), event.RentedAt)
	})

	t.Run("bad time", func(t *testing.T) {
		opts := &publishOptions{userID: "u1", bookID: "b1", rentedAt: "yesterday"}
		_, err := opts.event(now)
		assert.ErrorContains(t, err, "--rented-at")
	})
}

func TestPublishRentalRequiresFlags(t *testing.T) {
	_, err := run(t, "publish-rental", "--user", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "book")
}
