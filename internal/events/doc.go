// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package events consumes rental completion events and folds them into the catalog.
//
// A RentalCompleted event arrives on a NATS JetStream subject through a
// Watermill subscriber. The router applies, outermost first:
//
//  1. Recoverer: handler panics become errors
//  2. Deduplicator: redelivered events are dropped by event ID
//  3. Retry: transient store failures are retried with backoff
//
// The event ID is recorded before processing, so an event that still fails
// after every retry is logged and not applied on redelivery.
//
// The handler validates the event, records the rental (the reader joins the
// book's readBy set, rentalCount and lastRented advance, the reading history
// grows) and drops the reader's cached recommendations. Malformed events and
// events naming an unknown book or reader are acknowledged and counted, never
// retried.
//
// The JetStream stream bound to the topic is created or updated on start
// (EnsureStream). Publishers set the event ID as the NATS message ID, so the
// server also drops repeated publishes inside the stream's duplicate window.
//
// An embedded NATS server with JetStream can be started in process for
// single-node deployments.
package events
