// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package models defines data structures for the Folio application.

This package contains the catalog and reader documents persisted in the document
store, the rental event payload consumed from the message bus, and the API
response envelope shared by every HTTP endpoint.

Key Components:

  - Book: Catalog entry with stock, rating and rental statistics
  - UserProfile: Reader profile with preferences, demographics and reading history
  - RentalCompletedEvent: Bus payload emitted when a rental finishes
  - APIResponse: Standardized API response wrapper

Documents carry both json and bson tags. Identifiers are opaque strings so the
same structures serve the MongoDB repositories and the in-memory store.
*/
package models
