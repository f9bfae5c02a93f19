// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package database provides persistence for the Folio catalog.

Two backends implement catalog.Store:

  - MongoStore keeps books and readers in MongoDB collections ("books" and
    "users") and translates catalog queries into BSON filters.
  - memory.Store evaluates the same queries in process and is seeded from JSON
    fixtures.

Open selects the backend from configuration and, when enabled, wraps it in a
CircuitBreakerStore so that a failing MongoDB deployment trips fast instead of
stalling every recommendation request.

# Text Matching

Reader preferences reach MongoDB only as $regex values built by
catalog.TextMatch.Pattern, which escapes every term with regexp.QuoteMeta and
sets the "i" option. A TextMatch without terms matches nothing, so the
repositories skip the round trip and return an empty result.

# Ordering

Every sorted query appends an ascending _id key so that ties resolve the same
way in MongoDB and in the memory store.

# Rentals

RecordRental updates the book ($addToSet readBy, $inc rentalCount, $max
lastRented) and then pushes a reading history entry onto the reader. The two
writes are not transactional; duplicate deliveries are filtered by event ID
before they reach the store.
*/
package database
