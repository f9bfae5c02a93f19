// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package catalog defines the storage-neutral query model used by the
// recommendation engine to read books and readers.
//
// Queries are typed predicates rather than raw store filters. Free-text terms that
// originate from reader preferences are carried verbatim in a TextMatch and only
// turned into a pattern by TextMatch.Pattern, which escapes every metacharacter.
// Store implementations translate a BookQuery or UserQuery into their own filter
// language (see internal/database) or evaluate it in process with Matches.
package catalog
