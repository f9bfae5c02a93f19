// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package recommend implements the rule-based book recommendation engine.
//
// # Architecture
//
// A request flows through fixed stages:
//
//   - Normalizer: trims and lower-cases the reader's genre and language preferences
//   - Direct matcher: exact genre AND exact language fast path
//   - Retrievers: genre, language, demographic, collaborative and trending, run concurrently
//   - Forced matcher: relaxed substring matching when the primary retrievers starve
//   - Weights: an ordered list of (predicate, override) rules over a base WeightSet
//   - Scorer: additive per-list weights followed by an ordered bonus pipeline
//   - Generic fallback: popular or recent books when everything else is empty
//
// # Guarantees
//
// The engine is deterministic: the same catalog, reader and options produce the
// same ordered result. It never recommends a book that is out of stock or listed
// in Options.ExcludeBookIDs, and it never returns an error. Retriever failures
// contribute an empty list; a panic or an unexpected store error falls back to
// non-personalized results.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, store, logger)
//	if err != nil {
//	    return err
//	}
//
//	books := engine.GetRecommendationsForUser(ctx, userID, recommend.Options{
//	    Limit:           10,
//	    IncludeTrending: true,
//	})
//
// # Thread Safety
//
// The engine holds no per-request state and is safe for concurrent use.
package recommend
