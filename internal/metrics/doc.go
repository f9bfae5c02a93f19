// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package metrics exposes Prometheus instrumentation for Folio.
//
// Collectors are registered on the default registry with promauto at package
// init and are served by the /metrics endpoint. Callers use the Record* helpers
// rather than touching collectors directly so label sets stay consistent.
//
// Metric families:
//   - store_*: document store operation latency and errors
//   - recommend_*: engine outcomes, latency, retriever failures and candidate counts
//   - cache_*: recommendation result cache efficiency
//   - rental_events_*: rental event consumer throughput
//   - circuit_breaker_*: store circuit breaker state
//   - api_*: HTTP request latency and throughput
package metrics
