// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package api provides the HTTP surface of the recommendation service.

Routes (chi router):

	GET /health/live                         liveness probe
	GET /health/ready                        readiness probe (store ping)
	GET /health                              component status
	GET /metrics                             Prometheus exposition
	GET /api/v1/recommendations/{userID}     personalized recommendations
	GET /api/v1/books/trending               trending books, optionally personalized
	GET /api/v1/debug/catalog                distinct genres and languages
	GET /api/v1/debug/performance            per-route latency percentiles

Query parameters of /recommendations/{userID}:

  - limit: books wanted; 0 or absent selects the configured default and
    values above the configured maximum are clamped
  - trending: include the trending retriever (true/false)
  - exclude: book IDs to leave out, comma separated or repeated
  - debug: log catalog facets and per-stage counts; bypasses the result cache

Every JSON response uses the models.APIResponse envelope:

	{"status":"success","data":{...},"metadata":{"timestamp":"...","query_time_ms":3}}

Errors set status to "error" and carry a machine-readable code such as
VALIDATION_ERROR or INVALID_PARAMETER. The recommendation endpoints never
fail because of the catalog: the engine degrades to fallbacks instead.

Middleware (outermost first): request ID, real IP, panic recovery, CORS.
API routes add per-IP rate limiting (go-chi/httprate), security headers,
Prometheus metrics, latency monitoring and gzip compression.
*/
package api
