// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package middleware provides HTTP middleware for the recommendation API.

Key Components:

  - RequestID: request and correlation IDs for log tracing
  - PrometheusMetrics: request counts and latency labelled by route pattern
  - LatencyMonitor: a sliding window of recent requests with per-route
    percentiles, served by the debug endpoint, and slow request logging

All middleware uses the func(http.Handler) http.Handler shape so it plugs
directly into chi's r.Use.

Usage Example:

	monitor := middleware.NewLatencyMonitor(1000, time.Second)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(monitor.Middleware)

Route labels come from chi's RouteContext, so /api/v1/recommendations/u1 and
/api/v1/recommendations/u2 share the label /api/v1/recommendations/{userID}.
Requests that match no route are labelled "unmatched" to bound cardinality.
*/
package middleware
