// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package services adapts the service's long-running components to the
// suture.Service interface: Serve(ctx) blocks until ctx is canceled and a
// returned error asks the supervisor for a restart.
package services
