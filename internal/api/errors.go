// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import "errors"

// Error codes returned in models.APIError.Code.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeNotFound         = "NOT_FOUND"
	CodeCatalogError     = "CATALOG_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
	CodeServiceDown      = "SERVICE_UNAVAILABLE"
)

var errNoStore = errors.New("no store configured")
