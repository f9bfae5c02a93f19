// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the validator library with a thread-safe singleton, the
// custom entityid tag for book and reader identifiers, and messages that name
// fields by their json or query tag.
//
// # Usage
//
//	type RecommendationQuery struct {
//	    UserID  string   `query:"userId" validate:"required,entityid"`
//	    Limit   int      `query:"limit" validate:"omitempty,min=1,max=50"`
//	    Exclude []string `query:"exclude" validate:"max=100,dive,entityid"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Rental events are validated with the same validator before they touch the store.
package validation
