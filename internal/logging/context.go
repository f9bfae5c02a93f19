// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	traceKey contextKey = iota
	loggerKey
)

// trace holds the IDs that tie log records of one request together.
type trace struct {
	requestID     string
	correlationID string
}

func traceFrom(ctx context.Context) trace {
	t, _ := ctx.Value(traceKey).(trace)
	return t
}

// ContextWithRequestID returns a context carrying the HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	t := traceFrom(ctx)
	t.requestID = id
	return context.WithValue(ctx, traceKey, t)
}

// ContextWithCorrelationID returns a context carrying a correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	t := traceFrom(ctx)
	t.correlationID = id
	return context.WithValue(ctx, traceKey, t)
}

// ContextWithNewCorrelationID attaches a fresh short correlation ID, the
// first 8 characters of a random UUID.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, uuid.NewString()[:8])
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return traceFrom(ctx).requestID
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return traceFrom(ctx).correlationID
}

// ContextWithLogger makes Ctx use logger instead of the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns a logger carrying the request and correlation IDs of ctx.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger, ok := ctx.Value(loggerKey).(zerolog.Logger)
	if !ok {
		logger = Logger()
	}

	t := traceFrom(ctx)
	if t.requestID == "" && t.correlationID == "" {
		return &logger
	}

	logCtx := logger.With()
	if t.correlationID != "" {
		logCtx = logCtx.Str("correlation_id", t.correlationID)
	}
	if t.requestID != "" {
		logCtx = logCtx.Str("request_id", t.requestID)
	}
	scoped := logCtx.Logger()
	return &scoped
}
