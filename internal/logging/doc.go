// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package logging provides centralized zerolog-based logging for Folio.
//
// The package owns a single global zerolog.Logger configured once from main via
// Init. Components derive child loggers with WithComponent and request-scoped
// loggers with Ctx, which attaches the request and correlation IDs placed in the
// context by the HTTP middleware.
//
// Two bridges let libraries that expect other logging interfaces write through
// zerolog:
//
//   - SlogHandler implements slog.Handler for suture's sutureslog hook
//   - WatermillAdapter implements watermill.LoggerAdapter for the event router
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Retriever failed")
//
// # Configuration
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
package logging
