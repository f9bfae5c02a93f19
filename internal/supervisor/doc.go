// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package supervisor runs the long-lived parts of the service under a
suture v4 supervisor tree.

The tree has two layers so that a crashing event consumer never takes the
HTTP API down with it:

	RootSupervisor ("folio")
	├── MessagingSupervisor ("messaging-layer")
	│   └── rental-event-consumer (if EVENTS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── http-server

Supervisor events (service failures, backoff, restarts) are logged through
sutureslog, which takes a *slog.Logger. logging.NewSlogLogger bridges that
logger to the process-wide zerolog logger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewConsumerService(factory, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))
	return tree.Serve(ctx)
*/
package supervisor
