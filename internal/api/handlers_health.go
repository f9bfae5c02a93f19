// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/folio/internal/models"
)

// readyTimeout bounds the store ping of a readiness probe.
const readyTimeout = 2 * time.Second

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	StoreConnected bool    `json:"store_connected"`
	StoreBackend   string  `json:"store_backend,omitempty"`
	CacheBackend   string  `json:"cache_backend,omitempty"`
	EventsEnabled  bool    `json:"events_enabled"`
	Uptime         float64 `json:"uptime"`
}

// Health handles GET /health. It always answers 200; status is "degraded"
// when the store does not respond.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.pingStore(r.Context()) == nil

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	health := HealthStatus{
		Status:         status,
		Version:        h.version,
		StoreConnected: connected,
		Uptime:         time.Since(h.startTime).Seconds(),
	}
	if h.config != nil {
		health.StoreBackend = h.config.Database.Backend
		if h.config.Cache.Enabled {
			health.CacheBackend = h.config.Cache.Backend
		}
		health.EventsEnabled = h.config.Events.Enabled
	}

	respondSuccess(w, r, health, time.Time{})
}

// HealthLive handles liveness probes.
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r, time.Time{}),
	})
}

// HealthReady handles readiness probes.
// Returns 200 OK only if the store answers a ping, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.pingStore(r.Context()); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceDown, "Store is not reachable", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"ready": true},
		Metadata: metadata(r, time.Time{}),
	})
}

func (h *Handler) pingStore(ctx context.Context) error {
	if h.store == nil {
		return errNoStore
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return h.store.Ping(ctx)
}
