// Folio - Book Rental Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, testCatalog(t), testConfig())

	for _, target := range []string{"/health/live", "/health/ready", "/health"} {
		rec := srv.get(t, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", target, rec.Code)
		}
	}

	var health HealthStatus
	decode(t, srv.get(t, "/health"), &health)
	if health.Status != "healthy" || !health.StoreConnected {
		t.Errorf("health = %+v, want healthy with store connected", health)
	}
	if health.StoreBackend != "memory" {
		t.Errorf("store_backend = %q, want memory", health.StoreBackend)
	}
}

func TestHealthStoreDown(t *testing.T) {
	srv := newTestServer(t, downStore{testCatalog(t)}, testConfig())

	rec := srv.get(t, "/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready status = %d, want 503", rec.Code)
	}
	if env := decode(t, rec, nil); env.Error == nil || env.Error.Code != CodeServiceDown {
		t.Errorf("error = %+v, want %s", env.Error, CodeServiceDown)
	}

	if rec := srv.get(t, "/health/live"); rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}

	var health HealthStatus
	decode(t, srv.get(t, "/health"), &health)
	if health.Status != "degraded" || health.StoreConnected {
		t.Errorf("health = %+v, want degraded", health)
	}
}
