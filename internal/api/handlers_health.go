// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"context"
	"net/http"
	"time"
)

// healthProbeTimeout bounds the backend probe of a health check.
const healthProbeTimeout = 2 * time.Second

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status        string    `json:"status"` // healthy or degraded
	Version       string    `json:"version"`
	Backend       string    `json:"backend"`
	StoreOK       bool      `json:"store_ok"`
	StoreError    string    `json:"store_error,omitempty"`
	AuthEnabled   bool      `json:"auth_enabled"`
	Index         IndexInfo `json:"index"`
	CartsCached   int       `json:"carts_cached"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// Health reports service health. A failing store degrades the status but the
// endpoint still answers 200 so the index and cart figures stay visible.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	var err error
	if h.pinger != nil {
		err = h.pinger.Ping(ctx)
	} else {
		err = h.catalog.Probe(ctx)
	}

	status := HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		Backend:       h.config.Store.Backend,
		StoreOK:       err == nil,
		AuthEnabled:   h.jwt != nil,
		Index:         h.indexInfo(),
		CartsCached:   h.carts.Len(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if err != nil {
		status.Status = "degraded"
		status.StoreError = err.Error()
	}
	NewResponseWriter(w, r).Success(status)
}
