// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ishubhamdubey/KAPAS/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var fromContext string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext = logging.RequestIDFromContext(r.Context())
		if logging.CorrelationIDFromContext(r.Context()) == "" {
			t.Error("correlation ID missing from context")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("response ID %q is not a UUID: %v", got, err)
	}
	if fromContext != got {
		t.Errorf("context ID = %q, header ID = %q", fromContext, got)
	}
}

func TestRequestID_PreservesUpstreamID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "short", incoming: "upstream-123", keep: true},
		{name: "too long", incoming: strings.Repeat("x", maxRequestIDLength+1), keep: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if (got == tt.incoming) != tt.keep {
				t.Errorf("response ID = %q, keep = %v", got, tt.keep)
			}
		})
	}
}

func TestPrometheusMetrics_StatusAndPattern(t *testing.T) {
	var label string
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			label = endpointLabel(req)
		})
	})
	r.Get("/api/v1/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if label != "/api/v1/products/{id}" {
		t.Errorf("endpoint label = %q", label)
	}
}

func TestEndpointLabel_Unmatched(t *testing.T) {
	if got := endpointLabel(httptest.NewRequest(http.MethodGet, "/nowhere", nil)); got != unmatchedEndpoint {
		t.Errorf("endpointLabel() = %q, want %q", got, unmatchedEndpoint)
	}
}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}
	if _, err := sr.Write([]byte("ok")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	sr.WriteHeader(http.StatusInternalServerError)
	if sr.statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want 200", sr.statusCode)
	}
	if sr.Unwrap() != rec {
		t.Error("Unwrap() should return the wrapped writer")
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	tests := []struct {
		name      string
		status    int
		sleep     time.Duration
		slow      time.Duration
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: `"level":"debug"`},
		{name: "server error", status: http.StatusBadGateway, wantLevel: `"level":"warn"`},
		{name: "slow", status: http.StatusOK, sleep: 5 * time.Millisecond, slow: time.Millisecond, wantLevel: `"level":"warn"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			handler := AccessLog(tt.slow)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(tt.sleep)
				w.WriteHeader(tt.status)
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			req = req.WithContext(logging.ContextWithLogger(req.Context(), logger))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			line := buf.String()
			if !strings.Contains(line, tt.wantLevel) {
				t.Errorf("log line %q missing %s", line, tt.wantLevel)
			}
			if !strings.Contains(line, `"path":"/api/v1/cart"`) {
				t.Errorf("log line %q missing path", line)
			}
		})
	}
}
