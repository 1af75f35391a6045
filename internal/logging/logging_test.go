// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return entry
}

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	previous := Logger()
	previousLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(previous)
		zerolog.SetGlobalLevel(previousLevel)
	})

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	previous := Logger()
	previousLevel := zerolog.GlobalLevel()
	defer func() {
		SetLogger(previous)
		zerolog.SetGlobalLevel(previousLevel)
	}()

	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})

	Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %s", buf.String())
	}
	Warn().Msg("shown")
	entry := decodeLine(t, &buf)
	if entry["message"] != "shown" || entry["level"] != "warn" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t)

	logger := WithComponent("cart")
	logger.Info().Str("session_id", "s1").Msg("refreshed")

	entry := decodeLine(t, buf)
	if entry["component"] != "cart" {
		t.Errorf("component = %v, want cart", entry["component"])
	}
	if entry["session_id"] != "s1" {
		t.Errorf("session_id = %v, want s1", entry["session_id"])
	}
}

func TestCtx(t *testing.T) {
	buf := captureGlobal(t)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("handled")

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
	if entry["correlation_id"] != "corr-1" {
		t.Errorf("correlation_id = %v", entry["correlation_id"])
	}
}

func TestCtx_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf).With().Str("scope", "test").Logger())
	Ctx(ctx).Info().Msg("scoped")

	entry := decodeLine(t, &buf)
	if entry["scope"] != "test" {
		t.Errorf("scope = %v, want test", entry["scope"])
	}
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id present without one in context")
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" {
		t.Error("empty context should carry no ids")
	}
	if len(GenerateRequestID()) != 36 {
		t.Error("request id should be a UUID")
	}
	if len(GenerateCorrelationID()) != 8 {
		t.Error("correlation id should be 8 characters")
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "http").
		WithGroup("event").
		Warn("service restarted",
			"attempt", 3,
			"failed", true,
			"err", errors.New("boom"),
			slog.Group("backoff", "seconds", 1.5),
		)

	entry := decodeLine(t, &buf)
	want := map[string]any{
		"level":                 "warn",
		"message":               "service restarted",
		"service":               "http",
		"event.attempt":         float64(3),
		"event.failed":          true,
		"event.err":             "boom",
		"event.backoff.seconds": 1.5,
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, entry[k], entry[k], v)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled on a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled on a warn logger")
	}
}
