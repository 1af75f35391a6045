// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package logging holds the process-wide zerolog logger for the KAPAS binaries.
//
// The server logs JSON; the CLI logs to the console at warn level so command output
// stays readable. Components derive child loggers with WithComponent and pass them
// down explicitly; request-scoped code uses Ctx to pick up request and correlation
// ids placed in the context by the API middleware.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logger := logging.WithComponent("cart")
//	logger.Info().Str("session_id", sid).Msg("cart refreshed")
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("rebuild failed")
//
// NewSlogLogger bridges the global logger to log/slog for libraries that only
// accept *slog.Logger (the suture supervisor event hook).
package logging
