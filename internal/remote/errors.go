// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// ErrCircuitOpen is returned without contacting the server while the circuit
// breaker is open.
var ErrCircuitOpen = errors.New("remote backend unavailable: circuit open")

// StatusError is a non-2xx response from the server.
type StatusError struct {
	StatusCode int
	Code       string // API error code, e.g. NOT_FOUND or DUPLICATE_KEY
	Message    string
	Method     string
	Path       string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap maps row store codes to the rowstore sentinel errors.
func (e *StatusError) Unwrap() error {
	return rowstore.ErrorForCode(e.Code)
}

// countsAsFailure reports whether err should trip the breaker: transport
// errors and 5xx count, client errors and cancellations do not.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode >= http.StatusInternalServerError || serr.StatusCode == http.StatusTooManyRequests
	}
	return true
}
