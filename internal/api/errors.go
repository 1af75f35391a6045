// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
	"github.com/ishubhamdubey/KAPAS/internal/remote"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
	"github.com/ishubhamdubey/KAPAS/internal/validation"
)

// errorStatus maps a domain error to a status and code. ok is false for
// errors that should be reported as internal.
func errorStatus(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound, ErrCodeNotFound, true
	case errors.Is(err, catalog.ErrInvalidPIN), errors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrCodeValidation, true
	case errors.Is(err, cart.ErrSampleProduct):
		return http.StatusBadRequest, ErrCodeBadRequest, true
	case errors.Is(err, remote.ErrCircuitOpen):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, true
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, true
	}

	switch rowCode := rowstore.ErrorCode(err); rowCode {
	case "":
	case rowstore.CodeUnknownTable:
		return http.StatusNotFound, rowCode, true
	case rowstore.CodeDuplicateKey:
		return http.StatusConflict, rowCode, true
	default:
		return http.StatusBadRequest, rowCode, true
	}
	return http.StatusInternalServerError, ErrCodeInternal, false
}

// respondError writes err. Known domain errors keep their message; anything
// else is logged and answered with message.
func respondError(w http.ResponseWriter, r *http.Request, err error, message string) {
	rw := NewResponseWriter(w, r)

	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	status, code, ok := errorStatus(err)
	if !ok {
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(message)
		rw.Error(status, code, message)
		return
	}
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg(message)
	}
	rw.Error(status, code, err.Error())
}
