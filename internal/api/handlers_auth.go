// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
)

// UserInfo is the body of GET /auth/v1/user.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// CurrentUser returns the owner of the bearer token.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.jwt == nil {
		rw.ServiceUnavailable("authentication is not configured")
		return
	}
	token, err := auth.BearerToken(r)
	if err != nil {
		rw.Unauthorized(err.Error())
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		rw.Unauthorized("invalid or expired token")
		return
	}
	rw.Success(UserInfo{ID: claims.Subject, Email: claims.Email})
}
