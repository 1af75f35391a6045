// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
	"github.com/ishubhamdubey/KAPAS/internal/session"
)

// RowCount is the body of row update and delete responses.
type RowCount struct {
	Count int `json:"count"`
}

// rowScope is the shopper a cart_items request acts for. Reads and writes
// only reach rows owned by the session or, when a valid token is present,
// the user.
type rowScope struct {
	scoped    bool
	sessionID string
	userID    string
}

func (s rowScope) filter() rowstore.Filter {
	if s.userID == "" {
		return rowstore.Eq("session_id", s.sessionID)
	}
	return rowstore.Or(rowstore.Eq("session_id", s.sessionID), rowstore.Eq("user_id", s.userID))
}

// where narrows a client filter to the scope. An empty write filter is left
// empty so the store still rejects it.
func (s rowScope) where(f rowstore.Filter, write bool) rowstore.Filter {
	if !s.scoped || (write && f.IsZero()) {
		return f
	}
	return rowstore.And(f, s.filter())
}

// foreignColumn returns the first ownership column of row that names another
// shopper, or "".
func (s rowScope) foreignColumn(row rowstore.Row) string {
	if !s.scoped {
		return ""
	}
	if v, ok := row["session_id"]; ok && v != s.sessionID {
		return "session_id"
	}
	if v, ok := row["user_id"]; ok && v != nil && (s.userID == "" || v != s.userID) {
		return "user_id"
	}
	return ""
}

// rowScope resolves the scope of a /rest/v1 request. Cart rows require the
// X-Cart-Session header; the bearer token is optional and an invalid one
// leaves the request anonymous. It writes the error response and returns
// false on failure.
func (h *Handler) rowScope(w http.ResponseWriter, r *http.Request, table string) (rowScope, bool) {
	if table != rowstore.CartItems.Name || h.config.Security.OpenRowAPI {
		return rowScope{}, true
	}
	id := r.Header.Get(CartSessionHeader)
	if !session.Valid(id) {
		NewResponseWriter(w, r).BadRequest("a valid " + CartSessionHeader + " header is required for " + table)
		return rowScope{}, false
	}
	return rowScope{scoped: true, sessionID: id, userID: h.optionalUser(r)}, true
}

func (h *Handler) optionalUser(r *http.Request) string {
	if h.jwt == nil {
		return ""
	}
	token, err := auth.BearerToken(r)
	if err != nil {
		return ""
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// SelectRows answers GET /rest/v1/{table}.
func (h *Handler) SelectRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	scope, ok := h.rowScope(w, r, table)
	if !ok {
		return
	}
	q, err := rowstore.ParseQuery(r.URL.Query())
	if err != nil {
		respondError(w, r, err, "Invalid query")
		return
	}
	q.Where = scope.where(q.Where, false)
	rows, err := h.rows.Select(r.Context(), table, q)
	if err != nil {
		respondError(w, r, err, "Failed to select rows")
		return
	}
	if rows == nil {
		rows = []rowstore.Row{}
	}
	NewResponseWriter(w, r).List(rows, len(rows))
}

// InsertRow answers POST /rest/v1/{table} with the stored row. Cart rows
// default to the caller's session.
func (h *Handler) InsertRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	scope, ok := h.rowScope(w, r, table)
	if !ok {
		return
	}
	var row rowstore.Row
	if err := decodeBody(r, w, &row); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if scope.scoped {
		if row == nil {
			row = rowstore.Row{}
		}
		if _, ok := row["session_id"]; !ok {
			row["session_id"] = scope.sessionID
		}
	}
	if col := scope.foreignColumn(row); col != "" {
		NewResponseWriter(w, r).Forbidden(col + " belongs to another shopper")
		return
	}
	stored, err := h.rows.Insert(r.Context(), table, row)
	if err != nil {
		respondError(w, r, err, "Failed to insert row")
		return
	}
	NewResponseWriter(w, r).Created(stored)
}

// UpdateRows answers PATCH /rest/v1/{table}. The filter comes from the query
// string and the patch from the body.
func (h *Handler) UpdateRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	scope, ok := h.rowScope(w, r, table)
	if !ok {
		return
	}
	q, err := rowstore.ParseQuery(r.URL.Query())
	if err != nil {
		respondError(w, r, err, "Invalid filter")
		return
	}
	var patch rowstore.Row
	if err := decodeBody(r, w, &patch); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if col := scope.foreignColumn(patch); col != "" {
		NewResponseWriter(w, r).Forbidden(col + " belongs to another shopper")
		return
	}
	n, err := h.rows.Update(r.Context(), table, scope.where(q.Where, true), patch)
	if err != nil {
		respondError(w, r, err, "Failed to update rows")
		return
	}
	NewResponseWriter(w, r).Success(RowCount{Count: n})
}

// DeleteRows answers DELETE /rest/v1/{table}.
func (h *Handler) DeleteRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	scope, ok := h.rowScope(w, r, table)
	if !ok {
		return
	}
	q, err := rowstore.ParseQuery(r.URL.Query())
	if err != nil {
		respondError(w, r, err, "Invalid filter")
		return
	}
	n, err := h.rows.Delete(r.Context(), table, scope.where(q.Where, true))
	if err != nil {
		respondError(w, r, err, "Failed to delete rows")
		return
	}
	NewResponseWriter(w, r).Success(RowCount{Count: n})
}
