// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"
	"testing"

	"github.com/ishubhamdubey/KAPAS/internal/session"
)

func addBody(productID string, qty int) map[string]any {
	return map[string]any{"product_id": productID, "size": "M", "color": "Red", "quantity": qty}
}

func TestCart_IssuesSession(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	rec := env.do(t, http.MethodGet, "/api/v1/cart", nil)
	expectStatus(t, rec, http.StatusOK)

	sid := rec.Header().Get(CartSessionHeader)
	if !session.Valid(sid) {
		t.Fatalf("issued session %q is not valid", sid)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.StorageKey {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != sid || !cookie.HttpOnly {
		t.Fatalf("session cookie = %+v", cookie)
	}

	var view CartView
	decode(t, rec, &view)
	if view.SessionID != sid || len(view.Items) != 0 || view.Count != 0 {
		t.Errorf("new cart = %+v", view)
	}

	// The cookie alone identifies the cart on later requests.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, "Cookie", session.StorageKey+"="+sid)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get(CartSessionHeader) != "" {
		t.Error("a second session was issued for a known cookie")
	}

	expectErrorCode(t, env.do(t, http.MethodGet, "/api/v1/cart", nil, CartSessionHeader, "not-a-session"),
		http.StatusBadRequest, ErrCodeBadRequest)
}

func TestCart_Lifecycle(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	sid := session.NewID(fixedNow)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", addBody("kapas-na-1", 1), CartSessionHeader, sid)
	expectStatus(t, rec, http.StatusCreated)
	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", addBody("kapas-na-1", 2), CartSessionHeader, sid)
	expectStatus(t, rec, http.StatusCreated)

	var view CartView
	decode(t, rec, &view)
	if len(view.Items) != 1 || view.Count != 3 {
		t.Fatalf("cart after repeated add = %+v", view)
	}
	line := view.Items[0]
	if line.Product == nil || line.Product.ID != "kapas-na-1" {
		t.Fatalf("line product not joined: %+v", line)
	}
	if want := 3 * line.Product.DiscountedPrice; view.Total != want {
		t.Errorf("total = %v, want %v", view.Total, want)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", addBody("kapas-bs-5", 1), CartSessionHeader, sid)
	expectStatus(t, rec, http.StatusCreated)
	decode(t, rec, &view)
	if len(view.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(view.Items))
	}

	rec = env.do(t, http.MethodPatch, "/api/v1/cart/items/"+line.ID, map[string]any{"quantity": 5}, CartSessionHeader, sid)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &view)
	if view.Count != 6 {
		t.Errorf("count after update = %d, want 6", view.Count)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/cart/items/"+line.ID, nil, CartSessionHeader, sid)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &view)
	if len(view.Items) != 1 || view.Count != 1 {
		t.Errorf("cart after remove = %+v", view)
	}

	expectErrorCode(t, env.do(t, http.MethodDelete, "/api/v1/cart/items/"+line.ID, nil, CartSessionHeader, sid),
		http.StatusNotFound, ErrCodeNotFound)

	// Another session cannot touch this cart's lines.
	other := session.NewID(fixedNow)
	remaining := view.Items[0].ID
	expectErrorCode(t, env.do(t, http.MethodPatch, "/api/v1/cart/items/"+remaining, map[string]any{"quantity": 2}, CartSessionHeader, other),
		http.StatusNotFound, ErrCodeNotFound)

	rec = env.do(t, http.MethodDelete, "/api/v1/cart", nil, CartSessionHeader, sid)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &view)
	if len(view.Items) != 0 {
		t.Errorf("cart not cleared: %+v", view)
	}
}

func TestCart_AddErrors(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	sid := session.NewID(fixedNow)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{name: "sample product", body: addBody("sample-na-1", 1), status: http.StatusBadRequest, code: ErrCodeBadRequest},
		{name: "unknown product", body: addBody("nope", 1), status: http.StatusNotFound, code: ErrCodeNotFound},
		{name: "zero quantity", body: addBody("kapas-na-1", 0), status: http.StatusBadRequest, code: ErrCodeValidation},
		{name: "missing product", body: map[string]any{"quantity": 1}, status: http.StatusBadRequest, code: ErrCodeValidation},
		{name: "not json", body: "just a string", status: http.StatusBadRequest, code: ErrCodeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/cart/items", tt.body, CartSessionHeader, sid)
			expectErrorCode(t, rec, tt.status, tt.code)
		})
	}
}

func TestCart_Adopt(t *testing.T) {
	env := newTestEnv(t, testOptions{withAuth: true})
	sid := session.NewID(fixedNow)
	token := env.token(t, "u1")

	expectStatus(t, env.do(t, http.MethodPost, "/api/v1/cart/items", addBody("kapas-na-2", 1), CartSessionHeader, sid), http.StatusCreated)

	expectErrorCode(t, env.do(t, http.MethodPost, "/api/v1/cart/adopt", nil, CartSessionHeader, sid),
		http.StatusUnauthorized, ErrCodeUnauthorized)
	expectErrorCode(t, env.do(t, http.MethodPost, "/api/v1/cart/adopt", nil, CartSessionHeader, sid, "Authorization", bearer("bad")),
		http.StatusUnauthorized, ErrCodeUnauthorized)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/adopt", nil, CartSessionHeader, sid, "Authorization", bearer(token))
	expectStatus(t, rec, http.StatusOK)
	var result AdoptResult
	decode(t, rec, &result)
	if result.Adopted != 1 || result.Cart.UserID != "u1" || len(result.Cart.Items) != 1 {
		t.Fatalf("adopt result = %+v", result)
	}

	// The account sees its lines from a new session.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, CartSessionHeader, session.NewID(fixedNow), "Authorization", bearer(token))
	expectStatus(t, rec, http.StatusOK)
	var view CartView
	decode(t, rec, &view)
	if len(view.Items) != 1 || view.Items[0].ProductID != "kapas-na-2" {
		t.Errorf("account cart from another session = %+v", view)
	}
}
