// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ishubhamdubey/KAPAS/internal/auth"
	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/logging"
	"github.com/ishubhamdubey/KAPAS/internal/session"
)

// sessionCookieMaxAge keeps the cart session for a year.
const sessionCookieMaxAge = 365 * 24 * 60 * 60

// CartView is the cart as returned by the cart endpoints.
type CartView struct {
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id,omitempty"`
	Items     []cart.LineItem `json:"items"`
	Count     int64           `json:"count"`
	Total     float64         `json:"total"`
}

// AdoptResult is returned by POST /api/v1/cart/adopt.
type AdoptResult struct {
	Adopted int      `json:"adopted"`
	Cart    CartView `json:"cart"`
}

// cartSession returns the caller's session id, issuing one in a cookie and
// the X-Cart-Session response header when the request carries none.
func (h *Handler) cartSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	if id := r.Header.Get(CartSessionHeader); id != "" {
		if !session.Valid(id) {
			NewResponseWriter(w, r).BadRequest("malformed " + CartSessionHeader + " header")
			return "", false
		}
		return id, true
	}
	if c, err := r.Cookie(session.StorageKey); err == nil && session.Valid(c.Value) {
		return c.Value, true
	}

	id := session.NewID(time.Now())
	http.SetCookie(w, &http.Cookie{
		Name:     session.StorageKey,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   h.config.Security.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(CartSessionHeader, id)
	logging.Ctx(r.Context()).Debug().Str("session_id", id).Msg("Issued cart session")
	return id, true
}

// cartStore resolves the cart of the caller. It writes the error response and
// returns false on failure.
func (h *Handler) cartStore(w http.ResponseWriter, r *http.Request) (*cart.Store, CartView, bool) {
	sessionID, ok := h.cartSession(w, r)
	if !ok {
		return nil, CartView{}, false
	}
	userID, _ := auth.UserFromContext(r.Context())
	store, err := h.carts.For(sessionID, userID)
	if err != nil {
		respondError(w, r, err, "Failed to open cart")
		return nil, CartView{}, false
	}
	return store, CartView{SessionID: sessionID, UserID: userID}, true
}

func fillView(view CartView, store *cart.Store) CartView {
	view.Items = store.Items()
	if view.Items == nil {
		view.Items = []cart.LineItem{}
	}
	view.Count = store.Count()
	view.Total = store.Total()
	return view
}

// Cart returns the caller's cart, reloaded from the row store.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	store, view, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	if err := store.Refresh(r.Context()); err != nil {
		respondError(w, r, err, "Failed to load cart")
		return
	}
	NewResponseWriter(w, r).Success(fillView(view, store))
}

// AddCartItem adds a product to the cart or increments its existing line.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, w, &req); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		respondError(w, r, err, "Invalid cart item")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, r, err, "Failed to load product")
		return
	}
	store, view, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	if err := store.Add(r.Context(), product, req.Size, req.Color, req.Quantity); err != nil {
		respondError(w, r, err, "Failed to add item to cart")
		return
	}
	NewResponseWriter(w, r).Created(fillView(view, store))
}

// UpdateCartItem sets the quantity of one line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeBody(r, w, &req); err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		respondError(w, r, err, "Invalid quantity")
		return
	}

	store, view, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	if err := store.Update(r.Context(), chi.URLParam(r, "id"), req.Quantity); err != nil {
		respondError(w, r, err, "Failed to update cart item")
		return
	}
	NewResponseWriter(w, r).Success(fillView(view, store))
}

// RemoveCartItem deletes one line.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	store, view, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	if err := store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, "Failed to remove cart item")
		return
	}
	NewResponseWriter(w, r).Success(fillView(view, store))
}

// ClearCart deletes every line owned by the caller.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, view, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	if err := store.Clear(r.Context()); err != nil {
		respondError(w, r, err, "Failed to clear cart")
		return
	}
	NewResponseWriter(w, r).Success(fillView(view, store))
}

// AdoptCart attaches the session's anonymous lines to the signed-in user.
func (h *Handler) AdoptCart(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		NewResponseWriter(w, r).Unauthorized("sign in to keep this cart")
		return
	}
	store, view, ok := h.cartStore(w, r)
	if !ok {
		return
	}
	n, err := store.Adopt(r.Context())
	if err != nil {
		respondError(w, r, err, "Failed to adopt cart")
		return
	}
	logging.Ctx(r.Context()).Info().Int("adopted", n).Str("user_id", view.UserID).Msg("Cart adopted")
	NewResponseWriter(w, r).Success(AdoptResult{Adopted: n, Cart: fillView(view, store)})
}
