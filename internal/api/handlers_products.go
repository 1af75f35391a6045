// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

// Products lists products. Filters are exclusive and applied in the order
// ids, category, featured, best_sellers; without one every stored product is
// returned newest first.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	req, err := parseProductsRequest(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	ctx := r.Context()
	var products []catalog.Product
	switch {
	case len(req.IDs) > 0:
		products, err = h.catalog.ByIDs(ctx, req.IDs)
	case req.Category != "":
		products = h.catalog.ByCategory(ctx, req.Category)
	case req.Featured:
		products = h.catalog.Featured(ctx, req.Limit)
	case req.BestSellers:
		products = h.catalog.BestSellers(ctx, req.Limit)
	default:
		products, err = h.catalog.All(ctx)
	}
	if err != nil {
		respondError(w, r, err, "Failed to list products")
		return
	}

	if req.Limit > 0 && len(products) > req.Limit {
		products = products[:req.Limit]
	}
	if products == nil {
		products = []catalog.Product{}
	}
	NewResponseWriter(w, r).List(products, len(products))
}

// Product returns one product, stored or sample.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "Failed to load product")
		return
	}
	NewResponseWriter(w, r).Success(p)
}

// Delivery estimates delivery to a PIN code.
func (h *Handler) Delivery(w http.ResponseWriter, r *http.Request) {
	req := deliveryRequest{PIN: chi.URLParam(r, "pin")}
	if err := validateRequest(&req); err != nil {
		respondError(w, r, err, "Invalid PIN code")
		return
	}
	estimate, err := catalog.EstimateDelivery(req.PIN)
	if err != nil {
		respondError(w, r, err, "Failed to estimate delivery")
		return
	}
	NewResponseWriter(w, r).Success(estimate)
}
