// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ishubhamdubey/KAPAS/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// maxListLimit bounds the limit parameter of product listings.
const maxListLimit = 200

// addItemRequest is the body of POST /api/v1/cart/items.
type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=128"`
	Size      string `json:"size" validate:"max=32"`
	Color     string `json:"color" validate:"max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=99"`
}

// updateItemRequest is the body of PATCH /api/v1/cart/items/{id}. A zero
// quantity removes the line.
type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=99"`
}

// deliveryRequest validates the PIN path parameter.
type deliveryRequest struct {
	PIN string `json:"pin" validate:"required,pincode"`
}

// productsRequest holds the product listing parameters.
type productsRequest struct {
	Category    string
	Featured    bool
	BestSellers bool
	IDs         []string
	Limit       int
}

// decodeBody decodes a bounded JSON body into dst.
func decodeBody(r *http.Request, w http.ResponseWriter, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func validateRequest(req any) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr
	}
	return nil
}

// parseIntParam parses an optional non-negative integer query parameter.
func parseIntParam(r *http.Request, name string, def, maxVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	if maxVal > 0 && n > maxVal {
		n = maxVal
	}
	return n, nil
}

// parseBoolParam parses an optional boolean query parameter.
func parseBoolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return v, nil
}

func parseProductsRequest(r *http.Request) (productsRequest, error) {
	var req productsRequest
	var err error

	q := r.URL.Query()
	req.Category = strings.TrimSpace(q.Get("category"))
	if req.Featured, err = parseBoolParam(r, "featured"); err != nil {
		return req, err
	}
	if req.BestSellers, err = parseBoolParam(r, "best_sellers"); err != nil {
		return req, err
	}
	if req.Limit, err = parseIntParam(r, "limit", 0, maxListLimit); err != nil {
		return req, err
	}
	if raw := q.Get("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.IDs = append(req.IDs, id)
			}
		}
	}
	return req, nil
}
