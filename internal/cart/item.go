// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cart

import (
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
)

// LineItem is one cart row, joined with its product when the product resolves.
type LineItem struct {
	ID            string           `json:"id"`
	SessionID     string           `json:"session_id"`
	UserID        string           `json:"user_id,omitempty"`
	ProductID     string           `json:"product_id"`
	Quantity      int64            `json:"quantity"`
	SelectedSize  string           `json:"selected_size"`
	SelectedColor string           `json:"selected_color"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Product       *catalog.Product `json:"product,omitempty"`
}

// Matches reports whether the item is for the given product, size and color.
func (li *LineItem) Matches(productID, size, color string) bool {
	return li.ProductID == productID && li.SelectedSize == size && li.SelectedColor == color
}

// Subtotal is the discounted price times the quantity, or 0 when the product did
// not resolve.
func (li *LineItem) Subtotal() float64 {
	if li.Product == nil {
		return 0
	}
	return li.Product.DiscountedPrice * float64(li.Quantity)
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.Product != nil {
			p := it.Product.Clone()
			out[i].Product = &p
		}
	}
	return out
}
