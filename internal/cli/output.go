// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ishubhamdubey/KAPAS/internal/cart"
	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/recommend"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func rupees(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}

func printProducts(cmd *cobra.Command, products []catalog.Product) error {
	if jsonOutput(cmd) {
		return printJSON(cmd, products)
	}
	if len(products) == 0 {
		cmd.Println("No products found.")
		return nil
	}
	for i := range products {
		p := &products[i]
		cmd.Printf("  %-16s %s\n", p.ID, p.Name)
		cmd.Printf("  %-16s %s (was %s)  %s  rated %.1f, %d sold\n",
			"", rupees(p.DiscountedPrice), rupees(p.OriginalPrice), p.Category, p.Rating, p.SoldCount)
	}
	return nil
}

func printRecommendations(cmd *cobra.Command, recs []recommend.Recommendation) error {
	if jsonOutput(cmd) {
		return printJSON(cmd, recs)
	}
	if len(recs) == 0 {
		cmd.Println("No recommendations.")
		return nil
	}
	for i := range recs {
		p := &recs[i].Product
		cmd.Printf("  [%d] %s  %s  %s (%.3f)\n", i+1, p.ID, p.Name, rupees(p.DiscountedPrice), recs[i].Score)
	}
	return nil
}

// cartSummary is the JSON shape of "cart list".
type cartSummary struct {
	Items []cart.LineItem `json:"items"`
	Count int64           `json:"count"`
	Total float64         `json:"total"`
}

func printCart(cmd *cobra.Command, c *cart.Store) error {
	items := c.Items()
	if jsonOutput(cmd) {
		return printJSON(cmd, cartSummary{Items: items, Count: c.Count(), Total: c.Total()})
	}
	if len(items) == 0 {
		cmd.Println("Your cart is empty.")
		return nil
	}
	for i := range items {
		it := &items[i]
		name := it.ProductID
		if it.Product != nil {
			name = it.Product.Name
		}
		cmd.Printf("  %s  %s x%d", it.ID, name, it.Quantity)
		if it.SelectedSize != "" || it.SelectedColor != "" {
			cmd.Printf(" [%s/%s]", it.SelectedSize, it.SelectedColor)
		}
		cmd.Printf("  %s\n", rupees(it.Subtotal()))
	}
	cmd.Printf("\n  %d item(s), total %s\n", c.Count(), rupees(c.Total()))
	return nil
}
