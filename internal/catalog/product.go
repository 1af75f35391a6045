// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package catalog defines the canonical product shape and the catalog reads
// built on top of the row store.
//
// Every product source (sample data, DuckDB rows, remote rows) is normalized into
// Product before it reaches the recommender or the cart, so downstream code never
// probes for alternate field names.
package catalog

import (
	"strings"
	"time"
)

// SamplePrefix marks demo products that exist only in the built-in sample set.
const SamplePrefix = "sample-"

// Product is a catalog item. JSON tags match the products table columns.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"image_url"`
	OriginalPrice   float64   `json:"original_price"`
	DiscountedPrice float64   `json:"discounted_price"`
	Rating          float64   `json:"rating"`
	SoldCount       int64     `json:"sold_count"`
	StockQuantity   int64     `json:"stock_quantity"`
	Sizes           []string  `json:"sizes"`
	Colors          []string  `json:"colors"`
	IsFeatured      bool      `json:"is_featured"`
	IsBestSeller    bool      `json:"is_best_seller"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsSample reports whether the product id belongs to the built-in sample set.
func IsSample(id string) bool {
	return strings.HasPrefix(id, SamplePrefix)
}

// Text returns the text indexed for similarity: name, description and category.
func (p *Product) Text() string {
	return p.Name + " " + p.Description + " " + p.Category
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() Product {
	c := *p
	c.Sizes = append([]string(nil), p.Sizes...)
	c.Colors = append([]string(nil), p.Colors...)
	return c
}

// Group is a named, ordered collection of products.
type Group struct {
	Name     string
	Products []Product
}

// BuildCorpus concatenates groups in order and drops every product whose id has
// already been seen. The first occurrence wins and overall order is preserved.
func BuildCorpus(groups ...Group) []Product {
	total := 0
	for _, g := range groups {
		total += len(g.Products)
	}

	seen := make(map[string]struct{}, total)
	docs := make([]Product, 0, total)
	for _, g := range groups {
		for i := range g.Products {
			p := &g.Products[i]
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			docs = append(docs, p.Clone())
		}
	}
	return docs
}
