// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// ErrNotFound is returned when a product exists neither in the store nor in the
// sample set.
var ErrNotFound = errors.New("product not found")

// Corpus modes select which products the recommender indexes.
const (
	CorpusSamples = "samples"
	CorpusCatalog = "catalog"
	CorpusBoth    = "both"
)

// DefaultFeaturedLimit is the number of featured products shown on the home page.
const DefaultFeaturedLimit = 12

// GroupCatalog names the group of store products in a corpus.
const GroupCatalog = "catalog"

// Catalog reads products from a row store and falls back to the built-in samples
// when the store is empty for a request or unreachable.
type Catalog struct {
	store  rowstore.Store
	corpus string
	logger zerolog.Logger
}

// New creates a catalog over store. corpus is one of CorpusSamples, CorpusCatalog
// or CorpusBoth and controls Groups.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store rowstore.Store, corpus string, logger zerolog.Logger) (*Catalog, error) {
	switch corpus {
	case CorpusSamples, CorpusCatalog, CorpusBoth:
	case "":
		corpus = CorpusBoth
	default:
		return nil, fmt.Errorf("unknown corpus mode %q", corpus)
	}
	return &Catalog{
		store:  store,
		corpus: corpus,
		logger: logger.With().Str("component", "catalog").Logger(),
	}, nil
}

func (c *Catalog) selectProducts(ctx context.Context, q rowstore.Query) ([]Product, error) {
	rows, err := c.store.Select(ctx, rowstore.Products.Name, q)
	if err != nil {
		return nil, err
	}
	return rowstore.DecodeAll[Product](rows)
}

// Product returns the product with id from the store, or the sample with that id.
func (c *Catalog) Product(ctx context.Context, id string) (Product, error) {
	products, err := c.selectProducts(ctx, rowstore.Query{
		Where: rowstore.Eq(rowstore.ColumnID, id),
		Limit: 1,
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", id).Msg("product lookup failed, trying samples")
	} else if len(products) > 0 {
		return products[0], nil
	}

	if p, ok := SampleByID(id); ok {
		return p, nil
	}
	return Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ByCategory returns the products of a category, best selling first. When the
// store has none (or fails) the category's samples are returned.
func (c *Catalog) ByCategory(ctx context.Context, category string) []Product {
	products, err := c.selectProducts(ctx, rowstore.Query{
		Where:   rowstore.Eq("category", category),
		OrderBy: "sold_count",
		Desc:    true,
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("category", category).Msg("category lookup failed, using samples")
	}
	if len(products) == 0 {
		return CategorySamples(category)
	}
	return products
}

// Featured returns up to limit featured products, newest first, or the new
// arrival samples.
func (c *Catalog) Featured(ctx context.Context, limit int) []Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products, err := c.selectProducts(ctx, rowstore.Query{
		Where:   rowstore.Eq("is_featured", true),
		OrderBy: rowstore.ColumnCreatedAt,
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("featured lookup failed, using samples")
	}
	if len(products) == 0 {
		return truncate(NewArrivalSamples(), limit)
	}
	return products
}

// BestSellers returns up to limit best sellers, most sold first, or the best
// seller samples.
func (c *Catalog) BestSellers(ctx context.Context, limit int) []Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	products, err := c.selectProducts(ctx, rowstore.Query{
		Where:   rowstore.Eq("is_best_seller", true),
		OrderBy: "sold_count",
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("best seller lookup failed, using samples")
	}
	if len(products) == 0 {
		return truncate(BestSellerSamples(), limit)
	}
	return products
}

// ByIDs resolves ids in the given order, skipping ids that match nothing.
// Sample ids resolve from the sample set without a store round trip.
func (c *Catalog) ByIDs(ctx context.Context, ids []string) ([]Product, error) {
	var stored []string
	for _, id := range ids {
		if !IsSample(id) {
			stored = append(stored, id)
		}
	}

	found := make(map[string]Product, len(ids))
	if len(stored) > 0 {
		products, err := c.selectProducts(ctx, rowstore.Query{Where: rowstore.InStrings(rowstore.ColumnID, stored)})
		if err != nil {
			return nil, fmt.Errorf("select products: %w", err)
		}
		for _, p := range products {
			found[p.ID] = p
		}
	}

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			out = append(out, p)
			continue
		}
		if p, ok := SampleByID(id); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// All returns every stored product, newest first.
func (c *Catalog) All(ctx context.Context) ([]Product, error) {
	products, err := c.selectProducts(ctx, rowstore.Query{OrderBy: rowstore.ColumnCreatedAt, Desc: true})
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

// Groups implements Source according to the corpus mode. In CorpusBoth mode a
// store failure degrades to the samples alone.
func (c *Catalog) Groups(ctx context.Context) ([]Group, error) {
	if c.corpus == CorpusSamples {
		return SampleGroups(), nil
	}

	products, err := c.All(ctx)
	if err != nil {
		if c.corpus == CorpusBoth {
			c.logger.Warn().Err(err).Msg("catalog unavailable, indexing samples only")
			return SampleGroups(), nil
		}
		return nil, err
	}

	groups := []Group{{Name: GroupCatalog, Products: products}}
	if c.corpus == CorpusBoth {
		groups = append(groups, SampleGroups()...)
	}
	return groups, nil
}

// Probe checks that the products table is reachable.
func (c *Catalog) Probe(ctx context.Context) error {
	if _, err := c.store.Select(ctx, rowstore.Products.Name, rowstore.Query{Limit: 1}); err != nil {
		return fmt.Errorf("products table: %w", err)
	}
	return nil
}

// Purchasable returns a copy of a sample product with a store id, so it can be
// seeded into a development catalog and added to carts.
func Purchasable(p Product) Product {
	c := p.Clone()
	c.ID = "kapas-" + strings.TrimPrefix(p.ID, SamplePrefix)
	return c
}

func truncate(products []Product, limit int) []Product {
	if len(products) > limit {
		return products[:limit]
	}
	return products
}
