// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package database

import (
	"context"
	"fmt"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// SeedCatalog inserts purchasable copies of the sample products when the
// products table is empty. It returns the number of inserted products.
func SeedCatalog(ctx context.Context, store rowstore.Store) (int, error) {
	existing, err := store.Select(ctx, rowstore.Products.Name, rowstore.Query{Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("check products: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	n := 0
	for _, p := range catalog.BuildCorpus(catalog.SampleGroups()...) {
		row, err := rowstore.Encode(catalog.Purchasable(p))
		if err != nil {
			return n, err
		}
		if _, err := store.Insert(ctx, rowstore.Products.Name, row); err != nil {
			return n, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		n++
	}
	return n, nil
}
