// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package catalog

import "context"

// Source supplies the product groups a corpus is built from, in traversal order.
type Source interface {
	Groups(ctx context.Context) ([]Group, error)
}

// SampleSource serves the built-in sample groups.
type SampleSource struct{}

// Groups implements Source.
func (SampleSource) Groups(context.Context) ([]Group, error) {
	return SampleGroups(), nil
}

// StaticSource serves fixed groups.
type StaticSource []Group

// Groups implements Source.
func (s StaticSource) Groups(context.Context) ([]Group, error) {
	out := make([]Group, len(s))
	for i, g := range s {
		out[i] = Group{Name: g.Name, Products: cloneAll(g.Products)}
	}
	return out, nil
}
