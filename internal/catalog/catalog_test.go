// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// failingStore fails every call.
type failingStore struct{ err error }

func (f failingStore) Select(context.Context, string, rowstore.Query) ([]rowstore.Row, error) {
	return nil, f.err
}

func (f failingStore) Insert(context.Context, string, rowstore.Row) (rowstore.Row, error) {
	return nil, f.err
}

func (f failingStore) Update(context.Context, string, rowstore.Filter, rowstore.Row) (int, error) {
	return 0, f.err
}

func (f failingStore) Delete(context.Context, string, rowstore.Filter) (int, error) {
	return 0, f.err
}

func insertProduct(t *testing.T, store rowstore.Store, p Product) {
	t.Helper()
	row, err := rowstore.Encode(p)
	require.NoError(t, err)
	_, err = store.Insert(context.Background(), rowstore.Products.Name, row)
	require.NoError(t, err)
}

func newCatalog(t *testing.T, store rowstore.Store, corpus string) *Catalog {
	t.Helper()
	c, err := New(store, corpus, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestBuildCorpus_DedupesKeepingFirst(t *testing.T) {
	groups := []Group{
		{Name: "one", Products: []Product{{ID: "a", Name: "first a"}, {ID: "b"}}},
		{Name: "two", Products: []Product{{ID: "a", Name: "second a"}, {ID: "c"}}},
	}
	docs := BuildCorpus(groups...)

	require.Len(t, docs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})
	assert.Equal(t, "first a", docs[0].Name)
}

func TestSampleGroups(t *testing.T) {
	groups := SampleGroups()
	require.Len(t, groups, 8)
	assert.Equal(t, GroupNewArrivals, groups[0].Name)
	assert.Equal(t, GroupBestSellers, groups[1].Name)
	for i, cat := range Categories {
		assert.Equal(t, cat, groups[i+2].Name)
		assert.Len(t, groups[i+2].Products, 4)
	}

	docs := BuildCorpus(groups...)
	assert.Len(t, docs, 34)

	na := groups[0].Products[0]
	assert.Equal(t, "Floral Print Short Kurti", na.Name)
	assert.True(t, na.IsFeatured)
	assert.Equal(t, int64(50), na.StockQuantity)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, na.Sizes)
	assert.Equal(t, []string{"Cream", "Red", "Black"}, na.Colors)

	plainSample := groups[2].Products[0]
	assert.Equal(t, defaultSampleDescription, plainSample.Description)
	assert.InDelta(t, 4.4, plainSample.Rating, 1e-9)
	assert.Equal(t, int64(120), plainSample.SoldCount)

	groups[0].Products[0].Name = "mutated"
	assert.Equal(t, "Floral Print Short Kurti", SampleGroups()[0].Products[0].Name)
}

func TestSampleByID(t *testing.T) {
	p, ok := SampleByID("sample-bs-5")
	require.True(t, ok)
	assert.Equal(t, "Backless Party Kurti", p.Name)
	assert.True(t, p.IsBestSeller)

	p, ok = SampleByID("sample-frock-4")
	require.True(t, ok)
	assert.Equal(t, "Tara Party Frock", p.Name)

	_, ok = SampleByID("sample-nope")
	assert.False(t, ok)
}

func TestIsSample(t *testing.T) {
	assert.True(t, IsSample("sample-na-1"))
	assert.False(t, IsSample("kapas-na-1"))
	assert.Equal(t, "kapas-na-1", Purchasable(NewArrivalSamples()[0]).ID)
}

func TestCatalog_ProductFallsBackToSamples(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemory()
	insertProduct(t, store, Product{ID: "p1", Name: "Real Kurti", Category: "long_kurti", Sizes: []string{"M"}})
	c := newCatalog(t, store, CorpusBoth)

	p, err := c.Product(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Real Kurti", p.Name)
	assert.Equal(t, []string{"M"}, p.Sizes)

	p, err = c.Product(ctx, "sample-na-2")
	require.NoError(t, err)
	assert.Equal(t, "Elegant Long Kurti", p.Name)

	_, err = c.Product(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	broken := newCatalog(t, failingStore{err: errors.New("offline")}, CorpusBoth)
	p, err = broken.Product(ctx, "sample-long-1")
	require.NoError(t, err)
	assert.Equal(t, "Anika Long Kurti", p.Name)
}

func TestCatalog_ByCategory(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemory()
	insertProduct(t, store, Product{ID: "f1", Name: "Slow Frock", Category: "frock", SoldCount: 3})
	insertProduct(t, store, Product{ID: "f2", Name: "Hot Frock", Category: "frock", SoldCount: 90})
	c := newCatalog(t, store, CorpusBoth)

	frocks := c.ByCategory(ctx, "frock")
	require.Len(t, frocks, 2)
	assert.Equal(t, "f2", frocks[0].ID)

	backless := c.ByCategory(ctx, "backless")
	require.Len(t, backless, 4)
	assert.Equal(t, "sample-backless-1", backless[0].ID)
}

func TestCatalog_FeaturedAndBestSellers(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemory()
	c := newCatalog(t, store, CorpusBoth)

	assert.Len(t, c.Featured(ctx, 0), 5, "empty store falls back to new arrivals")
	assert.Len(t, c.BestSellers(ctx, 2), 2)

	now := time.Now()
	insertProduct(t, store, Product{ID: "old", Name: "Old", IsFeatured: true, CreatedAt: now.Add(-time.Hour)})
	insertProduct(t, store, Product{ID: "new", Name: "New", IsFeatured: true, CreatedAt: now})
	insertProduct(t, store, Product{ID: "plain", Name: "Plain"})

	featured := c.Featured(ctx, 12)
	require.Len(t, featured, 2)
	assert.Equal(t, "new", featured[0].ID)
}

func TestCatalog_ByIDs(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemory()
	insertProduct(t, store, Product{ID: "p1", Name: "One"})
	insertProduct(t, store, Product{ID: "p2", Name: "Two"})
	c := newCatalog(t, store, CorpusBoth)

	got, err := c.ByIDs(ctx, []string{"p2", "sample-na-1", "missing", "p1"})
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"p2", "sample-na-1", "p1"}, ids)
}

func TestCatalog_Groups(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemory()
	insertProduct(t, store, Product{ID: "p1", Name: "Store Kurti"})

	tests := []struct {
		name       string
		store      rowstore.Store
		corpus     string
		wantGroups int
		wantErr    bool
	}{
		{name: "samples", store: store, corpus: CorpusSamples, wantGroups: 8},
		{name: "catalog", store: store, corpus: CorpusCatalog, wantGroups: 1},
		{name: "both", store: store, corpus: CorpusBoth, wantGroups: 9},
		{name: "both degrades on failure", store: failingStore{err: errors.New("down")}, corpus: CorpusBoth, wantGroups: 8},
		{name: "catalog fails on failure", store: failingStore{err: errors.New("down")}, corpus: CorpusCatalog, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalog(t, tt.store, tt.corpus)
			groups, err := c.Groups(ctx)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, groups, tt.wantGroups)
		})
	}

	_, err := New(store, "everything", zerolog.Nop())
	assert.Error(t, err)
}

func TestCatalog_Probe(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, newCatalog(t, rowstore.NewMemory(), CorpusBoth).Probe(ctx))
	assert.Error(t, newCatalog(t, failingStore{err: errors.New("down")}, CorpusBoth).Probe(ctx))
}

func TestEstimateDelivery(t *testing.T) {
	tests := []struct {
		pin     string
		days    int
		cod     bool
		wantErr bool
	}{
		{pin: "110001", days: 4, cod: false},
		{pin: "560002", days: 5, cod: true},
		{pin: "400003", days: 3, cod: true},
		{pin: "12345", wantErr: true},
		{pin: "12a456", wantErr: true},
		{pin: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			got, err := EstimateDelivery(tt.pin)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPIN)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.days, got.Days)
			assert.Equal(t, tt.cod, got.PayOnDelivery)
			assert.Contains(t, got.Message, "-day delivery available")
		})
	}
}
