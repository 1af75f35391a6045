// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package rowstoretest holds the behavior every rowstore.Store implementation
// must share. Each backend's tests call Run with a factory for empty stores.
package rowstoretest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// Factory returns a new, empty store.
type Factory func(t *testing.T) rowstore.Store

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// SeedCart inserts four cart rows, c1..c4, with created_at one minute apart:
//
//	c1 s1     p1 qty 1 M Red
//	c2 s1     p2 qty 3 L Blue
//	c3 s2 u1  p1 qty 2 S Red
//	c4 s3     p3 qty 5 M Black
func SeedCart(t *testing.T, s rowstore.Store) {
	t.Helper()
	rows := []rowstore.Row{
		{"id": "c1", "session_id": "s1", "product_id": "p1", "quantity": 1, "selected_size": "M", "selected_color": "Red"},
		{"id": "c2", "session_id": "s1", "product_id": "p2", "quantity": 3, "selected_size": "L", "selected_color": "Blue"},
		{"id": "c3", "session_id": "s2", "user_id": "u1", "product_id": "p1", "quantity": 2, "selected_size": "S", "selected_color": "Red"},
		{"id": "c4", "session_id": "s3", "product_id": "p3", "quantity": 5, "selected_size": "M", "selected_color": "Black"},
	}
	for i, r := range rows {
		r[rowstore.ColumnCreatedAt] = base.Add(time.Duration(i) * time.Minute)
		_, err := s.Insert(context.Background(), rowstore.CartItems.Name, r)
		require.NoError(t, err)
	}
}

// IDs returns the id column of rows.
func IDs(rows []rowstore.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String(rowstore.ColumnID)
	}
	return out
}

// Run exercises the Store contract.
func Run(t *testing.T, factory Factory) {
	t.Run("InsertFillsDefaults", func(t *testing.T) {
		s := factory(t)
		row, err := s.Insert(context.Background(), rowstore.CartItems.Name, rowstore.Row{
			"session_id": "s1",
			"product_id": "p1",
			"quantity":   2,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, row.String(rowstore.ColumnID))
		assert.Equal(t, int64(2), row["quantity"])
		assert.Nil(t, row["user_id"])
		created, ok := row[rowstore.ColumnCreatedAt].(time.Time)
		require.True(t, ok, "created_at is %T", row[rowstore.ColumnCreatedAt])
		assert.False(t, created.IsZero())
	})

	t.Run("InsertProductWithLists", func(t *testing.T) {
		s := factory(t)
		ctx := context.Background()
		_, err := s.Insert(ctx, rowstore.Products.Name, rowstore.Row{
			"id": "p1", "name": "Anika Long Kurti", "category": "long_kurti",
			"discounted_price": 1499.0, "sold_count": 12, "is_featured": true,
			"sizes": []string{"S", "M"}, "colors": []string{},
		})
		require.NoError(t, err)

		rows, err := s.Select(ctx, rowstore.Products.Name, rowstore.Query{Where: rowstore.Eq("id", "p1")})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"S", "M"}, rows[0]["sizes"])
		assert.Equal(t, []string{}, rows[0]["colors"])
		assert.Equal(t, true, rows[0]["is_featured"])
		assert.InDelta(t, 1499.0, rows[0]["discounted_price"], 1e-9)
		assert.Equal(t, int64(12), rows[0]["sold_count"])
	})

	t.Run("InsertErrors", func(t *testing.T) {
		s := factory(t)
		ctx := context.Background()
		SeedCart(t, s)

		_, err := s.Insert(ctx, rowstore.CartItems.Name, rowstore.Row{"id": "c1", "product_id": "p9"})
		assert.ErrorIs(t, err, rowstore.ErrDuplicateKey)

		_, err = s.Insert(ctx, "orders", rowstore.Row{"id": "o1"})
		assert.ErrorIs(t, err, rowstore.ErrUnknownTable)

		_, err = s.Insert(ctx, rowstore.CartItems.Name, rowstore.Row{"product_id": "p1", "coupon": "X"})
		assert.ErrorIs(t, err, rowstore.ErrUnknownColumn)

		_, err = s.Insert(ctx, rowstore.CartItems.Name, rowstore.Row{"product_id": "p1", "quantity": "many"})
		assert.ErrorIs(t, err, rowstore.ErrInvalidValue)
	})

	t.Run("Select", func(t *testing.T) {
		s := factory(t)
		SeedCart(t, s)

		tests := []struct {
			name  string
			query rowstore.Query
			want  []string
		}{
			{name: "eq", query: rowstore.Query{Where: rowstore.Eq("session_id", "s1"), OrderBy: "created_at"}, want: []string{"c1", "c2"}},
			{name: "session or user", query: rowstore.Query{Where: rowstore.Or(rowstore.Eq("session_id", "s1"), rowstore.Eq("user_id", "u1")), OrderBy: "created_at"}, want: []string{"c1", "c2", "c3"}},
			{name: "in", query: rowstore.Query{Where: rowstore.In("product_id", "p1", "p3"), OrderBy: "created_at"}, want: []string{"c1", "c3", "c4"}},
			{name: "empty in", query: rowstore.Query{Where: rowstore.In("product_id")}, want: []string{}},
			{name: "is null", query: rowstore.Query{Where: rowstore.IsNull("user_id"), OrderBy: "created_at"}, want: []string{"c1", "c2", "c4"}},
			{name: "and", query: rowstore.Query{Where: rowstore.And(rowstore.Eq("product_id", "p1"), rowstore.IsNull("user_id"))}, want: []string{"c1"}},
			{name: "string coerced to integer", query: rowstore.Query{Where: rowstore.Eq("quantity", "3")}, want: []string{"c2"}},
			{name: "order desc", query: rowstore.Query{OrderBy: "quantity", Desc: true}, want: []string{"c4", "c2", "c3", "c1"}},
			{name: "limit", query: rowstore.Query{OrderBy: "created_at", Desc: true, Limit: 2}, want: []string{"c4", "c3"}},
			{name: "no match", query: rowstore.Query{Where: rowstore.Eq("session_id", "nope")}, want: []string{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rows, err := s.Select(context.Background(), rowstore.CartItems.Name, tt.query)
				require.NoError(t, err)
				assert.Equal(t, tt.want, IDs(rows))
			})
		}
	})

	t.Run("SelectErrors", func(t *testing.T) {
		s := factory(t)
		ctx := context.Background()

		_, err := s.Select(ctx, "orders", rowstore.Query{})
		assert.ErrorIs(t, err, rowstore.ErrUnknownTable)

		_, err = s.Select(ctx, rowstore.CartItems.Name, rowstore.Query{Where: rowstore.Eq("coupon", "x")})
		assert.ErrorIs(t, err, rowstore.ErrUnknownColumn)

		_, err = s.Select(ctx, rowstore.CartItems.Name, rowstore.Query{OrderBy: "coupon"})
		assert.ErrorIs(t, err, rowstore.ErrUnknownColumn)
	})

	t.Run("Update", func(t *testing.T) {
		s := factory(t)
		ctx := context.Background()
		SeedCart(t, s)

		n, err := s.Update(ctx, rowstore.CartItems.Name,
			rowstore.And(rowstore.Eq("session_id", "s1"), rowstore.IsNull("user_id")),
			rowstore.Row{"user_id": "u9"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		rows, err := s.Select(ctx, rowstore.CartItems.Name, rowstore.Query{Where: rowstore.Eq("user_id", "u9"), OrderBy: "created_at"})
		require.NoError(t, err)
		assert.Equal(t, []string{"c1", "c2"}, IDs(rows))

		n, err = s.Update(ctx, rowstore.CartItems.Name, rowstore.Eq("id", "c4"), rowstore.Row{"quantity": 7})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		rows, err = s.Select(ctx, rowstore.CartItems.Name, rowstore.Query{Where: rowstore.Eq("id", "c4")})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(7), rows[0]["quantity"])

		n, err = s.Update(ctx, rowstore.CartItems.Name, rowstore.Eq("id", "missing"), rowstore.Row{"quantity": 4})
		require.NoError(t, err)
		assert.Zero(t, n)

		_, err = s.Update(ctx, rowstore.CartItems.Name, rowstore.Filter{}, rowstore.Row{"quantity": 4})
		assert.ErrorIs(t, err, rowstore.ErrUnfilteredWrite)
	})

	t.Run("Delete", func(t *testing.T) {
		s := factory(t)
		ctx := context.Background()
		SeedCart(t, s)

		_, err := s.Delete(ctx, rowstore.CartItems.Name, rowstore.Filter{})
		assert.ErrorIs(t, err, rowstore.ErrUnfilteredWrite)

		n, err := s.Delete(ctx, rowstore.CartItems.Name, rowstore.Or(rowstore.Eq("session_id", "s1"), rowstore.Eq("user_id", "u1")))
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		rows, err := s.Select(ctx, rowstore.CartItems.Name, rowstore.Query{})
		require.NoError(t, err)
		assert.Equal(t, []string{"c4"}, IDs(rows))

		n, err = s.Delete(ctx, rowstore.CartItems.Name, rowstore.Eq("id", "c1"))
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
