// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCart(t *testing.T, m *Memory) {
	t.Helper()
	ctx := context.Background()
	rows := []Row{
		{"id": "c1", "session_id": "s1", "product_id": "p1", "quantity": 1, "selected_size": "M", "selected_color": "Red"},
		{"id": "c2", "session_id": "s1", "product_id": "p2", "quantity": 3, "selected_size": "L", "selected_color": "Blue"},
		{"id": "c3", "session_id": "s2", "user_id": "u1", "product_id": "p1", "quantity": 2, "selected_size": "S", "selected_color": "Red"},
		{"id": "c4", "session_id": "s3", "product_id": "p3", "quantity": 5, "selected_size": "M", "selected_color": "Black"},
	}
	for _, r := range rows {
		_, err := m.Insert(ctx, CartItems.Name, r)
		require.NoError(t, err)
	}
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String(ColumnID)
	}
	return out
}

func TestMemory_InsertFillsDefaults(t *testing.T) {
	m := NewMemory()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return fixed })

	row, err := m.Insert(context.Background(), CartItems.Name, Row{
		"session_id": "s1",
		"product_id": "p1",
		"quantity":   float64(2),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, row.String(ColumnID))
	assert.Equal(t, int64(2), row["quantity"])
	assert.Nil(t, row["user_id"])
	assert.Equal(t, "", row["selected_size"])
	assert.Equal(t, fixed, row[ColumnCreatedAt])
	assert.Equal(t, fixed, row[ColumnUpdatedAt])
	assert.Equal(t, 1, m.Len(CartItems.Name))
}

func TestMemory_InsertErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedCart(t, m)

	_, err := m.Insert(ctx, CartItems.Name, Row{"id": "c1", "product_id": "p9"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = m.Insert(ctx, "orders", Row{"id": "o1"})
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, err = m.Insert(ctx, CartItems.Name, Row{"product_id": "p1", "coupon": "X"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = m.Insert(ctx, CartItems.Name, Row{"product_id": "p1", "quantity": "many"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = m.Insert(ctx, CartItems.Name, Row{"product_id": "p1", "quantity": 1.5})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestMemory_Select(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedCart(t, m)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "all in insertion order", query: Query{}, want: []string{"c1", "c2", "c3", "c4"}},
		{name: "eq", query: Query{Where: Eq("session_id", "s1")}, want: []string{"c1", "c2"}},
		{name: "or of session and user", query: Query{Where: Or(Eq("session_id", "s1"), Eq("user_id", "u1"))}, want: []string{"c1", "c2", "c3"}},
		{name: "in", query: Query{Where: In("product_id", "p1", "p3")}, want: []string{"c1", "c3", "c4"}},
		{name: "is null", query: Query{Where: IsNull("user_id")}, want: []string{"c1", "c2", "c4"}},
		{name: "and", query: Query{Where: And(Eq("product_id", "p1"), Eq("selected_color", "Red"), IsNull("user_id"))}, want: []string{"c1"}},
		{name: "string value coerced to integer", query: Query{Where: Eq("quantity", "3")}, want: []string{"c2"}},
		{name: "order desc", query: Query{OrderBy: "quantity", Desc: true}, want: []string{"c4", "c2", "c3", "c1"}},
		{name: "order stable on ties", query: Query{OrderBy: "selected_color"}, want: []string{"c4", "c2", "c1", "c3"}},
		{name: "limit", query: Query{OrderBy: "quantity", Limit: 2}, want: []string{"c1", "c3"}},
		{name: "no match", query: Query{Where: Eq("session_id", "nope")}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := m.Select(ctx, CartItems.Name, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(rows))
		})
	}
}

func TestMemory_SelectErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Select(ctx, "orders", Query{})
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, err = m.Select(ctx, CartItems.Name, Query{Where: Eq("coupon", "x")})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = m.Select(ctx, CartItems.Name, Query{OrderBy: "coupon"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = m.Select(ctx, CartItems.Name, Query{Where: Eq("quantity", "two")})
	assert.ErrorIs(t, err, ErrInvalidValue)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Select(cancelled, CartItems.Name, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_SelectReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Insert(ctx, Products.Name, Row{"id": "p1", "name": "Kurti", "sizes": []string{"S", "M"}})
	require.NoError(t, err)

	rows, err := m.Select(ctx, Products.Name, Query{})
	require.NoError(t, err)
	rows[0]["name"] = "changed"
	rows[0]["sizes"].([]string)[0] = "XXL"

	again, err := m.Select(ctx, Products.Name, Query{})
	require.NoError(t, err)
	assert.Equal(t, "Kurti", again[0]["name"])
	assert.Equal(t, []string{"S", "M"}, again[0]["sizes"])
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedCart(t, m)

	n, err := m.Update(ctx, CartItems.Name, Eq("session_id", "s1"), Row{"user_id": "u9"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := m.Select(ctx, CartItems.Name, Query{Where: Eq("user_id", "u9")})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids(rows))

	n, err = m.Update(ctx, CartItems.Name, Eq("id", "missing"), Row{"quantity": 4})
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = m.Update(ctx, CartItems.Name, Filter{}, Row{"quantity": 4})
	assert.ErrorIs(t, err, ErrUnfilteredWrite)

	_, err = m.Update(ctx, CartItems.Name, Eq("id", "c1"), Row{"id": "c9"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = m.Update(ctx, CartItems.Name, Eq("id", "c1"), Row{})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedCart(t, m)

	_, err := m.Delete(ctx, CartItems.Name, Filter{})
	assert.ErrorIs(t, err, ErrUnfilteredWrite)
	assert.Equal(t, 4, m.Len(CartItems.Name))

	n, err := m.Delete(ctx, CartItems.Name, Or(Eq("session_id", "s1"), Eq("user_id", "u1")))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows, err := m.Select(ctx, CartItems.Name, Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c4"}, ids(rows))
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := m.Insert(ctx, CartItems.Name, Row{"session_id": "s", "product_id": "p", "quantity": 1})
				assert.NoError(t, err)
				_, err = m.Select(ctx, CartItems.Name, Query{Where: Eq("session_id", "s")})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 200, m.Len(CartItems.Name))
}

func TestDecodeEncode(t *testing.T) {
	type item struct {
		ID       string   `json:"id"`
		Quantity int64    `json:"quantity"`
		Sizes    []string `json:"sizes"`
	}

	row, err := Encode(item{ID: "x", Quantity: 3, Sizes: []string{"M"}})
	require.NoError(t, err)
	assert.Equal(t, "x", row.String("id"))

	var got item
	require.NoError(t, Decode(Row{"id": "x", "quantity": int64(3), "sizes": []string{"M"}}, &got))
	assert.Equal(t, item{ID: "x", Quantity: 3, Sizes: []string{"M"}}, got)

	all, err := DecodeAll[item]([]Row{{"id": "a"}, {"id": "b"}})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
