// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if err := wb.AddFilter(rowstore.Filter{}); err != nil {
		t.Fatalf("AddFilter(zero) error = %v", err)
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddFilter(t *testing.T) {
	tests := []struct {
		name       string
		filter     rowstore.Filter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "eq",
			filter:     rowstore.Eq("session_id", "s1"),
			wantClause: `"session_id" = ?`,
			wantArgs:   []any{"s1"},
		},
		{
			name:       "eq nil is null",
			filter:     rowstore.Eq("user_id", nil),
			wantClause: `"user_id" IS NULL`,
		},
		{
			name:       "is null",
			filter:     rowstore.IsNull("user_id"),
			wantClause: `"user_id" IS NULL`,
		},
		{
			name:       "in",
			filter:     rowstore.In("id", "a", "b", "c"),
			wantClause: `"id" IN (?, ?, ?)`,
			wantArgs:   []any{"a", "b", "c"},
		},
		{
			name:       "empty in matches nothing",
			filter:     rowstore.In("id"),
			wantClause: "FALSE",
		},
		{
			name:       "in with null",
			filter:     rowstore.In("user_id", "u1", nil),
			wantClause: `("user_id" IN (?) OR "user_id" IS NULL)`,
			wantArgs:   []any{"u1"},
		},
		{
			name:       "session or user",
			filter:     rowstore.Or(rowstore.Eq("session_id", "s1"), rowstore.Eq("user_id", "u1")),
			wantClause: `("session_id" = ? OR "user_id" = ?)`,
			wantArgs:   []any{"s1", "u1"},
		},
		{
			name: "scoped id",
			filter: rowstore.And(
				rowstore.Eq("id", "c1"),
				rowstore.Or(rowstore.Eq("session_id", "s1"), rowstore.Eq("user_id", "u1")),
			),
			wantClause: `("id" = ? AND ("session_id" = ? OR "user_id" = ?))`,
			wantArgs:   []any{"c1", "s1", "u1"},
		},
		{
			name:       "text list becomes json",
			filter:     rowstore.Eq("sizes", []string{"S", "M"}),
			wantClause: `"sizes" = ?`,
			wantArgs:   []any{`["S","M"]`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			if err := wb.AddFilter(tt.filter); err != nil {
				t.Fatalf("AddFilter() error = %v", err)
			}
			clause, args := wb.Build()
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddClause(`"quantity" > ?`, int64(1))
	if err := wb.AddFilter(rowstore.Eq("product_id", "p1")); err != nil {
		t.Fatal(err)
	}

	clause, args := wb.BuildWithPrefix()
	if clause != `WHERE "quantity" > ? AND "product_id" = ?` {
		t.Errorf("clause = %q", clause)
	}
	if len(args) != 2 || args[0] != int64(1) || args[1] != "p1" {
		t.Errorf("args = %v", args)
	}
	if wb.Count() != 2 {
		t.Errorf("Count() = %d, want 2", wb.Count())
	}
}

func TestWhereBuilder_InvalidOperator(t *testing.T) {
	wb := NewWhereBuilder()
	err := wb.AddFilter(rowstore.Filter{Op: "like", Column: "name"})
	if !errors.Is(err, rowstore.ErrInvalidFilter) {
		t.Errorf("AddFilter() error = %v, want ErrInvalidFilter", err)
	}
	if !wb.IsEmpty() {
		t.Error("failed filter should not add a clause")
	}
}

func TestHelpers(t *testing.T) {
	if got := Placeholders(3); got != "?, ?, ?" {
		t.Errorf("Placeholders(3) = %q", got)
	}
	if got := Placeholders(0); got != "" {
		t.Errorf("Placeholders(0) = %q", got)
	}
	if got := QuoteIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("QuoteIdent() = %q", got)
	}
	if got, _ := Arg([]string(nil)); got != "[]" {
		t.Errorf("Arg(nil list) = %v, want []", got)
	}
	if got, _ := Arg(int64(4)); got != int64(4) {
		t.Errorf("Arg(int64) = %v", got)
	}
}
