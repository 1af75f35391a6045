// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/catalog"
	"github.com/ishubhamdubey/KAPAS/internal/config"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore/rowstoretest"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Path: InMemoryPath, Threads: 1, PreserveInsertionOrder: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func TestDB_Contract(t *testing.T) {
	rowstoretest.Run(t, func(t *testing.T) rowstore.Store {
		return newTestDB(t)
	})
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should fail")
	}
}

func TestNew_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kapas.duckdb")
	db, err := New(&config.DatabaseConfig{Path: path, Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		inMemory bool
		contains []string
		excludes []string
	}{
		{
			name:     "in memory",
			cfg:      config.DatabaseConfig{Path: InMemoryPath, Threads: 2, PreserveInsertionOrder: true},
			inMemory: true,
			contains: []string{"?threads=2", "preserve_insertion_order=true"},
			excludes: []string{"access_mode", ":memory:", "max_memory"},
		},
		{
			name:     "file",
			cfg:      config.DatabaseConfig{Path: "/data/kapas.duckdb", Threads: 4, MaxMemory: "1GB"},
			contains: []string{"/data/kapas.duckdb?threads=4", "preserve_insertion_order=false", "max_memory=1GB", "access_mode=read_write"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := connectionString(&tt.cfg, tt.inMemory)
			for _, want := range tt.contains {
				if !strings.Contains(dsn, want) {
					t.Errorf("dsn %q missing %q", dsn, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(dsn, bad) {
					t.Errorf("dsn %q should not contain %q", dsn, bad)
				}
			}
		})
	}
}

func TestCreateTableSQL(t *testing.T) {
	ddl := createTableSQL(rowstore.CartItems)
	for _, want := range []string{
		`CREATE TABLE IF NOT EXISTS "cart_items"`,
		`"id" VARCHAR PRIMARY KEY`,
		`"quantity" BIGINT`,
		`"created_at" TIMESTAMP`,
	} {
		if !strings.Contains(ddl, want) {
			t.Errorf("DDL missing %q:\n%s", want, ddl)
		}
	}
	if strings.Count(ddl, "PRIMARY KEY") != 1 {
		t.Errorf("expected exactly one primary key:\n%s", ddl)
	}

	products := createTableSQL(rowstore.Products)
	for _, want := range []string{`"sizes" VARCHAR`, `"is_featured" BOOLEAN`, `"discounted_price" DOUBLE`} {
		if !strings.Contains(products, want) {
			t.Errorf("DDL missing %q:\n%s", want, products)
		}
	}
}

func TestDB_InsertUsesClock(t *testing.T) {
	db := newTestDB(t)
	fixed := time.Date(2026, 5, 4, 3, 2, 1, 123456789, time.UTC)
	db.SetClock(func() time.Time { return fixed })

	row, err := db.Insert(context.Background(), rowstore.CartItems.Name, rowstore.Row{"session_id": "s1", "product_id": "p1", "quantity": 1})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	want := fixed.Truncate(time.Microsecond)
	if got, ok := row[rowstore.ColumnCreatedAt].(time.Time); !ok || !got.Equal(want) {
		t.Errorf("created_at = %v, want %v", row[rowstore.ColumnCreatedAt], want)
	}

	rows, err := db.Select(context.Background(), rowstore.CartItems.Name, rowstore.Query{Where: rowstore.Eq("id", row.String("id"))})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	got, ok := rows[0][rowstore.ColumnUpdatedAt].(time.Time)
	if !ok || !got.Equal(want) {
		t.Errorf("updated_at = %v, want %v", rows[0][rowstore.ColumnUpdatedAt], want)
	}
}

func TestDB_NullsOrderFirstAscending(t *testing.T) {
	db := newTestDB(t)
	rowstoretest.SeedCart(t, db)
	ctx := context.Background()

	rows, err := db.Select(ctx, rowstore.CartItems.Name, rowstore.Query{OrderBy: "user_id"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := rowstoretest.IDs(rows); strings.Join(got, ",") != "c1,c2,c4,c3" {
		t.Errorf("ascending order = %v, want [c1 c2 c4 c3]", got)
	}

	rows, err = db.Select(ctx, rowstore.CartItems.Name, rowstore.Query{OrderBy: "user_id", Desc: true})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := rowstoretest.IDs(rows); got[0] != "c3" {
		t.Errorf("descending order = %v, want c3 first", got)
	}
}

func TestSeedCatalog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := SeedCatalog(ctx, db)
	if err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}
	want := len(catalog.BuildCorpus(catalog.SampleGroups()...))
	if n != want {
		t.Errorf("seeded %d products, want %d", n, want)
	}

	rows, err := db.Select(ctx, rowstore.Products.Name, rowstore.Query{Where: rowstore.Eq("id", "kapas-na-1")})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("kapas-na-1 not seeded")
	}
	var p catalog.Product
	if err := rowstore.Decode(rows[0], &p); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Name != "Floral Print Short Kurti" || len(p.Sizes) != 4 {
		t.Errorf("seeded product = %+v", p)
	}

	again, err := SeedCatalog(ctx, db)
	if err != nil {
		t.Fatalf("second SeedCatalog() error = %v", err)
	}
	if again != 0 {
		t.Errorf("second seed inserted %d products, want 0", again)
	}
}
