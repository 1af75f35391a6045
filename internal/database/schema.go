// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/ishubhamdubey/KAPAS/internal/database/query"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// indexes lists secondary indexes as table -> columns.
var indexes = []struct {
	table  string
	column string
}{
	{rowstore.Products.Name, "category"},
	{rowstore.CartItems.Name, "session_id"},
	{rowstore.CartItems.Name, "user_id"},
}

// columnType returns the DuckDB type for a column kind.
func columnType(k rowstore.Kind) string {
	switch k {
	case rowstore.KindInteger:
		return "BIGINT"
	case rowstore.KindFloat:
		return "DOUBLE"
	case rowstore.KindBool:
		return "BOOLEAN"
	case rowstore.KindTime:
		return "TIMESTAMP"
	default:
		// text and text_list (JSON array)
		return "VARCHAR"
	}
}

// createTableSQL renders the DDL for t. The first column is the primary key;
// other columns accept NULL like the in-memory store does.
func createTableSQL(t *rowstore.Table) string {
	defs := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		def := query.QuoteIdent(c.Name) + " " + columnType(c.Kind)
		if i == 0 {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		query.QuoteIdent(t.Name), strings.Join(defs, ",\n\t"))
}

func (db *DB) createTables(ctx context.Context) error {
	for _, t := range rowstore.Tables {
		if _, err := db.conn.ExecContext(ctx, createTableSQL(t)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
	}
	return nil
}

func (db *DB) createIndexes(ctx context.Context) error {
	for _, idx := range indexes {
		name := fmt.Sprintf("idx_%s_%s", idx.table, idx.column)
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			query.QuoteIdent(name), query.QuoteIdent(idx.table), query.QuoteIdent(idx.column))
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
	}
	return nil
}
