// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package database provides the DuckDB-backed row store used by the KAPAS server.
//
// # Overview
//
// DB implements rowstore.Store over two tables, products and cart_items, whose
// DDL is derived from the rowstore schemas. Values are coerced with the same
// schema rules as the in-memory store, so both backends accept and return the
// same row shapes.
//
// Core Database Operations:
//   - database.go: lifecycle (open, pool configuration, checkpoint, close)
//   - schema.go: table and index creation
//   - rows.go: Select, Insert, Update and Delete
//   - seed.go: seeding the purchasable sample catalog
//   - query/: WHERE clause rendering for rowstore filters
//
// # Type Mapping
//
//	text       VARCHAR
//	integer    BIGINT
//	float      DOUBLE
//	bool       BOOLEAN
//	time       TIMESTAMP (UTC)
//	text_list  VARCHAR holding a JSON array
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	rows, err := db.Select(ctx, rowstore.CartItems.Name, rowstore.Query{
//	    Where:   rowstore.Eq("session_id", sid),
//	    OrderBy: rowstore.ColumnCreatedAt,
//	})
//
// # Thread Safety
//
// DB is safe for concurrent use. Writes that hit a DuckDB transaction conflict
// are retried a few times before the error is returned.
package database
