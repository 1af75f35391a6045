// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package rowstore defines the row-based persistence contract used by the catalog
// and the cart.
//
// A Store exposes filter-qualified CRUD over named tables. Three implementations
// exist in this repository:
//
//   - Memory (this package): process-local tables for tests and ephemeral servers
//   - database.DB: DuckDB-backed tables for the server
//   - remote.Client: HTTP client for the server's /rest/v1 row API
//
// Callers never see transport, retry or authentication details; they issue
// filter-qualified calls and interpret rows and errors.
//
// # Filters
//
//	rowstore.Eq("session_id", sid)
//	rowstore.Or(rowstore.Eq("session_id", sid), rowstore.Eq("user_id", uid))
//	rowstore.In("id", "a", "b")
//	rowstore.IsNull("user_id")
//
// Filter values are coerced to the column type declared in the table schema before
// they are compared, so string values parsed from a URL match typed columns.
package rowstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Row is one table row keyed by column name.
type Row map[string]any

// Query selects rows.
type Query struct {
	Where   Filter
	OrderBy string
	Desc    bool
	// Limit caps the number of rows; 0 means no limit.
	Limit int
}

// Store is the row persistence contract.
type Store interface {
	// Select returns rows matching q.Where, ordered and limited as requested.
	Select(ctx context.Context, table string, q Query) ([]Row, error)

	// Insert stores row and returns it as persisted, including generated
	// id, created_at and updated_at values.
	Insert(ctx context.Context, table string, row Row) (Row, error)

	// Update applies patch to every row matching where and returns the number of
	// rows changed. An empty filter is rejected.
	Update(ctx context.Context, table string, where Filter, patch Row) (int, error)

	// Delete removes every row matching where and returns the number removed.
	// An empty filter is rejected.
	Delete(ctx context.Context, table string, where Filter) (int, error)
}

// Sentinel errors shared by all Store implementations.
var (
	ErrUnknownTable    = errors.New("unknown table")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrInvalidValue    = errors.New("invalid value")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrUnfilteredWrite = errors.New("update and delete require a filter")
)

// Decode converts a row into dst (a pointer to a struct with json tags).
func Decode(row Row, dst any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

// DecodeAll converts rows into a slice of T.
func DecodeAll[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := Decode(r, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode converts a struct with json tags into a row.
func Encode(src any) (Row, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	row := Row{}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return row, nil
}

// Clone returns a copy of the row. Text list values are copied as well.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// String returns the value of a text column, or "" when absent or not a string.
func (r Row) String(column string) string {
	s, _ := r[column].(string)
	return s
}
