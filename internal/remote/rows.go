// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// RowsPath is the prefix of the server's row API.
const RowsPath = "/rest/v1/"

type countResult struct {
	Count int `json:"count"`
}

// Select implements rowstore.Store.
func (c *Client) Select(ctx context.Context, table string, q rowstore.Query) ([]rowstore.Row, error) {
	t, err := rowstore.LookupTable(table)
	if err != nil {
		return nil, err
	}
	values, err := rowstore.EncodeQuery(q)
	if err != nil {
		return nil, err
	}

	var raw []rowstore.Row
	if err := c.do(ctx, http.MethodGet, tablePath(table), values, nil, &raw); err != nil {
		return nil, err
	}
	rows := make([]rowstore.Row, 0, len(raw))
	for _, r := range raw {
		row, err := t.Normalize(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s row: %w", table, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Insert implements rowstore.Store. The server fills id and timestamps.
func (c *Client) Insert(ctx context.Context, table string, row rowstore.Row) (rowstore.Row, error) {
	t, err := rowstore.LookupTable(table)
	if err != nil {
		return nil, err
	}
	var raw rowstore.Row
	if err := c.do(ctx, http.MethodPost, tablePath(table), nil, row, &raw); err != nil {
		return nil, err
	}
	return t.Normalize(raw)
}

// Update implements rowstore.Store.
func (c *Client) Update(ctx context.Context, table string, where rowstore.Filter, patch rowstore.Row) (int, error) {
	values, err := writeFilter(table, where)
	if err != nil {
		return 0, err
	}
	var res countResult
	if err := c.do(ctx, http.MethodPatch, tablePath(table), values, patch, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// Delete implements rowstore.Store.
func (c *Client) Delete(ctx context.Context, table string, where rowstore.Filter) (int, error) {
	values, err := writeFilter(table, where)
	if err != nil {
		return 0, err
	}
	var res countResult
	if err := c.do(ctx, http.MethodDelete, tablePath(table), values, nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func writeFilter(table string, where rowstore.Filter) (url.Values, error) {
	if _, err := rowstore.LookupTable(table); err != nil {
		return nil, err
	}
	if where.IsZero() {
		return nil, rowstore.ErrUnfilteredWrite
	}
	return rowstore.EncodeFilter(where)
}

func tablePath(table string) string {
	return RowsPath + url.PathEscape(table)
}
