// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/metrics"
)

// Memory is an in-process Store. Rows are kept in insertion order per table.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Row
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string][]Row),
		now:    time.Now,
	}
}

// SetClock overrides the clock used for generated timestamps.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Select implements Store.
func (m *Memory) Select(ctx context.Context, table string, q Query) ([]Row, error) {
	defer metrics.ObserveRowstore("memory", "select", table, time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, where, err := resolve(table, q.Where)
	if err != nil {
		return nil, err
	}
	if q.OrderBy != "" {
		if _, ok := t.Column(q.OrderBy); !ok {
			return nil, fmt.Errorf("%w: order by %s.%s", ErrUnknownColumn, table, q.OrderBy)
		}
	}

	m.mu.RLock()
	var out []Row
	for _, r := range m.tables[table] {
		if where.Match(r) {
			out = append(out, r.Clone())
		}
	}
	m.mu.RUnlock()

	if q.OrderBy != "" {
		slices.SortStableFunc(out, func(a, b Row) int {
			c := compareValues(a[q.OrderBy], b[q.OrderBy])
			if q.Desc {
				return -c
			}
			return c
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	if out == nil {
		out = []Row{}
	}
	return out, nil
}

// Insert implements Store.
func (m *Memory) Insert(ctx context.Context, table string, row Row) (Row, error) {
	defer metrics.ObserveRowstore("memory", "insert", table, time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := LookupTable(table)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prepared, err := t.PrepareInsert(row, m.now())
	if err != nil {
		return nil, err
	}
	id := prepared[ColumnID]
	for _, existing := range m.tables[table] {
		if equalValues(existing[ColumnID], id) {
			return nil, fmt.Errorf("%w: %s.id=%v", ErrDuplicateKey, table, id)
		}
	}
	m.tables[table] = append(m.tables[table], prepared)
	return prepared.Clone(), nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, table string, where Filter, patch Row) (int, error) {
	defer metrics.ObserveRowstore("memory", "update", table, time.Now())
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if where.IsZero() {
		return 0, ErrUnfilteredWrite
	}
	t, where, err := resolve(table, where)
	if err != nil {
		return 0, err
	}
	prepared, err := t.PreparePatch(patch)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.tables[table] {
		if !where.Match(r) {
			continue
		}
		for k, v := range prepared.Clone() {
			r[k] = v
		}
		n++
	}
	return n, nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, table string, where Filter) (int, error) {
	defer metrics.ObserveRowstore("memory", "delete", table, time.Now())
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if where.IsZero() {
		return 0, ErrUnfilteredWrite
	}
	_, where, err := resolve(table, where)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[table]
	kept := rows[:0]
	for _, r := range rows {
		if !where.Match(r) {
			kept = append(kept, r)
		}
	}
	n := len(rows) - len(kept)
	clear(rows[len(kept):])
	m.tables[table] = kept
	return n, nil
}

// Len returns the number of rows in table.
func (m *Memory) Len(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

func resolve(table string, where Filter) (*Table, Filter, error) {
	t, err := LookupTable(table)
	if err != nil {
		return nil, Filter{}, err
	}
	coerced, err := t.CoerceFilter(where)
	if err != nil {
		return nil, Filter{}, err
	}
	return t, coerced, nil
}
