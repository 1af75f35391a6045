// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ishubhamdubey/KAPAS/internal/database/query"
	"github.com/ishubhamdubey/KAPAS/internal/metrics"
	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

const (
	backendName   = "duckdb"
	maxRetries    = 3
	retryBaseWait = 10 * time.Millisecond
)

// Select implements rowstore.Store. Rows come back in insertion order unless
// q.OrderBy is set; ties keep insertion order.
func (db *DB) Select(ctx context.Context, table string, q rowstore.Query) (rows []rowstore.Row, err error) {
	defer metrics.ObserveRowstore(backendName, "select", table, time.Now())
	defer recordError("select", table, &err)

	t, where, err := resolve(table, q.Where)
	if err != nil {
		return nil, err
	}
	wb := query.NewWhereBuilder()
	if err := wb.AddFilter(where); err != nil {
		return nil, err
	}
	whereClause, args := wb.BuildWithPrefix()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(quotedColumns(t))
	sb.WriteString(" FROM ")
	sb.WriteString(query.QuoteIdent(t.Name))
	sb.WriteString(" ")
	sb.WriteString(whereClause)

	if q.OrderBy != "" {
		if _, ok := t.Column(q.OrderBy); !ok {
			return nil, fmt.Errorf("%w: order by %s.%s", rowstore.ErrUnknownColumn, table, q.OrderBy)
		}
		dir := "ASC NULLS FIRST"
		if q.Desc {
			dir = "DESC NULLS LAST"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s, rowid", query.QuoteIdent(q.OrderBy), dir)
	} else {
		sb.WriteString(" ORDER BY rowid")
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	sqlRows, err := db.conn.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer closeWithLog(sqlRows, "rows")

	return scanRows(t, sqlRows)
}

// Insert implements rowstore.Store.
func (db *DB) Insert(ctx context.Context, table string, row rowstore.Row) (out rowstore.Row, err error) {
	defer metrics.ObserveRowstore(backendName, "insert", table, time.Now())
	defer recordError("insert", table, &err)

	t, err := rowstore.LookupTable(table)
	if err != nil {
		return nil, err
	}
	prepared, err := t.PrepareInsert(row, db.now())
	if err != nil {
		return nil, err
	}
	truncateTimes(prepared)

	names := t.ColumnNames()
	args := make([]any, len(names))
	for i, name := range names {
		if args[i], err = query.Arg(prepared[name]); err != nil {
			return nil, err
		}
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		query.QuoteIdent(t.Name), quotedColumns(t), query.Placeholders(len(names)))

	if _, err := db.execWithRetry(ctx, stmt, args...); err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, translateError(err, table))
	}
	return prepared.Clone(), nil
}

// Update implements rowstore.Store.
func (db *DB) Update(ctx context.Context, table string, where rowstore.Filter, patch rowstore.Row) (n int, err error) {
	defer metrics.ObserveRowstore(backendName, "update", table, time.Now())
	defer recordError("update", table, &err)

	if where.IsZero() {
		return 0, rowstore.ErrUnfilteredWrite
	}
	t, where, err := resolve(table, where)
	if err != nil {
		return 0, err
	}
	prepared, err := t.PreparePatch(patch)
	if err != nil {
		return 0, err
	}
	truncateTimes(prepared)

	keys := make([]string, 0, len(prepared))
	for k := range prepared {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		sets[i] = query.QuoteIdent(k) + " = ?"
		arg, err := query.Arg(prepared[k])
		if err != nil {
			return 0, err
		}
		args = append(args, arg)
	}

	wb := query.NewWhereBuilder()
	if err := wb.AddFilter(where); err != nil {
		return 0, err
	}
	whereClause, whereArgs := wb.BuildWithPrefix()
	args = append(args, whereArgs...)

	stmt := fmt.Sprintf("UPDATE %s SET %s %s", query.QuoteIdent(t.Name), strings.Join(sets, ", "), whereClause)
	res, err := db.execWithRetry(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", table, translateError(err, table))
	}
	return affected(res)
}

// Delete implements rowstore.Store.
func (db *DB) Delete(ctx context.Context, table string, where rowstore.Filter) (n int, err error) {
	defer metrics.ObserveRowstore(backendName, "delete", table, time.Now())
	defer recordError("delete", table, &err)

	if where.IsZero() {
		return 0, rowstore.ErrUnfilteredWrite
	}
	t, where, err := resolve(table, where)
	if err != nil {
		return 0, err
	}
	wb := query.NewWhereBuilder()
	if err := wb.AddFilter(where); err != nil {
		return 0, err
	}
	whereClause, args := wb.BuildWithPrefix()

	stmt := fmt.Sprintf("DELETE FROM %s %s", query.QuoteIdent(t.Name), whereClause)
	res, err := db.execWithRetry(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	return affected(res)
}

// execWithRetry retries statements that fail on a transaction conflict.
func (db *DB) execWithRetry(ctx context.Context, stmt string, args ...any) (sql.Result, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBaseWait * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		res, err := db.conn.ExecContext(ctx, stmt, args...)
		if err == nil {
			return res, nil
		}
		if !isTransactionConflict(err) {
			return nil, err
		}
		lastErr = err
		db.logger.Debug().Int("attempt", attempt+1).Err(err).Msg("Transaction conflict, retrying")
	}
	return nil, lastErr
}

func scanRows(t *rowstore.Table, sqlRows *sql.Rows) ([]rowstore.Row, error) {
	names := t.ColumnNames()
	out := []rowstore.Row{}
	for sqlRows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := sqlRows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Name, err)
		}
		raw := make(rowstore.Row, len(names))
		for i, name := range names {
			raw[name] = values[i]
		}
		row, err := t.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s row: %w", t.Name, err)
		}
		out = append(out, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.Name, err)
	}
	return out, nil
}

func resolve(table string, where rowstore.Filter) (*rowstore.Table, rowstore.Filter, error) {
	t, err := rowstore.LookupTable(table)
	if err != nil {
		return nil, rowstore.Filter{}, err
	}
	coerced, err := t.CoerceFilter(where)
	if err != nil {
		return nil, rowstore.Filter{}, err
	}
	return t, coerced, nil
}

func quotedColumns(t *rowstore.Table) string {
	names := t.ColumnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = query.QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// truncateTimes drops sub-microsecond precision, which TIMESTAMP cannot store.
func truncateTimes(row rowstore.Row) {
	for k, v := range row {
		if ts, ok := v.(time.Time); ok {
			row[k] = ts.Truncate(time.Microsecond)
		}
	}
}

func affected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func recordError(operation, table string, err *error) {
	if *err != nil {
		metrics.RecordRowstoreError(backendName, operation, table)
	}
}
