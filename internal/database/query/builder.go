// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package query

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ishubhamdubey/KAPAS/internal/rowstore"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	if err := wb.AddFilter(rowstore.Or(rowstore.Eq("session_id", sid), rowstore.Eq("user_id", uid))); err != nil {
//	    return err
//	}
//	whereClause, args := wb.Build()
//	// ("session_id" = ? OR "user_id" = ?)
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddFilter renders f and adds it as one clause. The zero filter adds nothing.
func (wb *WhereBuilder) AddFilter(f rowstore.Filter) error {
	if f.IsZero() {
		return nil
	}
	clause, args, err := render(f)
	if err != nil {
		return err
	}
	wb.AddClause(clause, args...)
	return nil
}

// Build returns the clauses joined with AND and their arguments.
// Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", []any{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

func render(f rowstore.Filter) (string, []any, error) {
	switch f.Op {
	case rowstore.OpEq:
		if len(f.Values) != 1 {
			return "", nil, fmt.Errorf("%w: eq needs one value", rowstore.ErrInvalidFilter)
		}
		if f.Values[0] == nil {
			return QuoteIdent(f.Column) + " IS NULL", nil, nil
		}
		arg, err := Arg(f.Values[0])
		if err != nil {
			return "", nil, err
		}
		return QuoteIdent(f.Column) + " = ?", []any{arg}, nil

	case rowstore.OpIn:
		return renderIn(f)

	case rowstore.OpIsNull:
		return QuoteIdent(f.Column) + " IS NULL", nil, nil

	case rowstore.OpOr, rowstore.OpAnd:
		sep := " AND "
		if f.Op == rowstore.OpOr {
			sep = " OR "
		}
		parts := make([]string, 0, len(f.Children))
		var args []any
		for _, c := range f.Children {
			if c.IsZero() {
				continue
			}
			clause, childArgs, err := render(c)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, clause)
			args = append(args, childArgs...)
		}
		switch len(parts) {
		case 0:
			return "1=1", nil, nil
		case 1:
			return parts[0], args, nil
		default:
			return "(" + strings.Join(parts, sep) + ")", args, nil
		}

	default:
		return "", nil, fmt.Errorf("%w: operator %q", rowstore.ErrInvalidFilter, f.Op)
	}
}

// renderIn matches a null candidate with IS NULL, since SQL IN never matches null.
func renderIn(f rowstore.Filter) (string, []any, error) {
	col := QuoteIdent(f.Column)
	args := make([]any, 0, len(f.Values))
	hasNull := false
	for _, v := range f.Values {
		if v == nil {
			hasNull = true
			continue
		}
		arg, err := Arg(v)
		if err != nil {
			return "", nil, err
		}
		args = append(args, arg)
	}

	var parts []string
	if len(args) > 0 {
		parts = append(parts, fmt.Sprintf("%s IN (%s)", col, Placeholders(len(args))))
	}
	if hasNull {
		parts = append(parts, col+" IS NULL")
	}
	switch len(parts) {
	case 0:
		return "FALSE", nil, nil
	case 1:
		return parts[0], args, nil
	default:
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}
}

// Placeholders returns n comma-separated "?" placeholders.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// QuoteIdent double-quotes a SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Arg converts a coerced row value into a driver argument. Text lists are stored
// as JSON arrays.
func Arg(v any) (any, error) {
	list, ok := v.([]string)
	if !ok {
		return v, nil
	}
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rowstore.ErrInvalidValue, err)
	}
	return string(data), nil
}
