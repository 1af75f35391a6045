// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore

// Op is a filter operator.
type Op string

const (
	OpEq     Op = "eq"
	OpIn     Op = "in"
	OpIsNull Op = "is"
	OpOr     Op = "or"
	OpAnd    Op = "and"
)

// Filter is a row predicate. The zero Filter matches every row.
type Filter struct {
	Op       Op
	Column   string
	Values   []any
	Children []Filter
}

// Eq matches rows whose column equals value.
func Eq(column string, value any) Filter {
	return Filter{Op: OpEq, Column: column, Values: []any{value}}
}

// In matches rows whose column equals any of values.
func In(column string, values ...any) Filter {
	return Filter{Op: OpIn, Column: column, Values: values}
}

// InStrings is In for a string slice.
func InStrings(column string, values []string) Filter {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return In(column, vs...)
}

// IsNull matches rows whose column is null.
func IsNull(column string) Filter {
	return Filter{Op: OpIsNull, Column: column}
}

// Or matches rows matching any of filters. Zero filters are ignored.
func Or(filters ...Filter) Filter {
	return combine(OpOr, filters)
}

// And matches rows matching all of filters. Zero filters are ignored.
func And(filters ...Filter) Filter {
	return combine(OpAnd, filters)
}

func combine(op Op, filters []Filter) Filter {
	children := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if !f.IsZero() {
			children = append(children, f)
		}
	}
	switch len(children) {
	case 0:
		return Filter{}
	case 1:
		return children[0]
	default:
		return Filter{Op: op, Children: children}
	}
}

// IsZero reports whether f is the match-all filter.
func (f Filter) IsZero() bool {
	return f.Op == ""
}

// Match evaluates f against row. Values must already be coerced to column kinds
// (see Table.CoerceFilter).
func (f Filter) Match(row Row) bool {
	switch f.Op {
	case "":
		return true
	case OpEq:
		return len(f.Values) == 1 && equalValues(row[f.Column], f.Values[0])
	case OpIn:
		v := row[f.Column]
		for _, candidate := range f.Values {
			if equalValues(v, candidate) {
				return true
			}
		}
		return false
	case OpIsNull:
		return row[f.Column] == nil
	case OpOr:
		for _, c := range f.Children {
			if c.Match(row) {
				return true
			}
		}
		return false
	case OpAnd:
		for _, c := range f.Children {
			if !c.Match(row) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
