// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Kind is a column value type.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindTime
	KindTextList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindTextList:
		return "text_list"
	default:
		return "unknown"
	}
}

// Column describes one table column.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Table describes a table: its name and typed columns. The first column is the
// primary key and is always named "id".
type Table struct {
	Name    string
	Columns []Column
}

// Well-known column names.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

// Products is the catalog table.
var Products = &Table{
	Name: "products",
	Columns: []Column{
		{Name: ColumnID, Kind: KindText},
		{Name: "name", Kind: KindText},
		{Name: "description", Kind: KindText, Nullable: true},
		{Name: "category", Kind: KindText},
		{Name: "image_url", Kind: KindText, Nullable: true},
		{Name: "original_price", Kind: KindFloat},
		{Name: "discounted_price", Kind: KindFloat},
		{Name: "rating", Kind: KindFloat},
		{Name: "sold_count", Kind: KindInteger},
		{Name: "stock_quantity", Kind: KindInteger},
		{Name: "sizes", Kind: KindTextList},
		{Name: "colors", Kind: KindTextList},
		{Name: "is_featured", Kind: KindBool},
		{Name: "is_best_seller", Kind: KindBool},
		{Name: ColumnCreatedAt, Kind: KindTime},
		{Name: ColumnUpdatedAt, Kind: KindTime},
	},
}

// CartItems is the cart line item table.
var CartItems = &Table{
	Name: "cart_items",
	Columns: []Column{
		{Name: ColumnID, Kind: KindText},
		{Name: "session_id", Kind: KindText, Nullable: true},
		{Name: "user_id", Kind: KindText, Nullable: true},
		{Name: "product_id", Kind: KindText},
		{Name: "quantity", Kind: KindInteger},
		{Name: "selected_size", Kind: KindText},
		{Name: "selected_color", Kind: KindText},
		{Name: ColumnCreatedAt, Kind: KindTime},
		{Name: ColumnUpdatedAt, Kind: KindTime},
	},
}

// Tables lists every known table.
var Tables = []*Table{Products, CartItems}

// LookupTable returns the schema for name.
func LookupTable(name string) (*Table, error) {
	for _, t := range Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Normalize coerces every value in row to its column kind.
func (t *Table) Normalize(row Row) (Row, error) {
	out := make(Row, len(row))
	for name, v := range row {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, name)
		}
		cv, err := col.Coerce(v)
		if err != nil {
			return nil, err
		}
		out[name] = cv
	}
	return out, nil
}

// PrepareInsert normalizes row and fills id, created_at and updated_at when absent.
// Columns missing from row are set to nil (nullable) or the zero value of their kind.
func (t *Table) PrepareInsert(row Row, now time.Time) (Row, error) {
	out, err := t.Normalize(row)
	if err != nil {
		return nil, err
	}
	if id, _ := out[ColumnID].(string); id == "" {
		out[ColumnID] = uuid.New().String()
	}
	now = now.UTC()
	for _, name := range []string{ColumnCreatedAt, ColumnUpdatedAt} {
		if _, ok := t.Column(name); !ok {
			continue
		}
		if ts, ok := out[name].(time.Time); !ok || ts.IsZero() {
			out[name] = now
		}
	}
	for _, c := range t.Columns {
		if _, ok := out[c.Name]; ok {
			continue
		}
		if c.Nullable {
			out[c.Name] = nil
		} else {
			out[c.Name] = c.Kind.zero()
		}
	}
	return out, nil
}

// PreparePatch normalizes a patch. The primary key cannot be patched.
func (t *Table) PreparePatch(patch Row) (Row, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: empty patch", ErrInvalidValue)
	}
	if _, ok := patch[ColumnID]; ok {
		return nil, fmt.Errorf("%w: %s.id cannot be updated", ErrInvalidValue, t.Name)
	}
	return t.Normalize(patch)
}

// CoerceFilter validates filter columns against the table and coerces values.
func (t *Table) CoerceFilter(f Filter) (Filter, error) {
	switch f.Op {
	case "":
		return f, nil
	case OpOr, OpAnd:
		children := make([]Filter, len(f.Children))
		for i, c := range f.Children {
			cc, err := t.CoerceFilter(c)
			if err != nil {
				return Filter{}, err
			}
			children[i] = cc
		}
		return Filter{Op: f.Op, Children: children}, nil
	case OpEq, OpIn, OpIsNull:
		col, ok := t.Column(f.Column)
		if !ok {
			return Filter{}, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, f.Column)
		}
		values := make([]any, len(f.Values))
		for i, v := range f.Values {
			cv, err := col.Coerce(v)
			if err != nil {
				return Filter{}, err
			}
			values[i] = cv
		}
		return Filter{Op: f.Op, Column: f.Column, Values: values}, nil
	default:
		return Filter{}, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
	}
}

func (k Kind) zero() any {
	switch k {
	case KindInteger:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindBool:
		return false
	case KindTime:
		return time.Time{}
	case KindTextList:
		return []string{}
	default:
		return ""
	}
}

// Coerce converts v to the column kind. nil passes through.
func (c Column) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	out, ok := coerce(c.Kind, v)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidValue, c.Name, c.Kind, v)
	}
	return out, nil
}

//nolint:gocyclo // one case per supported source type
func coerce(kind Kind, v any) (any, bool) {
	switch kind {
	case KindText:
		s, ok := v.(string)
		return s, ok
	case KindInteger:
		switch n := v.(type) {
		case int:
			return int64(n), true
		case int32:
			return int64(n), true
		case int64:
			return n, true
		case float64:
			if n != math.Trunc(n) {
				return nil, false
			}
			return int64(n), true
		case json.Number:
			i, err := n.Int64()
			return i, err == nil
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			return i, err == nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			f, err := n.Float64()
			return f, err == nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			return f, err == nil
		}
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			parsed, err := strconv.ParseBool(b)
			return parsed, err == nil
		}
	case KindTime:
		switch ts := v.(type) {
		case time.Time:
			return ts.UTC(), true
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, ts)
			return parsed.UTC(), err == nil
		}
	case KindTextList:
		switch list := v.(type) {
		case []string:
			return slices.Clone(list), true
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		case string:
			var out []string
			if strings.TrimSpace(list) == "" {
				return []string{}, true
			}
			if err := json.Unmarshal([]byte(list), &out); err != nil {
				return nil, false
			}
			if out == nil {
				out = []string{}
			}
			return out, true
		}
	}
	return nil, false
}

// equalValues compares two coerced values.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case []string:
		bv, ok := b.([]string)
		return ok && slices.Equal(av, bv)
	case string, int64, float64, bool:
		return a == b
	default:
		return false
	}
}

// compareValues orders two coerced values of the same kind. nil sorts first.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case int64:
		bv, _ := b.(int64)
		return cmp.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		return cmp.Compare(av, bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	default:
		return 0
	}
}
