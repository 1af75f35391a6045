// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package rowstore

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Query parameters with a fixed meaning in the row API. They cannot be used as
// column names in filters.
const (
	ParamOrder  = "order"
	ParamLimit  = "limit"
	ParamSelect = "select"
)

// EncodeQuery renders q as row API query parameters:
//
//	session_id=eq.abc
//	id=in.(a,b)
//	user_id=is.null
//	or=(session_id.eq.abc,user_id.eq.u1)
//	order=created_at.desc
//	limit=12
func EncodeQuery(q Query) (url.Values, error) {
	v, err := EncodeFilter(q.Where)
	if err != nil {
		return nil, err
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		v.Set(ParamOrder, q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		v.Set(ParamLimit, strconv.Itoa(q.Limit))
	}
	return v, nil
}

// EncodeFilter renders f as row API query parameters. Top-level conjunctions become
// one parameter per child.
func EncodeFilter(f Filter) (url.Values, error) {
	v := url.Values{}
	var top []Filter
	switch {
	case f.IsZero():
	case f.Op == OpAnd:
		top = f.Children
	default:
		top = []Filter{f}
	}

	for _, c := range top {
		switch c.Op {
		case OpEq, OpIn, OpIsNull:
			if isReserved(c.Column) {
				return nil, fmt.Errorf("%w: column name %q is reserved", ErrInvalidFilter, c.Column)
			}
			operand, err := encodeOperand(c, false)
			if err != nil {
				return nil, err
			}
			v.Add(c.Column, operand)
		case OpOr, OpAnd:
			list, err := encodeList(c.Children)
			if err != nil {
				return nil, err
			}
			v.Add(string(c.Op), "("+list+")")
		default:
			return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, c.Op)
		}
	}
	return v, nil
}

func encodeOperand(f Filter, nested bool) (string, error) {
	switch f.Op {
	case OpEq:
		if len(f.Values) != 1 {
			return "", fmt.Errorf("%w: eq needs exactly one value", ErrInvalidFilter)
		}
		s, err := formatValue(f.Values[0])
		if err != nil {
			return "", err
		}
		if nested {
			s = quoteValue(s)
		}
		return "eq." + s, nil
	case OpIn:
		parts := make([]string, len(f.Values))
		for i, val := range f.Values {
			s, err := formatValue(val)
			if err != nil {
				return "", err
			}
			parts[i] = quoteValue(s)
		}
		return "in.(" + strings.Join(parts, ",") + ")", nil
	case OpIsNull:
		return "is.null", nil
	default:
		return "", fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Op)
	}
}

func encodeList(children []Filter) (string, error) {
	parts := make([]string, len(children))
	for i, c := range children {
		switch c.Op {
		case OpOr, OpAnd:
			inner, err := encodeList(c.Children)
			if err != nil {
				return "", err
			}
			parts[i] = string(c.Op) + "(" + inner + ")"
		default:
			operand, err := encodeOperand(c, true)
			if err != nil {
				return "", err
			}
			parts[i] = c.Column + "." + operand
		}
	}
	return strings.Join(parts, ","), nil
}

func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano), nil
	case nil:
		return "", fmt.Errorf("%w: use IsNull for null comparisons", ErrInvalidFilter)
	default:
		return fmt.Sprint(val), nil
	}
}

func quoteValue(s string) string {
	if s != "" && !strings.ContainsAny(s, ",()\"\\ \t\n") {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func isReserved(name string) bool {
	switch name {
	case ParamOrder, ParamLimit, ParamSelect, string(OpOr), string(OpAnd):
		return true
	}
	return false
}

// ParseQuery is the inverse of EncodeQuery. Filter values are returned as strings;
// Table.CoerceFilter converts them to column kinds.
func ParseQuery(values url.Values) (Query, error) {
	var q Query
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var filters []Filter
	for _, key := range keys {
		for _, raw := range values[key] {
			switch key {
			case ParamSelect:
			case ParamOrder:
				col, dir, ok := strings.Cut(raw, ".")
				if !ok {
					dir = "asc"
				}
				if col == "" || (dir != "asc" && dir != "desc") {
					return Query{}, fmt.Errorf("%w: order %q", ErrInvalidFilter, raw)
				}
				q.OrderBy, q.Desc = col, dir == "desc"
			case ParamLimit:
				n, err := strconv.Atoi(raw)
				if err != nil || n < 0 {
					return Query{}, fmt.Errorf("%w: limit %q", ErrInvalidFilter, raw)
				}
				q.Limit = n
			case string(OpOr), string(OpAnd):
				p := &exprParser{s: raw}
				if !p.consume('(') {
					return Query{}, fmt.Errorf("%w: %s must be parenthesized", ErrInvalidFilter, key)
				}
				children, err := p.items()
				if err != nil {
					return Query{}, err
				}
				if !p.consume(')') || !p.done() {
					return Query{}, fmt.Errorf("%w: unbalanced %s expression", ErrInvalidFilter, key)
				}
				filters = append(filters, combine(Op(key), children))
			default:
				f, err := parseOperand(key, raw)
				if err != nil {
					return Query{}, err
				}
				filters = append(filters, f)
			}
		}
	}
	q.Where = And(filters...)
	return q, nil
}

func parseOperand(column, raw string) (Filter, error) {
	// Top-level eq values are not quoted: everything after "eq." is the value.
	if v, ok := strings.CutPrefix(raw, "eq."); ok {
		return Eq(column, v), nil
	}
	p := &exprParser{s: raw}
	f, err := p.operand(column)
	if err != nil {
		return Filter{}, err
	}
	if !p.done() {
		return Filter{}, fmt.Errorf("%w: trailing input in %s=%s", ErrInvalidFilter, column, raw)
	}
	return f, nil
}

type exprParser struct {
	s string
	i int
}

func (p *exprParser) done() bool { return p.i >= len(p.s) }

func (p *exprParser) consume(c byte) bool {
	if p.i < len(p.s) && p.s[p.i] == c {
		p.i++
		return true
	}
	return false
}

func (p *exprParser) items() ([]Filter, error) {
	var out []Filter
	for {
		f, err := p.item()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
		if !p.consume(',') {
			return out, nil
		}
	}
}

func (p *exprParser) item() (Filter, error) {
	rest := p.s[p.i:]
	for _, op := range []Op{OpOr, OpAnd} {
		prefix := string(op) + "("
		if !strings.HasPrefix(rest, prefix) {
			continue
		}
		p.i += len(prefix)
		children, err := p.items()
		if err != nil {
			return Filter{}, err
		}
		if !p.consume(')') {
			return Filter{}, fmt.Errorf("%w: unclosed %s(", ErrInvalidFilter, op)
		}
		return combine(op, children), nil
	}

	column := p.ident()
	if column == "" || !p.consume('.') {
		return Filter{}, fmt.Errorf("%w: expected column at offset %d", ErrInvalidFilter, p.i)
	}
	return p.operand(column)
}

func (p *exprParser) operand(column string) (Filter, error) {
	op := p.ident()
	if !p.consume('.') {
		return Filter{}, fmt.Errorf("%w: expected operator for %s", ErrInvalidFilter, column)
	}
	switch Op(op) {
	case OpEq:
		v, err := p.value()
		if err != nil {
			return Filter{}, err
		}
		return Eq(column, v), nil
	case OpIn:
		if !p.consume('(') {
			return Filter{}, fmt.Errorf("%w: in list for %s must be parenthesized", ErrInvalidFilter, column)
		}
		var values []any
		if !p.consume(')') {
			for {
				v, err := p.value()
				if err != nil {
					return Filter{}, err
				}
				values = append(values, v)
				if p.consume(',') {
					continue
				}
				if p.consume(')') {
					break
				}
				return Filter{}, fmt.Errorf("%w: unclosed in list for %s", ErrInvalidFilter, column)
			}
		}
		return In(column, values...), nil
	case OpIsNull:
		v, err := p.value()
		if err != nil {
			return Filter{}, err
		}
		if v != "null" {
			return Filter{}, fmt.Errorf("%w: only is.null is supported", ErrInvalidFilter)
		}
		return IsNull(column), nil
	default:
		return Filter{}, fmt.Errorf("%w: operator %q", ErrInvalidFilter, op)
	}
}

func (p *exprParser) ident() string {
	start := p.i
	for p.i < len(p.s) {
		c := p.s[p.i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.i++
			continue
		}
		break
	}
	return p.s[start:p.i]
}

func (p *exprParser) value() (string, error) {
	if !p.consume('"') {
		start := p.i
		for p.i < len(p.s) && p.s[p.i] != ',' && p.s[p.i] != ')' {
			p.i++
		}
		return p.s[start:p.i], nil
	}

	var b strings.Builder
	for p.i < len(p.s) {
		c := p.s[p.i]
		p.i++
		switch c {
		case '\\':
			if p.i >= len(p.s) {
				return "", fmt.Errorf("%w: dangling escape", ErrInvalidFilter)
			}
			b.WriteByte(p.s[p.i])
			p.i++
		case '"':
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("%w: unterminated quoted value", ErrInvalidFilter)
}
