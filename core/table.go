package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
)

// ParseDates returns a new table where col holds time.Time cells.
// Strings are tried against each layout in order; empty strings become missing.
func ParseDates(t *schema.Table, col string, layouts []string) (*schema.Table, error) {
	src, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		layouts = schema.DefaultDateLayouts
	}

	out := &schema.Column{Name: src.Name, Kind: schema.DateKind, Cells: make([]any, len(src.Cells))}
	for i, v := range src.Cells {
		switch x := v.(type) {
		case nil:
			continue
		case time.Time:
			out.Cells[i] = x
		case string:
			s := strings.TrimSpace(x)
			if s == "" {
				continue
			}
			ts, ok := parseTime(s, layouts)
			if !ok {
				return nil, fmt.Errorf("%w: column %q row %d value %q", schema.ErrUnparseableDate, col, i, x)
			}
			out.Cells[i] = ts
		default:
			return nil, fmt.Errorf("%w: column %q row %d value %v", schema.ErrUnparseableDate, col, i, v)
		}
	}
	return t.WithColumn(out), nil
}

func parseTime(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DeriveDateParts returns a new table with integer Year and Month columns taken
// from the date column col.
func DeriveDateParts(t *schema.Table, col string) (*schema.Table, error) {
	src, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	if src.Kind != schema.DateKind {
		return nil, fmt.Errorf("column %q is %s, expected date", col, src.Kind)
	}

	years := &schema.Column{Name: schema.YearColumn, Kind: schema.IntKind, Cells: make([]any, len(src.Cells))}
	months := &schema.Column{Name: schema.MonthColumn, Kind: schema.IntKind, Cells: make([]any, len(src.Cells))}
	for i, v := range src.Cells {
		ts, ok := v.(time.Time)
		if !ok {
			continue
		}
		years.Cells[i] = int64(ts.Year())
		months.Cells[i] = int64(ts.Month())
	}
	return t.WithColumn(years).WithColumn(months), nil
}

// Filter keeps the rows whose cell in col equals value. Boolean cells accept
// true/false/yes/no/1/0 and numeric cells compare numerically.
func Filter(t *schema.Table, col, value string) (*schema.Table, error) {
	src, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	match, err := cellMatcher(src.Kind, value)
	if err != nil {
		return nil, fmt.Errorf("filter %s=%s: %w", col, value, err)
	}

	var keep []int
	for i, v := range src.Cells {
		if match(v) {
			keep = append(keep, i)
		}
	}

	cols := make([]*schema.Column, len(t.Columns))
	for ci, c := range t.Columns {
		cells := make([]any, len(keep))
		for k, i := range keep {
			cells[k] = c.Cells[i]
		}
		cols[ci] = &schema.Column{Name: c.Name, Kind: c.Kind, Cells: cells}
	}
	return &schema.Table{Columns: cols}, nil
}

func cellMatcher(kind schema.ColumnKind, value string) (func(any) bool, error) {
	if value == "" {
		return func(v any) bool { return v == nil || v == "" }, nil
	}
	switch kind {
	case schema.BoolKind:
		want, err := contract.ParseBoolString(value)
		if err != nil {
			return nil, err
		}
		return func(v any) bool {
			b, ok := v.(bool)
			return ok && b == want
		}, nil
	case schema.FloatKind, schema.IntKind:
		want, err := numericLiteral(value)
		if err != nil {
			return nil, err
		}
		return func(v any) bool {
			switch x := v.(type) {
			case float64:
				return x == want
			case int64:
				return float64(x) == want
			}
			return false
		}, nil
	default:
		return func(v any) bool {
			return v != nil && schema.FormatCell(v) == value
		}, nil
	}
}

// numericLiteral parses a filter value for a numeric column. The literals
// true and false match 1 and 0.
func numericLiteral(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	switch strings.ToLower(s) {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", schema.ErrNotNumeric, value)
}

// ToNumeric returns a new table where col is a float column. Booleans become 1 or 0
// and numeric strings are parsed.
func ToNumeric(t *schema.Table, col string) (*schema.Table, error) {
	src, err := t.Column(col)
	if err != nil {
		return nil, err
	}

	out := &schema.Column{Name: src.Name, Kind: schema.FloatKind, Cells: make([]any, len(src.Cells))}
	for i, v := range src.Cells {
		if f, ok := src.Float(i); ok {
			out.Cells[i] = f
			continue
		}
		if _, nonFinite := v.(float64); nonFinite {
			continue
		}
		s, isString := v.(string)
		if v == nil || (isString && strings.TrimSpace(s) == "") {
			continue
		}
		if !isString {
			return nil, fmt.Errorf("%w: column %q row %d value %v", schema.ErrNotNumeric, col, i, v)
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			if !math.IsNaN(f) && !math.IsInf(f, 0) {
				out.Cells[i] = f
			}
			continue
		}
		b, err := contract.ParseBoolString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d value %q", schema.ErrNotNumeric, col, i, s)
		}
		if b {
			out.Cells[i] = 1.0
		} else {
			out.Cells[i] = 0.0
		}
	}
	return t.WithColumn(out), nil
}

// PrepareTable applies the configured --where filters and --numeric conversions in order.
func PrepareTable(t *schema.Table, where []contract.Condition, numeric []string) (*schema.Table, error) {
	var err error
	for _, cond := range where {
		if t, err = Filter(t, cond.Column, cond.Value); err != nil {
			return nil, err
		}
	}
	for _, col := range numeric {
		if t, err = ToNumeric(t, col); err != nil {
			return nil, err
		}
	}
	return t, nil
}
