// Package schema holds the tables, pivots and chart models shared across tabchart.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ColumnKind is the inferred or declared type of a column.
type ColumnKind int

// All column kinds supported.
const (
	StringKind ColumnKind = iota
	FloatKind
	IntKind
	BoolKind
	DateKind
)

// String returns the lowercase name of the kind.
func (k ColumnKind) String() string {
	switch k {
	case FloatKind:
		return "float"
	case IntKind:
		return "int"
	case BoolKind:
		return "bool"
	case DateKind:
		return "date"
	default:
		return "string"
	}
}

// Numeric reports whether cells of this kind can be summed.
// Booleans count true as 1, matching how the datasets encode diagnosis flags.
func (k ColumnKind) Numeric() bool {
	return k == FloatKind || k == IntKind || k == BoolKind
}

// Column is a named, typed column of a Table.
// Cells hold nil (missing), string, float64, int64, bool or time.Time values.
type Column struct {
	Name  string
	Kind  ColumnKind
	Cells []any
}

// Clone returns a copy of the column with its own cell slice.
func (c *Column) Clone() *Column {
	cells := make([]any, len(c.Cells))
	copy(cells, c.Cells)
	return &Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// Missing returns the number of nil cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Cells {
		if v == nil {
			n++
		}
	}
	return n
}

// Float returns the numeric value of cell i. The second result is false when
// the cell is missing, not numeric, NaN or infinite.
func (c *Column) Float(i int) (float64, bool) {
	switch v := c.Cells[i].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Table is an ordered sequence of records stored column-wise.
// Every column has the same number of cells; row i is the i-th cell of each column.
type Table struct {
	Columns []*Column
}

// NewTable builds a table from columns, checking that they line up.
func NewTable(columns ...*Column) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Cells) != len(columns[0].Cells) {
			return nil, fmt.Errorf("column %q has %d cells, expected %d", c.Name, len(c.Cells), len(columns[0].Cells))
		}
	}
	return &Table{Columns: columns}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

// Clone returns a deep copy of the table's columns. Cell values are immutable so
// they are shared.
func (t *Table) Clone() *Table {
	cols := make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.Clone()
	}
	return &Table{Columns: cols}
}

// WithColumn returns a copy of the table with col appended, or replacing the
// existing column of the same name. The receiver is left untouched.
func (t *Table) WithColumn(col *Column) *Table {
	out := &Table{Columns: make([]*Column, 0, len(t.Columns)+1)}
	replaced := false
	for _, c := range t.Columns {
		if c.Name == col.Name {
			out.Columns = append(out.Columns, col)
			replaced = true
			continue
		}
		out.Columns = append(out.Columns, c)
	}
	if !replaced {
		out.Columns = append(out.Columns, col)
	}
	return out
}

// FormatCell renders a cell value for display and key comparison.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
