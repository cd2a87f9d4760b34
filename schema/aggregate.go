package schema

import (
	"cmp"
	"strings"
	"time"
)

// AggregateRow is one distinct key combination and its summed measures.
type AggregateRow struct {
	Keys   []any
	Values []float64
}

// Aggregate is a long-form table: one row per key combination present in the source.
type Aggregate struct {
	KeyColumns   []string
	ValueColumns []string
	Rows         []AggregateRow
}

// ValueIndex returns the position of a value column, or -1.
func (a *Aggregate) ValueIndex(name string) int {
	for i, n := range a.ValueColumns {
		if n == name {
			return i
		}
	}
	return -1
}

// KeyIndex returns the position of a key column, or -1.
func (a *Aggregate) KeyIndex(name string) int {
	for i, n := range a.KeyColumns {
		if n == name {
			return i
		}
	}
	return -1
}

// Cell is one pivot cell. Defined is false for key combinations absent from the source.
type Cell struct {
	Value   float64
	Defined bool
}

// Pivot is a wide-form matrix: Index values down the rows, Columns values across.
type Pivot struct {
	Index   string
	Columns string
	Value   string
	RowKeys []any
	ColKeys []any
	Cells   [][]Cell
}

// Rows returns the number of row keys.
func (p *Pivot) Rows() int { return len(p.RowKeys) }

// Cols returns the number of column keys.
func (p *Pivot) Cols() int { return len(p.ColKeys) }

// At returns the value at (r, c) and whether it is defined.
func (p *Pivot) At(r, c int) (float64, bool) {
	cell := p.Cells[r][c]
	return cell.Value, cell.Defined
}

// Total sums every defined cell.
func (p *Pivot) Total() float64 {
	var total float64
	for _, row := range p.Cells {
		for _, cell := range row {
			if cell.Defined {
				total += cell.Value
			}
		}
	}
	return total
}

// RowTotal sums the defined cells of row r.
func (p *Pivot) RowTotal(r int) float64 {
	var total float64
	for _, cell := range p.Cells[r] {
		if cell.Defined {
			total += cell.Value
		}
	}
	return total
}

// FillMissing returns a copy of the pivot where undefined cells hold v.
func (p *Pivot) FillMissing(v float64) *Pivot {
	out := &Pivot{
		Index:   p.Index,
		Columns: p.Columns,
		Value:   p.Value,
		RowKeys: p.RowKeys,
		ColKeys: p.ColKeys,
		Cells:   make([][]Cell, len(p.Cells)),
	}
	for r, row := range p.Cells {
		out.Cells[r] = make([]Cell, len(row))
		for c, cell := range row {
			if !cell.Defined {
				cell = Cell{Value: v, Defined: true}
			}
			out.Cells[r][c] = cell
		}
	}
	return out
}

// kindRank orders keys of different types so mixed key columns still sort deterministically.
func kindRank(v any) int {
	switch v.(type) {
	case bool:
		return 0
	case int64, float64:
		return 1
	case time.Time:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

// CompareKeys orders two group keys: numbers ascending, strings lexically,
// false before true, times chronologically.
func CompareKeys(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case int64, float64:
		return cmp.Compare(toFloat(a), toFloat(b))
	case time.Time:
		return x.Compare(b.(time.Time))
	case string:
		return strings.Compare(x, b.(string))
	default:
		return strings.Compare(FormatCell(a), FormatCell(b))
	}
}

// CompareKeyTuples orders two composite keys element by element.
func CompareKeyTuples(a, b []any) int {
	for i := range min(len(a), len(b)) {
		if c := CompareKeys(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return 0
}
