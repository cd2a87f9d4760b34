package core

import (
	"fmt"
	"slices"

	"github.com/huangsam/tabchart/schema"
)

// PivotAggregate reshapes a long aggregate into a matrix with index values down the
// rows and columns values across. Combinations absent from the aggregate stay undefined.
func PivotAggregate(agg *schema.Aggregate, index, columns, value string) (*schema.Pivot, error) {
	ri := agg.KeyIndex(index)
	if ri < 0 {
		return nil, fmt.Errorf("%w: %q", schema.ErrMissingColumn, index)
	}
	ci := agg.KeyIndex(columns)
	if ci < 0 {
		return nil, fmt.Errorf("%w: %q", schema.ErrMissingColumn, columns)
	}
	vi := agg.ValueIndex(value)
	if vi < 0 {
		return nil, fmt.Errorf("%w: %q", schema.ErrMissingColumn, value)
	}

	rowKeys, rowPos := distinctKeys(agg.Rows, ri)
	colKeys, colPos := distinctKeys(agg.Rows, ci)

	cells := make([][]schema.Cell, len(rowKeys))
	for r := range cells {
		cells[r] = make([]schema.Cell, len(colKeys))
	}
	for _, row := range agg.Rows {
		cell := &cells[rowPos[keyID(row.Keys[ri])]][colPos[keyID(row.Keys[ci])]]
		cell.Value += row.Values[vi]
		cell.Defined = true
	}

	return &schema.Pivot{
		Index:   index,
		Columns: columns,
		Value:   value,
		RowKeys: rowKeys,
		ColKeys: colKeys,
		Cells:   cells,
	}, nil
}

// distinctKeys returns the ordered distinct values of key position k and their positions.
func distinctKeys(rows []schema.AggregateRow, k int) ([]any, map[string]int) {
	seen := make(map[string]struct{})
	var keys []any
	for _, row := range rows {
		id := keyID(row.Keys[k])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, row.Keys[k])
	}
	slices.SortStableFunc(keys, schema.CompareKeys)

	pos := make(map[string]int, len(keys))
	for i, key := range keys {
		pos[keyID(key)] = i
	}
	return keys, pos
}
