package core

import (
	"fmt"

	"github.com/huangsam/tabchart/schema"
)

// BuildPieChart sums every numeric column per category, selects spec.Value and
// turns each category's sum into a slice with its share of the total.
// An empty table yields zero slices without error.
func BuildPieChart(t *schema.Table, spec schema.PieSpec) (schema.PieChart, error) {
	agg, err := GroupSumNumeric(t, []string{spec.Category})
	if err != nil {
		return schema.PieChart{}, fmt.Errorf("pie chart: %w", err)
	}
	vi := agg.ValueIndex(spec.Value)
	if vi < 0 {
		col, err := t.Column(spec.Value)
		if err != nil {
			return schema.PieChart{}, fmt.Errorf("pie chart: %w", err)
		}
		return schema.PieChart{}, fmt.Errorf("pie chart: %w: %q is %s", schema.ErrNotNumeric, spec.Value, col.Kind)
	}

	chart := schema.PieChart{Spec: spec, Slices: make([]schema.PieSlice, 0, len(agg.Rows))}
	for _, row := range agg.Rows {
		chart.Slices = append(chart.Slices, schema.PieSlice{
			Label: schema.FormatCell(row.Keys[0]),
			Value: row.Values[vi],
		})
		chart.Total += row.Values[vi]
	}
	if chart.Total != 0 {
		for i := range chart.Slices {
			chart.Slices[i].Percent = chart.Slices[i].Value / chart.Total * 100
		}
	}
	return chart, nil
}
