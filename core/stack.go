package core

import (
	"fmt"

	"github.com/huangsam/tabchart/schema"
)

// BuildStackedBarChart sums spec.Value per category and group and pivots the result
// so that each category is one bar and each group one segment. Absent combinations
// become zero-height segments.
func BuildStackedBarChart(t *schema.Table, spec schema.StackSpec) (schema.StackedBarChart, error) {
	agg, err := GroupSum(t, []string{spec.Category, spec.Group}, []string{spec.Value})
	if err != nil {
		return schema.StackedBarChart{}, fmt.Errorf("stacked bar chart: %w", err)
	}
	pivot, err := PivotAggregate(agg, spec.Category, spec.Group, spec.Value)
	if err != nil {
		return schema.StackedBarChart{}, fmt.Errorf("stacked bar chart: %w", err)
	}
	return schema.StackedBarChart{Spec: spec, Pivot: pivot.FillMissing(0)}, nil
}
