package core

import (
	"fmt"

	"github.com/huangsam/tabchart/schema"
)

// BuildLineChart sums spec.Value per period and category and pivots the result so that
// each category becomes one line over time. Periods where a category has no rows stay
// undefined and render as gaps.
//
// The input table is not modified. The returned table is the input plus the parsed
// date column and the derived Year and Month columns.
func BuildLineChart(t *schema.Table, spec schema.LineSpec) (schema.LineChart, *schema.Table, error) {
	if _, ok := schema.ValidPeriods[spec.Period]; !ok {
		return schema.LineChart{}, nil, fmt.Errorf("%w %q: must be Year or Month", schema.ErrInvalidPeriod, spec.Period)
	}
	if spec.LineWidth <= 0 {
		spec.LineWidth = schema.DefaultLineWidth
	}

	derived, err := ParseDates(t, spec.DateColumn, spec.DateLayouts)
	if err != nil {
		return schema.LineChart{}, nil, err
	}
	derived, err = DeriveDateParts(derived, spec.DateColumn)
	if err != nil {
		return schema.LineChart{}, nil, err
	}

	period := string(spec.Period)
	agg, err := GroupSum(derived, []string{period, spec.Category}, []string{spec.Value})
	if err != nil {
		return schema.LineChart{}, nil, fmt.Errorf("line chart: %w", err)
	}
	pivot, err := PivotAggregate(agg, period, spec.Category, spec.Value)
	if err != nil {
		return schema.LineChart{}, nil, fmt.Errorf("line chart: %w", err)
	}
	return schema.LineChart{Spec: spec, Pivot: pivot}, derived, nil
}
