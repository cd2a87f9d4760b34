package core

import (
	"testing"

	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineSpec(period schema.Period) schema.LineSpec {
	return schema.LineSpec{
		DateColumn: "Date",
		Period:     period,
		Category:   "Company",
		Value:      "Volume",
		Legend:     "Company",
		Title:      "Volume by year",
	}
}

func TestBuildLineChart(t *testing.T) {
	tbl := stockTable(t)

	chart, derived, err := BuildLineChart(tbl, lineSpec(schema.YearPeriod))
	require.NoError(t, err)

	p := chart.Pivot
	assert.Equal(t, "Year", p.Index)
	assert.Equal(t, "Company", p.Columns)
	assert.Equal(t, []any{int64(2020), int64(2021)}, p.RowKeys)
	assert.Equal(t, []any{"A", "B"}, p.ColKeys)

	v, ok := p.At(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)
	v, ok = p.At(1, 1)
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)

	// Absent combinations are gaps, not zeros.
	_, ok = p.At(0, 1)
	assert.False(t, ok)
	_, ok = p.At(1, 0)
	assert.False(t, ok)

	assert.Equal(t, schema.DefaultLineWidth, chart.Spec.LineWidth)
	assert.Equal(t, []string{"Date", "Company", "Volume", "Year", "Month"}, derived.Names())
	assert.Equal(t, []string{"Date", "Company", "Volume"}, tbl.Names())
	dateCol, _ := tbl.Column("Date")
	assert.Equal(t, schema.StringKind, dateCol.Kind)
}

func TestBuildLineChartTwoYears(t *testing.T) {
	tbl := mustTable(t,
		strCol("Date", "2019-02-01", "2019-11-30", "2020-05-05", "2020-07-07"),
		strCol("Company", "A", "A", "A", "A"),
		floatCol("Volume", 1, 2, 3, 4),
	)

	chart, _, err := BuildLineChart(tbl, lineSpec(schema.YearPeriod))
	require.NoError(t, err)
	require.Equal(t, 2, chart.Pivot.Rows())
	require.Equal(t, 1, chart.Pivot.Cols())
	v, _ := chart.Pivot.At(0, 0)
	assert.Equal(t, 3.0, v)
	v, _ = chart.Pivot.At(1, 0)
	assert.Equal(t, 7.0, v)
}

func TestBuildLineChartByMonth(t *testing.T) {
	tbl := mustTable(t,
		strCol("Date", "2019-02-01", "2020-02-10", "2020-07-07"),
		strCol("Company", "A", "A", "B"),
		floatCol("Volume", 1, 2, 3),
	)

	chart, _, err := BuildLineChart(tbl, lineSpec(schema.MonthPeriod))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(7)}, chart.Pivot.RowKeys)
	v, _ := chart.Pivot.At(0, 0)
	assert.Equal(t, 3.0, v)
}

func TestBuildLineChartMassPreservation(t *testing.T) {
	tbl := mustTable(t,
		strCol("Date", "2018-01-01", "2019-01-01", "2019-06-01", "", "2021-01-01"),
		strCol("Company", "A", "B", "A", "A", nil),
		floatCol("Volume", 10, 20, 30, 40, 50),
	)

	chart, _, err := BuildLineChart(tbl, lineSpec(schema.YearPeriod))
	require.NoError(t, err)
	// Rows with a missing date or company are dropped by the grouping.
	assert.Equal(t, 60.0, chart.Pivot.Total())
}

func TestBuildLineChartErrors(t *testing.T) {
	tbl := stockTable(t)

	_, _, err := BuildLineChart(tbl, lineSpec("Quarter"))
	assert.ErrorIs(t, err, schema.ErrInvalidPeriod)

	spec := lineSpec(schema.YearPeriod)
	spec.DateColumn = "When"
	_, _, err = BuildLineChart(tbl, spec)
	assert.ErrorIs(t, err, schema.ErrMissingColumn)

	spec = lineSpec(schema.YearPeriod)
	spec.Value = "Company"
	_, _, err = BuildLineChart(tbl, spec)
	assert.ErrorIs(t, err, schema.ErrNotNumeric)

	bad := mustTable(t, strCol("Date", "yesterday"), strCol("Company", "A"), floatCol("Volume", 1))
	_, _, err = BuildLineChart(bad, lineSpec(schema.YearPeriod))
	assert.ErrorIs(t, err, schema.ErrUnparseableDate)
}

func TestBuildLineChartEmpty(t *testing.T) {
	tbl := mustTable(t, strCol("Date"), strCol("Company"), floatCol("Volume"))
	chart, _, err := BuildLineChart(tbl, lineSpec(schema.YearPeriod))
	require.NoError(t, err)
	assert.Zero(t, chart.Pivot.Rows())
	assert.Zero(t, chart.Pivot.Cols())
}
