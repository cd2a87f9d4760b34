package core

import (
	"testing"

	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotAggregate(t *testing.T) {
	agg := &schema.Aggregate{
		KeyColumns:   []string{"Year", "Company"},
		ValueColumns: []string{"Volume"},
		Rows: []schema.AggregateRow{
			{Keys: []any{int64(2020), "A"}, Values: []float64{150}},
			{Keys: []any{int64(2021), "B"}, Values: []float64{200}},
		},
	}

	p, err := PivotAggregate(agg, "Year", "Company", "Volume")
	require.NoError(t, err)

	assert.Equal(t, []any{int64(2020), int64(2021)}, p.RowKeys)
	assert.Equal(t, []any{"A", "B"}, p.ColKeys)
	assert.Equal(t, [][]schema.Cell{
		{{Value: 150, Defined: true}, {}},
		{{}, {Value: 200, Defined: true}},
	}, p.Cells)
	assert.Equal(t, 350.0, p.Total())
}

func TestPivotAggregateTransposed(t *testing.T) {
	agg := &schema.Aggregate{
		KeyColumns:   []string{"Age Group", "Job Type"},
		ValueColumns: []string{"n"},
		Rows: []schema.AggregateRow{
			{Keys: []any{"18-25", "IT"}, Values: []float64{3}},
			{Keys: []any{"18-25", "Sales"}, Values: []float64{1}},
			{Keys: []any{"26-35", "IT"}, Values: []float64{2}},
		},
	}

	p, err := PivotAggregate(agg, "Job Type", "Age Group", "n")
	require.NoError(t, err)
	assert.Equal(t, []any{"IT", "Sales"}, p.RowKeys)
	assert.Equal(t, []any{"18-25", "26-35"}, p.ColKeys)

	v, ok := p.At(1, 1)
	assert.False(t, ok)
	assert.Zero(t, v)
	v, ok = p.At(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestPivotAggregateMissingColumns(t *testing.T) {
	agg := &schema.Aggregate{KeyColumns: []string{"a", "b"}, ValueColumns: []string{"v"}}

	_, err := PivotAggregate(agg, "x", "b", "v")
	assert.ErrorIs(t, err, schema.ErrMissingColumn)
	_, err = PivotAggregate(agg, "a", "x", "v")
	assert.ErrorIs(t, err, schema.ErrMissingColumn)
	_, err = PivotAggregate(agg, "a", "b", "x")
	assert.ErrorIs(t, err, schema.ErrMissingColumn)

	p, err := PivotAggregate(agg, "a", "b", "v")
	require.NoError(t, err)
	assert.Zero(t, p.Rows())
	assert.Zero(t, p.Cols())
}
