package outwriter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePivot() *schema.Pivot {
	return &schema.Pivot{
		Index:   "Year",
		Columns: "Company",
		Value:   "Volume",
		RowKeys: []any{int64(2020), int64(2021)},
		ColKeys: []any{"AAPL", "MSFT"},
		Cells: [][]schema.Cell{
			{{Value: 10, Defined: true}, {Value: 2.5, Defined: true}},
			{{Value: 4, Defined: true}, {}},
		},
	}
}

func samplePie() schema.PieChart {
	return schema.PieChart{
		Spec: schema.PieSpec{Category: "Gender", Value: "Diagnosed", Title: "Cases by Gender"},
		Slices: []schema.PieSlice{
			{Label: "F", Value: 1, Percent: 25},
			{Label: "M", Value: 3, Percent: 75},
		},
		Total: 4,
	}
}

func newTestWriter(mode schema.OutputMode) (*OutWriter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewOutWriter(&contract.Config{Output: mode, Width: 120}, &buf), &buf
}

func TestWritePivot_CSV(t *testing.T) {
	ow, buf := newTestWriter(schema.CSVOut)
	require.NoError(t, ow.WritePivot("ignored", samplePivot()))
	assert.Equal(t, "Year,AAPL,MSFT\n2020,10,2.5\n2021,4,\n", buf.String())
}

func TestWritePivot_JSON(t *testing.T) {
	ow, buf := newTestWriter(schema.JSONOut)
	require.NoError(t, ow.WritePivot("Volume by year", samplePivot()))

	var got pivotJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Volume by year", got.Title)
	assert.Equal(t, []string{"AAPL", "MSFT"}, got.Keys)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "2021", got.Rows[1].Key)
	require.NotNil(t, got.Rows[1].Values[0])
	assert.Equal(t, 4.0, *got.Rows[1].Values[0])
	assert.Nil(t, got.Rows[1].Values[1])
	assert.Equal(t, 16.5, got.Total)
}

func TestWritePivot_Text(t *testing.T) {
	ow, buf := newTestWriter(schema.TextOut)
	require.NoError(t, ow.WritePivot("Volume by year", samplePivot()))

	out := buf.String()
	assert.Contains(t, out, "Volume by year")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "16.50")
	assert.Contains(t, out, missingCell)
}

func TestWritePie(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		ow, buf := newTestWriter(schema.CSVOut)
		require.NoError(t, ow.WritePie(samplePie()))
		assert.Equal(t, "Gender,Diagnosed,percent\nF,1,25\nM,3,75\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		ow, buf := newTestWriter(schema.JSONOut)
		require.NoError(t, ow.WritePie(samplePie()))
		var got pieJSON
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 4.0, got.Total)
		assert.Len(t, got.Slices, 2)
	})

	t.Run("json empty", func(t *testing.T) {
		ow, buf := newTestWriter(schema.JSONOut)
		require.NoError(t, ow.WritePie(schema.PieChart{}))
		assert.Contains(t, buf.String(), `"slices": []`)
	})

	t.Run("text", func(t *testing.T) {
		ow, buf := newTestWriter(schema.TextOut)
		require.NoError(t, ow.WritePie(samplePie()))
		assert.Contains(t, buf.String(), "75.0%")
		assert.Contains(t, buf.String(), "Cases by Gender")
	})
}

func TestWriteTableInfo(t *testing.T) {
	table, err := schema.NewTable(
		&schema.Column{Name: "Gender", Kind: schema.StringKind, Cells: []any{nil, "M"}},
		&schema.Column{Name: "Volume", Kind: schema.FloatKind, Cells: []any{1.5, nil}},
	)
	require.NoError(t, err)

	t.Run("csv", func(t *testing.T) {
		ow, buf := newTestWriter(schema.CSVOut)
		require.NoError(t, ow.WriteTableInfo("data.csv", table))
		assert.Equal(t, "column,kind,missing,sample\nGender,string,1,M\nVolume,float,1,1.5\n", buf.String())
	})

	t.Run("text", func(t *testing.T) {
		ow, buf := newTestWriter(schema.TextOut)
		require.NoError(t, ow.WriteTableInfo("data.csv", table))
		assert.Contains(t, buf.String(), "2 rows, 2 columns")
	})
}

func TestWriteRuns(t *testing.T) {
	duration := int64(42)
	output := "charts/pie.png"
	records := []schema.RunRecord{{
		RunID:         7,
		ChartKind:     "pie",
		Title:         "Cases",
		Source:        "data.csv",
		StartTime:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		RunDurationMs: &duration,
		OutputPath:    &output,
	}}

	t.Run("csv", func(t *testing.T) {
		ow, buf := newTestWriter(schema.CSVOut)
		require.NoError(t, ow.WriteRuns(records))
		assert.Contains(t, buf.String(), "7,pie,Cases,data.csv,2024-05-01T12:00:00Z,42,,,charts/pie.png")
	})

	t.Run("json", func(t *testing.T) {
		ow, buf := newTestWriter(schema.JSONOut)
		require.NoError(t, ow.WriteRuns(records))
		var got []schema.RunRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, int64(7), got[0].RunID)
	})

	t.Run("text", func(t *testing.T) {
		ow, buf := newTestWriter(schema.TextOut)
		require.NoError(t, ow.WriteRuns(records))
		assert.Contains(t, buf.String(), "charts/pie.png")
	})
}

func TestGetMaxLabelWidth(t *testing.T) {
	assert.Equal(t, 12, getMaxLabelWidth(40, 3))
	assert.Equal(t, 60, getMaxLabelWidth(500, 1))
	assert.Equal(t, 42, getMaxLabelWidth(80, 2))
}
