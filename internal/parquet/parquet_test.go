package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tabchart/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.RunRecord {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int64(1500)
	rows := int64(120)
	categories := int64(3)
	output := "charts/cases_by_gender.png"
	params := `{"category":"Gender","value":"Diagnosed"}`

	return []schema.RunRecord{
		{
			RunID:         1,
			ChartKind:     string(schema.PieChartKind),
			Title:         "Cases by Gender",
			Source:        "Data/MentalIllness_data.csv",
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &duration,
			RowsRead:      &rows,
			Categories:    &categories,
			OutputPath:    &output,
			Parameters:    &params,
		},
		{
			// Still running: nullable fields unset
			RunID:     2,
			ChartKind: string(schema.LineChartKind),
			Title:     "Stock Trade Volume by year",
			Source:    "Data/Tech_stocks.csv",
			StartTime: start.Add(time.Minute),
		},
	}
}

func TestChartRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(ChartRun))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id",
		"chart_kind",
		"title",
		"source",
		"start_time",
		"end_time",
		"run_duration_ms",
		"rows_read",
		"categories",
		"output_path",
		"parameters",
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteChartRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRecords())

	require.NoError(t, WriteChartRunsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ChartRun](file)
	defer func() { _ = reader.Close() }()

	readData := make([]ChartRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].ChartKind, readData[i].ChartKind)
		assert.Equal(t, data[i].Title, readData[i].Title)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Millisecond)

		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Millisecond)
		}
		if data[i].OutputPath == nil {
			assert.Nil(t, readData[i].OutputPath)
		} else {
			require.NotNil(t, readData[i].OutputPath)
			assert.Equal(t, *data[i].OutputPath, *readData[i].OutputPath)
		}
	}
}

func TestWriteChartRunsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteChartRunsParquet([]ChartRun{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteChartRunsParquet_InvalidPath(t *testing.T) {
	err := WriteChartRunsParquet(ConvertRunRecords(sampleRecords()), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestConvertRunRecords(t *testing.T) {
	records := sampleRecords()
	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)

	assert.Equal(t, records[0].RunID, runs[0].RunID)
	assert.Equal(t, records[0].Parameters, runs[0].Parameters)
	assert.Nil(t, runs[1].RowsRead)
	assert.Nil(t, runs[1].EndTime)
}
