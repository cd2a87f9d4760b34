// Package parquet exports run history records to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/tabchart/schema"
	"github.com/parquet-go/parquet-go"
)

// ChartRun is one recorded chart render.
// This struct maps to the tabchart_runs database table.
type ChartRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	ChartKind     string     `parquet:"chart_kind,snappy,dict"`
	Title         string     `parquet:"title,snappy"`
	Source        string     `parquet:"source,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int64     `parquet:"run_duration_ms,optional,snappy"`
	RowsRead      *int64     `parquet:"rows_read,optional,snappy"`
	Categories    *int64     `parquet:"categories,optional,snappy"`
	OutputPath    *string    `parquet:"output_path,optional,snappy"`

	// Parameters holds the JSON-encoded chart parameters
	Parameters *string `parquet:"parameters,optional,snappy"`
}

// WriteChartRunsParquet writes a slice of ChartRun structs to a Parquet file.
func WriteChartRunsParquet(data []ChartRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the ChartRun struct tags
	writer := parquet.NewGenericWriter[ChartRun](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to ChartRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ChartRun {
	result := make([]ChartRun, len(records))
	for i, record := range records {
		result[i] = ChartRun{
			RunID:         record.RunID,
			ChartKind:     record.ChartKind,
			Title:         record.Title,
			Source:        record.Source,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			RowsRead:      record.RowsRead,
			Categories:    record.Categories,
			OutputPath:    record.OutputPath,
			Parameters:    record.Parameters,
		}
	}
	return result
}
