package core

import (
	"fmt"
	"time"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/internal/parquet"
	"github.com/huangsam/tabchart/schema"
)

// beginRun records the start of a render. History failures never fail a render,
// so errors are only logged and a zero ID disables the matching endRun.
func beginRun(store contract.HistoryStore, info schema.RunInfo) int64 {
	if store == nil {
		return 0
	}
	id, err := store.BeginRun(info)
	if err != nil {
		contract.LogWarn("Failed to record run start", err)
		return 0
	}
	return id
}

func endRun(store contract.HistoryStore, runID int64, rowsRead, categories int, outputPath string) {
	if store == nil || runID == 0 {
		return
	}
	err := store.EndRun(runID, schema.RunOutcome{
		EndTime:    time.Now(),
		RowsRead:   rowsRead,
		Categories: categories,
		OutputPath: outputPath,
	})
	if err != nil {
		contract.LogWarn("Failed to record run end", err)
	}
}

// ExecuteHistoryExport writes every recorded run to a Parquet file at path.
func ExecuteHistoryExport(store contract.HistoryStore, path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("an export file is required")
	}
	status, err := store.GetStatus()
	if err != nil {
		return 0, fmt.Errorf("failed to read history status: %w", err)
	}
	if !status.Connected {
		return 0, fmt.Errorf("history is disabled for the %s backend", status.Backend)
	}

	var records []schema.RunRecord
	if status.TotalRuns > 0 {
		if records, err = store.ListRuns(status.TotalRuns); err != nil {
			return 0, err
		}
	}
	if err := parquet.WriteChartRunsParquet(parquet.ConvertRunRecords(records), path); err != nil {
		return 0, err
	}
	return len(records), nil
}
