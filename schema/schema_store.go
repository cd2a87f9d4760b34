package schema

import "time"

// RunInfo describes a chart render about to be recorded in the history store.
type RunInfo struct {
	Kind       ChartKind
	Title      string
	Source     string
	StartTime  time.Time
	Parameters map[string]any
}

// RunOutcome is the completion data for a recorded render.
type RunOutcome struct {
	EndTime    time.Time
	RowsRead   int
	Categories int
	OutputPath string
}

// RunRecord represents a row from the tabchart_runs table.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	ChartKind     string     `json:"chart_kind"`
	Title         string     `json:"title"`
	Source        string     `json:"source"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int64     `json:"run_duration_ms,omitempty"`
	RowsRead      *int64     `json:"rows_read,omitempty"`
	Categories    *int64     `json:"categories,omitempty"`
	OutputPath    *string    `json:"output_path,omitempty"`
	Parameters    *string    `json:"parameters,omitempty"`
}
