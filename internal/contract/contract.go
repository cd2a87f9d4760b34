// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/tabchart/schema"
)

// TableLoader reads a source into an in-memory table.
// This allows the core pipeline to be tested without touching the file system.
type TableLoader interface {
	// Load reads the named source. For SQL backends the name is a table,
	// unless a query is configured.
	Load(ctx context.Context, source string) (*schema.Table, error)
}

// ChartRenderer writes chart images to disk.
type ChartRenderer interface {
	RenderLine(chart schema.LineChart, path string) (schema.RenderResult, error)
	RenderStackedBar(chart schema.StackedBarChart, path string) (schema.RenderResult, error)
	RenderPie(chart schema.PieChart, path string) (schema.RenderResult, error)
}

// ResultWriter prints computed aggregates for the user.
type ResultWriter interface {
	WritePivot(title string, pivot *schema.Pivot) error
	WritePie(chart schema.PieChart) error
	WriteTableInfo(source string, table *schema.Table) error
}

// HistoryStore defines the interface for tracking chart renders.
// It records run metadata only; aggregates are never stored.
type HistoryStore interface {
	// BeginRun creates a new run record and returns its unique ID
	BeginRun(info schema.RunInfo) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, outcome schema.RunOutcome) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes every run record
	Clear() error

	// Close closes the underlying connection
	Close() error
}
