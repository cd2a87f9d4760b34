// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
)

// defaultPrecision is the number of decimals shown in text tables.
const defaultPrecision = 2

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	w         io.Writer
	output    schema.OutputMode
	width     int
	useColors bool
}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer that prints to w.
func NewOutWriter(cfg *contract.Config, w io.Writer) *OutWriter {
	return &OutWriter{
		w:         w,
		output:    cfg.Output,
		width:     cfg.Width,
		useColors: cfg.UseColors,
	}
}

// WritePivot prints a pivoted aggregate using the configured output format.
func (ow *OutWriter) WritePivot(title string, pivot *schema.Pivot) error {
	switch ow.output {
	case schema.JSONOut:
		return writeJSON(ow.w, newPivotJSON(title, pivot))
	case schema.CSVOut:
		return writePivotCSV(ow.w, pivot)
	default:
		return ow.writePivotTable(title, pivot)
	}
}

// WritePie prints pie slices using the configured output format.
func (ow *OutWriter) WritePie(chart schema.PieChart) error {
	switch ow.output {
	case schema.JSONOut:
		return writeJSON(ow.w, newPieJSON(chart))
	case schema.CSVOut:
		return writePieCSV(ow.w, chart)
	default:
		return ow.writePieTable(chart)
	}
}

// WriteTableInfo prints the columns of a loaded table using the configured output format.
func (ow *OutWriter) WriteTableInfo(source string, table *schema.Table) error {
	switch ow.output {
	case schema.JSONOut:
		return writeJSON(ow.w, newTableInfo(source, table))
	case schema.CSVOut:
		return writeTableInfoCSV(ow.w, table)
	default:
		return ow.writeTableInfoTable(source, table)
	}
}

// WriteRuns prints run history records using the configured output format.
func (ow *OutWriter) WriteRuns(records []schema.RunRecord) error {
	switch ow.output {
	case schema.JSONOut:
		if records == nil {
			records = []schema.RunRecord{}
		}
		return writeJSON(ow.w, records)
	case schema.CSVOut:
		return writeRunsCSV(ow.w, records)
	default:
		return ow.writeRunsTable(records)
	}
}

// colorizers returns the title, total and missing color functions, or plain
// formatting when colors are off.
func (ow *OutWriter) colorizers() (header, total, missing func(...any) string) {
	if ow.useColors {
		return contract.HeaderColor.SprintFunc(), contract.TotalColor.SprintFunc(), contract.MissingColor.SprintFunc()
	}
	return fmt.Sprint, fmt.Sprint, fmt.Sprint
}
