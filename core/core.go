// Package core has core logic for aggregating tables and building charts.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
)

// ExecutorFunc defines the function signature for executing the different chart commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, deps Deps) error

// Deps bundles the collaborators an executor needs. History may be nil.
type Deps struct {
	Loader   contract.TableLoader
	Renderer contract.ChartRenderer
	Writer   contract.ResultWriter
	History  contract.HistoryStore
}

// ExecuteLine renders the line chart for cfg.Source and prints the pivot.
func ExecuteLine(ctx context.Context, cfg *contract.Config, deps Deps) error {
	table, err := loadTable(ctx, cfg, deps, cfg.Source)
	if err != nil {
		return err
	}
	return renderLine(cfg, deps, table, cfg.Line, cfg.Source, contract.ChartPath(cfg.OutPath, cfg.OutDir, cfg.Line.Title))
}

// ExecuteStack renders the stacked bar chart for cfg.Source and prints the pivot.
func ExecuteStack(ctx context.Context, cfg *contract.Config, deps Deps) error {
	table, err := loadTable(ctx, cfg, deps, cfg.Source)
	if err != nil {
		return err
	}
	return renderStack(cfg, deps, table, cfg.Stack, cfg.Source, contract.ChartPath(cfg.OutPath, cfg.OutDir, cfg.Stack.Title))
}

// ExecutePie renders the pie chart for cfg.Source and prints the slices.
func ExecutePie(ctx context.Context, cfg *contract.Config, deps Deps) error {
	table, err := loadTable(ctx, cfg, deps, cfg.Source)
	if err != nil {
		return err
	}
	return renderPie(cfg, deps, table, cfg.Pie, cfg.Source, contract.ChartPath(cfg.OutPath, cfg.OutDir, cfg.Pie.Title))
}

// ExecuteInspect prints the columns, kinds and missing counts of cfg.Source.
func ExecuteInspect(ctx context.Context, cfg *contract.Config, deps Deps) error {
	table, err := loadTable(ctx, cfg, deps, cfg.Source)
	if err != nil {
		return err
	}
	return deps.Writer.WriteTableInfo(cfg.Source, table)
}

// loadTable reads a source and applies the configured filters and conversions.
func loadTable(ctx context.Context, cfg *contract.Config, deps Deps, source string) (*schema.Table, error) {
	table, err := deps.Loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return PrepareTable(table, cfg.Where, cfg.Numeric)
}

func renderLine(cfg *contract.Config, deps Deps, table *schema.Table, spec schema.LineSpec, source, path string) error {
	start := time.Now()
	chart, _, err := BuildLineChart(table, spec)
	if err != nil {
		return err
	}
	runID := beginRun(deps.History, schema.RunInfo{
		Kind:      schema.LineChartKind,
		Title:     spec.Title,
		Source:    source,
		StartTime: start,
		Parameters: map[string]any{
			"date_col": spec.DateColumn,
			"period":   spec.Period,
			"category": spec.Category,
			"value":    spec.Value,
		},
	})
	result, err := deps.Renderer.RenderLine(chart, path)
	if err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	endRun(deps.History, runID, table.Len(), chart.Pivot.Cols(), result.Path)
	logRendered(cfg, schema.LineChartKind, result)
	if cfg.Quiet {
		return nil
	}
	return deps.Writer.WritePivot(spec.Title, chart.Pivot)
}

func renderStack(cfg *contract.Config, deps Deps, table *schema.Table, spec schema.StackSpec, source, path string) error {
	start := time.Now()
	chart, err := BuildStackedBarChart(table, spec)
	if err != nil {
		return err
	}
	runID := beginRun(deps.History, schema.RunInfo{
		Kind:      schema.StackChartKind,
		Title:     spec.Title,
		Source:    source,
		StartTime: start,
		Parameters: map[string]any{
			"category": spec.Category,
			"value":    spec.Value,
			"group":    spec.Group,
		},
	})
	result, err := deps.Renderer.RenderStackedBar(chart, path)
	if err != nil {
		return fmt.Errorf("render stacked bar chart: %w", err)
	}
	endRun(deps.History, runID, table.Len(), chart.Pivot.Rows(), result.Path)
	logRendered(cfg, schema.StackChartKind, result)
	if cfg.Quiet {
		return nil
	}
	return deps.Writer.WritePivot(spec.Title, chart.Pivot)
}

func renderPie(cfg *contract.Config, deps Deps, table *schema.Table, spec schema.PieSpec, source, path string) error {
	start := time.Now()
	chart, err := BuildPieChart(table, spec)
	if err != nil {
		return err
	}
	runID := beginRun(deps.History, schema.RunInfo{
		Kind:      schema.PieChartKind,
		Title:     spec.Title,
		Source:    source,
		StartTime: start,
		Parameters: map[string]any{
			"category": spec.Category,
			"value":    spec.Value,
		},
	})
	result, err := deps.Renderer.RenderPie(chart, path)
	if err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	endRun(deps.History, runID, table.Len(), len(chart.Slices), result.Path)
	logRendered(cfg, schema.PieChartKind, result)
	if cfg.Quiet {
		return nil
	}
	return deps.Writer.WritePie(chart)
}

func logRendered(cfg *contract.Config, kind schema.ChartKind, result schema.RenderResult) {
	if result.Placeholder {
		contract.LogInfo(cfg.Quiet, "⚠️  Nothing to plot, wrote empty %s chart to %s", kind, result.Path)
		return
	}
	contract.LogInfo(cfg.Quiet, "💾 Wrote %s chart to %s", kind, result.Path)
}
