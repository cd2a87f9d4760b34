package core

import (
	"context"
	"fmt"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
)

// Columns and captions of the fixed report.
const (
	DiagnosedColumn = "Mental Illness (Diagnosed)"

	StockVolumeTitle   = "Stock Trade Volume by year"
	CasesByAgeTitle    = "Cases Diagnosed/Age Group with Job Type"
	CasesByGenderTitle = "Mental Illness Cases by Gender"
)

// ReportSpecs returns the three chart specs of the report, sized by fig.
func ReportSpecs(fig schema.Figure) (schema.LineSpec, schema.StackSpec, schema.PieSpec) {
	line := schema.LineSpec{
		DateColumn: "Date",
		Period:     schema.YearPeriod,
		Category:   "Company",
		Value:      "Volume",
		Legend:     "Company",
		YLabel:     "Volume in e^10",
		Title:      StockVolumeTitle,
		LineWidth:  schema.DefaultLineWidth,
		Figure:     fig,
	}
	stack := schema.StackSpec{
		Category: "Age Group",
		Value:    DiagnosedColumn,
		Group:    "Job Type",
		Title:    CasesByAgeTitle,
		Legend:   "Job Type",
		XLabel:   "Age Groups",
		YLabel:   "Number of Cases",
		Figure:   fig,
	}
	pie := schema.PieSpec{
		Category: "Gender",
		Value:    DiagnosedColumn,
		Title:    CasesByGenderTitle,
		Figure:   fig,
	}
	return line, stack, pie
}

// ExecuteReport renders the stock volume line chart and the two diagnosis charts
// from the report data directory. Both datasets are loaded before any chart is
// written, so a missing input leaves no partial report behind.
func ExecuteReport(ctx context.Context, cfg *contract.Config, deps Deps) error {
	lineSpec, stackSpec, pieSpec := ReportSpecs(cfg.Figure)
	lineSpec.DateLayouts = cfg.DateFormats

	illnessPath := cfg.Report.MentalIllnessPath()
	illness, err := deps.Loader.Load(ctx, illnessPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", illnessPath, err)
	}
	diagnosed, err := DiagnosedOnly(illness)
	if err != nil {
		return err
	}

	stocksPath := cfg.Report.StocksPath()
	stocks, err := deps.Loader.Load(ctx, stocksPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", stocksPath, err)
	}

	if err := renderLine(cfg, deps, stocks, lineSpec, stocksPath, contract.ChartPath("", cfg.OutDir, lineSpec.Title)); err != nil {
		return err
	}
	if err := renderStack(cfg, deps, diagnosed, stackSpec, illnessPath, contract.ChartPath("", cfg.OutDir, stackSpec.Title)); err != nil {
		return err
	}
	return renderPie(cfg, deps, diagnosed, pieSpec, illnessPath, contract.ChartPath("", cfg.OutDir, pieSpec.Title))
}

// DiagnosedOnly keeps the diagnosed rows and turns the diagnosis flag into a count.
func DiagnosedOnly(t *schema.Table) (*schema.Table, error) {
	return PrepareTable(t, []contract.Condition{{Column: DiagnosedColumn, Value: "true"}}, []string{DiagnosedColumn})
}
