package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSpecs(t *testing.T) {
	fig := schema.Figure{Width: 12, Height: 6, DPI: 100}
	line, stack, pie := ReportSpecs(fig)

	assert.Equal(t, "Date", line.DateColumn)
	assert.Equal(t, schema.YearPeriod, line.Period)
	assert.Equal(t, "Company", line.Category)
	assert.Equal(t, "Volume", line.Value)
	assert.Equal(t, "Company", line.Legend)
	assert.Equal(t, "Volume in e^10", line.YLabel)
	assert.Equal(t, "Stock Trade Volume by year", line.Title)
	assert.Equal(t, 3.0, line.LineWidth)

	assert.Equal(t, "Age Group", stack.Category)
	assert.Equal(t, "Mental Illness (Diagnosed)", stack.Value)
	assert.Equal(t, "Job Type", stack.Group)
	assert.Equal(t, "Cases Diagnosed/Age Group with Job Type", stack.Title)
	assert.Equal(t, "Job Type", stack.Legend)
	assert.Equal(t, "Age Groups", stack.XLabel)
	assert.Equal(t, "Number of Cases", stack.YLabel)

	assert.Equal(t, "Gender", pie.Category)
	assert.Equal(t, "Mental Illness (Diagnosed)", pie.Value)
	assert.Equal(t, "Mental Illness Cases by Gender", pie.Title)
	assert.Equal(t, fig, pie.Figure)
}

func TestExecuteReport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.DataDir = "Data"

	loader := &fakeLoader{tables: map[string]*schema.Table{
		filepath.Join("Data", "Tech_stocks.csv"):        stockTable(t),
		filepath.Join("Data", "MentalIllness_data.csv"): genderTable(t),
	}}
	renderer := &fakeRenderer{}

	require.NoError(t, ExecuteReport(context.Background(), cfg, Deps{Loader: loader, Renderer: renderer, Writer: &fakeWriter{}}))

	require.Len(t, renderer.lines, 1)
	require.Len(t, renderer.stacks, 1)
	require.Len(t, renderer.pies, 1)
	assert.Equal(t, 350.0, renderer.lines[0].Pivot.Total())
	assert.Equal(t, 3.0, renderer.stacks[0].Pivot.Total())
	assert.Equal(t, "F 66.7%", renderer.pies[0].Slices[0].Caption())
	assert.Equal(t, []string{
		filepath.Join(cfg.OutDir, "stock_trade_volume_by_year.png"),
		filepath.Join(cfg.OutDir, "cases_diagnosed_age_group_with_job_type.png"),
		filepath.Join(cfg.OutDir, "mental_illness_cases_by_gender.png"),
	}, renderer.paths)
}

func TestExecuteReport_MissingInputRendersNothing(t *testing.T) {
	for _, present := range []string{"Tech_stocks.csv", "MentalIllness_data.csv"} {
		t.Run("only "+present, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Report.DataDir = "Data"
			table := stockTable(t)
			if present == "MentalIllness_data.csv" {
				table = genderTable(t)
			}
			loader := &fakeLoader{tables: map[string]*schema.Table{filepath.Join("Data", present): table}}
			renderer := &fakeRenderer{}

			err := ExecuteReport(context.Background(), cfg, Deps{Loader: loader, Renderer: renderer, Writer: &fakeWriter{}})
			require.Error(t, err)
			assert.Empty(t, renderer.paths)
		})
	}
}

func TestDiagnosedOnly(t *testing.T) {
	out, err := DiagnosedOnly(genderTable(t))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())

	_, err = DiagnosedOnly(stockTable(t))
	assert.ErrorIs(t, err, schema.ErrMissingColumn)

	encoded := mustTable(t,
		strCol("Gender", "F", "M", "F"),
		floatCol(DiagnosedColumn, 1, 0, 1),
	)
	out, err = DiagnosedOnly(encoded)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
}
