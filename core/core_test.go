package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/internal/history"
	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	tables map[string]*schema.Table
}

func (f *fakeLoader) Load(_ context.Context, source string) (*schema.Table, error) {
	t, ok := f.tables[source]
	if !ok {
		return nil, errors.New("no such source")
	}
	return t, nil
}

type fakeRenderer struct {
	lines  []schema.LineChart
	stacks []schema.StackedBarChart
	pies   []schema.PieChart
	paths  []string
}

func (f *fakeRenderer) RenderLine(c schema.LineChart, path string) (schema.RenderResult, error) {
	f.lines = append(f.lines, c)
	f.paths = append(f.paths, path)
	return schema.RenderResult{Path: path, Placeholder: c.Pivot.Rows() == 0}, nil
}

func (f *fakeRenderer) RenderStackedBar(c schema.StackedBarChart, path string) (schema.RenderResult, error) {
	f.stacks = append(f.stacks, c)
	f.paths = append(f.paths, path)
	return schema.RenderResult{Path: path}, nil
}

func (f *fakeRenderer) RenderPie(c schema.PieChart, path string) (schema.RenderResult, error) {
	f.pies = append(f.pies, c)
	f.paths = append(f.paths, path)
	return schema.RenderResult{Path: path, Placeholder: c.Total == 0}, nil
}

type fakeWriter struct {
	pivots []string
	pies   int
	infos  int
}

func (f *fakeWriter) WritePivot(title string, _ *schema.Pivot) error {
	f.pivots = append(f.pivots, title)
	return nil
}

func (f *fakeWriter) WritePie(schema.PieChart) error {
	f.pies++
	return nil
}

func (f *fakeWriter) WriteTableInfo(string, *schema.Table) error {
	f.infos++
	return nil
}

func testConfig(t *testing.T) *contract.Config {
	cfg := &contract.Config{}
	require.NoError(t, contract.ProcessAndValidate(cfg, &contract.ConfigRawInput{
		SourceStr: "stocks.csv",
		OutDir:    t.TempDir(),
		Output:    "text",
		Color:     "no",
		Quiet:     true,
		DateCol:   "Date",
		Category:  "Company",
		Value:     "Volume",
		Title:     "Volume by year",
	}))
	return cfg
}

// TestExecuteLine tests the line chart entry point end to end with fakes.
func TestExecuteLine(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Quiet = false

	loader := &fakeLoader{tables: map[string]*schema.Table{"stocks.csv": stockTable(t)}}
	renderer := &fakeRenderer{}
	writer := &fakeWriter{}

	err := ExecuteLine(ctx, cfg, Deps{Loader: loader, Renderer: renderer, Writer: writer})
	require.NoError(t, err)

	require.Len(t, renderer.lines, 1)
	assert.Equal(t, []any{"A", "B"}, renderer.lines[0].Pivot.ColKeys)
	assert.Equal(t, filepath.Join(cfg.OutDir, "volume_by_year.png"), renderer.paths[0])
	assert.Equal(t, []string{"Volume by year"}, writer.pivots)
}

// TestExecuteLineLoadError tests that loader failures surface with context.
func TestExecuteLineLoadError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = "missing.csv"
	err := ExecuteLine(context.Background(), cfg, Deps{Loader: &fakeLoader{}, Renderer: &fakeRenderer{}, Writer: &fakeWriter{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

// TestExecuteStackWithFilter tests that --where filters run before aggregation.
func TestExecuteStackWithFilter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = "mi.csv"
	cfg.OutPath = filepath.Join(t.TempDir(), "custom.png")
	cfg.Where = []contract.Condition{{Column: DiagnosedColumn, Value: "yes"}}
	cfg.Stack = schema.StackSpec{Category: "Age Group", Value: DiagnosedColumn, Group: "Job Type"}

	renderer := &fakeRenderer{}
	writer := &fakeWriter{}
	loader := &fakeLoader{tables: map[string]*schema.Table{"mi.csv": genderTable(t)}}

	require.NoError(t, ExecuteStack(context.Background(), cfg, Deps{Loader: loader, Renderer: renderer, Writer: writer}))
	require.Len(t, renderer.stacks, 1)
	assert.Equal(t, 3.0, renderer.stacks[0].Pivot.Total())
	assert.Equal(t, cfg.OutPath, renderer.paths[0])
	assert.Empty(t, writer.pivots, "quiet skips the aggregate")
}

// TestExecutePieRecordsHistory tests that renders are recorded in the history store.
func TestExecutePieRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = "mi.csv"
	cfg.Pie = schema.PieSpec{Category: "Gender", Value: DiagnosedColumn, Title: "By gender"}

	store := &history.MockHistoryStore{}
	store.On("BeginRun", mock.MatchedBy(func(info schema.RunInfo) bool {
		return info.Kind == schema.PieChartKind && info.Source == "mi.csv"
	})).Return(int64(7), nil)
	store.On("EndRun", int64(7), mock.MatchedBy(func(o schema.RunOutcome) bool {
		return o.RowsRead == 4 && o.Categories == 2
	})).Return(nil)

	loader := &fakeLoader{tables: map[string]*schema.Table{"mi.csv": genderTable(t)}}
	deps := Deps{Loader: loader, Renderer: &fakeRenderer{}, Writer: &fakeWriter{}, History: store}

	require.NoError(t, ExecutePie(context.Background(), cfg, deps))
	store.AssertExpectations(t)
}

// TestExecutePieHistoryFailureIsNotFatal tests that a broken history store only warns.
func TestExecutePieHistoryFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source = "mi.csv"
	cfg.Pie = schema.PieSpec{Category: "Gender", Value: DiagnosedColumn}

	store := &history.MockHistoryStore{}
	store.On("BeginRun", mock.Anything).Return(int64(0), errors.New("db down"))

	renderer := &fakeRenderer{}
	loader := &fakeLoader{tables: map[string]*schema.Table{"mi.csv": genderTable(t)}}
	require.NoError(t, ExecutePie(context.Background(), cfg, Deps{Loader: loader, Renderer: renderer, Writer: &fakeWriter{}, History: store}))
	assert.Len(t, renderer.pies, 1)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything)
}

// TestExecuteInspect tests the inspect entry point.
func TestExecuteInspect(t *testing.T) {
	cfg := testConfig(t)
	writer := &fakeWriter{}
	loader := &fakeLoader{tables: map[string]*schema.Table{"stocks.csv": stockTable(t)}}
	require.NoError(t, ExecuteInspect(context.Background(), cfg, Deps{Loader: loader, Writer: writer}))
	assert.Equal(t, 1, writer.infos)
}

// TestExecutorFuncs tests that every executor satisfies ExecutorFunc.
func TestExecutorFuncs(t *testing.T) {
	for _, fn := range []ExecutorFunc{ExecuteLine, ExecuteStack, ExecutePie, ExecuteReport, ExecuteInspect} {
		assert.NotNil(t, fn)
	}
}
