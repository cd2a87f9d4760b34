package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Stock Trade Volume by year", "stock_trade_volume_by_year"},
		{"Cases Diagnosed/Age Group with Job Type", "cases_diagnosed_age_group_with_job_type"},
		{"  Mental Illness Cases by Gender!  ", "mental_illness_cases_by_gender"},
		{"", "chart"},
		{"%%%", "chart"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestChartPath(t *testing.T) {
	assert.Equal(t, "custom.png", ChartPath("custom.png", "charts", "Ignored"))
	assert.Equal(t, filepath.Join("charts", "my_chart.png"), ChartPath("", "charts", "My Chart"))
	assert.Equal(t, filepath.Join(".", "chart.png"), ChartPath("", "", ""))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.FileExists(t, path)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".tabchart_history.db"))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short", TruncatePath("short", 10))
	assert.Equal(t, "...ng/path.csv", TruncatePath("a/very/long/path.csv", 14))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", " true "} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
