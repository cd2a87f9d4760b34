package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/tabchart/internal/history"
	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteHistoryExport(t *testing.T) {
	store := &history.MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true, TotalRuns: 2}, nil)
	store.On("ListRuns", 2).Return([]schema.RunRecord{
		{RunID: 2, ChartKind: "pie", Title: "b", Source: "b.csv", StartTime: time.Now()},
		{RunID: 1, ChartKind: "line", Title: "a", Source: "a.csv", StartTime: time.Now()},
	}, nil)

	path := filepath.Join(t.TempDir(), "runs.parquet")
	n, err := ExecuteHistoryExport(store, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	store.AssertExpectations(t)
}

func TestExecuteHistoryExport_Empty(t *testing.T) {
	store := &history.MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)

	n, err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "runs.parquet"))
	require.NoError(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "ListRuns", 0)
}

func TestExecuteHistoryExport_Errors(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		_, err := ExecuteHistoryExport(&history.MockHistoryStore{}, "")
		require.Error(t, err)
	})

	t.Run("disabled backend", func(t *testing.T) {
		store := &history.MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{Backend: "none"}, nil)
		_, err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "runs.parquet"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "none")
	})

	t.Run("status failure", func(t *testing.T) {
		store := &history.MockHistoryStore{}
		store.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("db down"))
		_, err := ExecuteHistoryExport(store, filepath.Join(t.TempDir(), "runs.parquet"))
		require.ErrorContains(t, err, "db down")
	})
}
