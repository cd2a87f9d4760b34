package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/internal/history"
	"github.com/huangsam/tabchart/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// withHistoryStore opens the configured history store for the duration of fn.
func withHistoryStore(fn func(store contract.HistoryStore) error) error {
	store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the record of rendered charts",
	Long: `Manage the optional record of chart renders.

When a history backend is configured, every chart render stores:
- Chart kind, title and source
- Start time, end time and duration
- Rows read, categories plotted and output path
- The chart parameters as JSON

Only run metadata is kept; aggregates are never stored.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics
  list    - Show the most recent runs
  clear   - Remove all runs
  migrate - Run database schema migrations
  export  - Export runs to Parquet

Examples:
  # Record renders in the default SQLite file
  export TABCHART_HISTORY_BACKEND=sqlite
  tabchart report

  # Show the last 5 renders
  tabchart history list --limit 5`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the history backend, whether it is connected, the number of recorded
runs, the first and last run times, and table sizes.

Examples:
  tabchart history status --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withHistoryStore(func(store contract.HistoryStore) error {
			status, err := store.GetStatus()
			if err != nil {
				return err
			}
			history.PrintHistoryStatus(os.Stdout, status)
			return nil
		})
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
	},
}

// historyListCmd prints the most recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent chart renders",
	Long: `List recorded renders, newest first.

Respects --output, so the list can be exported as CSV or JSON.

Examples:
  tabchart history list
  tabchart history list --limit 50 --output csv --data-out runs.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withHistoryStore(func(store contract.HistoryStore) error {
			records, err := store.ListRuns(cfg.HistoryLimit)
			if err != nil {
				return err
			}
			file, err := contract.SelectOutputFile(cfg.DataOut)
			if err != nil {
				return fmt.Errorf("failed to open data output: %w", err)
			}
			defer closeOutput(file)
			return outwriter.NewOutWriter(cfg, file).WriteRuns(records)
		})
		if err != nil {
			contract.LogFatal("Failed to list history", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete every recorded render from the history store.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  tabchart history export --export-file backup.parquet
  tabchart history clear`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := withHistoryStore(func(store contract.HistoryStore) error { return store.Clear() }); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  tabchart history migrate --history-backend sqlite

  # Rollback to initial state
  tabchart history migrate --history-backend sqlite --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// historyExportCmd exports history data to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet",
	Long: `Write every recorded render to a Parquet file for DuckDB, pandas or BI tools.

Requires: --export-file parameter

Examples:
  tabchart history export --export-file runs.parquet
  duckdb -c "SELECT chart_kind, count(*) FROM read_parquet('runs.parquet') GROUP BY 1"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		path := viper.GetString("export-file")
		err := withHistoryStore(func(store contract.HistoryStore) error {
			n, err := core.ExecuteHistoryExport(store, path)
			if err != nil {
				return err
			}
			contract.LogInfo(cfg.Quiet, "💾 Exported %d runs to %s", n, path)
			return nil
		})
		if err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}
