// Package cmd defines the command-line interface for tabchart.
package cmd

import (
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(stackCmd)
	rootCmd.AddCommand(pieCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)
	historyCmd.AddCommand(historyExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("out", "", "Path of the chart image (default <out-dir>/<title>.png)")
	rootCmd.PersistentFlags().String("out-dir", contract.DefaultOutDir, "Directory for chart images")
	rootCmd.PersistentFlags().Float64("fig-width", schema.DefaultFigWidth, "Figure width in inches")
	rootCmd.PersistentFlags().Float64("fig-height", schema.DefaultFigHeight, "Figure height in inches")
	rootCmd.PersistentFlags().Float64("dpi", schema.DefaultDPI, "Pixels per inch of the chart image")
	rootCmd.PersistentFlags().StringArray("where", nil, "Keep rows where column=value (repeatable)")
	rootCmd.PersistentFlags().StringArray("numeric", nil, "Convert a column to numbers before aggregating (repeatable)")
	rootCmd.PersistentFlags().StringArray("date-format", nil, "Go time layout for date strings (repeatable)")
	rootCmd.PersistentFlags().String("delimiter", "", "CSV field delimiter (default from extension, 'tab' for tabs)")
	rootCmd.PersistentFlags().String("sheet", "", "Excel sheet name (default first sheet)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Aggregate output format: text or csv or json")
	rootCmd.PersistentFlags().String("data-out", "", "Optional path to write the printed aggregates to")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only write chart images")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("source-backend", "", "Read the source from a database: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for the source backend")
	rootCmd.PersistentFlags().String("query", "", "SQL query to run instead of reading the whole source table")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (default ~/.tabchart_history.db for sqlite)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Chart flags share keys across line, stack and pie, so they are bound to Viper
	// by chartSetupWrapper for the command that runs
	for _, c := range []*cobra.Command{lineCmd, stackCmd, pieCmd} {
		c.Flags().String("category", "", "Column that names each series or slice")
		c.Flags().String("value", "", "Numeric column to sum")
		c.Flags().String("title", "", "Chart title")
	}
	for _, c := range []*cobra.Command{lineCmd, stackCmd} {
		c.Flags().String("legend", "", "Legend title")
		c.Flags().String("ylabel", "", "Value axis label")
	}

	lineCmd.Flags().String("date-col", "", "Date column to bucket by period")
	lineCmd.Flags().String("period", string(schema.YearPeriod), "Date bucket: Year or Month")
	lineCmd.Flags().Float64("line-width", schema.DefaultLineWidth, "Line width in points")
	stackCmd.Flags().String("group", "", "Column that splits each bar into segments")
	stackCmd.Flags().String("xlabel", "", "Category axis label")

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("data-dir", contract.DefaultDataDir, "Directory holding the report datasets")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of runs to display")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}

	// Bind all flags of historyExportCmd to Viper
	historyExportCmd.Flags().String("export-file", "", "Parquet file to write run history to")
	if err := viper.BindPFlags(historyExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history export flags", err)
	}
}
