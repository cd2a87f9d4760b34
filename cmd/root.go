package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/internal/history"
	"github.com/huangsam/tabchart/internal/outwriter"
	"github.com/huangsam/tabchart/internal/render"
	"github.com/huangsam/tabchart/internal/source"
	"github.com/huangsam/tabchart/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "tabchart",
	Short:              "Turn tabular data into line, stacked bar and pie charts.",
	Long:               `Tabchart reads CSV, Excel, Parquet or SQL tables, aggregates them and writes PNG charts.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".tabchart") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("TABCHART")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("out-dir", contract.DefaultOutDir)
	viper.SetDefault("fig-width", schema.DefaultFigWidth)
	viper.SetDefault("fig-height", schema.DefaultFigHeight)
	viper.SetDefault("dpi", schema.DefaultDPI)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("period", schema.YearPeriod)
	viper.SetDefault("line-width", schema.DefaultLineWidth)
	viper.SetDefault("data-dir", contract.DefaultDataDir)
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("limit", contract.DefaultHistoryLimit)
	viper.SetDefault("color", "yes")
}

// readConfigFile merges the config file into Viper. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.SourceStr = ""
	if len(args) == 1 {
		input.SourceStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
		cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
	}
	color.NoColor = !cfg.UseColors
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// chartSetupWrapper binds the running chart command's flags, runs sharedSetup and
// checks the columns the chart needs.
func chartSetupWrapper(kind schema.ChartKind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("failed to bind %s flags: %w", cmd.Name(), err)
		}
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		return cfg.RequireChartFields(kind)
	}
}

// runChart wires the loader, renderer, writer and history store, then runs fn.
func runChart(fn core.ExecutorFunc) error {
	file, err := contract.SelectOutputFile(cfg.DataOut)
	if err != nil {
		return fmt.Errorf("failed to open data output: %w", err)
	}
	defer closeOutput(file)

	store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		// History never blocks a render
		contract.LogWarn("History disabled", err)
		store = nil
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	deps := core.Deps{
		Loader:   source.NewLoaderFromConfig(cfg),
		Renderer: render.NewRenderer(),
		Writer:   outwriter.NewOutWriter(cfg, file),
		History:  store,
	}
	if err := fn(rootCtx, cfg, deps); err != nil {
		return err
	}
	if cfg.DataOut != "" {
		contract.LogInfo(cfg.Quiet, "💾 Wrote %s output to %s", cfg.Output, cfg.DataOut)
	}
	return nil
}

// closeOutput closes file unless it is stdout.
func closeOutput(file *os.File) {
	if file != os.Stdout {
		_ = file.Close()
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
