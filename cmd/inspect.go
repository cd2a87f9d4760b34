package cmd

import (
	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/spf13/cobra"
)

// inspectCmd prints what the loader inferred about a source.
var inspectCmd = &cobra.Command{
	Use:   "inspect <source>",
	Short: "Show the columns and inferred kinds of a source.",
	Long: `Load a source the same way the chart commands do and print each column's
inferred kind, missing-cell count and first value.

Use this to pick column names for --category, --value and --date-col, and to check
whether a column needs --numeric before it can be summed.

Examples:
  tabchart inspect Data/MentalIllness_data.csv
  tabchart inspect report.xlsx --sheet Summary --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChart(core.ExecuteInspect); err != nil {
			contract.LogFatal("Cannot inspect source", err)
		}
	},
}
