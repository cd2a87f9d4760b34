package cmd

import (
	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd renders the fixed three-chart report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the stock volume and mental illness charts.",
	Long: `Render the three report charts from the datasets in --data-dir:

- Stock Trade Volume by year (line) from Tech_stocks.csv
- Cases Diagnosed/Age Group with Job Type (stacked bar) from MentalIllness_data.csv
- Mental Illness Cases by Gender (pie) from MentalIllness_data.csv

Only diagnosed rows are counted in the two illness charts. File names can be
changed with report.stocks-file and report.mental-illness-file in the config file.

Examples:
  # Render into the current directory
  tabchart report

  # Read from another folder and write into charts/
  tabchart report --data-dir ./datasets --out-dir charts`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChart(core.ExecuteReport); err != nil {
			contract.LogFatal("Cannot render report", err)
		}
	},
}
