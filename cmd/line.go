package cmd

import (
	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/spf13/cobra"
)

// lineCmd renders one line per category over date periods.
var lineCmd = &cobra.Command{
	Use:   "line <source>",
	Short: "Plot summed values over years or months, one line per category.",
	Long: `Bucket a date column by Year or Month, sum a numeric column per period and
category, and draw one line per category.

Periods where a category has no rows are left as gaps. The printed pivot has one
row per period and one column per category.

Examples:
  # Yearly trade volume per company
  tabchart line Data/Tech_stocks.csv --date-col Date --category Company --value Volume

  # Monthly totals, regardless of year
  tabchart line sales.xlsx --date-col Day --period Month --category Region --value Amount

  # Read from SQLite and export the pivot as CSV
  tabchart line trades --source-backend sqlite --source-db-connect trades.db \
    --date-col Date --category Company --value Volume --output csv --data-out volume.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: chartSetupWrapper(schema.LineChartKind),
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChart(core.ExecuteLine); err != nil {
			contract.LogFatal("Cannot render line chart", err)
		}
	},
}
