package cmd

import (
	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/spf13/cobra"
)

// pieCmd renders each category's share of the total.
var pieCmd = &cobra.Command{
	Use:   "pie <source>",
	Short: "Plot each category's share of a summed column.",
	Long: `Sum a numeric column per category and draw a pie with one slice per category,
labelled with its percentage of the total.

Examples:
  # Diagnosed cases by gender
  tabchart pie Data/MentalIllness_data.csv --where "Mental Illness (Diagnosed)=true" \
    --numeric "Mental Illness (Diagnosed)" --category Gender --value "Mental Illness (Diagnosed)"

  # Write the chart to an explicit path
  tabchart pie sales.parquet --category Region --value Amount --out charts/regions.png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: chartSetupWrapper(schema.PieChartKind),
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChart(core.ExecutePie); err != nil {
			contract.LogFatal("Cannot render pie chart", err)
		}
	},
}
