package cmd

import (
	"github.com/huangsam/tabchart/core"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/spf13/cobra"
)

// stackCmd renders one stacked bar per category.
var stackCmd = &cobra.Command{
	Use:   "stack <source>",
	Short: "Plot one bar per category, split into stacked groups.",
	Long: `Sum a numeric column per category and group, then draw one bar per category
with a stacked segment per group.

Bars share one value axis, so their heights compare directly. Groups a category
never saw contribute nothing to its bar.

Examples:
  # Diagnosed cases per age group, split by job type
  tabchart stack Data/MentalIllness_data.csv --where "Mental Illness (Diagnosed)=true" \
    --numeric "Mental Illness (Diagnosed)" --category "Age Group" \
    --value "Mental Illness (Diagnosed)" --group "Job Type"

  # Print the pivot as JSON only
  tabchart stack sales.csv --category Region --value Amount --group Product --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: chartSetupWrapper(schema.StackChartKind),
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChart(core.ExecuteStack); err != nil {
			contract.LogFatal("Cannot render stacked bar chart", err)
		}
	},
}
