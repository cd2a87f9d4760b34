package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type pieJSON struct {
	Title    string            `json:"title,omitempty"`
	Category string            `json:"category"`
	Value    string            `json:"value"`
	Total    float64           `json:"total"`
	Slices   []schema.PieSlice `json:"slices"`
}

func newPieJSON(chart schema.PieChart) pieJSON {
	slices := chart.Slices
	if slices == nil {
		slices = []schema.PieSlice{}
	}
	return pieJSON{
		Title:    chart.Spec.Title,
		Category: chart.Spec.Category,
		Value:    chart.Spec.Value,
		Total:    chart.Total,
		Slices:   slices,
	}
}

func writePieCSV(w io.Writer, chart schema.PieChart) error {
	header := []string{chart.Spec.Category, chart.Spec.Value, "percent"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range chart.Slices {
			if err := cw.Write([]string{s.Label, exactFloat(s.Value), exactFloat(s.Percent)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writePieTable prints one row per slice with its share, then the total.
func (ow *OutWriter) writePieTable(chart schema.PieChart) error {
	header, total, _ := ow.colorizers()
	fmtFloat, _ := createFormatters(defaultPrecision)

	if chart.Spec.Title != "" {
		if _, err := fmt.Fprintln(ow.w, header(chart.Spec.Title)); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(ow.w)
	table.Header([]string{chart.Spec.Category, chart.Spec.Value, "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxLabelWidth(ow.width, 2)
	var data [][]string
	for _, s := range chart.Slices {
		data = append(data, []string{
			contract.TruncatePath(s.Label, labelWidth),
			fmtFloat(s.Value),
			fmt.Sprintf("%1.1f%%", s.Percent),
		})
	}
	data = append(data, []string{total("Total"), total(fmtFloat(chart.Total)), ""})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
