package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/olekukonko/tablewriter"
)

// runTimeFormat is how run start times are printed.
const runTimeFormat = time.DateTime

func optionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func writeRunsCSV(w io.Writer, records []schema.RunRecord) error {
	header := []string{"run_id", "chart_kind", "title", "source", "start_time", "run_duration_ms", "rows_read", "categories", "output_path"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				strconv.FormatInt(r.RunID, 10),
				r.ChartKind,
				r.Title,
				r.Source,
				r.StartTime.Format(time.RFC3339),
				optionalInt(r.RunDurationMs),
				optionalInt(r.RowsRead),
				optionalInt(r.Categories),
				optionalString(r.OutputPath),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRunsTable prints recorded renders, newest first.
func (ow *OutWriter) writeRunsTable(records []schema.RunRecord) error {
	table := tablewriter.NewWriter(ow.w)
	table.Header([]string{"ID", "Kind", "Title", "Started", "Duration (ms)", "Rows", "Output"})

	pathWidth := getMaxLabelWidth(ow.width, 6)
	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.ChartKind,
			r.Title,
			r.StartTime.Local().Format(runTimeFormat),
			optionalInt(r.RunDurationMs),
			optionalInt(r.RowsRead),
			contract.TruncatePath(optionalString(r.OutputPath), pathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
