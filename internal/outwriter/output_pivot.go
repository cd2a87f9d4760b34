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

// missingCell marks undefined pivot cells in text tables.
const missingCell = "-"

// pivotJSON is the JSON shape of a pivot. Values are null where undefined.
type pivotJSON struct {
	Title   string         `json:"title,omitempty"`
	Index   string         `json:"index"`
	Columns string         `json:"columns"`
	Value   string         `json:"value"`
	Keys    []string       `json:"column_keys"`
	Rows    []pivotRowJSON `json:"rows"`
	Total   float64        `json:"total"`
}

type pivotRowJSON struct {
	Key    string     `json:"key"`
	Values []*float64 `json:"values"`
}

func newPivotJSON(title string, p *schema.Pivot) pivotJSON {
	out := pivotJSON{
		Title:   title,
		Index:   p.Index,
		Columns: p.Columns,
		Value:   p.Value,
		Keys:    keyStrings(p.ColKeys),
		Rows:    make([]pivotRowJSON, p.Rows()),
		Total:   p.Total(),
	}
	for r := range p.Rows() {
		row := pivotRowJSON{Key: schema.FormatCell(p.RowKeys[r]), Values: make([]*float64, p.Cols())}
		for c := range p.Cols() {
			if v, ok := p.At(r, c); ok {
				row.Values[c] = &v
			}
		}
		out.Rows[r] = row
	}
	return out
}

func keyStrings(keys []any) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = schema.FormatCell(k)
	}
	return out
}

// writePivotCSV writes the pivot in wide form: one row per index key.
func writePivotCSV(w io.Writer, p *schema.Pivot) error {
	header := append([]string{p.Index}, keyStrings(p.ColKeys)...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for r := range p.Rows() {
			row := make([]string, 0, p.Cols()+1)
			row = append(row, schema.FormatCell(p.RowKeys[r]))
			for c := range p.Cols() {
				row = append(row, cellString(p, r, c))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writePivotTable prints the pivot with row totals and a totals row.
func (ow *OutWriter) writePivotTable(title string, p *schema.Pivot) error {
	header, total, missing := ow.colorizers()
	fmtFloat, _ := createFormatters(defaultPrecision)

	if title != "" {
		if _, err := fmt.Fprintln(ow.w, header(title)); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(ow.w)
	headers := append([]string{p.Index}, keyStrings(p.ColKeys)...)
	headers = append(headers, "Total")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxLabelWidth(ow.width, p.Cols()+1)
	colTotals := make([]float64, p.Cols())
	var data [][]string
	for r := range p.Rows() {
		row := []string{contract.TruncatePath(schema.FormatCell(p.RowKeys[r]), labelWidth)}
		for c := range p.Cols() {
			v, ok := p.At(r, c)
			if !ok {
				row = append(row, missing(missingCell))
				continue
			}
			colTotals[c] += v
			row = append(row, fmtFloat(v))
		}
		row = append(row, total(fmtFloat(p.RowTotal(r))))
		data = append(data, row)
	}

	totals := []string{total("Total")}
	for _, v := range colTotals {
		totals = append(totals, total(fmtFloat(v)))
	}
	totals = append(totals, total(fmtFloat(p.Total())))
	data = append(data, totals)

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
