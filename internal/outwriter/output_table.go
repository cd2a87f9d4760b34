package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/tabchart/schema"
	"github.com/olekukonko/tablewriter"
)

// sampleWidth caps the example value shown per column.
const sampleWidth = 30

type columnInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Missing int    `json:"missing"`
	Sample  string `json:"sample"`
}

type tableInfo struct {
	Source  string       `json:"source"`
	Rows    int          `json:"rows"`
	Columns []columnInfo `json:"columns"`
}

func newTableInfo(source string, t *schema.Table) tableInfo {
	info := tableInfo{Source: source, Rows: t.Len(), Columns: make([]columnInfo, len(t.Columns))}
	for i, c := range t.Columns {
		info.Columns[i] = columnInfo{
			Name:    c.Name,
			Kind:    c.Kind.String(),
			Missing: c.Missing(),
			Sample:  firstValue(c),
		}
	}
	return info
}

// firstValue returns the first non-missing cell of c, formatted.
func firstValue(c *schema.Column) string {
	for _, v := range c.Cells {
		if v != nil {
			s := []rune(schema.FormatCell(v))
			if len(s) > sampleWidth {
				return string(s[:sampleWidth-3]) + "..."
			}
			return string(s)
		}
	}
	return ""
}

func writeTableInfoCSV(w io.Writer, t *schema.Table) error {
	header := []string{"column", "kind", "missing", "sample"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range newTableInfo("", t).Columns {
			if err := cw.Write([]string{c.Name, c.Kind, strconv.Itoa(c.Missing), c.Sample}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTableInfoTable prints one row per column with its inferred kind.
func (ow *OutWriter) writeTableInfoTable(source string, t *schema.Table) error {
	header, _, _ := ow.colorizers()
	info := newTableInfo(source, t)
	if _, err := fmt.Fprintf(ow.w, "%s (%d rows, %d columns)\n", header(source), info.Rows, len(info.Columns)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(ow.w)
	table.Header([]string{"Column", "Kind", "Missing", "Sample"})

	var data [][]string
	for _, c := range info.Columns {
		data = append(data, []string{c.Name, c.Kind, strconv.Itoa(c.Missing), c.Sample})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
