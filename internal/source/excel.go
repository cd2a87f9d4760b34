package source

import (
	"fmt"
	"slices"

	"github.com/huangsam/tabchart/schema"
	"github.com/xuri/excelize/v2"
)

// loadExcel reads one worksheet of a workbook. The first sheet is used when
// sheet is empty; the first row is the header.
func loadExcel(path, sheet string) (*schema.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q not found in %q (have %v)", sheet, path, sheets)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &schema.Table{}, nil
	}
	return tableFromRecords(rows[0], rows[1:])
}
