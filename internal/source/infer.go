package source

import (
	"strconv"
	"strings"

	"github.com/huangsam/tabchart/schema"
)

// missingTokens are the cell texts read as missing values, matching the
// default NA markers of common dataframe readers.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isMissing(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

// inferColumn types a column of text cells. A column is Float when every
// present cell parses as a number, Bool when every present cell is true or
// false, and String otherwise. Empty cells and NA markers are missing. A
// column with no values at all is Float.
func inferColumn(name string, raw []string) *schema.Column {
	allFloat, allBool, seen := true, true, false
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if isMissing(s) {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allFloat = false
		}
		if _, ok := parseBool(s); !ok {
			allBool = false
		}
		if !allFloat && !allBool {
			break
		}
	}

	kind := schema.StringKind
	switch {
	case !seen || allFloat:
		kind = schema.FloatKind
	case allBool:
		kind = schema.BoolKind
	}

	cells := make([]any, len(raw))
	for i, s := range raw {
		trimmed := strings.TrimSpace(s)
		if isMissing(trimmed) {
			continue
		}
		switch kind {
		case schema.FloatKind:
			cells[i], _ = strconv.ParseFloat(trimmed, 64)
		case schema.BoolKind:
			cells[i], _ = parseBool(trimmed)
		default:
			cells[i] = s
		}
	}
	return &schema.Column{Name: name, Kind: kind, Cells: cells}
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// uniqueNames suffixes repeated header names with .1, .2 and so on, and names
// blank headers by position.
func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]struct{}, len(header))
	for i, h := range header {
		base := strings.TrimSpace(h)
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		name := base
		for n := 1; ; n++ {
			if _, dup := used[name]; !dup {
				break
			}
			name = base + "." + strconv.Itoa(n)
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}

// tableFromRecords builds a table from a header and string records, padding
// short rows with empty cells.
func tableFromRecords(header []string, records [][]string) (*schema.Table, error) {
	names := uniqueNames(header)
	cols := make([]*schema.Column, len(names))
	for c, name := range names {
		raw := make([]string, len(records))
		for r, rec := range records {
			if c < len(rec) {
				raw[r] = rec[c]
			}
		}
		cols[c] = inferColumn(name, raw)
	}
	return schema.NewTable(cols...)
}
