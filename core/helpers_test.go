package core

import (
	"testing"
	"time"

	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/require"
)

func strCol(name string, vals ...any) *schema.Column {
	return &schema.Column{Name: name, Kind: schema.StringKind, Cells: vals}
}

func floatCol(name string, vals ...any) *schema.Column {
	for i, v := range vals {
		if n, ok := v.(int); ok {
			vals[i] = float64(n)
		}
	}
	return &schema.Column{Name: name, Kind: schema.FloatKind, Cells: vals}
}

func boolCol(name string, vals ...any) *schema.Column {
	return &schema.Column{Name: name, Kind: schema.BoolKind, Cells: vals}
}

func mustTable(t *testing.T, cols ...*schema.Column) *schema.Table {
	t.Helper()
	tbl, err := schema.NewTable(cols...)
	require.NoError(t, err)
	return tbl
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stockTable has Company A in 2020 only and Company B in 2021 only.
func stockTable(t *testing.T) *schema.Table {
	return mustTable(t,
		strCol("Date", "2020-01-01", "2020-06-01", "2021-03-01"),
		strCol("Company", "A", "A", "B"),
		floatCol("Volume", 100, 50, 200),
	)
}

// genderTable has two diagnosed F rows and one diagnosed M row.
func genderTable(t *testing.T) *schema.Table {
	return mustTable(t,
		strCol("Gender", "F", "M", "F", "M"),
		strCol("Job Type", "IT", "IT", "Sales", "Sales"),
		strCol("Age Group", "18-25", "18-25", "26-35", "26-35"),
		boolCol("Mental Illness (Diagnosed)", true, true, true, false),
	)
}
