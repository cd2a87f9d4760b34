package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/tabchart/schema"
	"github.com/parquet-go/parquet-go"
)

// parquetBatch is the number of rows read per ReadRows call.
const parquetBatch = 256

// parquetColumn maps one flat leaf column of the file to a table column.
type parquetColumn struct {
	index int // leaf index in the file
	pos   int // position in the table
	col   *schema.Column
	conv  func(parquet.Value) any
}

// loadParquet reads a flat Parquet file. Nested and repeated columns are rejected.
func loadParquet(path string) (*schema.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	cols, err := parquetColumns(pf.Schema())
	if err != nil {
		return nil, err
	}
	byIndex := make(map[int]*parquetColumn, len(cols))
	for _, c := range cols {
		byIndex[c.index] = c
	}

	reader := parquet.NewReader(pf)
	defer func() { _ = reader.Close() }()

	rows := make([]parquet.Row, parquetBatch)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			cells := make([]any, len(cols))
			for _, v := range row {
				c, ok := byIndex[v.Column()]
				if !ok || v.IsNull() {
					continue
				}
				cells[c.pos] = c.conv(v)
			}
			for i, c := range cols {
				c.col.Cells = append(c.col.Cells, cells[i])
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	out := make([]*schema.Column, len(cols))
	for i, c := range cols {
		out[i] = c.col
	}
	return schema.NewTable(out...)
}

func parquetColumns(s *parquet.Schema) ([]*parquetColumn, error) {
	var cols []*parquetColumn
	for _, path := range s.Columns() {
		leaf, ok := s.Lookup(path...)
		if !ok {
			continue
		}
		name := strings.Join(path, ".")
		if leaf.MaxRepetitionLevel > 0 {
			return nil, fmt.Errorf("%w: repeated parquet column %q", schema.ErrUnsupportedSource, name)
		}
		kind, conv, err := parquetConverter(leaf.Node.Type())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		cols = append(cols, &parquetColumn{
			index: leaf.ColumnIndex,
			pos:   len(cols),
			col:   &schema.Column{Name: name, Kind: kind},
			conv:  conv,
		})
	}
	return cols, nil
}

// parquetConverter picks the column kind and cell conversion for a physical
// type and its logical annotation.
func parquetConverter(t parquet.Type) (schema.ColumnKind, func(parquet.Value) any, error) {
	lt := t.LogicalType()
	switch {
	case lt != nil && lt.Date != nil:
		return schema.DateKind, func(v parquet.Value) any {
			return time.Unix(int64(v.Int32())*86400, 0).UTC()
		}, nil
	case lt != nil && lt.Timestamp != nil:
		unit := lt.Timestamp.Unit
		return schema.DateKind, func(v parquet.Value) any {
			n := v.Int64()
			switch {
			case unit.Millis != nil:
				return time.UnixMilli(n).UTC()
			case unit.Micros != nil:
				return time.UnixMicro(n).UTC()
			default:
				return time.Unix(0, n).UTC()
			}
		}, nil
	}

	switch t.Kind() {
	case parquet.Boolean:
		return schema.BoolKind, func(v parquet.Value) any { return v.Boolean() }, nil
	case parquet.Int32:
		return schema.IntKind, func(v parquet.Value) any { return int64(v.Int32()) }, nil
	case parquet.Int64:
		return schema.IntKind, func(v parquet.Value) any { return v.Int64() }, nil
	case parquet.Float:
		return schema.FloatKind, func(v parquet.Value) any { return float64(v.Float()) }, nil
	case parquet.Double:
		return schema.FloatKind, func(v parquet.Value) any { return v.Double() }, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return schema.StringKind, func(v parquet.Value) any { return string(v.ByteArray()) }, nil
	default:
		return 0, nil, fmt.Errorf("%w: parquet type %s", schema.ErrUnsupportedSource, t)
	}
}
