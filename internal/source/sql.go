package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// sqlQuery returns the configured query, or selects every row of the table
// named by source.
func sqlQuery(backend schema.DatabaseBackend, query, source string) string {
	if q := strings.TrimSpace(query); q != "" {
		return q
	}
	return "SELECT * FROM " + contract.QuoteIdent(source, backend)
}

// loadSQL runs query against the database and converts the result set to a table.
// Typed driver values keep their kind; text values are inferred like CSV cells.
func loadSQL(ctx context.Context, backend schema.DatabaseBackend, connStr, query string) (*schema.Table, error) {
	driver, err := contract.DriverName(backend)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s database: %w", backend, err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([][]any, len(names))
	dest := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range dest {
			values[i] = append(values[i], normalizeSQLValue(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	names = uniqueNames(names)
	cols := make([]*schema.Column, len(names))
	for i, name := range names {
		cols[i] = sqlColumn(name, values[i])
	}
	return schema.NewTable(cols...)
}

// normalizeSQLValue maps driver values onto the cell types a Column may hold.
func normalizeSQLValue(v any) any {
	switch x := v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return x
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int8:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return fmt.Sprint(x)
	}
}

// sqlColumn picks a kind for the scanned cells. Integer and float cells mix
// into a float column; text is inferred; any other mix falls back to strings.
func sqlColumn(name string, cells []any) *schema.Column {
	var ints, floats, bools, times, strs, total int
	for _, v := range cells {
		switch v.(type) {
		case nil:
			continue
		case int64:
			ints++
		case float64:
			floats++
		case bool:
			bools++
		case time.Time:
			times++
		case string:
			strs++
		}
		total++
	}

	col := &schema.Column{Name: name, Cells: cells}
	switch {
	case total == 0:
		col.Kind = schema.FloatKind
	case ints == total:
		col.Kind = schema.IntKind
	case ints+floats == total:
		col.Kind = schema.FloatKind
		for i, v := range cells {
			if n, ok := v.(int64); ok {
				cells[i] = float64(n)
			}
		}
	case bools == total:
		col.Kind = schema.BoolKind
	case times == total:
		col.Kind = schema.DateKind
	case strs == total:
		raw := make([]string, len(cells))
		for i, v := range cells {
			if s, ok := v.(string); ok {
				raw[i] = s
			}
		}
		return inferColumn(name, raw)
	default:
		col.Kind = schema.StringKind
		for i, v := range cells {
			if v != nil {
				cells[i] = schema.FormatCell(v)
			}
		}
	}
	return col
}
