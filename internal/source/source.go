// Package source loads tabular datasets into schema tables.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
)

// Options selects how a source is read.
type Options struct {
	Backend   schema.DatabaseBackend // empty for files
	DBConnect string
	Query     string
	Delimiter rune // 0 picks from the file extension
	Sheet     string
}

// Loader implements contract.TableLoader for files and SQL databases.
type Loader struct {
	opts Options
}

var _ contract.TableLoader = &Loader{} // Compile-time check

// NewLoader creates a Loader from explicit options.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// NewLoaderFromConfig creates a Loader from the validated runtime config.
func NewLoaderFromConfig(cfg *contract.Config) *Loader {
	return NewLoader(Options{
		Backend:   cfg.SourceBackend,
		DBConnect: cfg.SourceDBConnect,
		Query:     cfg.Query,
		Delimiter: cfg.Delimiter,
		Sheet:     cfg.Sheet,
	})
}

// Load reads the named source. With a SQL backend the source is a table name
// used only when no query is configured.
func (l *Loader) Load(ctx context.Context, source string) (*schema.Table, error) {
	if l.opts.Backend != "" && l.opts.Backend != schema.NoneBackend {
		return loadSQL(ctx, l.opts.Backend, l.opts.DBConnect, sqlQuery(l.opts.Backend, l.opts.Query, source))
	}

	format, err := DetectFormat(source)
	if err != nil {
		return nil, err
	}
	switch format {
	case schema.ExcelSource:
		return loadExcel(source, l.opts.Sheet)
	case schema.ParquetSource:
		return loadParquet(source)
	default:
		delim := l.opts.Delimiter
		if delim == 0 {
			delim = defaultDelimiter(source)
		}
		return loadCSV(source, delim)
	}
}

// DetectFormat picks the reader for a file from its extension.
func DetectFormat(path string) (schema.SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return schema.CSVSource, nil
	case ".xlsx", ".xlsm":
		return schema.ExcelSource, nil
	case ".parquet":
		return schema.ParquetSource, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .csv, .tsv, .txt, .xlsx, .xlsm or .parquet)", schema.ErrUnsupportedSource, path)
	}
}

func defaultDelimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}
