package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the aggregate printed to stdout.
	OutputMode string

	// DatabaseBackend represents a SQL backend for sources and run history.
	DatabaseBackend string

	// Period is the time bucket used by the line chart ("quarter type").
	Period string

	// ChartKind names one of the three renderers.
	ChartKind string

	// SourceFormat names how a table is loaded.
	SourceFormat string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default for history
)

// All periods supported by the line chart.
const (
	YearPeriod  Period = "Year"
	MonthPeriod Period = "Month"
)

// All chart kinds.
const (
	LineChartKind  ChartKind = "line"
	StackChartKind ChartKind = "stack"
	PieChartKind   ChartKind = "pie"
)

// All source formats.
const (
	CSVSource     SourceFormat = "csv"
	ExcelSource   SourceFormat = "xlsx"
	ParquetSource SourceFormat = "parquet"
	SQLSource     SourceFormat = "sql"
)

// Derived column names added by DeriveDateParts.
const (
	YearColumn  = "Year"
	MonthColumn = "Month"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidPeriods lists all valid line chart periods.
var ValidPeriods = map[Period]struct{}{
	YearPeriod:  {},
	MonthPeriod: {},
}

// ValidDatabaseBackends lists all valid backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
