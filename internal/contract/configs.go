package contract

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/tabchart/schema"
)

// Default values for configuration.
const (
	DefaultOutDir  = "."
	DefaultDataDir = "Data"

	DefaultMentalIllnessFile = "MentalIllness_data.csv"
	DefaultStocksFile        = "Tech_stocks.csv"
	DefaultHistoryLimit      = 20
)

// Condition is an equality filter applied to the source before aggregation.
type Condition struct {
	Column string
	Value  string
}

// ReportConfig holds the inputs of the fixed report command.
type ReportConfig struct {
	DataDir           string
	MentalIllnessFile string
	StocksFile        string
}

// MentalIllnessPath returns the joined path of the diagnosis dataset.
func (r ReportConfig) MentalIllnessPath() string {
	return filepath.Join(r.DataDir, r.MentalIllnessFile)
}

// StocksPath returns the joined path of the stock dataset.
func (r ReportConfig) StocksPath() string {
	return filepath.Join(r.DataDir, r.StocksFile)
}

// Config holds the runtime configuration for a chart render.
// This struct remains the "final, validated" config.
type Config struct {
	Source          string
	SourceBackend   schema.DatabaseBackend // empty for file sources
	SourceDBConnect string                 // Please use env var as this is plaintext
	Query           string
	Delimiter       rune // 0 picks from the file extension
	Sheet           string
	DateFormats     []string
	Where           []Condition
	Numeric         []string

	OutPath string // explicit image path, overrides OutDir
	OutDir  string
	Figure  schema.Figure

	Output    schema.OutputMode
	DataOut   string // file for printed aggregates; empty means stdout
	Quiet     bool
	Width     int // Terminal width override (0 = auto-detect)
	UseColors bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	HistoryLimit     int

	Line   schema.LineSpec
	Stack  schema.StackSpec
	Pie    schema.PieSpec
	Report ReportConfig
}

// ReportRawInput holds report file overrides from the YAML config file.
type ReportRawInput struct {
	MentalIllnessFile string `mapstructure:"mental-illness-file"`
	StocksFile        string `mapstructure:"stocks-file"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourceStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Out              string   `mapstructure:"out"`
	OutDir           string   `mapstructure:"out-dir"`
	FigWidth         float64  `mapstructure:"fig-width"`
	FigHeight        float64  `mapstructure:"fig-height"`
	DPI              float64  `mapstructure:"dpi"`
	Where            []string `mapstructure:"where"`
	Numeric          []string `mapstructure:"numeric"`
	DateFormat       []string `mapstructure:"date-format"`
	Delimiter        string   `mapstructure:"delimiter"`
	Sheet            string   `mapstructure:"sheet"`
	Output           string   `mapstructure:"output"`
	DataOut          string   `mapstructure:"data-out"`
	Quiet            bool     `mapstructure:"quiet"`
	Width            int      `mapstructure:"width"`
	Color            string   `mapstructure:"color"`
	SourceBackend    string   `mapstructure:"source-backend"`
	SourceDBConnect  string   `mapstructure:"source-db-connect"`
	Query            string   `mapstructure:"query"`
	HistoryBackend   string   `mapstructure:"history-backend"`
	HistoryDBConnect string   `mapstructure:"history-db-connect"`

	// --- Chart fields shared by line, stack and pie ---
	Category string `mapstructure:"category"`
	Value    string `mapstructure:"value"`
	Title    string `mapstructure:"title"`
	Legend   string `mapstructure:"legend"`
	XLabel   string `mapstructure:"xlabel"`
	YLabel   string `mapstructure:"ylabel"`

	// --- Fields from lineCmd.Flags() ---
	DateCol   string  `mapstructure:"date-col"`
	Period    string  `mapstructure:"period"`
	LineWidth float64 `mapstructure:"line-width"`

	// --- Fields from stackCmd.Flags() ---
	Group string `mapstructure:"group"`

	// --- Fields from reportCmd.Flags() ---
	DataDir string `mapstructure:"data-dir"`

	// --- Fields from historyListCmd.Flags() ---
	Limit int `mapstructure:"limit"`

	// --- Report overrides from config file ---
	Report ReportRawInput `mapstructure:"report"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.DateFormats = slices.Clone(c.DateFormats)
	clone.Where = slices.Clone(c.Where)
	clone.Numeric = slices.Clone(c.Numeric)
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSourceOptions(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processChartSpecs(cfg, input); err != nil {
		return err
	}
	processReport(cfg, input)
	return nil
}

// RequireChartFields checks that the columns a chart command needs were provided.
func (c *Config) RequireChartFields(kind schema.ChartKind) error {
	var missing []string
	need := func(flag, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "--"+flag)
		}
	}
	switch kind {
	case schema.LineChartKind:
		need("date-col", c.Line.DateColumn)
		need("category", c.Line.Category)
		need("value", c.Line.Value)
	case schema.StackChartKind:
		need("category", c.Stack.Category)
		need("value", c.Stack.Value)
		need("group", c.Stack.Group)
	case schema.PieChartKind:
		need("category", c.Pie.Category)
		need("value", c.Pie.Value)
	default:
		return fmt.Errorf("unknown chart kind %q", kind)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s chart requires %s", kind, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and figure fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = strings.TrimSpace(input.SourceStr)
	cfg.OutPath = input.Out
	cfg.OutDir = input.OutDir
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	cfg.Quiet = input.Quiet
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.DataOut = input.DataOut
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	if input.FigWidth < 0 || input.FigHeight < 0 || input.DPI < 0 {
		return fmt.Errorf("figure size and dpi must not be negative (received %gx%g at %g)", input.FigWidth, input.FigHeight, input.DPI)
	}
	cfg.Figure = schema.Figure{Width: input.FigWidth, Height: input.FigHeight, DPI: input.DPI}
	if cfg.Figure.Width == 0 {
		cfg.Figure.Width = schema.DefaultFigWidth
	}
	if cfg.Figure.Height == 0 {
		cfg.Figure.Height = schema.DefaultFigHeight
	}
	if cfg.Figure.DPI == 0 {
		cfg.Figure.DPI = schema.DefaultDPI
	}

	cfg.HistoryLimit = input.Limit
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	return nil
}

// processSourceOptions handles delimiter, filters, numeric conversions and date layouts.
func processSourceOptions(cfg *Config, input *ConfigRawInput) error {
	delim, err := ParseDelimiter(input.Delimiter)
	if err != nil {
		return err
	}
	cfg.Delimiter = delim
	cfg.Sheet = input.Sheet
	cfg.Query = strings.TrimSpace(input.Query)

	cfg.Where = nil
	for _, raw := range input.Where {
		cond, err := ParseCondition(raw)
		if err != nil {
			return err
		}
		cfg.Where = append(cfg.Where, cond)
	}

	cfg.Numeric = nil
	for _, col := range input.Numeric {
		if col = strings.TrimSpace(col); col != "" {
			cfg.Numeric = append(cfg.Numeric, col)
		}
	}

	cfg.DateFormats = nil
	for _, layout := range input.DateFormat {
		if layout = strings.TrimSpace(layout); layout != "" {
			cfg.DateFormats = append(cfg.DateFormats, layout)
		}
	}
	if len(cfg.DateFormats) == 0 {
		cfg.DateFormats = slices.Clone(schema.DefaultDateLayouts)
	}
	return nil
}

// validateBackendConfigs validates source and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Source Backend Validation ---
	cfg.SourceBackend = schema.DatabaseBackend(strings.ToLower(input.SourceBackend))
	if cfg.SourceBackend == schema.NoneBackend {
		cfg.SourceBackend = ""
	}
	if cfg.SourceBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.SourceBackend]; !ok {
			return fmt.Errorf("invalid source backend '%s'. must be sqlite, mysql, postgresql", input.SourceBackend)
		}
		cfg.SourceDBConnect = input.SourceDBConnect
		if cfg.SourceBackend == schema.SQLiteBackend && cfg.SourceDBConnect == "" {
			return fmt.Errorf("source-db-connect is required when using %s source backend", cfg.SourceBackend)
		}
		if err := ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect); err != nil {
			return err
		}
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// processChartSpecs copies the shared chart fields into the three chart specs.
func processChartSpecs(cfg *Config, input *ConfigRawInput) error {
	period, err := ParsePeriod(input.Period)
	if err != nil {
		return err
	}
	if input.LineWidth < 0 {
		return fmt.Errorf("line width must not be negative (received %g)", input.LineWidth)
	}
	lineWidth := input.LineWidth
	if lineWidth == 0 {
		lineWidth = schema.DefaultLineWidth
	}

	cfg.Line = schema.LineSpec{
		DateColumn: input.DateCol,
		Period:     period,
		Category:   input.Category,
		Value:      input.Value,
		Legend:     input.Legend,
		YLabel:     input.YLabel,
		Title:      input.Title,
		LineWidth:  lineWidth,
		Figure:     cfg.Figure,

		DateLayouts: cfg.DateFormats,
	}
	cfg.Stack = schema.StackSpec{
		Category: input.Category,
		Value:    input.Value,
		Group:    input.Group,
		Title:    input.Title,
		Legend:   input.Legend,
		XLabel:   input.XLabel,
		YLabel:   input.YLabel,
		Figure:   cfg.Figure,
	}
	cfg.Pie = schema.PieSpec{
		Category: input.Category,
		Value:    input.Value,
		Title:    input.Title,
		Figure:   cfg.Figure,
	}
	return nil
}

func processReport(cfg *Config, input *ConfigRawInput) {
	cfg.Report = ReportConfig{
		DataDir:           input.DataDir,
		MentalIllnessFile: input.Report.MentalIllnessFile,
		StocksFile:        input.Report.StocksFile,
	}
	if cfg.Report.DataDir == "" {
		cfg.Report.DataDir = DefaultDataDir
	}
	if cfg.Report.MentalIllnessFile == "" {
		cfg.Report.MentalIllnessFile = DefaultMentalIllnessFile
	}
	if cfg.Report.StocksFile == "" {
		cfg.Report.StocksFile = DefaultStocksFile
	}
}

// ParsePeriod accepts "Year" or "Month" in any case. Empty means Year.
func ParsePeriod(s string) (schema.Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "year":
		return schema.YearPeriod, nil
	case "month":
		return schema.MonthPeriod, nil
	default:
		return "", fmt.Errorf("%w %q: must be Year or Month", schema.ErrInvalidPeriod, s)
	}
}

// ParseCondition splits a "column=value" filter at the first '='.
func ParseCondition(s string) (Condition, error) {
	col, value, ok := strings.Cut(s, "=")
	col = strings.TrimSpace(col)
	if !ok || col == "" {
		return Condition{}, fmt.Errorf("invalid --where %q: expected column=value", s)
	}
	return Condition{Column: col, Value: strings.TrimSpace(value)}, nil
}

// ParseDelimiter parses a single-character field delimiter. "tab" and "\t" mean a tab;
// empty means auto-detect from the file extension.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid --delimiter %q: must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid --delimiter %q", s)
	}
	return r, nil
}
