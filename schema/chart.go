package schema

import "fmt"

// Figure defaults, matching a 12x6 inch figure at 100 DPI.
const (
	DefaultFigWidth  = 12.0
	DefaultFigHeight = 6.0
	DefaultDPI       = 100.0
	DefaultLineWidth = 3.0
)

// DefaultDateLayouts are the Go time layouts tried, in order, when parsing date strings.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Figure holds display size parameters shared by every chart.
type Figure struct {
	Width  float64 // inches
	Height float64 // inches
	DPI    float64
}

// Pixels converts the figure size to image dimensions, falling back to defaults.
func (f Figure) Pixels() (int, int) {
	w, h, dpi := f.Width, f.Height, f.DPI
	if w <= 0 {
		w = DefaultFigWidth
	}
	if h <= 0 {
		h = DefaultFigHeight
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return int(w * dpi), int(h * dpi)
}

// LineSpec parameterizes the line chart.
type LineSpec struct {
	DateColumn string
	Period     Period
	Category   string
	Value      string
	Legend     string
	YLabel     string
	Title      string
	LineWidth  float64
	Figure     Figure

	// DateLayouts overrides DefaultDateLayouts when non-empty.
	DateLayouts []string
}

// StackSpec parameterizes the stacked bar chart.
type StackSpec struct {
	Category string
	Value    string
	Group    string
	Title    string
	Legend   string
	XLabel   string
	YLabel   string
	Figure   Figure
}

// PieSpec parameterizes the pie chart.
type PieSpec struct {
	Category string
	Value    string
	Title    string
	Figure   Figure
}

// LineChart is the render model for one line per category over time.
// Undefined pivot cells are gaps in the line.
type LineChart struct {
	Spec  LineSpec
	Pivot *Pivot
}

// StackedBarChart is the render model for one stacked bar per category.
// Its pivot has no undefined cells; absent combinations are zero-height segments.
type StackedBarChart struct {
	Spec  StackSpec
	Pivot *Pivot
}

// PieSlice is one category's share of the whole.
type PieSlice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Caption renders the slice label with its one-decimal percentage, e.g. "M 33.3%".
func (s PieSlice) Caption() string {
	return fmt.Sprintf("%s %1.1f%%", s.Label, s.Percent)
}

// PieChart is the render model for proportional slices.
type PieChart struct {
	Spec   PieSpec
	Slices []PieSlice
	Total  float64
}

// RenderResult describes a written chart image.
type RenderResult struct {
	Path        string
	Placeholder bool // true when there was nothing to plot
}
