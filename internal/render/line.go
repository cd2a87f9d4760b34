package render

import (
	"math"
	"time"

	"github.com/huangsam/tabchart/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// maxYearTicks caps explicit per-year ticks; longer ranges use go-chart's own ticks.
const maxYearTicks = 24

// maxValueTicks bounds the value axis tick loop.
const maxValueTicks = 20

// segment is a run of consecutive defined cells in one pivot column.
type segment struct {
	xs, ys []float64
}

// lineSegments splits pivot column col at undefined or non-finite cells.
func lineSegments(p *schema.Pivot, col int, xs []float64) []segment {
	var segs []segment
	var cur segment
	for r := range p.Rows() {
		v, ok := p.At(r, col)
		if !ok || !isFinite(v) {
			if len(cur.xs) > 0 {
				segs = append(segs, cur)
				cur = segment{}
			}
			continue
		}
		cur.xs = append(cur.xs, xs[r])
		cur.ys = append(cur.ys, v)
	}
	if len(cur.xs) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// RenderLine draws one line per pivot column over the period axis.
func (r *Renderer) RenderLine(c schema.LineChart, path string) (schema.RenderResult, error) {
	width, height := c.Spec.Figure.Pixels()
	p := c.Pivot
	if p == nil || p.Rows() == 0 || p.Cols() == 0 {
		return writePlaceholder(path, c.Spec.Title, width, height)
	}

	xs := make([]float64, p.Rows())
	for i, k := range p.RowKeys {
		xs[i], _ = keyFloat(k)
	}

	lineWidth := c.Spec.LineWidth
	if lineWidth <= 0 {
		lineWidth = schema.DefaultLineWidth
	}

	var series []chart.Series
	legend := legendChart(c.Spec.Legend)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for col := range p.Cols() {
		name := keyLabel(p.ColKeys[col])
		style := chart.Style{StrokeColor: seriesColor(col), StrokeWidth: lineWidth}
		legend.Series = append(legend.Series, chart.ContinuousSeries{Name: name, Style: style, XValues: []float64{0}, YValues: []float64{0}})

		for _, seg := range lineSegments(p, col, xs) {
			s := chart.ContinuousSeries{Style: style, XValues: seg.xs, YValues: seg.ys}
			if len(seg.xs) == 1 {
				s.Style.DotColor = seriesColor(col)
				s.Style.DotWidth = lineWidth
			}
			series = append(series, s)
			for _, y := range seg.ys {
				ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
			}
		}
	}
	if len(series) == 0 {
		return writePlaceholder(path, c.Spec.Title, width, height)
	}

	graph := chart.Chart{
		Title:  c.Spec.Title,
		Width:  width,
		Height: height,
		DPI:    c.Spec.Figure.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  periodAxis(c.Spec.Period, p.RowKeys, xs),
		YAxis:  valueAxis(c.Spec.YLabel, ymin, ymax),
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&legend)}
	return writeChart(path, graph.Render)
}

// legendChart is a chart that is never rendered; it only feeds chart.Legend so
// that a category split into several segments gets a single entry, headed by
// the legend title.
func legendChart(title string) chart.Chart {
	var c chart.Chart
	if title != "" {
		c.Series = append(c.Series, chart.ContinuousSeries{
			Name:    title,
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
			XValues: []float64{0},
			YValues: []float64{0},
		})
	}
	return c
}

// periodAxis builds the x axis: years as numbers, months as Jan..Dec.
func periodAxis(period schema.Period, keys []any, xs []float64) chart.XAxis {
	xmin, xmax := xs[0], xs[len(xs)-1]
	if xmin == xmax {
		xmin, xmax = xmin-0.5, xmax+0.5
	}
	axis := chart.XAxis{
		Name:           string(period),
		Range:          &chart.ContinuousRange{Min: xmin, Max: xmax},
		GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
	}

	switch {
	case period == schema.MonthPeriod:
		for i, x := range xs {
			axis.Ticks = append(axis.Ticks, chart.Tick{Value: x, Label: monthLabel(keys[i])})
		}
	case len(xs) <= maxYearTicks:
		for i, x := range xs {
			axis.Ticks = append(axis.Ticks, chart.Tick{Value: x, Label: keyLabel(keys[i])})
		}
	default:
		axis.ValueFormatter = func(v any) string {
			if f, ok := v.(float64); ok {
				return formatTick(math.Round(f))
			}
			return ""
		}
	}
	return axis
}

func monthLabel(v any) string {
	f, ok := keyFloat(v)
	if !ok || f < 1 || f > 12 {
		return keyLabel(v)
	}
	return time.Month(int(f)).String()[:3]
}

// valueAxis builds a y axis with a padded explicit range and rounded ticks.
// Non-finite bounds fall back to a unit range.
func valueAxis(name string, ymin, ymax float64) chart.YAxis {
	if !isFinite(ymin) || !isFinite(ymax) {
		ymin, ymax = 0, 1
	}
	if ymin == ymax {
		d := math.Max(math.Abs(ymin)*0.1, 1)
		ymin, ymax = ymin-d, ymax+d
	}
	axis := chart.YAxis{
		Name:           name,
		Range:          &chart.ContinuousRange{Min: ymin, Max: ymax},
		GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
	}

	pad := (ymax - ymin) * 0.05
	lo, hi := ymin-pad, ymax+pad
	step := niceStep(hi-lo, 6)
	if !isFinite(lo) || !isFinite(hi) || !isFinite(step) {
		return axis
	}

	start := math.Floor(lo/step) * step
	for i := 0; i <= maxValueTicks; i++ {
		v := start + float64(i)*step
		if v > hi+step/2 {
			break
		}
		axis.Ticks = append(axis.Ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	if len(axis.Ticks) == 0 {
		return axis
	}
	lo = math.Min(lo, axis.Ticks[0].Value)
	hi = math.Max(hi, axis.Ticks[len(axis.Ticks)-1].Value)
	axis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	return axis
}
