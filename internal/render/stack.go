package render

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/huangsam/tabchart/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/basicfont"
)

// Stacked bar layout in pixels.
const (
	stackTop    = 50
	stackLeft   = 90
	stackRight  = 30
	stackTicks  = 6
	legendInset = 10
	swatchSize  = 10
)

// stackScale returns the axis maximum for the tallest bar and its tick step.
// Negative and non-finite segments are drawn as zero height.
func stackScale(p *schema.Pivot) (top, step float64) {
	var tallest float64
	for r := range p.Rows() {
		var total float64
		for c := range p.Cols() {
			if v, ok := p.At(r, c); ok && isFinite(v) && v > 0 {
				total += v
			}
		}
		tallest = math.Max(tallest, total)
	}
	if tallest <= 0 {
		return 0, 0
	}
	step = niceStep(tallest, stackTicks)
	return math.Ceil(tallest/step) * step, step
}

// stackBars converts pivot rows into go-chart bars. go-chart scales every bar to
// full height, so each bar is topped with a transparent segment that pads it
// to the shared axis maximum; segments are listed top first.
func stackBars(p *schema.Pivot, top float64, barWidth int) []chart.StackedBar {
	bars := make([]chart.StackedBar, p.Rows())
	for r := range p.Rows() {
		var total float64
		values := make([]chart.Value, 0, p.Cols()+1)
		for c := p.Cols() - 1; c >= 0; c-- {
			v, _ := p.At(r, c)
			if !isFinite(v) || v < 0 {
				v = 0
			}
			total += v
			color := seriesColor(c)
			values = append(values, chart.Value{
				Value: v,
				Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
			})
		}
		pad := chart.Value{
			Value: top - total,
			Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		}
		bars[r] = chart.StackedBar{
			Name:   keyLabel(p.RowKeys[r]),
			Width:  barWidth,
			Values: append([]chart.Value{pad}, values...),
		}
	}
	return bars
}

// RenderStackedBar draws one bar per pivot row with a segment per pivot column.
func (r *Renderer) RenderStackedBar(c schema.StackedBarChart, path string) (schema.RenderResult, error) {
	width, height := c.Spec.Figure.Pixels()
	p := c.Pivot
	if p == nil || p.Rows() == 0 || p.Cols() == 0 {
		return writePlaceholder(path, c.Spec.Title, width, height)
	}
	top, step := stackScale(p)
	if top <= 0 {
		return writePlaceholder(path, c.Spec.Title, width, height)
	}

	slot := max((width-stackLeft-stackRight)/p.Rows(), 4)
	spacing := slot / 4
	graph := chart.StackedBarChart{
		Title:      c.Spec.Title,
		Width:      width,
		Height:     height,
		DPI:        c.Spec.Figure.DPI,
		BarSpacing: spacing,
		Background: chart.Style{
			Padding: chart.Box{Top: stackTop, Left: stackLeft, Right: stackRight},
		},
		YAxis:    chart.Style{Hidden: true},
		Bars:     stackBars(p, top, slot-spacing),
		Elements: []chart.Renderable{stackValueAxis(top, step)},
	}

	img, err := renderImage(graph.Render)
	if err != nil {
		return schema.RenderResult{}, err
	}
	dc := gg.NewContextForImage(img)
	drawCaptions(dc, c.Spec.XLabel, c.Spec.YLabel)
	drawLegend(dc, c.Spec.Legend, p.ColKeys, float64(stackLeft+(slot*p.Rows())))
	return saveContext(dc, path)
}

// stackValueAxis draws the value axis on the left edge of the canvas.
func stackValueAxis(top, step float64) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := chart.Style{
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: 1,
			FontColor:   chart.DefaultAxisColor,
			FontSize:    chart.DefaultAxisFontSize,
			Font:        defaults.Font,
		}
		style.WriteToRenderer(r)
		r.MoveTo(cb.Left, cb.Top)
		r.LineTo(cb.Left, cb.Bottom)
		r.Stroke()

		for v := 0.0; v <= top+step/2; v += step {
			y := cb.Bottom - int(v/top*float64(cb.Height()))
			r.MoveTo(cb.Left-5, y)
			r.LineTo(cb.Left, y)
			r.Stroke()

			label := formatTick(v)
			tb := r.MeasureText(label)
			r.Text(label, cb.Left-8-tb.Width(), y+tb.Height()/2)
		}
	}
}

// drawCaptions writes the x caption along the bottom edge and the y caption
// rotated along the left edge.
func drawCaptions(dc *gg.Context, xlabel, ylabel string) {
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(textColor)
	if xlabel != "" {
		dc.DrawStringAnchored(xlabel, w/2, h-8, 0.5, 0)
	}
	if ylabel != "" {
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), 16, h/2)
		dc.DrawStringAnchored(ylabel, 16, h/2, 0.5, 0.5)
		dc.Pop()
	}
}

// drawLegend draws a boxed legend in the top right corner of the plot area,
// headed by title, with one swatch per key.
func drawLegend(dc *gg.Context, title string, keys []any, right float64) {
	dc.SetFontFace(basicfont.Face7x13)

	labels := make([]string, len(keys))
	var textWidth float64
	_, lineHeight := dc.MeasureString("Mg")
	lineHeight += 6
	for i, k := range keys {
		labels[i] = keyLabel(k)
		w, _ := dc.MeasureString(labels[i])
		textWidth = math.Max(textWidth, w+swatchSize+6)
	}
	rows := len(labels)
	if title != "" {
		w, _ := dc.MeasureString(title)
		textWidth = math.Max(textWidth, w)
		rows++
	}

	boxW := textWidth + 2*legendInset
	boxH := float64(rows)*lineHeight + legendInset
	x := right - boxW - legendInset
	y := float64(stackTop) + legendInset

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.FillPreserve()
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.Stroke()

	cy := y + legendInset/2
	dc.SetColor(textColor)
	if title != "" {
		dc.DrawStringAnchored(title, x+legendInset, cy+lineHeight/2, 0, 0.5)
		cy += lineHeight
	}
	for i, label := range labels {
		dc.SetColor(seriesColor(i))
		dc.DrawRectangle(x+legendInset, cy+(lineHeight-swatchSize)/2, swatchSize, swatchSize)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(label, x+legendInset+swatchSize+6, cy+lineHeight/2, 0, 0.5)
		cy += lineHeight
	}
}
