package render

import (
	"math"

	"github.com/huangsam/tabchart/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderPie draws one captioned slice per category. Slices with no positive
// value take no area; a chart with none at all becomes a placeholder.
func (r *Renderer) RenderPie(c schema.PieChart, path string) (schema.RenderResult, error) {
	width, height := c.Spec.Figure.Pixels()

	var positive float64
	values := make([]chart.Value, 0, len(c.Slices))
	for i, s := range c.Slices {
		if s.Value > 0 {
			positive += s.Value
		}
		color := seriesColor(i)
		values = append(values, chart.Value{
			Label: s.Caption(),
			Value: math.Max(s.Value, 0),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	if positive <= 0 {
		return writePlaceholder(path, c.Spec.Title, width, height)
	}

	graph := chart.PieChart{
		Title:  c.Spec.Title,
		Width:  width,
		Height: height,
		DPI:    c.Spec.Figure.DPI,
		Values: values,
	}
	return writeChart(path, graph.Render)
}
