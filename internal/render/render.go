// Package render draws chart models to PNG files. Chart bodies come from
// go-chart; gg draws overlays and placeholder images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/huangsam/tabchart/internal/contract"
	"github.com/huangsam/tabchart/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette is the categorical color cycle shared by every chart.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

var (
	gridColor = drawing.ColorFromHex("dddddd")
	textColor = drawing.ColorFromHex("333333")
)

func seriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Renderer implements contract.ChartRenderer with PNG output.
type Renderer struct{}

var _ contract.ChartRenderer = &Renderer{} // Compile-time check

// NewRenderer creates a PNG chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// keyLabel renders a pivot key for axes and legends.
func keyLabel(v any) string {
	return schema.FormatCell(v)
}

// keyFloat positions a pivot key on a continuous axis.
func keyFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case time.Time:
		return float64(x.Unix()), true
	default:
		return 0, false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// niceStep picks a 1, 2 or 5 multiple of a power of ten so that span is
// covered by roughly n ticks.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n < 1 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

// formatTick prints a tick value without trailing zeros.
func formatTick(v float64) string {
	if math.Abs(v) >= 1e6 || (v != 0 && math.Abs(v) < 1e-3) {
		return fmt.Sprintf("%.2g", v)
	}
	return fmt.Sprintf("%g", math.Round(v*1000)/1000)
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// renderImage renders a go-chart body into an in-memory image so overlays can
// be drawn on it.
func renderImage(render func(chart.RendererProvider, io.Writer) error) (image.Image, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart image: %w", err)
	}
	return img, nil
}

// saveContext writes a gg context to path as PNG.
func saveContext(dc *gg.Context, path string) (schema.RenderResult, error) {
	if err := ensureDir(path); err != nil {
		return schema.RenderResult{}, err
	}
	if err := dc.SavePNG(path); err != nil {
		return schema.RenderResult{}, fmt.Errorf("failed to write chart: %w", err)
	}
	return schema.RenderResult{Path: path}, nil
}

// writeChart renders a go-chart body straight to path.
func writeChart(path string, render func(chart.RendererProvider, io.Writer) error) (schema.RenderResult, error) {
	if err := ensureDir(path); err != nil {
		return schema.RenderResult{}, err
	}
	file, err := os.Create(path)
	if err != nil {
		return schema.RenderResult{}, fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := render(chart.PNG, file); err != nil {
		_ = file.Close()
		return schema.RenderResult{}, fmt.Errorf("failed to render chart: %w", err)
	}
	if err := file.Close(); err != nil {
		return schema.RenderResult{}, err
	}
	return schema.RenderResult{Path: path}, nil
}
