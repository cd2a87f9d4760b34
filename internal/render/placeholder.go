package render

import (
	"github.com/fogleman/gg"
	"github.com/huangsam/tabchart/schema"
	"golang.org/x/image/font/basicfont"
)

// placeholderText is drawn under the title when there is nothing to plot.
const placeholderText = "no data"

// writePlaceholder draws a blank chart carrying only the title and a
// "no data" notice, so every run still produces an image at path.
func writePlaceholder(path, title string, width, height int) (schema.RenderResult, error) {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	cx, cy := float64(width)/2, float64(height)/2
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(20, 20, float64(width)-40, float64(height)-40)
	dc.Stroke()

	dc.Push()
	dc.ScaleAbout(2, 2, cx, cy)
	dc.SetColor(textColor)
	if title != "" {
		dc.DrawStringAnchored(title, cx, cy-12, 0.5, 0.5)
	}
	dc.DrawStringAnchored(placeholderText, cx, cy+12, 0.5, 0.5)
	dc.Pop()

	result, err := saveContext(dc, path)
	result.Placeholder = err == nil
	return result, err
}
