package export

import (
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	CanvasLayer  = "CANVAS"
	CirclesLayer = "CIRCLES"
)

// DXFPoint maps a pixel center to drawing units: one unit per pixel, X to
// the right and Y up, with the origin at the bottom-left canvas corner.
func DXFPoint(p model.Point, height int) (float64, float64) {
	return float64(p.J) + 0.5, float64(height-p.I) - 0.5
}

// ExportDXF writes the canvas outline and every placed circle as DXF
// entities, e.g. for laser cutting or plotting the layout.
func ExportDXF(path string, result model.MosaicResult) error {
	if result.Width <= 0 || result.Height <= 0 {
		return fmt.Errorf("no canvas to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(CanvasLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", CanvasLayer, err)
	}
	w, h := float64(result.Width), float64(result.Height)
	corners := [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0}}
	for k := 0; k < len(corners)-1; k++ {
		a, b := corners[k], corners[k+1]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw canvas edge: %w", err)
		}
	}

	if _, err := d.AddLayer(CirclesLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", CirclesLayer, err)
	}
	for _, p := range result.Placements {
		x, y := DXFPoint(p.Circle.Center, result.Height)
		if _, err := d.Circle(x, y, 0, p.Circle.Radius); err != nil {
			return fmt.Errorf("failed to draw circle at (%d, %d): %w", p.Circle.Center.I, p.Circle.Center.J, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}
