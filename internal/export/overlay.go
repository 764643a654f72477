package export

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/raster"
)

// OverlayStyle controls how circle outlines are stroked.
type OverlayStyle struct {
	LineWidth float64
	R, G, B   float64 // Stroke color, 0..1
	Alpha     float64
}

// DefaultOverlayStyle strokes thin semi-transparent white outlines.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{LineWidth: 1, R: 1, G: 1, B: 1, Alpha: 0.6}
}

// RenderOverlay draws the outline of every placement on top of the
// painted result and returns the context holding the composed image.
func RenderOverlay(painted *raster.Buffer, result model.MosaicResult, style OverlayStyle) *gg.Context {
	dc := gg.NewContextForImage(painted.Image())
	dc.SetRGBA(style.R, style.G, style.B, style.Alpha)
	dc.SetLineWidth(style.LineWidth)
	for _, p := range result.Placements {
		dc.DrawCircle(float64(p.Circle.Center.J)+0.5, float64(p.Circle.Center.I)+0.5, p.Circle.Radius)
		dc.Stroke()
	}
	return dc
}

// ExportOverlay writes the painted result with circle outlines as a PNG.
func ExportOverlay(path string, painted *raster.Buffer, result model.MosaicResult, style OverlayStyle) error {
	if painted == nil {
		return fmt.Errorf("no image to overlay")
	}
	dc := RenderOverlay(painted, result, style)
	if err := dc.SavePNG(path); err != nil {
		return &raster.EncodeError{Path: path, Err: err}
	}
	return nil
}
