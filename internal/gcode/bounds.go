package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// BoundsViolation is a circle that reaches past the plotter bed.
type BoundsViolation struct {
	Index    int         // Placement index
	Center   model.Point // Pixel center
	X, Y     float64     // Machine center, mm
	Radius   float64     // mm
	Overhang float64     // mm past the nearest violated bed edge
}

// bedSize returns the bed dimensions, defaulting to the scaled canvas.
func (g *Generator) bedSize(result model.MosaicResult) (float64, float64) {
	w, h := g.Settings.BedWidth, g.Settings.BedHeight
	if w <= 0 {
		w = float64(result.Width) * g.Settings.Scale
	}
	if h <= 0 {
		h = float64(result.Height) * g.Settings.Scale
	}
	return w, h
}

// CheckBedBounds reports every drawn circle whose outline leaves the bed.
// Circles near the canvas edge may legitimately hang off the image, so
// without an explicit bed this lists exactly those.
func (g *Generator) CheckBedBounds(result model.MosaicResult) []BoundsViolation {
	bedW, bedH := g.bedSize(result)
	order, _ := g.drawOrder(result)

	var violations []BoundsViolation
	for _, k := range order {
		pl := result.Placements[k]
		x, y := g.PlotPoint(pl.Circle.Center, result.Height)
		r := pl.Circle.Radius * g.Settings.Scale

		overhang := math.Max(
			math.Max(r-x, x+r-bedW),
			math.Max(r-y, y+r-bedH),
		)
		// Ignore rounding-level overhangs.
		if overhang <= 1e-6 {
			continue
		}
		violations = append(violations, BoundsViolation{
			Index:    k,
			Center:   pl.Circle.Center,
			X:        x,
			Y:        y,
			Radius:   r,
			Overhang: overhang,
		})
	}
	return violations
}

// FormatBoundsWarnings produces human-readable warning messages.
func FormatBoundsWarnings(violations []BoundsViolation) []string {
	var warnings []string
	for _, v := range violations {
		warnings = append(warnings, fmt.Sprintf(
			"Circle %d at pixel (%d, %d) runs %.2f mm past the bed (center %.1f, %.1f mm, radius %.2f mm)",
			v.Index+1, v.Center.I, v.Center.J, v.Overhang, v.X, v.Y, v.Radius,
		))
	}
	return warnings
}
