package gcode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// Generator produces a pen plotter program that draws the outline of
// every placed circle.
type Generator struct {
	Settings PlotSettings
	profile  Profile
}

func New(settings PlotSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  GetProfile(settings.Profile),
	}
}

// Generate produces the program for a placement result. Circles are drawn
// as full clockwise arcs, visited in serpentine bands to keep pen-up
// travel short.
func (g *Generator) Generate(result model.MosaicResult) string {
	var b strings.Builder

	order, skipped := g.drawOrder(result)
	g.writeHeader(&b, result, len(order), skipped)

	for n, k := range order {
		g.writeCircle(&b, result.Placements[k], result.Height, n+1)
	}

	g.writeFooter(&b)
	return b.String()
}

// PlotPoint maps a pixel center to machine coordinates: X to the right, Y
// up, origin at the bottom-left canvas corner.
func (g *Generator) PlotPoint(p model.Point, height int) (float64, float64) {
	s := g.Settings.Scale
	return (float64(p.J) + 0.5) * s, (float64(height-p.I) - 0.5) * s
}

// drawOrder returns the placement indices to draw and how many were too
// small for the pen.
func (g *Generator) drawOrder(result model.MosaicResult) ([]int, int) {
	band := g.Settings.BandRows
	if band <= 0 {
		band = 1
	}

	var order []int
	skipped := 0
	for k, p := range result.Placements {
		if p.Circle.Radius*g.Settings.Scale < g.Settings.MinRadius {
			skipped++
			continue
		}
		order = append(order, k)
	}

	sort.SliceStable(order, func(a, b int) bool {
		ca := result.Placements[order[a]].Circle.Center
		cb := result.Placements[order[b]].Circle.Center
		ba, bb := ca.I/band, cb.I/band
		if ba != bb {
			return ba < bb
		}
		// Odd bands run right to left.
		if ba%2 == 1 {
			return ca.J > cb.J
		}
		return ca.J < cb.J
	})
	return order, skipped
}

func (g *Generator) writeHeader(b *strings.Builder, result model.MosaicResult, circles, skipped int) {
	p := g.profile
	s := g.Settings

	b.WriteString(g.comment("CircleMosaic plot"))
	b.WriteString(g.comment(fmt.Sprintf("Canvas: %d x %d px, %.1f x %.1f mm",
		result.Width, result.Height, float64(result.Width)*s.Scale, float64(result.Height)*s.Scale)))
	b.WriteString(g.comment(fmt.Sprintf("Circles: %d drawn, %d below %.2f mm", circles, skipped, s.MinRadius)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min", s.FeedRate)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	g.penUp(b)
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Plot complete ==="))
	g.penUp(b)
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))

	for _, code := range p.EndCode {
		b.WriteString(code + "\n")
	}
}

// writeCircle travels to the rightmost point of the circle and draws it as
// one full clockwise arc around the center.
func (g *Generator) writeCircle(b *strings.Builder, pl model.Placement, height, num int) {
	p := g.profile
	cx, cy := g.PlotPoint(pl.Circle.Center, height)
	r := pl.Circle.Radius * g.Settings.Scale

	b.WriteString(g.comment(fmt.Sprintf("Circle %d at (%d, %d) r=%.2fmm",
		num, pl.Circle.Center.I, pl.Circle.Center.J, r)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(cx+r), g.format(cy)))
	g.penDown(b)
	b.WriteString(fmt.Sprintf("%s X%s Y%s I%s J%s F%s\n", p.ArcCW,
		g.format(cx+r), g.format(cy), g.format(-r), g.format(0), g.format(g.Settings.FeedRate)))
	g.penUp(b)
}

func (g *Generator) penUp(b *strings.Builder) {
	if g.profile.PenUp != "" {
		b.WriteString(g.profile.PenUp + "\n")
		return
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.PenUpZ)))
}

func (g *Generator) penDown(b *strings.Builder) {
	if g.profile.PenDown != "" {
		b.WriteString(g.profile.PenDown + "\n")
		return
	}
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", g.profile.FeedMove,
		g.format(g.Settings.PenDownZ), g.format(g.Settings.PlungeRate)))
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	s := fmt.Sprintf(format, v)
	// Avoid "-0.000".
	if strings.Trim(s, "-0.") == "" {
		s = strings.TrimPrefix(s, "-")
	}
	return s
}
