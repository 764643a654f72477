package engine

import (
	"math"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// CollisionTester decides whether a circle of radius at origin would run
// into pixels already claimed in mask. Implementations never write the mask.
type CollisionTester interface {
	Blocked(mask *Mask, origin model.Point, radius float64) bool
}

// BoundaryClaimer is implemented by testers that paint and claim the circle
// perimeter once a candidate is accepted, so the following fill only has to
// flood the interior.
type BoundaryClaimer interface {
	MarkBoundary(c *Canvas, circle model.Circle) int
}

// Default sampling parameters.
const (
	DefaultRayStep      = math.Pi / 12
	DefaultMaxDepth     = 12
	DefaultBoundaryStep = 0.001
	DefaultMarkStep     = 0.0001
	boundaryFraction    = 1.0 / 8.0
)

// RaySampler casts rays from the origin at a fixed angular step and probes
// each one by bisection: it samples at half the current radius, then
// descends into the inner quarter and the outer three-quarter radius.
// Samples past the canvas edge only continue inward, so a circle may hang
// off the canvas. The bisection never samples the perimeter itself; thin
// overlaps at the rim can slip through.
type RaySampler struct {
	Step     float64 // Radians between rays
	MaxDepth int     // Bisection depth cap
}

// NewRaySampler creates a sampler, substituting defaults for zero values.
func NewRaySampler(step float64, maxDepth int) *RaySampler {
	if step <= 0 {
		step = DefaultRayStep
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &RaySampler{Step: step, MaxDepth: maxDepth}
}

// probe is one pending bisection sample.
type probe struct {
	radius float64
	depth  int
}

// Blocked implements CollisionTester.
func (s *RaySampler) Blocked(mask *Mask, origin model.Point, radius float64) bool {
	if !mask.Free(origin) {
		return true
	}

	originF := origin.ToF()
	stack := make([]probe, 0, 2*(s.MaxDepth+2))
	for theta := 0.0; theta < 2*math.Pi; theta += s.Step {
		line := model.RayAt(originF, theta)

		stack = append(stack[:0], probe{radius: radius})
		for len(stack) > 0 {
			pr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if pr.depth > s.MaxDepth {
				continue
			}

			p := line.At(pr.radius / 2).Trunc()
			if !mask.InBounds(p) {
				stack = append(stack, probe{radius: pr.radius * 0.25, depth: pr.depth + 1})
				continue
			}
			if !mask.Free(p) {
				return true
			}
			// Outer pushed first so the inner quarter is probed first.
			stack = append(stack,
				probe{radius: pr.radius * 0.75, depth: pr.depth + 1},
				probe{radius: pr.radius * 0.25, depth: pr.depth + 1},
			)
		}
	}
	return false
}

// BoundaryMarker tests a candidate by walking each ray in eighths of the
// radius up to the perimeter, stopping at the canvas edge. On acceptance it
// claims the origin and paints the perimeter ring, which then bounds a
// mask fill.
type BoundaryMarker struct {
	Step     float64 // Radians between test rays
	MarkStep float64 // Radians between perimeter samples when marking
}

// NewBoundaryMarker creates a marker, substituting defaults for zero values.
func NewBoundaryMarker(step, markStep float64) *BoundaryMarker {
	if step <= 0 {
		step = DefaultBoundaryStep
	}
	if markStep <= 0 {
		markStep = DefaultMarkStep
	}
	return &BoundaryMarker{Step: step, MarkStep: markStep}
}

// Blocked implements CollisionTester.
func (b *BoundaryMarker) Blocked(mask *Mask, origin model.Point, radius float64) bool {
	if !mask.Free(origin) {
		return true
	}

	originF := origin.ToF()
	for theta := 0.0; theta < 2*math.Pi; theta += b.Step {
		line := model.RayAt(originF, theta)
		for t := 0.0; t <= 1; t += boundaryFraction {
			p := line.At(t * radius).Trunc()
			if !mask.InBounds(p) {
				break
			}
			if !mask.Free(p) {
				return true
			}
		}
	}
	return false
}

// MarkBoundary claims the origin and paints every free in-bounds pixel on
// the perimeter with the center color. Pixels owned by other circles are
// left alone. Returns the number of pixels claimed.
func (b *BoundaryMarker) MarkBoundary(c *Canvas, circle model.Circle) int {
	claimed := 0
	center := circle.Center
	if c.Mask.Free(center) {
		c.paint(center, center)
		claimed++
	}

	originF := center.ToF()
	for theta := 0.0; theta < 2*math.Pi; theta += b.MarkStep {
		p := model.RayAt(originF, theta).At(circle.Radius).Trunc()
		if c.Mask.InBounds(p) && c.Mask.Free(p) {
			c.paint(p, center)
			claimed++
		}
	}
	return claimed
}

// NewCollisionTester builds the tester selected by settings.
func NewCollisionTester(s model.Settings) CollisionTester {
	if s.Collision == model.CollisionBoundary {
		return NewBoundaryMarker(s.AngleStep, s.MarkStep)
	}
	return NewRaySampler(s.AngleStep, s.MaxDepth)
}
