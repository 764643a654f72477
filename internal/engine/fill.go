package engine

import (
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// Filler paints an accepted circle by flood filling from its center. Every
// visited pixel gets the source color at the center and is claimed.
// Fill returns the number of pixels it claimed.
type Filler interface {
	Fill(c *Canvas, circle model.Circle) (int, error)
}

// Neighbor offsets. The first four are the 4-connected set.
var directions = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

func neighborCount(connectivity int) int {
	if connectivity == 4 {
		return 4
	}
	return 8
}

// DistanceFill floods free pixels within the circle radius of the center.
// It needs no pre-marked boundary.
type DistanceFill struct {
	Connectivity int
}

// Fill implements Filler.
func (f DistanceFill) Fill(c *Canvas, circle model.Circle) (int, error) {
	return flood(c, circle, neighborCount(f.Connectivity), func(p model.Point) bool {
		return model.Distance(p, circle.Center) <= circle.Radius
	})
}

// MaskFill floods free pixels with no distance bound. It relies on a
// perimeter already claimed by a BoundaryClaimer. The ring only holds
// 4-connected floods; an 8-connected one slips through its diagonal gaps,
// so settings never pair the two.
type MaskFill struct {
	Connectivity int
}

// Fill implements Filler.
func (f MaskFill) Fill(c *Canvas, circle model.Circle) (int, error) {
	return flood(c, circle, neighborCount(f.Connectivity), nil)
}

// NewFiller builds the filler selected by settings.
func NewFiller(s model.Settings) Filler {
	if s.Fill == model.FillMask {
		return MaskFill{Connectivity: s.Connectivity}
	}
	return DistanceFill{Connectivity: s.Connectivity}
}

// flood runs the breadth-first fill. Pixels are claimed when queued, so
// each is queued at most once. The center is always painted, even when a
// boundary pass already claimed it.
func flood(c *Canvas, circle model.Circle, neighbors int, within func(model.Point) bool) (int, error) {
	q := c.queue
	q.Reset()

	center := circle.Center
	claimed := 0
	if c.Mask.Free(center) {
		claimed++
	}
	c.paint(center, center)
	if err := q.Push(center); err != nil {
		return claimed, fmt.Errorf("fill circle at (%d, %d) r=%.2f: %w", center.I, center.J, circle.Radius, err)
	}

	for !q.Empty() {
		top := q.Pop()
		for k := 0; k < neighbors; k++ {
			p := top.Add(directions[k][0], directions[k][1])
			if !c.Mask.InBounds(p) || !c.Mask.Free(p) {
				continue
			}
			if within != nil && !within(p) {
				continue
			}
			c.paint(p, center)
			claimed++
			if err := q.Push(p); err != nil {
				return claimed, fmt.Errorf("fill circle at (%d, %d) r=%.2f: %w", center.I, center.J, circle.Radius, err)
			}
		}
	}
	return claimed, nil
}
