package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRaySampler_EmptyMaskNotBlocked(t *testing.T) {
	m := NewMask(30, 30)
	s := NewRaySampler(0, 0)
	assert.Equal(t, DefaultRayStep, s.Step)
	assert.Equal(t, DefaultMaxDepth, s.MaxDepth)

	assert.False(t, s.Blocked(m, model.Point{I: 15, J: 15}, 10))
	assert.Equal(t, 900, m.FreeCount(), "tester must not write the mask")
}

func TestRaySampler_ClaimedOriginBlocks(t *testing.T) {
	m := NewMask(10, 10)
	m.Claim(model.Point{I: 5, J: 5})
	assert.True(t, NewRaySampler(0, 0).Blocked(m, model.Point{I: 5, J: 5}, 0.5))
}

func TestRaySampler_DetectsPixelAtHalfRadius(t *testing.T) {
	m := NewMask(30, 30)
	// theta = 0 walks along the row; radius 8 samples first at t = 4.
	m.Claim(model.Point{I: 10, J: 14})
	assert.True(t, NewRaySampler(0, 0).Blocked(m, model.Point{I: 10, J: 10}, 8))
}

func TestRaySampler_MissesPixelsNearRim(t *testing.T) {
	m := NewMask(30, 30)
	// Bisection samples never go past half the radius, so a pixel at 7/8
	// of the radius is not seen.
	m.Claim(model.Point{I: 10, J: 17})
	assert.False(t, NewRaySampler(0, 0).Blocked(m, model.Point{I: 10, J: 10}, 8))
}

func TestRaySampler_OffCanvasIsNotBlocked(t *testing.T) {
	m := NewMask(10, 10)
	s := NewRaySampler(0, 0)
	for _, p := range []model.Point{{I: 0, J: 0}, {I: 0, J: 9}, {I: 9, J: 0}, {I: 9, J: 9}, {I: 4, J: 0}} {
		assert.False(t, s.Blocked(m, p, 50), "corner %v", p)
	}
}

func TestRaySampler_OffCanvasContinuesInward(t *testing.T) {
	m := NewMask(10, 10)
	// Radius 40 from (0, 0): the first sample on every ray is off canvas,
	// the inner quarter (t = 5) lands on (0, 5) for theta = 0.
	m.Claim(model.Point{I: 0, J: 5})
	assert.True(t, NewRaySampler(0, 0).Blocked(m, model.Point{I: 0, J: 0}, 40))
}

func TestBoundaryMarker_Defaults(t *testing.T) {
	b := NewBoundaryMarker(0, 0)
	assert.Equal(t, DefaultBoundaryStep, b.Step)
	assert.Equal(t, DefaultMarkStep, b.MarkStep)
}

func TestBoundaryMarker_DetectsPerimeterPixel(t *testing.T) {
	m := NewMask(30, 30)
	m.Claim(model.Point{I: 10, J: 18})
	b := NewBoundaryMarker(0.05, 0)
	assert.True(t, b.Blocked(m, model.Point{I: 10, J: 10}, 8))
	assert.Equal(t, 899, m.FreeCount(), "Blocked must not write the mask")
}

func TestBoundaryMarker_StopsAtCanvasEdge(t *testing.T) {
	m := NewMask(10, 10)
	b := NewBoundaryMarker(0.05, 0)
	assert.False(t, b.Blocked(m, model.Point{I: 0, J: 0}, 100))
	assert.False(t, b.Blocked(m, model.Point{I: 9, J: 9}, 100))
}

func TestBoundaryMarker_MarkBoundary(t *testing.T) {
	original := grayRamp(t, 30, 30)
	c := newTestCanvas(t, original, model.CanvasBlank)
	b := NewBoundaryMarker(0.05, 0)

	circle := model.NewCircle(15, 15, 5)
	n := b.MarkBoundary(c, circle)

	assert.Equal(t, n, c.Mask.ClaimedCount())
	assert.False(t, c.Mask.Free(circle.Center))
	centerColor := original.At(circle.Center)[0]

	// Every claimed pixel sits on the ring (or is the center) and carries
	// the center color.
	ring := 0
	for i := 0; i < 30; i++ {
		for j := 0; j < 30; j++ {
			p := model.Point{I: i, J: j}
			if c.Mask.Free(p) {
				assert.Equal(t, byte(0), c.Result.At(p)[0])
				continue
			}
			assert.Equal(t, centerColor, c.Result.At(p)[0])
			if p != circle.Center {
				d := model.Distance(p, circle.Center)
				assert.InDelta(t, 5.0, d, math.Sqrt2+0.01, "ring pixel %v", p)
				ring++
			}
		}
	}
	// The ring is roughly the circumference long.
	assert.Greater(t, ring, 20)
}

func TestBoundaryMarker_LeavesOtherCirclesAlone(t *testing.T) {
	original := grayRamp(t, 30, 30)
	c := newTestCanvas(t, original, model.CanvasBlank)

	owned := model.Point{I: 15, J: 20}
	c.Result.At(owned)[0] = 222
	c.Mask.Claim(owned)

	NewBoundaryMarker(0.05, 0).MarkBoundary(c, model.NewCircle(15, 15, 5))
	assert.Equal(t, byte(222), c.Result.At(owned)[0])
}

func TestNewCollisionTester(t *testing.T) {
	dense := NewCollisionTester(model.GetProfile("dense"))
	rs, ok := dense.(*RaySampler)
	if assert.True(t, ok) {
		assert.InDelta(t, math.Pi/12, rs.Step, 1e-12)
		assert.Equal(t, 12, rs.MaxDepth)
	}

	sparse := NewCollisionTester(model.GetProfile("sparse"))
	bm, ok := sparse.(*BoundaryMarker)
	if assert.True(t, ok) {
		assert.Equal(t, 0.001, bm.Step)
		assert.Equal(t, 0.0001, bm.MarkStep)
	}
	_, claims := sparse.(BoundaryClaimer)
	assert.True(t, claims)
	_, claims = dense.(BoundaryClaimer)
	assert.False(t, claims)
}
