// Package engine implements the circle placement pass: candidate sweep,
// collision testing and flood-fill painting.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/raster"
)

// RadiusFunc draws the initial radius for a candidate at p.
type RadiusFunc func(p model.Point, minRadius, maxRadius float64) float64

// Option configures a Packer.
type Option func(*Packer)

// WithRadiusFunc replaces the uniform radius draw.
func WithRadiusFunc(fn RadiusFunc) Option {
	return func(p *Packer) { p.radiusFn = fn }
}

// WithCollisionTester replaces the tester chosen from the settings.
func WithCollisionTester(t CollisionTester) Option {
	return func(p *Packer) { p.tester = t }
}

// WithFiller replaces the filler chosen from the settings.
func WithFiller(f Filler) Option {
	return func(p *Packer) { p.filler = f }
}

// Packer sweeps the canvas in raster order and places circles. Earlier
// (top-left) placements win: there is no backtracking.
type Packer struct {
	Settings model.Settings

	tester   CollisionTester
	filler   Filler
	radiusFn RadiusFunc
	rng      *rand.Rand
	seed     int64
}

// New creates a packer. A zero seed in settings is replaced by one derived
// from the clock; Seed reports the value used.
func New(settings model.Settings, opts ...Option) (*Packer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &Packer{
		Settings: settings,
		tester:   NewCollisionTester(settings),
		filler:   NewFiller(settings),
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Seed returns the random seed driving this packer.
func (p *Packer) Seed() int64 { return p.seed }

// Run executes one full placement pass over original and returns the
// painted canvas. The context is checked once per row; a cancelled pass
// returns the context error and no result.
func (p *Packer) Run(ctx context.Context, original *raster.Buffer) (*Canvas, model.MosaicResult, error) {
	c, err := NewCanvas(original, p.Settings.Canvas, p.Settings.QueueCapacity)
	if err != nil {
		return nil, model.MosaicResult{}, err
	}

	log := Logger()
	log.Info("placement pass started",
		"width", c.Width(), "height", c.Height(), "channels", original.Channels,
		"profile", p.Settings.Profile, "seed", p.seed)

	result := model.MosaicResult{
		Width:    c.Width(),
		Height:   c.Height(),
		Channels: original.Channels,
	}

	for i := 0; i < c.Height(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, model.MosaicResult{}, err
		}
		for j := 0; j < c.Width(); j++ {
			origin := model.Point{I: i, J: j}
			// The throttle draw happens for every pixel, claimed or not, so the
			// random sequence only depends on the canvas size.
			if p.rng.Float64() > p.Settings.Likelihood || !c.Mask.Free(origin) {
				continue
			}
			result.Candidates++

			radius := p.drawRadius(origin)
			placement, ok, err := p.place(c, origin, radius, &result)
			if err != nil {
				return nil, model.MosaicResult{}, err
			}
			if !ok {
				result.Rejected++
				continue
			}
			result.Placements = append(result.Placements, placement)
			log.Debug("circle placed",
				"i", i, "j", j, "radius", placement.Circle.Radius, "pixels", placement.Pixels)
		}
	}

	result.Claimed = c.Mask.ClaimedCount()
	log.Info("placement pass finished",
		"circles", len(result.Placements), "candidates", result.Candidates,
		"rejected", result.Rejected, "coverage", fmt.Sprintf("%.1f%%", result.Coverage()))
	return c, result, nil
}

// Place tests a single candidate against c and paints it when accepted,
// applying the configured collision policy. It is the test-and-fill unit
// of the sweep: nothing else may touch the mask between the two steps.
func (p *Packer) Place(c *Canvas, origin model.Point, radius float64) (model.Placement, bool, error) {
	return p.place(c, origin, radius, nil)
}

func (p *Packer) drawRadius(origin model.Point) float64 {
	if p.radiusFn != nil {
		return p.radiusFn(origin, p.Settings.MinRadius, p.Settings.MaxRadius)
	}
	min, max := p.Settings.MinRadius, p.Settings.MaxRadius
	return min + p.rng.Float64()*(max-min)
}

func (p *Packer) place(c *Canvas, origin model.Point, radius float64, stats *model.MosaicResult) (model.Placement, bool, error) {
	if !c.Mask.InBounds(origin) || !c.Mask.Free(origin) {
		return model.Placement{}, false, nil
	}

	minRadius := p.Settings.MinRadius
	switch p.Settings.OnCollision {
	case model.OnCollisionShrink:
		for radius >= minRadius && p.tester.Blocked(c.Mask, origin, radius) {
			radius /= p.Settings.ShrinkFactor
			if stats != nil {
				stats.Shrunk++
			}
		}
		if radius < minRadius {
			return model.Placement{}, false, nil
		}
	default:
		if radius < minRadius || p.tester.Blocked(c.Mask, origin, radius) {
			return model.Placement{}, false, nil
		}
	}

	circle := model.Circle{Center: origin, Radius: radius}
	claimed := 0
	if bc, ok := p.tester.(BoundaryClaimer); ok {
		claimed += bc.MarkBoundary(c, circle)
	}
	n, err := p.filler.Fill(c, circle)
	claimed += n
	if err != nil {
		return model.Placement{}, false, err
	}

	color := make([]byte, c.Original.Channels)
	copy(color, c.Original.At(origin))
	return model.Placement{Circle: circle, Color: color, Pixels: claimed}, true, nil
}
