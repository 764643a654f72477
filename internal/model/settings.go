package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// CollisionStrategy selects how candidate circles are tested against the mask.
type CollisionStrategy string

const (
	CollisionRay      CollisionStrategy = "ray"      // Bisection sampling along rays (read-only)
	CollisionBoundary CollisionStrategy = "boundary" // Stepped ray test, then perimeter pre-marking on acceptance
)

// FillPolicy selects what bounds the flood fill of an accepted circle.
type FillPolicy string

const (
	FillDistance FillPolicy = "distance" // Neighbors must lie within the radius
	FillMask     FillPolicy = "mask"     // Neighbors are bounded only by claimed pixels
)

// CollisionPolicy selects what the driver does with a blocked candidate.
type CollisionPolicy string

const (
	OnCollisionShrink CollisionPolicy = "shrink" // Divide the radius until it fits or drops below the minimum
	OnCollisionReject CollisionPolicy = "reject" // Drop the candidate
)

// CanvasMode selects the initial content of the result image.
type CanvasMode string

const (
	CanvasBlank CanvasMode = "blank" // Black, opaque where there is alpha
	CanvasCopy  CanvasMode = "copy"  // A full copy of the source
)

// Settings holds the placement engine configuration.
type Settings struct {
	Profile string `json:"profile"` // Name of the profile these settings started from

	MinRadius    float64         `json:"min_radius"`    // Smallest radius ever tested
	MaxRadius    float64         `json:"max_radius"`    // Upper bound of the radius draw
	Likelihood   float64         `json:"likelihood"`    // Probability a pixel is tried as a candidate
	ShrinkFactor float64         `json:"shrink_factor"` // Divisor used by the shrink policy
	OnCollision  CollisionPolicy `json:"on_collision"`

	Collision    CollisionStrategy `json:"collision"`
	Fill         FillPolicy        `json:"fill"`
	Connectivity int               `json:"connectivity"` // 4 or 8
	Canvas       CanvasMode        `json:"canvas"`

	// Sampling resolution. Zero selects the strategy default.
	AngleStep float64 `json:"angle_step"` // Radians between sampled rays
	MarkStep  float64 `json:"mark_step"`  // Radians between pre-marked perimeter samples
	MaxDepth  int     `json:"max_depth"`  // Bisection depth cap

	Seed          int64 `json:"seed"`           // 0 = derive from the clock
	QueueCapacity int   `json:"queue_capacity"` // 0 = growable flood-fill queue
}

// Built-in placement profiles.
var Profiles = []Settings{
	{
		// Dense packing: many medium circles, source visible between them.
		Profile:      "dense",
		MinRadius:    2,
		MaxRadius:    200,
		Likelihood:   0.60,
		ShrinkFactor: 3,
		OnCollision:  OnCollisionReject,
		Collision:    CollisionRay,
		Fill:         FillDistance,
		Connectivity: 8,
		Canvas:       CanvasCopy,
		AngleStep:    math.Pi / 12,
		MaxDepth:     12,
	},
	{
		// Sparse packing: few large circles on a black canvas.
		Profile:      "sparse",
		MinRadius:    2,
		MaxRadius:    1000,
		Likelihood:   0.02,
		ShrinkFactor: 3,
		OnCollision:  OnCollisionShrink,
		Collision:    CollisionBoundary,
		Fill:         FillMask,
		Connectivity: 4,
		Canvas:       CanvasBlank,
		AngleStep:    0.001,
		MarkStep:     0.0001,
	},
}

// GetProfile returns a built-in profile by name, or the first one if not found.
func GetProfile(name string) Settings {
	for _, p := range Profiles {
		if p.Profile == name {
			return p
		}
	}
	return Profiles[0]
}

// GetProfileNames returns the names of the built-in profiles.
func GetProfileNames() []string {
	var names []string
	for _, p := range Profiles {
		names = append(names, p.Profile)
	}
	return names
}

// DefaultSettings returns the dense profile.
func DefaultSettings() Settings {
	return GetProfile("dense")
}

// QueueCapacityFor returns a flood-fill queue capacity that can never
// overflow for circles up to maxRadius. Validate rejects any smaller
// nonzero capacity.
func QueueCapacityFor(maxRadius float64) int {
	return int(math.Ceil(math.Pi*(maxRadius+1)*(maxRadius+1))) + 1
}

// Validate checks that the settings describe a runnable configuration.
func (s Settings) Validate() error {
	if s.MinRadius < 0 || math.IsNaN(s.MinRadius) {
		return fmt.Errorf("%w: min radius %v must be >= 0", ErrInvalidSettings, s.MinRadius)
	}
	if s.MaxRadius < s.MinRadius {
		return fmt.Errorf("%w: max radius %v is below min radius %v", ErrInvalidSettings, s.MaxRadius, s.MinRadius)
	}
	if s.Likelihood < 0 || s.Likelihood > 1 {
		return fmt.Errorf("%w: likelihood %v outside [0, 1]", ErrInvalidSettings, s.Likelihood)
	}

	switch s.OnCollision {
	case OnCollisionShrink:
		if s.ShrinkFactor <= 1 {
			return fmt.Errorf("%w: shrink factor %v must be > 1", ErrInvalidSettings, s.ShrinkFactor)
		}
		// A zero minimum would never end the shrink loop.
		if s.MinRadius <= 0 {
			return fmt.Errorf("%w: shrinking needs a positive min radius", ErrInvalidSettings)
		}
	case OnCollisionReject:
	default:
		return fmt.Errorf("%w: unknown collision policy %q", ErrInvalidSettings, s.OnCollision)
	}

	switch s.Collision {
	case CollisionRay, CollisionBoundary:
	default:
		return fmt.Errorf("%w: unknown collision strategy %q", ErrInvalidSettings, s.Collision)
	}

	switch s.Fill {
	case FillDistance:
	case FillMask:
		// Without a pre-marked perimeter a mask-bounded fill floods every free pixel.
		if s.Collision != CollisionBoundary {
			return fmt.Errorf("%w: mask fill requires the boundary collision strategy", ErrInvalidSettings)
		}
		// An 8-connected fill slips diagonally through the marked perimeter.
		if s.Connectivity != 4 {
			return fmt.Errorf("%w: mask fill requires connectivity 4", ErrInvalidSettings)
		}
	default:
		return fmt.Errorf("%w: unknown fill policy %q", ErrInvalidSettings, s.Fill)
	}

	if s.Connectivity != 4 && s.Connectivity != 8 {
		return fmt.Errorf("%w: connectivity must be 4 or 8, got %d", ErrInvalidSettings, s.Connectivity)
	}
	switch s.Canvas {
	case CanvasBlank, CanvasCopy:
	default:
		return fmt.Errorf("%w: unknown canvas mode %q", ErrInvalidSettings, s.Canvas)
	}
	if s.AngleStep < 0 || s.MarkStep < 0 || s.MaxDepth < 0 || s.QueueCapacity < 0 {
		return fmt.Errorf("%w: sampling parameters must not be negative", ErrInvalidSettings)
	}
	if s.QueueCapacity > 0 {
		if need := QueueCapacityFor(s.MaxRadius); s.QueueCapacity < need {
			return fmt.Errorf("%w: queue capacity %d is below %d needed for max radius %v",
				ErrInvalidSettings, s.QueueCapacity, need, s.MaxRadius)
		}
	}
	return nil
}
