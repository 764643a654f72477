package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/raster"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the pass statistics for a single scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.MosaicResult
	Seed       int64
	Circles    int
	Coverage   float64
	MeanRadius float64
}

// CompareScenarios runs a placement pass for each scenario on the same
// source and returns the results in scenario order. Scenarios without a
// seed share the first scenario's seed so they draw the same random
// sequence.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, original *raster.Buffer) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	var shared int64
	for _, scenario := range scenarios {
		settings := scenario.Settings
		if settings.Seed == 0 {
			settings.Seed = shared
		}

		p, err := New(settings)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		if shared == 0 {
			shared = p.Seed()
		}

		_, result, err := p.Run(ctx, original)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:   scenario,
			Result:     result,
			Seed:       p.Seed(),
			Circles:    len(result.Placements),
			Coverage:   result.Coverage(),
			MeanRadius: result.MeanRadius(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates what-if alternatives around the base
// settings: the other built-in profiles and the opposite collision policy.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: every other built-in profile, keeping the seed
	for _, p := range model.Profiles {
		if p.Profile == base.Profile {
			continue
		}
		alt := p
		alt.Seed = base.Seed
		// A capped queue only carries over when it still fits the profile's radius.
		if base.QueueCapacity >= model.QueueCapacityFor(alt.MaxRadius) {
			alt.QueueCapacity = base.QueueCapacity
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Profile %s", p.Profile),
			Settings: alt,
		})
	}

	// Scenario: flip between shrinking and rejecting blocked candidates
	flipped := base
	if base.OnCollision == model.OnCollisionShrink {
		flipped.OnCollision = model.OnCollisionReject
		scenarios = append(scenarios, ComparisonScenario{Name: "Reject On Collision", Settings: flipped})
	} else if base.MinRadius > 0 {
		flipped.OnCollision = model.OnCollisionShrink
		if flipped.ShrinkFactor <= 1 {
			flipped.ShrinkFactor = 3
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Shrink By %.1f On Collision", flipped.ShrinkFactor),
			Settings: flipped,
		})
	}

	return scenarios
}
