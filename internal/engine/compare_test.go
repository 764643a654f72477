package engine

import (
	"context"
	"testing"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := fastSettings()
	base.Seed = 5
	base.QueueCapacity = 4096

	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 3)

	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)

	assert.Equal(t, "Profile sparse", scenarios[1].Name)
	assert.Equal(t, model.CollisionBoundary, scenarios[1].Settings.Collision)
	assert.Equal(t, int64(5), scenarios[1].Settings.Seed)
	assert.Equal(t, 0, scenarios[1].Settings.QueueCapacity, "4096 is too small for the sparse radius")

	assert.Equal(t, model.OnCollisionShrink, scenarios[2].Settings.OnCollision)
	assert.Equal(t, "Shrink By 3.0 On Collision", scenarios[2].Name)

	for _, sc := range scenarios {
		assert.NoError(t, sc.Settings.Validate(), sc.Name)
	}
}

func TestBuildDefaultScenarios_KeepsLargeQueueCapacity(t *testing.T) {
	base := fastSparseSettings()
	base.QueueCapacity = model.QueueCapacityFor(200)

	scenarios := BuildDefaultScenarios(base)
	require.Equal(t, "Profile dense", scenarios[1].Name)
	assert.Equal(t, base.QueueCapacity, scenarios[1].Settings.QueueCapacity)
	for _, sc := range scenarios {
		assert.NoError(t, sc.Settings.Validate(), sc.Name)
	}
}

func TestBuildDefaultScenarios_FromShrinkBase(t *testing.T) {
	base := fastSparseSettings()
	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Profile dense", scenarios[1].Name)
	assert.Equal(t, "Reject On Collision", scenarios[2].Name)
	assert.Equal(t, model.OnCollisionReject, scenarios[2].Settings.OnCollision)
}

func TestCompareScenarios(t *testing.T) {
	original := rgbPattern(t, 30, 20)
	before := original.Clone()

	dense := fastSettings()
	dense.Seed = 0
	sparse := fastSparseSettings()
	sparse.Seed = 0

	results, err := CompareScenarios(context.Background(), []ComparisonScenario{
		{Name: "dense", Settings: dense},
		{Name: "sparse", Settings: sparse},
	}, original)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, results[0].Seed, results[1].Seed, "unseeded scenarios share a seed")
	for _, r := range results {
		assert.Equal(t, len(r.Result.Placements), r.Circles)
		assert.InDelta(t, r.Result.Coverage(), r.Coverage, 1e-9)
		assert.Greater(t, r.Circles, 0, r.Scenario.Name)
	}
	assert.Equal(t, before.Pix, original.Pix)
}

func TestCompareScenarios_InvalidScenario(t *testing.T) {
	bad := fastSettings()
	bad.Likelihood = 2

	_, err := CompareScenarios(context.Background(), []ComparisonScenario{
		{Name: "ok", Settings: fastSettings()},
		{Name: "broken", Settings: bad},
	}, rgbPattern(t, 8, 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidSettings)
	assert.Contains(t, err.Error(), `"broken"`)
}
