package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMosaicResultCoverage(t *testing.T) {
	r := MosaicResult{Width: 10, Height: 10, Claimed: 25}
	assert.Equal(t, 100, r.TotalArea())
	assert.InDelta(t, 25.0, r.Coverage(), 1e-9)

	empty := MosaicResult{}
	assert.Equal(t, 0.0, empty.Coverage())
}

func TestMosaicResultRadii(t *testing.T) {
	r := MosaicResult{
		Placements: []Placement{
			{Circle: NewCircle(0, 0, 2)},
			{Circle: NewCircle(5, 5, 6)},
			{Circle: NewCircle(9, 9, 1)},
		},
	}
	assert.Equal(t, 6.0, r.LargestRadius())
	assert.InDelta(t, 3.0, r.MeanRadius(), 1e-9)

	assert.Equal(t, 0.0, MosaicResult{}.MeanRadius())
}

func TestAddRecentInput(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentInput("a.png")
	cfg.AddRecentInput("b.png")
	cfg.AddRecentInput("a.png")
	assert.Equal(t, []string{"a.png", "b.png"}, cfg.RecentInputs)

	for i := 0; i < 20; i++ {
		cfg.AddRecentInput(string(rune('c'+i)) + ".png")
	}
	assert.Len(t, cfg.RecentInputs, maxRecentInputs)
}

func TestNewManifest(t *testing.T) {
	s := GetProfile("sparse")
	result := MosaicResult{Width: 4, Height: 4, Claimed: 8, Placements: []Placement{{}, {}}}

	m := NewManifest("in.png", "out.png", s, 42, result)
	assert.Len(t, m.ID, 8)
	assert.NotEmpty(t, m.CreatedAt)
	assert.Equal(t, 2, m.Circles)
	assert.InDelta(t, 50.0, m.Coverage, 1e-9)

	seeded := m.SeededSettings()
	assert.Equal(t, int64(42), seeded.Seed)
	assert.Equal(t, "sparse", seeded.Profile)
}
