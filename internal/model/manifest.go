package model

import (
	"time"

	"github.com/google/uuid"
)

// Manifest records everything needed to reproduce a run.
type Manifest struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	Input     string   `json:"input"`
	Output    string   `json:"output"`
	Seed      int64    `json:"seed"` // Seed actually used, never 0
	Settings  Settings `json:"settings"`

	Circles  int     `json:"circles"`
	Coverage float64 `json:"coverage"`
}

// NewManifest creates a manifest for a finished pass.
func NewManifest(input, output string, settings Settings, seed int64, result MosaicResult) Manifest {
	return Manifest{
		ID:        uuid.New().String()[:8],
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Input:     input,
		Output:    output,
		Seed:      seed,
		Settings:  settings,
		Circles:   len(result.Placements),
		Coverage:  result.Coverage(),
	}
}

// SeededSettings returns the settings with the seed pinned so a second
// run reproduces the same image.
func (m Manifest) SeededSettings() Settings {
	s := m.Settings
	s.Seed = m.Seed
	return s
}
