package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// manifestVersion is written into every manifest file.
const manifestVersion = "1.0.0"

// ManifestFile is the on-disk form of a run manifest.
type ManifestFile struct {
	Version    string            `json:"version"`
	Manifest   model.Manifest    `json:"manifest"`
	Placements []model.Placement `json:"placements,omitempty"`
}

// ExportManifest writes the manifest of a finished run to path. Placements
// are included when non-nil.
func ExportManifest(path string, manifest model.Manifest, placements []model.Placement) error {
	file := ManifestFile{
		Version:    manifestVersion,
		Manifest:   manifest,
		Placements: placements,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// ImportManifest reads a manifest file. The settings it carries are
// validated so a tampered file cannot start an unrunnable pass.
func ImportManifest(path string) (ManifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManifestFile{}, fmt.Errorf("failed to read manifest file: %w", err)
	}
	var file ManifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return ManifestFile{}, fmt.Errorf("failed to parse manifest file: %w", err)
	}
	if file.Version == "" {
		return ManifestFile{}, fmt.Errorf("invalid manifest file: missing version field")
	}
	if file.Manifest.Seed == 0 {
		return ManifestFile{}, fmt.Errorf("invalid manifest file: missing seed")
	}
	if err := file.Manifest.Settings.Validate(); err != nil {
		return ManifestFile{}, fmt.Errorf("invalid manifest file: %w", err)
	}
	return file, nil
}
