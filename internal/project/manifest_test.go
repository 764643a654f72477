package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

func sampleManifest() (model.Manifest, []model.Placement) {
	placements := []model.Placement{
		{Circle: model.NewCircle(3, 4, 2.5), Color: []byte{10, 20, 30}, Pixels: 21},
		{Circle: model.NewCircle(9, 1, 1.5), Color: []byte{40, 50, 60}, Pixels: 9},
	}
	result := model.MosaicResult{Width: 10, Height: 10, Channels: 3, Placements: placements, Claimed: 30}
	settings := model.DefaultSettings()
	return model.NewManifest("in.png", "out.png", settings, 42, result), placements
}

func TestExportAndImportManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run", "manifest.json")

	manifest, placements := sampleManifest()
	if err := ExportManifest(path, manifest, placements); err != nil {
		t.Fatalf("ExportManifest failed: %v", err)
	}

	file, err := ImportManifest(path)
	if err != nil {
		t.Fatalf("ImportManifest failed: %v", err)
	}

	if file.Version != manifestVersion {
		t.Errorf("expected version %s, got %s", manifestVersion, file.Version)
	}
	if file.Manifest.ID != manifest.ID {
		t.Errorf("expected ID %s, got %s", manifest.ID, file.Manifest.ID)
	}
	if file.Manifest.Seed != 42 {
		t.Errorf("expected seed 42, got %d", file.Manifest.Seed)
	}
	if file.Manifest.Circles != 2 {
		t.Errorf("expected 2 circles, got %d", file.Manifest.Circles)
	}
	if len(file.Placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(file.Placements))
	}
	if file.Placements[0].Circle != placements[0].Circle {
		t.Errorf("expected %+v, got %+v", placements[0].Circle, file.Placements[0].Circle)
	}
	if got := file.Manifest.SeededSettings().Seed; got != 42 {
		t.Errorf("expected seeded settings to carry seed 42, got %d", got)
	}
}

func TestExportManifestWithoutPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	manifest, _ := sampleManifest()
	if err := ExportManifest(path, manifest, nil); err != nil {
		t.Fatalf("ExportManifest failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "placements") {
		t.Error("placements should be omitted when nil")
	}
}

func TestImportManifestMissingFile(t *testing.T) {
	_, err := ImportManifest(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportManifestInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportManifest(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportManifestMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(path, []byte(`{"manifest": {"seed": 3}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportManifest(path)
	if err == nil {
		t.Fatal("expected error for manifest without version")
	}
}

func TestImportManifestInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	manifest, _ := sampleManifest()
	manifest.Settings.Connectivity = 6
	if err := ExportManifest(path, manifest, nil); err != nil {
		t.Fatalf("ExportManifest failed: %v", err)
	}

	_, err := ImportManifest(path)
	if err == nil {
		t.Fatal("expected error for invalid settings")
	}
	if !strings.Contains(err.Error(), "connectivity") {
		t.Errorf("expected connectivity in error, got: %v", err)
	}
}
