package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Settings.MaxRadius = 64
	cfg.Settings.Likelihood = 0.25
	cfg.Output = "mosaic.png"
	cfg.RecentInputs = []string{"/tmp/a.png", "/tmp/b.jpg"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Settings.MaxRadius != 64 {
		t.Errorf("expected MaxRadius=64, got %f", loaded.Settings.MaxRadius)
	}
	if loaded.Settings.Likelihood != 0.25 {
		t.Errorf("expected Likelihood=0.25, got %f", loaded.Settings.Likelihood)
	}
	if loaded.Output != "mosaic.png" {
		t.Errorf("expected Output=mosaic.png, got %s", loaded.Output)
	}
	if len(loaded.RecentInputs) != 2 {
		t.Errorf("expected 2 recent inputs, got %d", len(loaded.RecentInputs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Settings != defaults.Settings {
		t.Errorf("expected default settings, got %+v", cfg.Settings)
	}
	if cfg.Output != "result.png" {
		t.Errorf("expected output=result.png, got %s", cfg.Output)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"output": "out.png"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Output != "out.png" {
		t.Errorf("expected output=out.png, got %s", cfg.Output)
	}
	if err := cfg.Settings.Validate(); err != nil {
		t.Errorf("settings missing from the file should keep defaults: %v", err)
	}
	if cfg.RecentInputs == nil {
		t.Error("RecentInputs should never be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".circlemosaic" {
		t.Errorf("expected .circlemosaic directory, got %s", filepath.Dir(path))
	}
}
