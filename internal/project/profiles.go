package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom placement profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Settings{}, nil
		}
		return nil, err
	}

	var profiles []model.Settings
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.Profile == "" {
			return nil, errors.New("custom profile has no name")
		}
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.Settings) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Settings{}, err
	}

	var profile model.Settings
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.Settings{}, err
	}

	if profile.Profile == "" {
		return model.Settings{}, errors.New("imported profile has no name")
	}
	if err := profile.Validate(); err != nil {
		return model.Settings{}, fmt.Errorf("imported profile %q: %w", profile.Profile, err)
	}
	return profile, nil
}

// FindProfile looks name up among the built-in profiles first, then the
// custom ones.
func FindProfile(name string, custom []model.Settings) (model.Settings, bool) {
	for _, p := range model.Profiles {
		if p.Profile == name {
			return p, true
		}
	}
	for _, p := range custom {
		if p.Profile == name {
			return p, true
		}
	}
	return model.Settings{}, false
}
