package model

// AppConfig holds user preferences persisted between runs.
type AppConfig struct {
	Settings Settings `json:"settings"` // Placement defaults applied before command-line flags

	Output       string   `json:"output"`        // Default PNG path
	RecentInputs []string `json:"recent_inputs"` // Most recent first
}

// maxRecentInputs bounds AppConfig.RecentInputs.
const maxRecentInputs = 10

// DefaultAppConfig returns an AppConfig populated with the dense profile.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Settings:     DefaultSettings(),
		Output:       "result.png",
		RecentInputs: []string{},
	}
}

// AddRecentInput moves path to the front of the recent list.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentInputs {
		recent = recent[:maxRecentInputs]
	}
	c.RecentInputs = recent
}
