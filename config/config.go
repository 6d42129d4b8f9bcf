// Package config persists user preferences under ~/.config/rgbseq.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ArtNetConfig names the Art-Net node frames are sent to.
type ArtNetConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Host    string `json:"host,omitempty"`
}

// LaunchpadConfig controls the pad controller mirror.
type LaunchpadConfig struct {
	Mirror bool `json:"mirror,omitempty"`
}

// UIConfig carries preview state worth restoring between runs.
type UIConfig struct {
	LastAlgorithm string `json:"lastAlgorithm,omitempty"`
	LastGroup     string `json:"lastGroup,omitempty"`
	PalettePath   string `json:"palettePath,omitempty"`
}

// Config is everything rgbseq persists between runs.
type Config struct {
	RigPath    string          `json:"rigPath,omitempty"`
	Group      string          `json:"group,omitempty"`
	GridWidth  int             `json:"gridWidth,omitempty"`
	GridHeight int             `json:"gridHeight,omitempty"`
	TickMs     int             `json:"tickMs,omitempty"`
	DebugLog   string          `json:"debugLog,omitempty"`
	ArtNet     ArtNetConfig    `json:"artnet,omitempty"`
	Launchpad  LaunchpadConfig `json:"launchpad,omitempty"`
	UI         UIConfig        `json:"ui,omitempty"`
}

// DefaultConfig is the out-of-the-box setup: an 8x8 virtual grid,
// mirrored to a Launchpad when one shows up.
func DefaultConfig() *Config {
	return &Config{
		Group:      "grid",
		GridWidth:  8,
		GridHeight: 8,
		TickMs:     20,
		Launchpad:  LaunchpadConfig{Mirror: true},
	}
}

// Tick returns the preview clock period.
func (c *Config) Tick() time.Duration {
	if c.TickMs <= 0 {
		return 20 * time.Millisecond
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

// ConfigDir is ~/.config/rgbseq.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rgbseq"), nil
}

// ConfigPath is the config.json inside ConfigDir.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the user config, or hands back defaults when none has
// been written yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads one config file. A missing file is not an error;
// fields absent from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to its standard path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes indented JSON, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
