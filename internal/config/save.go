package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the config back to the file it was loaded from, in that file's
// format, and returns the path. A config that was not loaded from a file goes
// to config.yaml in the user's config directory.
func (c *Config) Save() (string, error) {
	path := c.path
	if path == "" {
		path = filepath.Join(ConfigDir(), "config.yaml")
	}
	if err := c.SaveTo(path); err != nil {
		return path, err
	}
	c.path = path
	return path, nil
}

// SaveTo writes the config to a specific path, as TOML when the path ends in
// .toml and YAML otherwise.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	marshal := yaml.Marshal
	if isTOML(path) {
		marshal = toml.Marshal
	}
	data, err := marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
