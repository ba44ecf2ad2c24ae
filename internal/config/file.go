package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFile reads and applies a YAML config file. A missing file is an error:
// discovery only hands over paths that exist, so by the time we are here the
// path was either discovered or explicitly requested, and a typoed explicit
// path must not silently fall back to defaults.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
