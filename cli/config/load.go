package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a hallmark.yaml defaults file, expands environment variables,
// and unmarshals into a Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("hallmark config not found at %s", path)
		}
		return nil, fmt.Errorf("read hallmark config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse hallmark config %s: %w", path, err)
	}

	return &cfg, nil
}
