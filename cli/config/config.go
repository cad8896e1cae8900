package config

import (
	"encoding/hex"
	"fmt"
)

// Config represents a hallmark.yaml configuration file.
// All values are optional and act as defaults for hallmark command flags.
// CLI flags always override config values.
type Config struct {
	Seed       string      `yaml:"seed"`
	ItemLength int         `yaml:"item_length"`
	Bits       int         `yaml:"bits"`
	Evaluator  string      `yaml:"evaluator"`
	Workers    int         `yaml:"workers"`
	Ceiling    int         `yaml:"ceiling"`
	Store      StoreConfig `yaml:"store"`
}

// StoreConfig holds fingerprint store defaults from the config file.
type StoreConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// SeedBytes decodes the hex-encoded seed. An empty string is the empty
// seed, which defines a valid fixed stream.
func (c *Config) SeedBytes() ([]byte, error) {
	if c.Seed == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed hex %q: %w", c.Seed, err)
	}
	return seed, nil
}
