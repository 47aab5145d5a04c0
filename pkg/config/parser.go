package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseConfig reads and parses a configuration file
func ParseConfig(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Load validates configFile against the schema, parses it and checks
// cross references
func Load(configFile string) (*Config, error) {
	if err := Validate(configFile); err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(configFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}

	return cfg, nil
}
