package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// Config holds the settings consumed by the build, export and generate steps.
type Config struct {
	StartWord   string `json:"start_word"`
	Length      int    `json:"length"`
	Seed        uint64 `json:"seed"`
	Workers     int    `json:"workers"`
	SkipLicense bool   `json:"skip_license"`
	LogLevel    string `json:"log_level"`
	LogFile     string `json:"log_file"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		StartWord:   "o",
		Length:      50,
		Seed:        0,
		Workers:     1,
		SkipLicense: false,
		LogLevel:    "info",
		LogFile:     "markov_chain.log",
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if errors.Is(err, os.ErrNotExist) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Warn instead of failing, the defaults are still usable.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate reports settings that no command can run with.
func (c *Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("length must be a positive integer, got %d", c.Length)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be a positive integer, got %d", c.Workers)
	}
	return nil
}
