// Package config loads the dungeon tool configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"blobdungeon/pkg/engine/logging"
	"blobdungeon/pkg/game/dungeon"
)

// Environment variables read by Load
const (
	EnvConfig   = "BLOBDUNGEON_CONFIG"
	EnvLogLevel = "BLOBDUNGEON_LOG_LEVEL"
	EnvSeed     = "BLOBDUNGEON_SEED"
)

// Config is the root of the configuration file
type Config struct {
	// Seed selects the random dungeon. Zero means load Layout instead.
	Seed int64 `yaml:"seed"`
	// Layout is a layout file to load when Seed is zero
	Layout  string         `yaml:"layout"`
	Dungeon dungeon.Config `yaml:"dungeon"`
	Log     LogConfig      `yaml:"log"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Dungeon: dungeon.DefaultConfig(),
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// BLOBDUNGEON_CONFIG, and to the defaults alone if that is unset too.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if seed := os.Getenv(EnvSeed); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	return nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Dungeon.Validate(); err != nil {
		return fmt.Errorf("dungeon: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}
