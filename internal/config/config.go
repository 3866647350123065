// Package config provides configuration management for acdemo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/cobra-autocomplete/pkg/autocomplete"
)

// Config holds the acdemo configuration.
type Config struct {
	// Shell is the preferred shell, consulted before process detection.
	Shell   string `yaml:"shell,omitempty"`
	NoColor bool   `yaml:"no_color,omitempty"`
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if c.Shell == "" {
		return nil
	}
	if _, err := autocomplete.ParseShell(c.Shell); err != nil {
		return fmt.Errorf("shell %q: %w", c.Shell, err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if shell := os.Getenv("ACDEMO_SHELL"); shell != "" {
		c.Shell = shell
	}
	if v := os.Getenv("ACDEMO_NO_COLOR"); v != "" {
		if noColor, err := strconv.ParseBool(v); err == nil {
			c.NoColor = noColor
		}
	}
}

// Detector returns the shell detector honouring the configured preference.
func (c *Config) Detector() autocomplete.Detector {
	return autocomplete.ChainDetector{
		autocomplete.StaticDetector(c.Shell),
		autocomplete.DefaultDetector(),
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "acdemo", "config.yml")
	}

	// Fall back to ~/.config/acdemo/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".acdemo", "config.yml")
	}

	return filepath.Join(home, ".config", "acdemo", "config.yml")
}

// PathOrDefault returns path, or DefaultConfigPath when path is empty.
func PathOrDefault(path string) string {
	if path == "" {
		return DefaultConfigPath()
	}
	return path
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
