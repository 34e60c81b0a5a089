package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// configFileNames lists the supported config file names in discovery order.
var configFileNames = []string{
	"recache.toml",
	"recache.yaml",
	"recache.yml",
	"recache.json",
}

// Format represents a configuration file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("no configuration file found")

// Load loads configuration from the specified file path. If configPath is
// empty, it discovers a config file in the current directory. Environment
// variable overrides are applied after loading the file.
func Load(configPath string) (*Config, error) {
	var err error

	if configPath == "" {
		configPath, err = Discover()
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return LoadWithDefaults()
			}
			return nil, err
		}
	}

	cfg, err := LoadSingleConfig(configPath)
	if err != nil {
		return nil, err
	}

	merged := MergeConfigs(DefaultConfig(), cfg)
	if err := ApplyEnvOverrides(merged); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return merged, nil
}

// Discover searches the current directory for a configuration file in the
// names listed by configFileNames, returning the first match.
func Discover() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for _, name := range configFileNames {
		path := filepath.Join(cwd, name)
		if fileExists(path) {
			return path, nil
		}
	}

	return "", ErrConfigNotFound
}

// LoadWithDefaults returns the default configuration with environment
// variable overrides applied, used when no config file is found.
func LoadWithDefaults() (*Config, error) {
	cfg := DefaultConfig()
	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return cfg, nil
}

// LoadSingleConfig loads and parses a single config file without merging
// defaults or applying environment overrides.
func LoadSingleConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	switch formatFromPath(configPath) {
	case FormatTOML:
		return ParseTOML(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", configPath)
	}
}

// formatFromPath determines the config format from a file path's extension.
func formatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// fileExists returns true if path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
