package config

import (
	"encoding/json"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ParseTOML parses TOML configuration data into a Config struct.
// The data is expected to have a top-level [recache] table.
func ParseTOML(data []byte) (*Config, error) {
	var wrapper struct {
		Recache Config `toml:"recache"`
	}
	if err := toml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Recache, nil
}

// ParseYAML parses YAML configuration data into a Config struct.
// The data is expected to have a top-level recache key.
func ParseYAML(data []byte) (*Config, error) {
	var wrapper struct {
		Recache Config `yaml:"recache"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Recache, nil
}

// ParseJSON parses JSON configuration data into a Config struct.
// The data is expected to have a top-level "recache" key.
func ParseJSON(data []byte) (*Config, error) {
	var wrapper struct {
		Recache Config `json:"recache"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Recache, nil
}
