package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Write serializes cfg under a top-level "recache" section, choosing the
// format from path's extension, and returns the encoded bytes for the
// caller to write. It always rewrites the whole file: the init wizard
// only ever produces a fresh config, it never edits an existing one in
// place.
func Write(path string, cfg *Config) ([]byte, error) {
	switch formatFromPath(path) {
	case FormatYAML:
		return marshalYAML(cfg)
	case FormatJSON:
		return marshalJSON(cfg)
	default:
		return marshalTOML(cfg)
	}
}

func marshalTOML(cfg *Config) ([]byte, error) {
	wrapper := struct {
		Recache *Config `toml:"recache"`
	}{Recache: cfg}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(wrapper); err != nil {
		return nil, fmt.Errorf("failed to encode toml config: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalYAML(cfg *Config) ([]byte, error) {
	wrapper := struct {
		Recache *Config `yaml:"recache"`
	}{Recache: cfg}

	out, err := yaml.Marshal(wrapper)
	if err != nil {
		return nil, fmt.Errorf("failed to encode yaml config: %w", err)
	}
	return out, nil
}

func marshalJSON(cfg *Config) ([]byte, error) {
	wrapper := struct {
		Recache *Config `json:"recache"`
	}{Recache: cfg}

	out, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json config: %w", err)
	}
	return append(out, '\n'), nil
}
