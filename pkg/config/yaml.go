package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoding is a configuration file syntax.
type Encoding string

const (
	EncodingYAML Encoding = "yaml"
	EncodingTOML Encoding = "toml"
)

// EncodingForPath picks an encoding from a file extension. Anything that is
// not .toml is read as YAML.
func EncodingForPath(path string) Encoding {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return EncodingTOML
	}
	return EncodingYAML
}

// Decode parses data in the given encoding. Unknown keys are rejected.
func Decode(data []byte, enc Encoding) (*Config, error) {
	switch enc {
	case EncodingTOML:
		return FromTOML(data)
	case EncodingYAML:
		return FromYAML(data)
	default:
		return nil, fmt.Errorf("unknown config encoding %q", enc)
	}
}

// Encode serializes c in the given encoding.
func (c *Config) Encode(enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingTOML:
		return c.ToTOML()
	case EncodingYAML:
		return c.ToYAML()
	default:
		return nil, fmt.Errorf("unknown config encoding %q", enc)
	}
}

// ToYAML serializes the configuration with two-space indentation.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML. An empty document yields an
// empty Config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}
