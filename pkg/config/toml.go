package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ToTOML serializes the configuration as TOML.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// FromTOML parses a configuration from TOML.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	return cfg, nil
}
