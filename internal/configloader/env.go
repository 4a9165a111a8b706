package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtask/pkg/config"
)

// EnvPrefix is the prefix of every gomdtask environment variable.
const EnvPrefix = "GOMDTASK_"

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // read-only lookup table
var envVars = map[string]envVar{
	"VERIFY": {
		description: "Check the task set before writing: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := parseBool(value)
			cfg.Verify = b
			return err
		},
	},
	"FORMAT": {
		description: "Output format: text, json or diff",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"LOG_LEVEL": {
		description: "Log level: debug, info, warn or error",
		apply: func(cfg *config.Config, value string) error {
			cfg.LogLevel = value
			return nil
		},
	},
	"COLOR": {
		description: "Styled output: auto, always or never",
		apply: func(cfg *config.Config, value string) error {
			cfg.Color = config.ColorMode(value)
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		description: "Write a sidecar backup before rewriting: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := parseBool(value)
			cfg.Backups.Enabled = b
			return err
		},
	},
	"BACKUPS_MODE": {
		description: "Backup mode: sidecar or none",
		apply: func(cfg *config.Config, value string) error {
			cfg.Backups.Mode = value
			return nil
		},
	},
}

func parseBool(value string) (*bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("expected true/false/1/0, got %q", value)
	}
	return config.Bool(b), nil
}

// LoadFromEnv applies GOMDTASK_* overrides to cfg. Empty variables are
// ignored. lookup defaults to os.LookupEnv when nil.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, suffix := range sortedEnvSuffixes() {
		name := EnvPrefix + suffix
		value, ok := lookup(name)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		vars[EnvPrefix+suffix] = v.description
	}
	return vars
}
