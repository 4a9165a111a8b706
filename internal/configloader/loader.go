// Package configloader resolves the effective gomdtask configuration from
// system, user, project and explicit files, the environment and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gomdtask/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current directory.
	WorkingDir string

	// ExplicitPath is the file named by --config. It is loaded after the
	// discovered files and must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv resolves environment variables. Defaults to os.LookupEnv.
	LookupEnv LookupFunc

	// CLIConfig holds values from command-line flags, the highest layer.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	Paths *ConfigPaths

	// LoadedFrom lists the files that were read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings.
	Warnings []string
}

// Load resolves the final configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMDTASK_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomdtask.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomdtask/config.yaml)
//  6. System config (/etc/gomdtask/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	paths, err := DiscoverPaths(ctx, opts.WorkingDir, lookup)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if err := collect(ValidateWithFile(fileCfg, layer.path), result); err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreProjectConfig {
		for _, shadowed := range paths.Shadowed {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ignoring %s; %s takes precedence", shadowed, paths.Project))
		}
	}

	if !opts.IgnoreEnv {
		envCfg := &config.Config{}
		if err := LoadFromEnv(envCfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		if err := collect(ValidateWithFile(envCfg, "environment"), result); err != nil {
			return nil, err
		}
		cfg = merge(cfg, envCfg)
	}

	cfg = merge(cfg, opts.CLIConfig)
	if validation := Validate(cfg); !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result.Config = cfg
	return result, nil
}

// collect returns the first validation error, or records the warnings.
func collect(validation *ValidationResult, result *LoadResult) error {
	if !validation.Valid() {
		return &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	return nil
}

// LoadFile reads one configuration file. The encoding follows the extension.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Decode(content, config.EncodingForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
