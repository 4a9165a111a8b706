package configloader

import "github.com/yaklabco/gomdtask/pkg/config"

// merge layers override on top of base. Empty strings and nil pointers in
// override leave base untouched, so an explicit false survives.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	result := base.Clone()
	if override == nil {
		return result
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Verify != nil {
		result.Verify = config.Bool(*override.Verify)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	return result
}

// MergeAll merges configs in order; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
