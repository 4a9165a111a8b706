// Package config defines the gomdtask configuration types.
// The types are plain data; discovery and merging live in internal/configloader.
package config

// OutputFormat selects how move results are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// BackupsConfig controls the copy kept of a file before it is rewritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"    toml:"mode,omitempty"`
}

// Config is the root configuration. Unset fields are nil or empty so that
// layered files only override what they name.
type Config struct {
	// Backups configures sidecar backups written before a file changes.
	Backups BackupsConfig `yaml:"backups,omitempty" toml:"backups,omitempty"`

	// Verify re-parses both documents after a move and refuses to write when
	// their task sets differ.
	Verify *bool `yaml:"verify,omitempty" toml:"verify,omitempty"`

	// Format is the default output format for move commands.
	Format OutputFormat `yaml:"format,omitempty" toml:"format,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// Color selects styled output: auto, always or never.
	Color ColorMode `yaml:"color,omitempty" toml:"color,omitempty"`
}

// NewConfig returns a Config with every field set to its default.
func NewConfig() *Config {
	return &Config{
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    BackupModeSidecar,
		},
		Verify:   Bool(true),
		Format:   FormatText,
		LogLevel: "info",
		Color:    ColorAuto,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BackupsEnabled reports whether a backup should be written before a file
// is replaced.
func (c *Config) BackupsEnabled() bool {
	if c == nil || c.Backups.Mode == BackupModeNone {
		return false
	}
	return c.Backups.Enabled == nil || *c.Backups.Enabled
}

// VerifyEnabled reports whether moves are checked before they are written.
func (c *Config) VerifyEnabled() bool {
	return c == nil || c.Verify == nil || *c.Verify
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Backups.Enabled != nil {
		clone.Backups.Enabled = Bool(*c.Backups.Enabled)
	}
	if c.Verify != nil {
		clone.Verify = Bool(*c.Verify)
	}
	return &clone
}
