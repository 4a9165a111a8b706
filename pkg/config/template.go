package config

import "fmt"

const yamlTemplate = `# gomdtask configuration
# See: https://github.com/yaklabco/gomdtask

# Keep a sidecar copy (FILE.gomdtask.bak) before rewriting a file.
backups:
  enabled: true
  mode: sidecar # sidecar or none

# Re-parse the document after a move and refuse to write if any task
# appeared, disappeared or changed state.
verify: true

# Output format for up/down: text, json or diff.
format: text

# Log level: debug, info, warn or error.
log_level: info

# Styled output: auto, always or never.
color: auto
`

const tomlTemplate = `# gomdtask configuration
# See: https://github.com/yaklabco/gomdtask

# Re-parse the document after a move and refuse to write if any task
# appeared, disappeared or changed state.
verify = true

# Output format for up/down: text, json or diff.
format = "text"

# Log level: debug, info, warn or error.
log_level = "info"

# Styled output: auto, always or never.
color = "auto"

# Keep a sidecar copy (FILE.gomdtask.bak) before rewriting a file.
[backups]
enabled = true
mode = "sidecar" # sidecar or none
`

// Template returns a commented starter configuration in enc. The template
// decodes to the same values as NewConfig.
func Template(enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingYAML:
		return []byte(yamlTemplate), nil
	case EncodingTOML:
		return []byte(tomlTemplate), nil
	default:
		return nil, fmt.Errorf("unknown config encoding %q", enc)
	}
}

// TemplateFileName returns the project config file name for enc.
func TemplateFileName(enc Encoding) string {
	if enc == EncodingTOML {
		return ".gomdtask.toml"
	}
	return ".gomdtask.yml"
}
