package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdtask/internal/ui/pretty"
)

// helpStyles are the lipgloss styles for command help.
type helpStyles struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	dim        lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, subcommand: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// helpFormatter renders styled help and usage for a command tree.
type helpFormatter struct {
	styles helpStyles
}

func newHelpFormatter(colorMode string, writer io.Writer) *helpFormatter {
	return &helpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *helpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    h.styles.command.Render,
		"heading":    h.styles.heading.Render,
		"subcommand": h.styles.subcommand.Render,
		"dim":        h.styles.dim.Render,
		"flags":      h.renderFlags,
		"pad":        pad,
		"trimRight":  trimRightLines,
	}
}

// apply installs the styled help and usage functions on cmd. Subcommands
// inherit them.
func (h *helpFormatter) apply(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

type flagRow struct {
	names string
	usage string
}

// renderFlags lays out flags in two aligned columns: names with the value
// type, then the usage text with its default.
func (h *helpFormatter) renderFlags(flags *pflag.FlagSet) string {
	var rows []flagRow
	width := 0

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		valueName, usage := pflag.UnquoteUsage(f)

		names := "    "
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", "
		}
		names += "--" + f.Name
		plainNames := names
		if valueName != "" {
			plainNames += " " + valueName
		}

		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}

		rows = append(rows, flagRow{names: plainNames, usage: usage})
		width = max(width, len(plainNames))
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, "  "+h.styleFlagNames(pad(row.names, width))+"   "+row.usage)
	}
	return strings.Join(lines, "\n")
}

// styleFlagNames colours the flag tokens and dims the value type.
func (h *helpFormatter) styleFlagNames(names string) string {
	trailing := len(names) - len(strings.TrimRight(names, " "))
	leading := len(names) - len(strings.TrimLeft(names, " "))

	tokens := strings.Fields(names)
	for i, token := range tokens {
		if strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.flag.Render(strings.TrimSuffix(token, ","))
			if strings.HasSuffix(token, ",") {
				tokens[i] += ","
			}
			continue
		}
		tokens[i] = h.styles.dim.Render(token)
	}
	return strings.Repeat(" ", leading) + strings.Join(tokens, " ") + strings.Repeat(" ", trailing)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimRightLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
