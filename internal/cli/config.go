package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtask/internal/configloader"
	"github.com/yaklabco/gomdtask/internal/logging"
	"github.com/yaklabco/gomdtask/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

type configInitFlags struct {
	force  bool
	format string
	output string
}

func newConfigCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect configuration",
		Long: `Configuration is layered. Later layers override earlier ones:

  /etc/gomdtask/config.yaml             system
  $XDG_CONFIG_HOME/gomdtask/config.yaml user
  .gomdtask.yml                         project, searched upward
  --config PATH                         explicit file
  GOMDTASK_* variables                  environment
  command-line flags`,
		Args: usageArgs(cobra.NoArgs),
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(globals))
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	flags := &configInitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented project configuration file",
		Long: `Create .gomdtask.yml (or .gomdtask.toml) in the current directory with every
setting at its default.

Examples:
  gomdtask config init
  gomdtask config init --format toml
  gomdtask config init --output docs/.gomdtask.yml`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "yaml", "file syntax: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .gomdtask.yml or .gomdtask.toml)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *configInitFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	enc := config.Encoding(flags.format)
	if enc != config.EncodingYAML && enc != config.EncodingTOML {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = config.TemplateFileName(enc)
	}
	target := absPath(outputPath)

	if _, err := os.Stat(target); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.Template(enc)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ioError(fmt.Errorf("create directory: %w", err))
	}
	if err := os.WriteFile(target, content, configFilePermissions); err != nil {
		return ioError(fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

func newConfigShowCommand(globals *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print the effective configuration",
		Long: `Print the configuration after all layers are merged, preceded by the files
it was read from. With FILE, project config discovery starts next to FILE.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runConfigShow(cmd, globals, path, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output syntax: yaml or toml")

	return cmd
}

func runConfigShow(cmd *cobra.Command, globals *globalFlags, path, format string) error {
	enc := config.Encoding(format)
	if enc != config.EncodingYAML && enc != config.EncodingTOML {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", format))
	}

	sess, err := newSession(cmd, globals, path, nil)
	if err != nil {
		return err
	}

	content, err := sess.cfg.Encode(enc)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sess.loaded.LoadedFrom) == 0 {
		fmt.Fprintln(out, "# defaults (no configuration files found)")
	}
	for _, file := range sess.loaded.LoadedFrom {
		fmt.Fprintf(out, "# loaded from %s\n", file)
	}
	if _, err := out.Write(content); err != nil {
		return ioError(fmt.Errorf("write configuration: %w", err))
	}
	return nil
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables that override configuration",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			names := make([]string, 0, len(vars))
			width := 0
			for name := range vars {
				names = append(names, name)
				width = max(width, len(name))
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, vars[name])
			}
		},
	}
}
