package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomdtask/internal/configloader"
	"github.com/yaklabco/gomdtask/internal/logging"
	"github.com/yaklabco/gomdtask/pkg/config"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

// session is the resolved state a command runs with.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	loaded *configloader.LoadResult
	logger *log.Logger
	color  string
}

// newSession loads configuration for a command working on path and attaches
// a logger to the command context. Project config discovery starts in the
// directory of path, or the current directory for stdin.
func newSession(cmd *cobra.Command, globals *globalFlags, path string, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if path != "" && path != runner.StdinPath {
		workDir = filepath.Dir(absPath(path))
	}

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(globals.color)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, configError(fmt.Errorf("load configuration: %w", err))
	}

	level := loaded.Config.LogLevel
	if globals.debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}

	return &session{
		ctx:    logging.WithLogger(ctx, logger),
		cfg:    loaded.Config,
		loaded: loaded,
		logger: logger,
		color:  string(loaded.Config.Color),
	}, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// resolveInput picks the document source from the positional arguments.
// "-" or a missing FILE with piped stdin selects stdin.
func resolveInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if stdinPiped(cmd.InOrStdin()) {
		return runner.StdinPath, nil
	}
	return "", usageError(errMissingFile)
}

// stdinPiped reports whether in is something other than an interactive
// terminal.
func stdinPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(f.Fd()))
}

func readStdin(cmd *cobra.Command) ([]byte, error) {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, ioError(fmt.Errorf("read stdin: %w", err))
	}
	return content, nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
