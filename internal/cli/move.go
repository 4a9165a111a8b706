package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtask/internal/logging"
	"github.com/yaklabco/gomdtask/pkg/config"
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/reporter"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

type moveFlags struct {
	line      int
	column    int
	offset    int
	count     int
	format    string
	dryRun    bool
	noBackup  bool
	noVerify  bool
	force     bool
	noContext bool
	compact   bool
}

func newMoveCommand(globals *globalFlags, name string) *cobra.Command {
	dir, err := reorder.ParseDirection(name)
	if err != nil {
		panic(err)
	}
	flags := &moveFlags{}

	cmd := &cobra.Command{
		Use:   name + " [FILE]",
		Short: fmt.Sprintf("Move the list item at the cursor %s", name),
		Long:  fmt.Sprintf(moveLongDescription, name, name, name, name, name),
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, args, globals, flags, dir)
		},
	}

	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "cursor line (1-based)")
	cmd.Flags().IntVarP(&flags.column, "column", "c", 0, "cursor column (1-based, default 1)")
	cmd.Flags().IntVar(&flags.offset, "offset", runner.OffsetUnset, "cursor byte offset (overrides --line)")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 1, "repeat the move up to N times")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, json, diff")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the result without writing the file")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "do not keep a backup of the previous content")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "skip the task set check before writing")
	cmd.Flags().BoolVar(&flags.force, "force", false, "write even when the task set check fails")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit the source line in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "single-line JSON output")

	return cmd
}

const moveLongDescription = `Move the list item under the cursor %s by one sibling.

The item moves together with every line nested beneath it. A top-level item
at the edge of its section moves across the neighbouring heading instead.
When nothing can move the file is left untouched.

Reads FILE, or stdin when FILE is "-" or omitted with piped input. Results
from stdin are written to stdout.

Examples:
  gomdtask %s TODO.md --line 12            # Move the item on line 12
  gomdtask %s TODO.md --offset 348         # Locate the cursor by byte offset
  gomdtask %s TODO.md -l 12 -n 3 --dry-run # Preview three moves
  cat TODO.md | gomdtask %s -l 4 > out.md  # Filter stdin to stdout`

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func runMove(cmd *cobra.Command, args []string, globals *globalFlags, flags *moveFlags, dir reorder.Direction) error {
	if !cmd.Flags().Changed("line") && flags.offset == runner.OffsetUnset {
		return usageError(errMissingPosition)
	}

	path, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd, globals, path, moveConfig(cmd, flags))
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return usageError(fmt.Errorf("invalid format: %w", err))
	}

	req := runner.NewRequest(path, dir, sess.cfg)
	req.Line = flags.line
	req.Column = flags.column
	req.Offset = flags.offset
	req.Count = flags.count
	req.DryRun = flags.dryRun
	req.Force = flags.force
	if req.FromStdin() {
		if req.Content, err = readStdin(cmd); err != nil {
			return err
		}
	} else {
		req.Path = absPath(path)
	}

	outcome, runErr := runner.New().Run(sess.ctx, req)
	if outcome == nil {
		return runErr
	}
	if err := reportMove(cmd, sess, outcome, format, flags, req.FromStdin(), runErr); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if !outcome.Handled() {
		return &ExitError{Code: ExitUnhandled, Err: ErrNotListItem, Silent: true}
	}
	return nil
}

// moveConfig collects the flags that override configuration values.
func moveConfig(cmd *cobra.Command, flags *moveFlags) *config.Config {
	cfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if flags.noBackup {
		cfg.Backups.Enabled = config.Bool(false)
	}
	if flags.noVerify {
		cfg.Verify = config.Bool(false)
	}
	return cfg
}

// reportMove prints the outcome. For stdin the text report goes to stderr
// so that stdout carries only the rewritten document.
func reportMove(
	cmd *cobra.Command,
	sess *session,
	outcome *runner.Outcome,
	format reporter.Format,
	flags *moveFlags,
	stdin bool,
	runErr error,
) error {
	out := cmd.OutOrStdout()
	if stdin && format == reporter.FormatText {
		out = cmd.ErrOrStderr()
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          out,
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          format,
		Color:           sess.color,
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		Compact:         flags.compact,
		IncludeDocument: stdin && runErr == nil,
		TermWidth:       terminalWidth(out),
	})
	if err != nil {
		return usageError(err)
	}

	if _, err := rep.Report(sess.ctx, outcome); err != nil {
		return ioError(fmt.Errorf("write report: %w", err))
	}

	if stdin && format == reporter.FormatText && runErr == nil {
		if _, err := io.WriteString(cmd.OutOrStdout(), outcome.After); err != nil {
			return ioError(fmt.Errorf("write stdout: %w", err))
		}
	}

	sess.logger.Debug("move finished",
		logging.FieldPath, outcome.Path,
		logging.FieldDirection, outcome.Direction,
		logging.FieldCount, outcome.Moves(),
		logging.FieldReason, outcome.Reason(),
	)
	return nil
}
