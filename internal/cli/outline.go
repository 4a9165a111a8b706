package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtask/pkg/document"
	"github.com/yaklabco/gomdtask/pkg/fsutil"
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/reporter"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

type outlineFlags struct {
	line    int
	format  string
	compact bool
}

func newOutlineCommand(globals *globalFlags) *cobra.Command {
	flags := &outlineFlags{}

	cmd := &cobra.Command{
		Use:   "outline [FILE]",
		Short: "Show how each line is classified for moves",
		Long: `Print one row per line with its kind, indentation, parent item, section
heading and the block that would move from it. Useful to see why a move was
blocked.

Examples:
  gomdtask outline TODO.md
  gomdtask outline TODO.md --line 12      # Mark line 12 and its block
  gomdtask outline TODO.md --format json`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, globals, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "line to mark as the cursor")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "single-line JSON output")

	return cmd
}

func runOutline(cmd *cobra.Command, args []string, globals *globalFlags, flags *outlineFlags) error {
	path, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd, globals, path, nil)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return usageError(err)
	}

	var content []byte
	displayPath := path
	if path == runner.StdinPath {
		displayPath = "<stdin>"
		if content, err = readStdin(cmd); err != nil {
			return err
		}
	} else if content, _, err = fsutil.ReadFile(sess.ctx, absPath(path)); err != nil {
		return err
	}

	outline := reorder.NewOutline(document.New(string(content)))
	if flags.line < 0 || flags.line > outline.LineCount() {
		return usageError(fmt.Errorf("%w: line %d", runner.ErrInvalidPosition, flags.line))
	}

	rep, err := reporter.NewOutline(reporter.Options{
		Writer:    cmd.OutOrStdout(),
		Format:    format,
		Color:     sess.color,
		Compact:   flags.compact,
		TermWidth: terminalWidth(cmd.OutOrStdout()),
	})
	if err != nil {
		return usageError(err)
	}

	if err := rep.ReportOutline(sess.ctx, displayPath, outline.Entries(), flags.line); err != nil {
		return ioError(fmt.Errorf("write outline: %w", err))
	}
	return nil
}
