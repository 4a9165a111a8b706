package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdtask/internal/ui/pretty"
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts         Options
	styles       *pretty.Styles
	colorEnabled bool
	bw           *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:         opts,
		styles:       pretty.NewStyles(colorEnabled),
		colorEnabled: colorEnabled,
		bw:           bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. A dry run also prints the pending diff.
func (r *TextReporter) Report(_ context.Context, outcome *runner.Outcome) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if outcome == nil {
		return 0, nil
	}

	fmt.Fprint(r.bw, r.styles.FormatOutcome(outcome, r.opts.ShowContext))

	if outcome.DryRun && outcome.Diff.HasChanges() {
		fmt.Fprintln(r.bw)
		writeDiff(r.bw, r.styles, outcome.Diff, r.opts.WorkingDir)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(outcome))
	}

	return outcome.Moves(), nil
}

// ReportOutline implements OutlineReporter.
func (r *TextReporter) ReportOutline(_ context.Context, path string, entries []reorder.Entry, cursorLine int) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintln(r.bw, r.styles.FilePath.Render(relativePath(path, r.opts.WorkingDir)))
	formatter := pretty.NewTableFormatter(r.styles, r.colorEnabled, r.opts.TermWidth)
	fmt.Fprint(r.bw, formatter.FormatOutline(entries, cursorLine))
	return nil
}
