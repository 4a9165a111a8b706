// Package reporter renders move outcomes and outlines in text, JSON and
// unified diff form.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

// Reporter formats and writes move outcomes.
type Reporter interface {
	// Report writes formatted output for the given outcome.
	// It returns the number of moves reported and any write errors.
	Report(ctx context.Context, outcome *runner.Outcome) (int, error)
}

// OutlineReporter formats and writes a document outline.
type OutlineReporter interface {
	// ReportOutline writes entries for path. cursorLine, when non-zero, is
	// highlighted.
	ReportOutline(ctx context.Context, path string, entries []reorder.Entry, cursorLine int) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// NewOutline creates an OutlineReporter. The diff format has no outline
// rendering and is rejected.
func NewOutline(opts Options) (OutlineReporter, error) {
	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("format %s cannot render an outline; use text or json", opts.Format)
	}
}

func normalize(opts Options) (Options, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if !opts.Format.IsValid() {
		return opts, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return opts, nil
}
