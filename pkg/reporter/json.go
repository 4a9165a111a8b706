package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

// jsonVersion is the schema version of JSON output.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure for a move.
type JSONOutput struct {
	Version     string           `json:"version"`
	Path        string           `json:"path"`
	Status      runner.Status    `json:"status"`
	Direction   string           `json:"direction"`
	Moves       int              `json:"moves"`
	Reason      reorder.Reason   `json:"reason,omitempty"`
	Cursor      JSONCursor       `json:"cursor"`
	Results     []reorder.Result `json:"results"`
	DryRun      bool             `json:"dryRun,omitempty"`
	Written     bool             `json:"written"`
	Backup      string           `json:"backup,omitempty"`
	Verified    bool             `json:"verified"`
	VerifyError string           `json:"verifyError,omitempty"`
	Diff        string           `json:"diff,omitempty"`
	Document    *string          `json:"document,omitempty"`
}

// JSONCursor is the final cursor position.
type JSONCursor struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// JSONOutline is the top-level JSON structure for an outline.
type JSONOutline struct {
	Version string          `json:"version"`
	Path    string          `json:"path"`
	Cursor  int             `json:"cursorLine,omitempty"`
	Lines   []reorder.Entry `json:"lines"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, outcome *runner.Outcome) (int, error) {
	if outcome == nil {
		return 0, nil
	}

	output := r.buildOutput(outcome)
	if err := r.encode(output); err != nil {
		return 0, err
	}
	return output.Moves, nil
}

// ReportOutline implements OutlineReporter.
func (r *JSONReporter) ReportOutline(_ context.Context, path string, entries []reorder.Entry, cursorLine int) error {
	if entries == nil {
		entries = []reorder.Entry{}
	}
	return r.encode(&JSONOutline{
		Version: jsonVersion,
		Path:    path,
		Cursor:  cursorLine,
		Lines:   entries,
	})
}

func (r *JSONReporter) encode(value any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(outcome *runner.Outcome) *JSONOutput {
	output := &JSONOutput{
		Version:   jsonVersion,
		Path:      outcome.Path,
		Status:    outcome.Status(),
		Direction: outcome.Direction.String(),
		Moves:     outcome.Moves(),
		Reason:    outcome.Reason(),
		Cursor: JSONCursor{
			Offset: outcome.Cursor,
			Line:   outcome.Line,
			Column: outcome.Column,
		},
		Results:  outcome.Results,
		DryRun:   outcome.DryRun,
		Written:  outcome.Written,
		Backup:   outcome.BackupPath,
		Verified: outcome.Verified,
	}

	if output.Results == nil {
		output.Results = []reorder.Result{}
	}
	if outcome.VerifyErr != nil {
		output.VerifyError = outcome.VerifyErr.Error()
	}
	if outcome.Diff.HasChanges() {
		output.Diff = outcome.Diff.String()
	}
	if r.opts.IncludeDocument {
		document := outcome.After
		output.Document = &document
	}

	return output
}
