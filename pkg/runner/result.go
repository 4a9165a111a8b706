package runner

import (
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/textedit"
)

// Status summarises an outcome for reporting and exit codes.
type Status string

const (
	// StatusMoved means at least one move changed the document.
	StatusMoved Status = "moved"

	// StatusBlocked means the cursor was on a list line but nothing could move.
	StatusBlocked Status = "blocked"

	// StatusUnhandled means the cursor was not on a list line.
	StatusUnhandled Status = "unhandled"
)

// Outcome is the result of running one Request.
type Outcome struct {
	// Path is the file name, or "<stdin>".
	Path string

	Direction reorder.Direction

	// Results holds one entry per attempted move. The last entry is the one
	// that stopped the sequence when fewer than Count moves happened.
	Results []reorder.Result

	// Before and After are the document text around the whole sequence.
	Before string
	After  string

	// Cursor is the final byte offset; Line and Column are its 1-based position.
	Cursor int
	Line   int
	Column int

	// Diff is nil when nothing changed.
	Diff *textedit.Diff

	DryRun bool

	// Verified is set when the task inventory check ran.
	Verified bool

	// VerifyErr is the verification failure, if any.
	VerifyErr error

	// Written is set when the file on disk was replaced.
	Written bool

	// BackupPath is the backup written before the file was replaced.
	BackupPath string
}

// Moves returns the number of moves that changed the document.
func (o *Outcome) Moves() int {
	if o == nil {
		return 0
	}
	moves := 0
	for _, result := range o.Results {
		if result.Changed {
			moves++
		}
	}
	return moves
}

// Changed reports whether the document differs from the input.
func (o *Outcome) Changed() bool {
	return o.Moves() > 0
}

// Handled reports whether the first move found a list line under the cursor.
func (o *Outcome) Handled() bool {
	return o != nil && len(o.Results) > 0 && o.Results[0].Handled
}

// Status classifies the outcome.
func (o *Outcome) Status() Status {
	switch {
	case o.Changed():
		return StatusMoved
	case o.Handled():
		return StatusBlocked
	default:
		return StatusUnhandled
	}
}

// Reason returns why the sequence stopped, or "" if every move succeeded.
func (o *Outcome) Reason() reorder.Reason {
	if o == nil || len(o.Results) == 0 {
		return reorder.ReasonNone
	}
	return o.Results[len(o.Results)-1].Reason
}

// Last returns the final move result.
func (o *Outcome) Last() reorder.Result {
	if o == nil || len(o.Results) == 0 {
		return reorder.Result{}
	}
	return o.Results[len(o.Results)-1]
}
