package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdtask/internal/logging"
	"github.com/yaklabco/gomdtask/pkg/document"
	"github.com/yaklabco/gomdtask/pkg/fsutil"
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/textedit"
	"github.com/yaklabco/gomdtask/pkg/verify"
)

// VerifyFunc compares a document before and after a move.
type VerifyFunc func(ctx context.Context, before, after []byte) error

// Runner executes move requests.
type Runner struct {
	// Verify checks the rewritten document. Defaults to verify.Check.
	Verify VerifyFunc
}

// New creates a Runner that verifies with verify.Check.
func New() *Runner {
	return &Runner{Verify: verify.Check}
}

// Run resolves the cursor, applies the move req.Count times and, for file
// requests that changed the document, writes the result.
//
// The steps are:
//  1. Read the file (or take req.Content for stdin) and remember its hash.
//  2. Resolve the cursor from Offset, or Line and Column.
//  3. Move repeatedly until Count moves are done or one is blocked.
//  4. Verify the task inventory, unless disabled.
//  5. Build the diff.
//  6. Unless dry-run or stdin: back up, then replace the file atomically,
//     failing if it changed on disk since step 1.
//
// A verification failure returns the outcome together with an error that
// wraps verify.ErrTaskSetChanged; with req.Force the write goes ahead and
// the failure is recorded in Outcome.VerifyErr instead.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	logger := logging.FromContext(ctx)

	if req.Count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, req.Count)
	}

	content, info, err := r.load(ctx, req)
	if err != nil {
		return nil, err
	}

	doc := document.New(string(content))
	cursor, err := resolveCursor(doc, req)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Path:      req.DisplayPath(),
		Direction: req.Direction,
		Before:    doc.Content(),
		DryRun:    req.DryRun,
	}

	logger.Debug("move requested",
		logging.FieldPath, outcome.Path,
		logging.FieldDirection, req.Direction,
		logging.FieldCursor, cursor,
		logging.FieldCount, req.Count,
	)

	text := doc.Content()
	for range req.Count {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("move cancelled: %w", err)
		}

		result := reorder.Move(text, cursor, req.Direction)
		outcome.Results = append(outcome.Results, result)
		logger.Debug("move step",
			logging.FieldLine, result.Line,
			logging.FieldBlock, result.Source,
			logging.FieldTarget, result.Target,
			logging.FieldHopped, result.Hopped,
			logging.FieldReason, result.Reason,
		)
		if !result.Changed {
			break
		}
		text, cursor = result.Text, result.Cursor
	}

	outcome.After = text
	outcome.Cursor = cursor
	outcome.Line, outcome.Column = document.New(text).Position(cursor)

	if !outcome.Changed() {
		logger.Info("nothing moved",
			logging.FieldPath, outcome.Path,
			logging.FieldReason, outcome.Reason(),
		)
		return outcome, nil
	}

	if req.Verify && r.Verify != nil {
		outcome.Verified = true
		if verr := r.Verify(ctx, content, []byte(text)); verr != nil {
			if !errors.Is(verr, verify.ErrTaskSetChanged) {
				return nil, fmt.Errorf("verify: %w", verr)
			}
			outcome.VerifyErr = verr
			if !req.Force {
				logger.Error("refusing to write", logging.FieldPath, outcome.Path, logging.FieldError, verr)
				return outcome, fmt.Errorf("%s: %w", outcome.Path, verr)
			}
			logger.Warn("writing despite verification failure", logging.FieldPath, outcome.Path, logging.FieldError, verr)
		}
	}

	outcome.Diff = textedit.NewDiff(outcome.Path, outcome.Before, outcome.After)

	if req.DryRun || req.FromStdin() {
		return outcome, nil
	}

	backupPath, err := fsutil.WriteBackup(ctx, info, content, req.Backup)
	if err != nil {
		return nil, err
	}
	outcome.BackupPath = backupPath

	if err := fsutil.ReplaceFile(ctx, info, []byte(text)); err != nil {
		return nil, err
	}
	outcome.Written = true

	logger.Info("file updated",
		logging.FieldPath, outcome.Path,
		logging.FieldCount, outcome.Moves(),
		logging.FieldBackup, backupPath,
		logging.FieldBytes, len(text),
	)
	return outcome, nil
}

func (r *Runner) load(ctx context.Context, req Request) ([]byte, *fsutil.FileInfo, error) {
	if req.FromStdin() {
		return req.Content, nil, nil
	}
	content, info, err := fsutil.ReadFile(ctx, req.Path)
	if err != nil {
		return nil, nil, err
	}
	return content, info, nil
}

// resolveCursor turns the request position into a byte offset in doc.
func resolveCursor(doc *document.Document, req Request) (int, error) {
	if req.Offset != OffsetUnset {
		if req.Offset < 0 || req.Offset > doc.Len() {
			return 0, fmt.Errorf("%w: offset %d outside 0..%d", ErrInvalidPosition, req.Offset, doc.Len())
		}
		return req.Offset, nil
	}

	col := req.Column
	if col == 0 {
		col = 1
	}
	offset, ok := doc.Offset(req.Line, col)
	if !ok {
		return 0, fmt.Errorf("%w: line %d column %d (document has %d lines)",
			ErrInvalidPosition, req.Line, col, doc.LineCount())
	}
	return offset, nil
}
