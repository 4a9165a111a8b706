package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtask/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordMove            = "move"
	wordMoves           = "moves"
)

// FormatSummaryOneLine describes what happened to the file.
// Example: "2 moves down, tasks.md updated (backup tasks.md.gomdtask.bak)".
func (s *Styles) FormatSummaryOneLine(outcome *runner.Outcome) string {
	if outcome == nil {
		return ""
	}

	switch outcome.Status() {
	case runner.StatusUnhandled:
		return s.Dim.Render("Not on a list item, nothing to move") + "\n"
	case runner.StatusBlocked:
		return s.Blocked.Render("Nothing moved") + s.Dim.Render(": "+FormatReason(outcome.Reason())) + "\n"
	}

	moves := outcome.Moves()
	moveWord := wordMoves
	if moves == 1 {
		moveWord = wordMove
	}
	parts := []string{fmt.Sprintf("%d %s %s", moves, moveWord, outcome.Direction)}

	switch {
	case outcome.Written:
		written := s.Success.Render(outcome.Path + " updated")
		if outcome.BackupPath != "" {
			written += s.Dim.Render(" (backup " + outcome.BackupPath + ")")
		}
		parts = append(parts, written)
	case outcome.DryRun:
		parts = append(parts, s.Dim.Render("dry run, not written"))
	case outcome.VerifyErr != nil:
		parts = append(parts, s.Failure.Render("not written"))
	}

	if outcome.VerifyErr != nil {
		parts = append(parts, s.Warning.Render("task check failed: "+outcome.VerifyErr.Error()))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats an outcome as a summary block.
func (s *Styles) FormatSummary(outcome *runner.Outcome) string {
	if outcome == nil {
		return ""
	}

	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  File:         " + s.FilePath.Render(outcome.Path) + "\n")
	builder.WriteString("  Status:       " + s.FormatStatus(outcome.Status()) + "\n")
	builder.WriteString("  Moves:        " + s.SummaryValue.Render(strconv.Itoa(outcome.Moves())) + "\n")
	builder.WriteString("  Cursor:       " +
		s.SummaryValue.Render(fmt.Sprintf("%d:%d (offset %d)", outcome.Line, outcome.Column, outcome.Cursor)) + "\n")

	if reason := outcome.Reason(); reason != "" {
		builder.WriteString("  Stopped:      " + s.Reason.Render(FormatReason(reason)) + "\n")
	}
	if outcome.Verified {
		check := s.Success.Render("tasks intact")
		if outcome.VerifyErr != nil {
			check = s.Failure.Render(outcome.VerifyErr.Error())
		}
		builder.WriteString("  Task check:   " + check + "\n")
	}
	if outcome.BackupPath != "" {
		builder.WriteString("  Backup:       " + s.Dim.Render(outcome.BackupPath) + "\n")
	}

	return builder.String()
}

// FormatUndo reports the result of restoring a backup.
func (s *Styles) FormatUndo(path string, restored bool) string {
	if !restored {
		return s.Warning.Render("No backup found for "+path) + "\n"
	}
	return s.Success.Render("Restored "+path) + s.Dim.Render(" from backup") + "\n"
}
