package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

// FormatOutcome formats a move outcome as a single report line:
//
//	tasks.md:5:1  moved  down x2  (lines 2-4, hopped section)
func (s *Styles) FormatOutcome(outcome *runner.Outcome, showContext bool) string {
	if outcome == nil {
		return ""
	}

	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(outcome.Path),
		outcome.Line,
		outcome.Column,
	)

	detail := outcome.Direction.String()
	if moves := outcome.Moves(); moves > 1 {
		detail += fmt.Sprintf(" x%d", moves)
	}

	fmt.Fprintf(&builder, "  %s  %s  %s", location, s.FormatStatus(outcome.Status()), s.Message.Render(detail))

	if note := s.outcomeNote(outcome); note != "" {
		builder.WriteString("  " + s.Reason.Render("("+note+")"))
	}
	builder.WriteString("\n")

	if showContext && outcome.Handled() {
		lines := strings.Split(outcome.After, "\n")
		if outcome.Line >= 1 && outcome.Line <= len(lines) {
			source := strings.TrimSuffix(lines[outcome.Line-1], "\r")
			builder.WriteString(s.FormatSourceContext(source, outcome.Column))
		}
	}

	return builder.String()
}

// outcomeNote lists the block span, hop and stop reason of an outcome.
func (s *Styles) outcomeNote(outcome *runner.Outcome) string {
	var parts []string

	if outcome.Changed() {
		first := outcome.Results[0]
		parts = append(parts, "lines "+FormatBlock(first.Source))
		for _, result := range outcome.Results {
			if result.Hopped {
				parts = append(parts, "hopped section")
				break
			}
		}
	}
	if reason := outcome.Reason(); reason != reorder.ReasonNone {
		parts = append(parts, FormatReason(reason))
	}

	return strings.Join(parts, ", ")
}

// FormatStatus returns a styled status word.
func (s *Styles) FormatStatus(status runner.Status) string {
	switch status {
	case runner.StatusMoved:
		return s.Moved.Render(string(status))
	case runner.StatusBlocked:
		return s.Blocked.Render(string(status))
	default:
		return s.Unhandled.Render(string(status))
	}
}

// FormatBlock renders a block as "start-end", or "start" for a single line.
func FormatBlock(block reorder.Block) string {
	if block.End <= block.Start {
		return fmt.Sprintf("%d", block.Start)
	}
	return fmt.Sprintf("%d-%d", block.Start, block.End)
}

// FormatReason describes why a move stopped.
func FormatReason(reason reorder.Reason) string {
	switch reason {
	case reorder.ReasonNotListItem:
		return "not a list item"
	case reorder.ReasonFirstLine:
		return "already on the first line"
	case reorder.ReasonLastLine:
		return "already at the end of the document"
	case reorder.ReasonNoTarget:
		return "no sibling in that direction"
	case reorder.ReasonInvalidEdit:
		return "swap could not be applied"
	default:
		return string(reason)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "      "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line[:min(column-1, len(line))]
		padding := indent + strings.Repeat(" ", lipgloss.Width(prefix))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}
