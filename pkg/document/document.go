// Package document provides an immutable, line-indexed view over Markdown text.
// Line numbers are 1-based; offsets are byte indexes into the original content.
package document

import "sort"

// Line describes the byte layout of a single line.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// Start is the byte index of the first character of the line.
	Start int

	// NewlineStart is the byte index where the line ending begins
	// ("\r\n" or "\n"), or the end of content for the last line.
	NewlineStart int

	// End is the byte index just past the line ending.
	End int
}

// Len returns the length of the line text, excluding the line ending.
func (l Line) Len() int {
	return l.NewlineStart - l.Start
}

// Document is a snapshot of text split into lines.
// It is never modified after construction.
type Document struct {
	content string
	lines   []Line
}

// New builds a Document from content.
// Both LF and CRLF line endings are recognised. Content ending in a newline
// has a final empty line, so "a\n" has two lines.
func New(content string) *Document {
	return &Document{
		content: content,
		lines:   buildLines(content),
	}
}

func buildLines(content string) []Line {
	lines := make([]Line, 0, 16)
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		if content[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, Line{
			Number:       len(lines) + 1,
			Start:        lineStart,
			NewlineStart: newlineStart,
			End:          idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, Line{
		Number:       len(lines) + 1,
		Start:        lineStart,
		NewlineStart: len(content),
		End:          len(content),
	})

	return lines
}

// Content returns the full text of the document.
func (d *Document) Content() string {
	return d.content
}

// Len returns the content length in bytes.
func (d *Document) Len() int {
	return len(d.content)
}

// LineCount returns the number of lines. It is always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the layout of a 1-based line number.
// The second result is false if n is out of range.
func (d *Document) Line(n int) (Line, bool) {
	if n < 1 || n > len(d.lines) {
		return Line{}, false
	}
	return d.lines[n-1], true
}

// Text returns the text of a 1-based line, excluding the line ending.
// Out-of-range lines return the empty string.
func (d *Document) Text(n int) string {
	line, ok := d.Line(n)
	if !ok {
		return ""
	}
	return d.content[line.Start:line.NewlineStart]
}

// Slice returns the content between two byte offsets, clamped to the document.
func (d *Document) Slice(start, end int) string {
	start = d.ClampOffset(start)
	end = d.ClampOffset(end)
	if end < start {
		return ""
	}
	return d.content[start:end]
}

// ClampOffset limits offset to the range [0, Len()].
func (d *Document) ClampOffset(offset int) int {
	return min(max(offset, 0), len(d.content))
}

// LineAt returns the 1-based line containing offset.
// A line ending belongs to the line it terminates. Offsets outside the
// content are clamped first, so the result is always a valid line number.
func (d *Document) LineAt(offset int) int {
	offset = d.ClampOffset(offset)
	idx := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i].End > offset
	})
	if idx >= len(d.lines) {
		idx = len(d.lines) - 1
	}
	return idx + 1
}

// Position converts an offset into a 1-based line and byte column.
func (d *Document) Position(offset int) (int, int) {
	offset = d.ClampOffset(offset)
	n := d.LineAt(offset)
	return n, offset - d.lines[n-1].Start + 1
}

// Offset converts a 1-based line and byte column into an offset.
// Column may point one past the last character of the line.
// Returns (0, false) if the position is out of range.
func (d *Document) Offset(line, col int) (int, bool) {
	l, ok := d.Line(line)
	if !ok || col < 1 {
		return 0, false
	}
	offset := l.Start + col - 1
	if offset > l.NewlineStart {
		return 0, false
	}
	return offset, true
}
