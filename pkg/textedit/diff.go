package textedit

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// LineKind classifies a line of a unified diff.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdded exists only in the new text.
	LineAdded

	// LineRemoved exists only in the old text.
	LineRemoved
)

// DiffLine is one line of a hunk.
type DiffLine struct {
	Kind    LineKind
	Content string
}

// Hunk is a contiguous group of changes with surrounding context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []DiffLine
}

// Diff is a line-based unified diff between two versions of a document.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// NewDiff computes the unified diff between before and after.
// It returns nil when the texts have identical lines.
func NewDiff(path, before, after string) *Diff {
	oldLines := splitLines(before)
	newLines := splitLines(after)

	ops := diffOps(oldLines, newLines)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, op := range ops {
		switch op.Kind {
		case LineAdded:
			diff.Additions++
		case LineRemoved:
			diff.Deletions++
		}
	}
	return diff
}

// HasChanges reports whether the diff contains at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Prefix returns the unified diff marker for the line.
func (l DiffLine) Prefix() string {
	switch l.Kind {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// splitLines splits text on "\n", dropping the empty element after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffOps produces an edit script from the longest common subsequence of lines.
func diffOps(oldLines, newLines []string) []DiffLine {
	rows, cols := len(oldLines), len(newLines)

	// lcs[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	lcs := make([][]int, rows+1)
	for i := range lcs {
		lcs[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]DiffLine, 0, rows+cols)
	i, j := 0, 0
	for i < rows && j < cols {
		switch {
		case oldLines[i] == newLines[j]:
			ops = append(ops, DiffLine{Kind: LineContext, Content: oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, DiffLine{Kind: LineRemoved, Content: oldLines[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: LineAdded, Content: newLines[j]})
			j++
		}
	}
	for ; i < rows; i++ {
		ops = append(ops, DiffLine{Kind: LineRemoved, Content: oldLines[i]})
	}
	for ; j < cols; j++ {
		ops = append(ops, DiffLine{Kind: LineAdded, Content: newLines[j]})
	}

	return ops
}

// groupHunks splits an edit script into hunks, merging changes whose
// surrounding context would overlap.
func groupHunks(ops []DiffLine) []Hunk {
	var hunks []Hunk

	idx := 0
	for idx < len(ops) {
		if ops[idx].Kind == LineContext {
			idx++
			continue
		}

		start := max(idx-contextLines, 0)
		end := idx
		for end < len(ops) {
			if ops[end].Kind != LineContext {
				end++
				continue
			}
			// Look ahead for another change within the merge window.
			next := end
			for next < len(ops) && ops[next].Kind == LineContext {
				next++
			}
			if next == len(ops) || next-end > 2*contextLines {
				break
			}
			end = next
		}
		stop := min(end+contextLines, len(ops))

		hunks = append(hunks, buildHunk(ops, start, stop))
		idx = stop
	}

	return hunks
}

func buildHunk(ops []DiffLine, start, stop int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != LineAdded {
			hunk.OldStart++
		}
		if op.Kind != LineRemoved {
			hunk.NewStart++
		}
	}

	hunk.Lines = make([]DiffLine, 0, stop-start)
	for _, op := range ops[start:stop] {
		hunk.Lines = append(hunk.Lines, op)
		switch op.Kind {
		case LineContext:
			hunk.OldCount++
			hunk.NewCount++
		case LineRemoved:
			hunk.OldCount++
		case LineAdded:
			hunk.NewCount++
		}
	}
	return hunk
}
