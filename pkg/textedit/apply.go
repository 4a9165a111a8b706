package textedit

import "strings"

// Apply applies a sorted, validated slice of edits to content.
// Edits must come from Prepare.
func Apply(content string, edits []Edit) string {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out strings.Builder
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.WriteString(content[cursor:e.Start])
		out.WriteString(e.NewText)
		cursor = e.End
	}
	out.WriteString(content[cursor:])

	return out.String()
}

// MapOffset returns where offset ends up after applying sorted edits.
// Offsets inside a replaced range map to the start of its replacement.
func MapOffset(offset int, edits []Edit) int {
	shift := 0
	for _, e := range edits {
		switch {
		case offset < e.Start:
			return offset + shift
		case offset < e.End:
			return e.Start + shift
		}
		shift += e.Delta()
	}
	return offset + shift
}
