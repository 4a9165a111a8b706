package reorder

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of a line.
type Kind int

const (
	// KindOther is any line that matches no other pattern (prose, code, tables).
	KindOther Kind = iota

	// KindBlank is a line containing only whitespace, full-width spaces included.
	KindBlank

	// KindHeading is an ATX heading ("#" through "######").
	KindHeading

	// KindListItem is a bullet list item with content.
	KindListItem

	// KindEmptyListItem is a bullet followed only by whitespace.
	KindEmptyListItem

	// KindTask is a checklist item ("- [ ]", "* [x]").
	KindTask
)

var kindNames = map[Kind]string{
	KindOther:         "other",
	KindBlank:         "blank",
	KindHeading:       "heading",
	KindListItem:      "list-item",
	KindEmptyListItem: "empty-list-item",
	KindTask:          "task",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// LineKind is the classification of a single line.
// Only the fields relevant to Kind are set: Bullet for list kinds,
// Checked for tasks, Level for headings.
type LineKind struct {
	Kind    Kind
	Bullet  byte
	Checked bool
	Level   int
}

// IsListItem reports whether the line is a task, list item or empty list item.
func (k LineKind) IsListItem() bool {
	switch k.Kind {
	case KindTask, KindListItem, KindEmptyListItem:
		return true
	default:
		return false
	}
}

// IsBlank reports whether the line is blank.
func (k LineKind) IsBlank() bool {
	return k.Kind == KindBlank
}

// IsHeading reports whether the line is a heading.
func (k LineKind) IsHeading() bool {
	return k.Kind == KindHeading
}

// String renders the kind with its attributes, e.g. "task[x]" or "heading(2)".
func (k LineKind) String() string {
	switch k.Kind {
	case KindTask:
		if k.Checked {
			return "task[x]"
		}
		return "task[ ]"
	case KindHeading:
		return "heading(" + strconv.Itoa(k.Level) + ")"
	default:
		return k.Kind.String()
	}
}

// Classify determines the kind of a line from its prefix alone.
// Every input maps to exactly one kind; anything unrecognised is KindOther.
func Classify(text string) LineKind {
	if strings.TrimSpace(text) == "" {
		return LineKind{Kind: KindBlank}
	}

	rest := text[IndentWidth(text):]

	if kind, ok := parseTask(rest); ok {
		return kind
	}
	if kind, ok := parseListItem(rest); ok {
		return kind
	}
	if kind, ok := parseHeading(text); ok {
		return kind
	}
	return LineKind{Kind: KindOther}
}

// IndentWidth counts the leading space and tab characters of a line.
func IndentWidth(text string) int {
	width := 0
	for width < len(text) && isIndentChar(text[width]) {
		width++
	}
	return width
}

func isIndentChar(c byte) bool {
	return c == ' ' || c == '\t'
}

// parseTask matches "-" or "*", one space, then a checkbox holding spaces
// and at most one "x" or "X".
func parseTask(rest string) (LineKind, bool) {
	if len(rest) < 5 || (rest[0] != '-' && rest[0] != '*') || rest[1] != ' ' || rest[2] != '[' {
		return LineKind{}, false
	}

	checked := false
	idx := 3
	for ; idx < len(rest) && rest[idx] != ']'; idx++ {
		switch rest[idx] {
		case ' ':
		case 'x', 'X':
			if checked {
				return LineKind{}, false
			}
			checked = true
		default:
			return LineKind{}, false
		}
	}
	if idx == 3 || idx == len(rest) {
		return LineKind{}, false
	}

	return LineKind{Kind: KindTask, Bullet: rest[0], Checked: checked}, true
}

// parseListItem matches "-", "*" or "+" followed by at least one space.
func parseListItem(rest string) (LineKind, bool) {
	if len(rest) < 2 || !isBullet(rest[0]) || !isIndentChar(rest[1]) {
		return LineKind{}, false
	}
	if strings.TrimSpace(rest[1:]) == "" {
		return LineKind{Kind: KindEmptyListItem, Bullet: rest[0]}, true
	}
	return LineKind{Kind: KindListItem, Bullet: rest[0]}, true
}

func isBullet(c byte) bool {
	return c == '-' || c == '*' || c == '+'
}

// parseHeading matches one to six "#" at the start of the line, whitespace,
// and at least one non-space character.
func parseHeading(text string) (LineKind, bool) {
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(text) || !isIndentChar(text[level]) {
		return LineKind{}, false
	}
	if strings.TrimSpace(text[level:]) == "" {
		return LineKind{}, false
	}
	return LineKind{Kind: KindHeading, Level: level}, true
}
