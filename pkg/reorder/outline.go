package reorder

import "github.com/yaklabco/gomdtask/pkg/document"

// Block is an inclusive range of lines: a list line and its contiguous,
// more deeply indented descendants.
type Block struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Lines returns the number of lines in the block.
func (b Block) Lines() int {
	return b.End - b.Start + 1
}

// Contains reports whether line falls inside the block.
func (b Block) Contains(line int) bool {
	return line >= b.Start && line <= b.End
}

// Section is the inclusive range of lines between two headings,
// or between a heading and a document edge.
type Section struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether line falls inside the section.
func (s Section) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}

// Outline is a per-request index of a document's implicit list structure.
// It is built in a single pass and answers parent and section queries in
// constant time. Nothing in it outlives the request it was built for.
type Outline struct {
	doc     *document.Document
	kinds   []LineKind
	indents []int

	// parents[i] is the parent line of line i+1, or 0.
	parents []int

	// headingAbove[i] / headingBelow[i] are the nearest heading lines strictly
	// above / below line i+1, or 0.
	headingAbove []int
	headingBelow []int
}

// NewOutline classifies every line of doc and resolves parents and sections.
func NewOutline(doc *document.Document) *Outline {
	count := doc.LineCount()
	outline := &Outline{
		doc:          doc,
		kinds:        make([]LineKind, count),
		indents:      make([]int, count),
		parents:      make([]int, count),
		headingAbove: make([]int, count),
		headingBelow: make([]int, count),
	}

	// Open list lines with strictly increasing indentation. The nearest line
	// above with a smaller indent is always on this stack; blank lines and
	// headings end every open hierarchy.
	var stack []int
	lastHeading := 0

	for idx := range count {
		line := idx + 1
		text := doc.Text(line)
		kind := Classify(text)
		outline.kinds[idx] = kind
		outline.indents[idx] = IndentWidth(text)
		outline.headingAbove[idx] = lastHeading

		switch {
		case kind.IsBlank():
			stack = stack[:0]
		case kind.IsHeading():
			stack = stack[:0]
			lastHeading = line
		case kind.IsListItem():
			indent := outline.indents[idx]
			for len(stack) > 0 && outline.indents[stack[len(stack)-1]-1] >= indent {
				stack = stack[:len(stack)-1]
			}
			if indent > 0 && len(stack) > 0 {
				outline.parents[idx] = stack[len(stack)-1]
			}
			stack = append(stack, line)
		}
	}

	nextHeading := 0
	for idx := count - 1; idx >= 0; idx-- {
		outline.headingBelow[idx] = nextHeading
		if outline.kinds[idx].IsHeading() {
			nextHeading = idx + 1
		}
	}

	return outline
}

// Document returns the document the outline was built from.
func (o *Outline) Document() *document.Document {
	return o.doc
}

// LineCount returns the number of lines in the document.
func (o *Outline) LineCount() int {
	return len(o.kinds)
}

func (o *Outline) valid(line int) bool {
	return line >= 1 && line <= len(o.kinds)
}

// Kind returns the classification of line, or KindOther if out of range.
func (o *Outline) Kind(line int) LineKind {
	if !o.valid(line) {
		return LineKind{Kind: KindOther}
	}
	return o.kinds[line-1]
}

// Indent returns the indentation width of line.
func (o *Outline) Indent(line int) int {
	if !o.valid(line) {
		return 0
	}
	return o.indents[line-1]
}

// Parent returns the nearest enclosing list line of line, or 0 when line is
// top-level. A parent is never found across a blank line or heading, and
// items at indentation 0 never have one.
func (o *Outline) Parent(line int) int {
	if !o.valid(line) {
		return 0
	}
	return o.parents[line-1]
}

// Section returns the span between the nearest headings around line.
// Heading levels are ignored: any heading closes the current section.
func (o *Outline) Section(line int) Section {
	if !o.valid(line) {
		return Section{}
	}
	section := Section{Start: 1, End: len(o.kinds)}
	if above := o.headingAbove[line-1]; above != 0 {
		section.Start = above + 1
	}
	if below := o.headingBelow[line-1]; below != 0 {
		section.End = below - 1
	}
	return section
}

// SameSection reports whether two lines share a section.
func (o *Outline) SameSection(a, b int) bool {
	return o.valid(a) && o.valid(b) && o.headingAbove[a-1] == o.headingAbove[b-1]
}

// Block returns the block rooted at line. The second result is false when
// line is not a list line.
func (o *Outline) Block(line int) (Block, bool) {
	if !o.Kind(line).IsListItem() {
		return Block{}, false
	}
	indent := o.indents[line-1]
	end := line
	for next := line + 1; next <= len(o.kinds); next++ {
		if !o.kinds[next-1].IsListItem() || o.indents[next-1] <= indent {
			break
		}
		end = next
	}
	return Block{Start: line, End: end}, true
}

// Entry is the resolved structure of one line, for display.
type Entry struct {
	Line    int      `json:"line"`
	Kind    string   `json:"kind"`
	Indent  int      `json:"indent"`
	Parent  int      `json:"parent,omitempty"`
	Section Section  `json:"section"`
	Block   *Block   `json:"block,omitempty"`
	Text    string   `json:"text"`
	Raw     LineKind `json:"-"`
}

// Entries returns one Entry per line of the document.
func (o *Outline) Entries() []Entry {
	entries := make([]Entry, 0, len(o.kinds))
	for line := 1; line <= len(o.kinds); line++ {
		entry := Entry{
			Line:    line,
			Kind:    o.kinds[line-1].String(),
			Indent:  o.indents[line-1],
			Parent:  o.parents[line-1],
			Section: o.Section(line),
			Text:    o.doc.Text(line),
			Raw:     o.kinds[line-1],
		}
		if block, ok := o.Block(line); ok {
			entry.Block = &block
		}
		entries = append(entries, entry)
	}
	return entries
}
