package reorder

import "github.com/yaklabco/gomdtask/pkg/document"

// Reason explains why a move did not change the document.
type Reason string

const (
	// ReasonNone means the move succeeded.
	ReasonNone Reason = ""

	// ReasonNotListItem means the cursor is not on a list or task line.
	// The request is unhandled and the host should fall back to its default.
	ReasonNotListItem Reason = "not-list-item"

	// ReasonFirstLine means an upward move was requested on line 1.
	ReasonFirstLine Reason = "first-line"

	// ReasonLastLine means a downward move was requested on a block that
	// already ends on the last line.
	ReasonLastLine Reason = "last-line"

	// ReasonNoTarget means no sibling exists in the direction of travel.
	ReasonNoTarget Reason = "no-target"

	// ReasonInvalidEdit means the swap edits could not be applied.
	ReasonInvalidEdit Reason = "invalid-edit"
)

// Result is the outcome of a move request.
//
// Handled is false only when the cursor is not on a list line. A handled
// result with Changed false is a blocked move: the host suppresses its
// default behaviour and leaves the document alone. When Changed is true,
// Text and Cursor hold the new document and remapped cursor; otherwise they
// echo the input.
type Result struct {
	Handled   bool      `json:"handled"`
	Changed   bool      `json:"changed"`
	Text      string    `json:"-"`
	Cursor    int       `json:"cursor"`
	Direction Direction `json:"direction"`
	Reason    Reason    `json:"reason,omitempty"`

	// Line is the cursor line the request was made on.
	Line int `json:"line"`

	// Source and Target are the swapped blocks in the input document.
	Source Block `json:"source"`
	Target Block `json:"target"`

	// Hopped is set when the move crossed a heading into the adjacent section.
	Hopped bool `json:"hopped,omitempty"`
}

// MoveUp swaps the block under the cursor with the previous sibling block.
func MoveUp(text string, cursor int) Result {
	return Move(text, cursor, Up)
}

// MoveDown swaps the block under the cursor with the next sibling block.
func MoveDown(text string, cursor int) Result {
	return Move(text, cursor, Down)
}

// Move swaps the block under the cursor with its neighbour in dir.
func Move(text string, cursor int, dir Direction) Result {
	doc := document.New(text)
	cursor = doc.ClampOffset(cursor)
	line := doc.LineAt(cursor)

	result := Result{
		Text:      text,
		Cursor:    cursor,
		Direction: dir,
		Line:      line,
	}

	outline := NewOutline(doc)
	current, ok := outline.Block(line)
	if !ok {
		result.Reason = ReasonNotListItem
		return result
	}
	result.Handled = true
	result.Source = current

	target, hopped, reason := outline.locateTarget(current, dir)
	if reason != ReasonNone {
		result.Reason = reason
		return result
	}

	targetBlock, _ := outline.Block(target)
	newText, newCursor, err := swapBlocks(doc, current, targetBlock, cursor)
	if err != nil {
		result.Reason = ReasonInvalidEdit
		return result
	}

	result.Changed = true
	result.Text = newText
	result.Cursor = newCursor
	result.Target = targetBlock
	result.Hopped = hopped
	return result
}

// locateTarget finds the root line of the block that current swaps with.
func (o *Outline) locateTarget(current Block, dir Direction) (int, bool, Reason) {
	line := current.Start
	indent := o.Indent(line)
	parent := o.Parent(line)

	var origin, limit int
	switch dir {
	case Up:
		if line == 1 {
			return 0, false, ReasonFirstLine
		}
		origin, limit = line-1, 1
	case Down:
		if current.End == o.LineCount() {
			return 0, false, ReasonLastLine
		}
		origin, limit = current.End+1, o.LineCount()
		if parent != 0 {
			// A child never leaves its parent's block.
			parentBlock, _ := o.Block(parent)
			limit = parentBlock.End
		}
	}

	// FindTarget stops at headings, so a direct target is always in the
	// current section.
	if target := o.FindTarget(origin, indent, parent, dir, limit); target != 0 {
		return target, false, ReasonNone
	}

	if parent == 0 {
		if target := o.hopTarget(origin, indent, dir); target != 0 {
			return target, true, ReasonNone
		}
	}
	return 0, false, ReasonNoTarget
}
