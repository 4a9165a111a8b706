package reorder

import (
	"github.com/yaklabco/gomdtask/pkg/document"
	"github.com/yaklabco/gomdtask/pkg/textedit"
)

// span is the byte range of a block: from the start of its first line to the
// end of its last line's text. The final line ending stays outside the span.
type span struct {
	start, end int
}

func blockSpan(doc *document.Document, block Block) span {
	first, _ := doc.Line(block.Start)
	last, _ := doc.Line(block.End)
	return span{start: first.Start, end: last.NewlineStart}
}

// swapBlocks exchanges the text of two non-overlapping blocks in one
// transaction and returns the new text and cursor. The cursor keeps its
// offset relative to the start of the current block.
func swapBlocks(doc *document.Document, current, target Block, cursor int) (string, int, error) {
	cur := blockSpan(doc, current)
	tgt := blockSpan(doc, target)

	content := doc.Content()
	curText := content[cur.start:cur.end]
	tgtText := content[tgt.start:tgt.end]

	txn := textedit.NewTransaction()
	txn.Replace(cur.start, cur.end, tgtText)
	txn.Replace(tgt.start, tgt.end, curText)

	text, err := txn.Commit(content)
	if err != nil {
		return content, cursor, err
	}

	rel := min(max(cursor-cur.start, 0), len(curText))

	newCursor := tgt.start + rel
	if tgt.start > cur.start {
		// The target text took the current block's place, shifting everything
		// between the two blocks by the difference in length.
		newCursor += len(tgtText) - len(curText)
	}

	return text, newCursor, nil
}
