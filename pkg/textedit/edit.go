// Package textedit provides byte-range replacement edits and their atomic application.
package textedit

// Edit replaces the bytes [Start, End) of a text with NewText.
type Edit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of bytes the edit replaces.
func (e Edit) Len() int {
	return e.End - e.Start
}

// Delta returns how much the edit grows (positive) or shrinks (negative) the text.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Len()
}

// Transaction accumulates edits that must be applied together or not at all.
type Transaction struct {
	Edits []Edit
}

// NewTransaction creates an empty Transaction.
func NewTransaction() *Transaction {
	return &Transaction{
		Edits: make([]Edit, 0, 2),
	}
}

// Replace adds an edit that replaces bytes [start, end) with newText.
func (t *Transaction) Replace(start, end int, newText string) {
	t.Edits = append(t.Edits, Edit{
		Start:   start,
		End:     end,
		NewText: newText,
	})
}

// Insert adds an edit that inserts text at offset.
func (t *Transaction) Insert(offset int, text string) {
	t.Replace(offset, offset, text)
}

// Delete adds an edit that removes bytes [start, end).
func (t *Transaction) Delete(start, end int) {
	t.Replace(start, end, "")
}

// Commit validates the accumulated edits against content and applies them.
// On error content is returned unchanged together with the error.
func (t *Transaction) Commit(content string) (string, error) {
	prepared, err := Prepare(t.Edits, len(content))
	if err != nil {
		return content, err
	}
	return Apply(content, prepared), nil
}
