package textedit

import (
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End,
		e.Second.Start, e.Second.End)
}

// Validate checks that every edit has a valid range for a content of contentLen bytes.
func Validate(edits []Edit, contentLen int) error {
	for _, edit := range edits {
		if edit.Start < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.End < edit.Start {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.End > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.End, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then by end offset.
func Sort(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

// DetectConflicts reports the first pair of overlapping edits in a sorted slice.
// Two insertions at the same offset also conflict since their order is ambiguous.
func DetectConflicts(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.Start < prev.End || (curr.Start == prev.Start && prev.Len() == 0 && curr.Len() == 0) {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// Prepare validates, sorts and conflict-checks edits.
// The input slice is not modified.
func Prepare(edits []Edit, contentLen int) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := Validate(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}

	return sorted, nil
}
