// Package verify checks that a reordering left the set of tasks intact.
//
// The reorder engine works on lines; verify re-reads both documents with a
// CommonMark parser and compares the task checkboxes each one contains. A
// move that changes how the parser sees the document (a task swallowed into
// a paragraph, a checkbox lost to a code block) shows up as a difference.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrTaskSetChanged is returned when two documents do not hold the same tasks.
var ErrTaskSetChanged = errors.New("task set changed")

// Task is a single checkbox as seen by the Markdown parser.
type Task struct {
	Checked bool   `json:"checked"`
	Text    string `json:"text"`
}

// String renders the task in checklist form.
func (t Task) String() string {
	if t.Checked {
		return "[x] " + t.Text
	}
	return "[ ] " + t.Text
}

// Inventory is the list of tasks in a document, in document order.
type Inventory []Task

// Checked returns the number of checked tasks.
func (inv Inventory) Checked() int {
	count := 0
	for _, task := range inv {
		if task.Checked {
			count++
		}
	}
	return count
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.TaskList))

// Collect parses source and returns its task inventory.
func Collect(ctx context.Context, source []byte) (Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collect cancelled: %w", err)
	}

	doc := markdown.Parser().Parse(text.NewReader(source))

	var inventory Inventory
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		box, ok := node.(*extast.TaskCheckBox)
		if !ok {
			return ast.WalkContinue, nil
		}
		inventory = append(inventory, Task{
			Checked: box.IsChecked,
			Text:    taskText(box.Parent(), source),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	return inventory, nil
}

// taskText returns the first line of the block holding a checkbox, without
// the checkbox itself.
func taskText(block ast.Node, source []byte) string {
	if block == nil || block.Lines().Len() == 0 {
		return ""
	}
	seg := block.Lines().At(0)
	line := seg.Value(source)
	if _, after, found := bytes.Cut(line, []byte("]")); found {
		line = after
	}
	return strings.TrimSpace(string(line))
}

// Compare reports whether before and after hold the same tasks, ignoring
// order. The returned error wraps ErrTaskSetChanged and names the first
// differences.
func Compare(before, after Inventory) error {
	counts := make(map[Task]int, len(before))
	for _, task := range before {
		counts[task]++
	}
	for _, task := range after {
		counts[task]--
	}

	var missing, added []string
	for task, count := range counts {
		for ; count > 0; count-- {
			missing = append(missing, task.String())
		}
		for ; count < 0; count++ {
			added = append(added, task.String())
		}
	}
	if len(missing) == 0 && len(added) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(added)
	return &ChangeError{Missing: missing, Added: added}
}

// Check collects the inventories of before and after and compares them.
func Check(ctx context.Context, before, after []byte) error {
	old, err := Collect(ctx, before)
	if err != nil {
		return err
	}
	updated, err := Collect(ctx, after)
	if err != nil {
		return err
	}
	return Compare(old, updated)
}

// ChangeError lists the tasks that appear on only one side of a comparison.
type ChangeError struct {
	Missing []string
	Added   []string
}

func (e *ChangeError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %q", e.Missing))
	}
	if len(e.Added) > 0 {
		parts = append(parts, fmt.Sprintf("added %q", e.Added))
	}
	return ErrTaskSetChanged.Error() + ": " + strings.Join(parts, ", ")
}

// Unwrap returns ErrTaskSetChanged.
func (e *ChangeError) Unwrap() error {
	return ErrTaskSetChanged
}
