package reorder_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtask/pkg/reorder"
)

// cursorAt returns the offset of the first occurrence of needle in text.
func cursorAt(t *testing.T, text, needle string) int {
	t.Helper()
	idx := strings.Index(text, needle)
	require.GreaterOrEqual(t, idx, 0, "needle %q not found", needle)
	return idx
}

func TestMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		cursor  string
		dir     reorder.Direction
		want    string
		changed bool
		reason  reorder.Reason
		hopped  bool
	}{
		{
			name:    "swap with previous sibling",
			input:   "- [ ] A\n- [ ] B\n- [ ] C",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "- [ ] B\n- [ ] A\n- [ ] C",
			changed: true,
		},
		{
			name:   "blank line isolates lists",
			input:  "- [ ] A\n\n- [ ] B",
			cursor: "- [ ] B",
			dir:    reorder.Up,
			want:   "- [ ] A\n\n- [ ] B",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:    "parent moves with its children",
			input:   "- [ ] Parent\n  - [ ] Child\n- [ ] Other",
			cursor:  "Parent",
			dir:     reorder.Down,
			want:    "- [ ] Other\n- [ ] Parent\n  - [ ] Child",
			changed: true,
		},
		{
			name:    "hop over a heading into the previous section",
			input:   "# S1\n- [ ] A\n\n# S2\n- [ ] B",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "# S1\n- [ ] B\n\n# S2\n- [ ] A",
			changed: true,
			hopped:  true,
		},
		{
			name:   "single item cannot move up",
			input:  "- [ ] First",
			cursor: "First",
			dir:    reorder.Up,
			want:   "- [ ] First",
			reason: reorder.ReasonFirstLine,
		},
		{
			name:    "hop back down is the reverse move",
			input:   "# S1\n- [ ] B\n\n# S2\n- [ ] A",
			cursor:  "- [ ] B",
			dir:     reorder.Down,
			want:    "# S1\n- [ ] A\n\n# S2\n- [ ] B",
			changed: true,
			hopped:  true,
		},
		{
			name:    "hop skips prose past the heading",
			input:   "# S1\n- [ ] A\n# S2\nnote\n- [ ] B",
			cursor:  "- [ ] A",
			dir:     reorder.Down,
			want:    "# S1\n- [ ] B\n# S2\nnote\n- [ ] A",
			changed: true,
			hopped:  true,
		},
		{
			name:   "list line between item and heading prevents a hop",
			input:  "# S1\n- [ ] A\n\n# S2\n- [ ] B\n\n- [ ] C",
			cursor: "- [ ] C",
			dir:    reorder.Up,
			want:   "# S1\n- [ ] A\n\n# S2\n- [ ] B\n\n- [ ] C",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:   "never crosses two headings",
			input:  "# S1\n- [ ] A\n# S2\n# S3\n- [ ] B",
			cursor: "- [ ] B",
			dir:    reorder.Up,
			want:   "# S1\n- [ ] A\n# S2\n# S3\n- [ ] B",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:   "children never hop",
			input:  "# S1\n- [ ] A\n# S2\n- [ ] P\n  - [ ] C",
			cursor: "- [ ] C",
			dir:    reorder.Up,
			want:   "# S1\n- [ ] A\n# S2\n- [ ] P\n  - [ ] C",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:    "child swaps with sibling",
			input:   "- [ ] P\n  - [ ] C1\n  - [ ] C2\n- [ ] Q",
			cursor:  "C2",
			dir:     reorder.Up,
			want:    "- [ ] P\n  - [ ] C2\n  - [ ] C1\n- [ ] Q",
			changed: true,
		},
		{
			name:   "last child stays inside its parent",
			input:  "- [ ] P\n  - [ ] C1\n  - [ ] C2\n- [ ] Q",
			cursor: "C2",
			dir:    reorder.Down,
			want:   "- [ ] P\n  - [ ] C1\n  - [ ] C2\n- [ ] Q",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:   "first child stays inside its parent",
			input:  "- [ ] P\n  - [ ] C1\n  - [ ] C2\n- [ ] Q",
			cursor: "C1",
			dir:    reorder.Up,
			want:   "- [ ] P\n  - [ ] C1\n  - [ ] C2\n- [ ] Q",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:    "unparented indented item takes a shallower target",
			input:   "# H\n  - [ ] X\n- [ ] Y",
			cursor:  "X",
			dir:     reorder.Down,
			want:    "# H\n- [ ] Y\n  - [ ] X",
			changed: true,
		},
		{
			name:    "top-level item passes over nested lines",
			input:   "- [ ] A\n  - [ ] a1\n- [ ] B",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "- [ ] B\n- [ ] A\n  - [ ] a1",
			changed: true,
		},
		{
			name:    "prose between siblings stays in place",
			input:   "- [ ] A\nnote\n- [ ] B",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "- [ ] B\nnote\n- [ ] A",
			changed: true,
		},
		{
			name:   "full-width blank line isolates lists",
			input:  "- [ ] A\n　　\n- [ ] B",
			cursor: "- [ ] B",
			dir:    reorder.Up,
			want:   "- [ ] A\n　　\n- [ ] B",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:    "plain list items move",
			input:   "- milk\n- eggs",
			cursor:  "eggs",
			dir:     reorder.Up,
			want:    "- eggs\n- milk",
			changed: true,
		},
		{
			name:    "mixed bullets are siblings",
			input:   "* [x] A\n+ B",
			cursor:  "+ B",
			dir:     reorder.Up,
			want:    "+ B\n* [x] A",
			changed: true,
		},
		{
			name:    "empty list item is a target",
			input:   "- [ ] A\n- \n- [ ] B",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "- [ ] A\n- [ ] B\n- ",
			changed: true,
		},
		{
			name:   "last line cannot move down",
			input:  "- [ ] A\n- [ ] B",
			cursor: "- [ ] B",
			dir:    reorder.Down,
			want:   "- [ ] A\n- [ ] B",
			reason: reorder.ReasonLastLine,
		},
		{
			name:    "trailing newline is preserved",
			input:   "- [ ] A\n- [ ] B\n",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "- [ ] B\n- [ ] A\n",
			changed: true,
		},
		{
			name:   "trailing empty line is not a target",
			input:  "- [ ] A\n- [ ] B\n",
			cursor: "- [ ] B",
			dir:    reorder.Down,
			want:   "- [ ] A\n- [ ] B\n",
			reason: reorder.ReasonNoTarget,
		},
		{
			name:    "CRLF line endings",
			input:   "- [ ] A\r\n- [ ] B\r\n",
			cursor:  "- [ ] B",
			dir:     reorder.Up,
			want:    "- [ ] B\r\n- [ ] A\r\n",
			changed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := reorder.Move(tc.input, cursorAt(t, tc.input, tc.cursor), tc.dir)

			assert.True(t, result.Handled)
			assert.Equal(t, tc.changed, result.Changed)
			assert.Equal(t, tc.want, result.Text)
			assert.Equal(t, tc.reason, result.Reason)
			assert.Equal(t, tc.hopped, result.Hopped)
			assert.Equal(t, tc.dir, result.Direction)
		})
	}
}

func TestMove_StoppedAtSectionBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		cursor string
		dir    reorder.Direction
	}{
		{"nothing above the only heading", "# Only\n- [ ] A", "- [ ] A", reorder.Up},
		{"two headings above", "# S1\n- [ ] A\n# S2\n# S3\n- [ ] B", "- [ ] B", reorder.Up},
		{"two headings below", "# S1\n- [ ] A\n# S2\n# S3\n- [ ] B", "- [ ] A", reorder.Down},
		{"blank between headings", "## A\n- [ ] x\n## B\n\n## C\n- [ ] y", "- [ ] y", reorder.Up},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := reorder.Move(tc.input, cursorAt(t, tc.input, tc.cursor), tc.dir)
			assert.True(t, result.Handled)
			assert.False(t, result.Changed)
			assert.False(t, result.Hopped)
			assert.Equal(t, reorder.ReasonNoTarget, result.Reason)
			assert.Equal(t, tc.input, result.Text)
		})
	}
}

func TestMove_Unhandled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		cursor int
	}{
		{"prose line", "prose\n- [ ] A", 0},
		{"heading line", "# Title\n- [ ] A", 2},
		{"blank line", "- [ ] A\n\n- [ ] B", 8},
		{"empty document", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for _, dir := range []reorder.Direction{reorder.Up, reorder.Down} {
				result := reorder.Move(tc.input, tc.cursor, dir)
				assert.False(t, result.Handled)
				assert.False(t, result.Changed)
				assert.Equal(t, reorder.ReasonNotListItem, result.Reason)
				assert.Equal(t, tc.input, result.Text)
				assert.Equal(t, tc.cursor, result.Cursor)
			}
		})
	}
}

func TestMove_BlockedEchoesInput(t *testing.T) {
	t.Parallel()

	input := "- [ ] A\n\n- [ ] B"
	cursor := cursorAt(t, input, "B")

	result := reorder.MoveUp(input, cursor)
	assert.True(t, result.Handled)
	assert.False(t, result.Changed)
	assert.Equal(t, input, result.Text)
	assert.Equal(t, cursor, result.Cursor)
	assert.Equal(t, 3, result.Line)
	assert.Equal(t, reorder.Block{Start: 3, End: 3}, result.Source)
}

func TestMove_CursorFollowsBlock(t *testing.T) {
	t.Parallel()

	t.Run("up", func(t *testing.T) {
		t.Parallel()

		input := "- [ ] A\n- [ ] Bravo"
		result := reorder.MoveUp(input, cursorAt(t, input, "Bravo"))

		require.True(t, result.Changed)
		assert.Equal(t, "- [ ] Bravo\n- [ ] A", result.Text)
		assert.Equal(t, 6, result.Cursor)
		assert.True(t, strings.HasPrefix(result.Text[result.Cursor:], "Bravo"))
	})

	t.Run("down past a longer block", func(t *testing.T) {
		t.Parallel()

		input := "- [ ] Alpha\n- [ ] B\n  - [ ] b1"
		result := reorder.MoveDown(input, cursorAt(t, input, "Alpha"))

		require.True(t, result.Changed)
		assert.Equal(t, "- [ ] B\n  - [ ] b1\n- [ ] Alpha", result.Text)
		assert.Equal(t, 25, result.Cursor)
		assert.True(t, strings.HasPrefix(result.Text[result.Cursor:], "Alpha"))
		assert.Equal(t, reorder.Block{Start: 1, End: 1}, result.Source)
		assert.Equal(t, reorder.Block{Start: 2, End: 3}, result.Target)
	})

	t.Run("hop", func(t *testing.T) {
		t.Parallel()

		input := "# S1\n- [ ] A\n\n# S2\n- [ ] Bee"
		result := reorder.MoveUp(input, cursorAt(t, input, "Bee"))

		require.True(t, result.Changed)
		assert.True(t, strings.HasPrefix(result.Text[result.Cursor:], "Bee"))
	})
}

// planner exercises nesting, siblings, blank-line groups and two sections.
const planner = "# Today\n" +
	"- [ ] A\n" +
	"  - [ ] A1\n" +
	"  - [x] A2\n" +
	"    - [ ] A2a\n" +
	"- [ ] B\n" +
	"\n" +
	"- [ ] C\n" +
	"  - [ ] C1\n" +
	"## Later\n" +
	"- [x] D\n" +
	"- [ ] E\n" +
	"  - [ ] E1\n"

func lineStarts(text string) []int {
	starts := []int{0}
	for idx, r := range text {
		if r == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return starts
}

func sortedLines(text string) []string {
	lines := strings.Split(text, "\n")
	slices.Sort(lines)
	return lines
}

func TestMove_Properties(t *testing.T) {
	t.Parallel()

	opposite := map[reorder.Direction]reorder.Direction{
		reorder.Up:   reorder.Down,
		reorder.Down: reorder.Up,
	}

	moved := 0
	for _, start := range lineStarts(planner) {
		for _, dir := range []reorder.Direction{reorder.Up, reorder.Down} {
			result := reorder.Move(planner, start, dir)
			if !result.Changed {
				assert.Equal(t, planner, result.Text)
				continue
			}
			moved++

			// Lines are only ever reordered.
			assert.Equal(t, sortedLines(planner), sortedLines(result.Text))

			back := reorder.Move(result.Text, result.Cursor, opposite[dir])
			require.True(t, back.Changed, "reverse of %s at offset %d", dir, start)
			assert.Equal(t, planner, back.Text, "reverse of %s at offset %d", dir, start)
			assert.Equal(t, start, back.Cursor)
		}
	}
	assert.Equal(t, 8, moved)
}

func TestResult_JSON(t *testing.T) {
	t.Parallel()

	result := reorder.MoveUp("- [ ] A\n- [ ] B", 8)
	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "up", decoded["direction"])
	assert.Equal(t, true, decoded["changed"])
	assert.NotContains(t, decoded, "Text")
	assert.NotContains(t, decoded, "hopped")
}
