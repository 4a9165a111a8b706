package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtask/internal/ui/pretty"
	"github.com/yaklabco/gomdtask/pkg/document"
	"github.com/yaklabco/gomdtask/pkg/reorder"
)

const outlineDoc = "# Today\n- [ ] write\n  - [x] outline\nnotes\n\n## Later\n- idea"

func outlineEntries(text string) []reorder.Entry {
	return reorder.NewOutline(document.New(text)).Entries()
}

func TestFormatOutline(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120)
	got := formatter.FormatOutline(outlineEntries(outlineDoc), 3)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	// header, rule, 7 rows, one light rule before "## Later", rule, legend
	require.Len(t, lines, 12)

	assert.Contains(t, lines[0], "LINE")
	assert.Contains(t, lines[0], "KIND")
	assert.Contains(t, lines[0], "PARENT")
	assert.Contains(t, lines[0], "SECTION")
	assert.Contains(t, lines[0], "BLOCK")
	assert.Contains(t, lines[0], "TEXT")
	assert.True(t, strings.HasPrefix(lines[1], "===="))

	assert.Contains(t, lines[2], "heading(1)")
	assert.Contains(t, lines[3], "task[ ]")
	assert.Contains(t, lines[3], "2-3")
	assert.True(t, strings.HasPrefix(lines[4], "> "), "cursor row is marked")
	assert.Contains(t, lines[4], "task[x]")
	assert.Contains(t, lines[5], "other")
	assert.Contains(t, lines[6], "blank")
	assert.True(t, strings.HasPrefix(lines[7], "----"))
	assert.Contains(t, lines[8], "heading(2)")
	assert.Contains(t, lines[9], "list-item")

	legend := lines[11]
	assert.Contains(t, legend, "7 lines")
	assert.Contains(t, legend, "2 tasks")
	assert.Contains(t, legend, "1 done")
	assert.Contains(t, legend, "1 list items")
	assert.Contains(t, legend, "2 headings")
	assert.Contains(t, legend, "> = cursor")
}

func TestFormatOutline_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	assert.Empty(t, formatter.FormatOutline(nil, 0))
}

func TestFormatOutline_TruncatesLongText(t *testing.T) {
	t.Parallel()

	long := "- " + strings.Repeat("word ", 60)
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	got := formatter.FormatOutline(outlineEntries(long), 0)

	lines := strings.Split(got, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[2], "...")
	assert.NotContains(t, lines[2], strings.Repeat("word ", 60))
}
