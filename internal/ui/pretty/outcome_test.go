package pretty_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtask/internal/ui/pretty"
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

func runStdin(t *testing.T, content string, line int, dir reorder.Direction, count int) *runner.Outcome {
	t.Helper()
	req := runner.NewRequest(runner.StdinPath, dir, nil)
	req.Content = []byte(content)
	req.Line = line
	req.Count = count
	outcome, err := runner.New().Run(context.Background(), req)
	require.NoError(t, err)
	return outcome
}

func TestFormatOutcome_Moved(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	outcome := runStdin(t, "- [ ] A\n  - [ ] A1\n- [ ] B\n", 1, reorder.Down, 1)

	got := styles.FormatOutcome(outcome, false)
	assert.Equal(t, "  <stdin>:2:1  moved  down  (lines 1-2)\n", got)
}

func TestFormatOutcome_RepeatedWithReason(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	outcome := runStdin(t, "- a\n- b\n- c", 1, reorder.Down, 3)

	got := styles.FormatOutcome(outcome, false)
	assert.Contains(t, got, "<stdin>:3:1")
	assert.Contains(t, got, "down x2")
	assert.Contains(t, got, "already at the end of the document")
}

func TestFormatOutcome_Hop(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	outcome := runStdin(t, "# A\n- a\n# B\n- b\n", 4, reorder.Up, 1)

	assert.Contains(t, styles.FormatOutcome(outcome, false), "hopped section")
}

func TestFormatOutcome_BlockedWithContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	outcome := runStdin(t, "- [ ] first\n- [ ] second\n", 1, reorder.Up, 1)

	got := styles.FormatOutcome(outcome, true)
	assert.Contains(t, got, "blocked")
	assert.Contains(t, got, "already on the first line")
	assert.Contains(t, got, "- [ ] first")
	assert.Contains(t, got, "^")
}

func TestFormatOutcome_UnhandledHasNoContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	outcome := runStdin(t, "prose\n", 1, reorder.Up, 1)

	got := styles.FormatOutcome(outcome, true)
	assert.Contains(t, got, "unhandled")
	assert.Contains(t, got, "not a list item")
	assert.NotContains(t, got, "^")
	assert.Empty(t, styles.FormatOutcome(nil, true))
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatSourceContext("- [ ] task", 3)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "["), strings.Index(lines[1], "^"))
}

func TestFormatBlock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4", pretty.FormatBlock(reorder.Block{Start: 4, End: 4}))
	assert.Equal(t, "2-7", pretty.FormatBlock(reorder.Block{Start: 2, End: 7}))
}

func TestFormatReason(t *testing.T) {
	t.Parallel()

	reasons := []reorder.Reason{
		reorder.ReasonNotListItem,
		reorder.ReasonFirstLine,
		reorder.ReasonLastLine,
		reorder.ReasonNoTarget,
		reorder.ReasonInvalidEdit,
	}
	for _, reason := range reasons {
		assert.NotEqual(t, string(reason), pretty.FormatReason(reason))
	}
	assert.Equal(t, "custom", pretty.FormatReason("custom"))
}
