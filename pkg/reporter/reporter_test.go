package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtask/pkg/document"
	"github.com/yaklabco/gomdtask/pkg/reorder"
	"github.com/yaklabco/gomdtask/pkg/reporter"
	"github.com/yaklabco/gomdtask/pkg/runner"
	"github.com/yaklabco/gomdtask/pkg/verify"
)

const tasks = "# Today\n- [ ] write\n  - [ ] draft\n- [ ] review\n"

func move(t *testing.T, content string, line int, dir reorder.Direction, dryRun bool) *runner.Outcome {
	t.Helper()
	req := runner.NewRequest(runner.StdinPath, dir, nil)
	req.Content = []byte(content)
	req.Line = line
	req.DryRun = dryRun
	outcome, err := runner.New().Run(context.Background(), req)
	require.NoError(t, err)
	return outcome
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "diff reporter", format: reporter.FormatDiff},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestNewOutline_RejectsDiff(t *testing.T) {
	t.Parallel()

	_, err := reporter.NewOutline(reporter.Options{Format: reporter.FormatDiff})
	require.Error(t, err)

	rep, err := reporter.NewOutline(reporter.Options{Format: reporter.FormatJSON})
	require.NoError(t, err)
	assert.NotNil(t, rep)
}

func TestTextReporter_Moved(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), move(t, tasks, 2, reorder.Down, false))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	output := buf.String()
	assert.Contains(t, output, "<stdin>:3:1")
	assert.Contains(t, output, "moved")
	assert.Contains(t, output, "1 move down")
	assert.NotContains(t, output, "diff --git")
}

func TestTextReporter_DryRunShowsDiff(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	_, err := rep.Report(context.Background(), move(t, tasks, 4, reorder.Up, true))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "diff --git a/<stdin> b/<stdin>")
	assert.Contains(t, output, "@@ ")
	assert.Contains(t, output, "dry run, not written")
}

func TestTextReporter_NilOutcome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})
	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

func TestTextReporter_Outline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", TermWidth: 120})

	entries := reorder.NewOutline(document.New(tasks)).Entries()
	require.NoError(t, rep.ReportOutline(context.Background(), "tasks.md", entries, 2))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "tasks.md\n"))
	assert.Contains(t, output, "KIND")
	assert.Contains(t, output, "> ")
}

func TestJSONReporter_Moved(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	count, err := rep.Report(context.Background(), move(t, tasks, 2, reorder.Down, true))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Equal(t, runner.StatusMoved, output.Status)
	assert.Equal(t, "down", output.Direction)
	assert.Equal(t, 1, output.Moves)
	assert.Equal(t, reporter.JSONCursor{Offset: 21, Line: 3, Column: 1}, output.Cursor)
	assert.True(t, output.DryRun)
	assert.False(t, output.Written)
	assert.True(t, output.Verified)
	assert.Contains(t, output.Diff, "--- a/<stdin>")
	assert.Nil(t, output.Document)
	require.Len(t, output.Results, 1)
	assert.Equal(t, reorder.Block{Start: 2, End: 3}, output.Results[0].Source)
	assert.Equal(t, reorder.Block{Start: 4, End: 4}, output.Results[0].Target)
}

func TestJSONReporter_BlockedWithDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true, IncludeDocument: true})

	_, err := rep.Report(context.Background(), move(t, tasks, 2, reorder.Up, false))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "compact output is a single line")

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, runner.StatusBlocked, output.Status)
	assert.Equal(t, reorder.ReasonNoTarget, output.Reason)
	assert.Empty(t, output.Diff)
	require.NotNil(t, output.Document)
	assert.Equal(t, tasks, *output.Document)
}

func TestJSONReporter_VerifyError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	outcome := &runner.Outcome{
		Path:      "tasks.md",
		Results:   []reorder.Result{{Handled: true, Changed: true}},
		Verified:  true,
		VerifyErr: &verify.ChangeError{Missing: []string{"[ ] gone"}},
	}
	_, err := rep.Report(context.Background(), outcome)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Contains(t, output.VerifyError, "task set changed")
}

func TestJSONReporter_Outline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	entries := reorder.NewOutline(document.New(tasks)).Entries()
	require.NoError(t, rep.ReportOutline(context.Background(), "tasks.md", entries, 0))

	var output reporter.JSONOutline
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "tasks.md", output.Path)
	require.Len(t, output.Lines, 5)
	assert.Equal(t, "task[ ]", output.Lines[2].Kind)
	assert.Equal(t, 2, output.Lines[2].Parent)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), move(t, "- a\r\n- b\r\n", 1, reorder.Down, true))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	output := buf.String()
	assert.Contains(t, output, "--- a/<stdin>\n+++ b/<stdin>\n")
	assert.Contains(t, output, "-- a\n")
	assert.Contains(t, output, "+- a\n")
	assert.NotContains(t, output, "\r")
	assert.Contains(t, output, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestDiffReporter_Unchanged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), move(t, "text\n", 1, reorder.Down, true))
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}
