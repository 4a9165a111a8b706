package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdtask/internal/ui/pretty"
	"github.com/yaklabco/gomdtask/pkg/runner"
	"github.com/yaklabco/gomdtask/pkg/textedit"
)

// DiffReporter formats results as unified diffs in GitHub style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. Nothing is printed when the document is unchanged.
func (r *DiffReporter) Report(_ context.Context, outcome *runner.Outcome) (int, error) {
	if outcome == nil || !outcome.Diff.HasChanges() {
		return 0, nil
	}

	writeDiff(r.out, r.styles, outcome.Diff, r.opts.WorkingDir)

	if r.opts.ShowSummary {
		r.writeSummary(outcome.Diff.Additions, outcome.Diff.Deletions)
	}

	return outcome.Moves(), nil
}

// writeDiff outputs a diff with git-style headers.
func writeDiff(out io.Writer, styles *pretty.Styles, diff *textedit.Diff, workingDir string) {
	displayPath := relativePath(diff.Path, workingDir)

	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	fmt.Fprintln(out, styles.DiffHeader.Render(header))

	fmt.Fprintln(out, styles.DiffRemove.Render("--- a/"+displayPath))
	fmt.Fprintln(out, styles.DiffAdd.Render("+++ b/"+displayPath))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(out, styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			writeDiffLine(out, styles, line)
		}
	}

	fmt.Fprintln(out)
}

// relativePath converts an absolute path to one relative to workingDir (or
// the current directory). If the relative path would require too many "../"
// traversals, the basename is used instead.
func relativePath(path, workingDir string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	base := workingDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		base = cwd
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}

// writeDiffLine formats a single diff line with color.
func writeDiffLine(out io.Writer, styles *pretty.Styles, line textedit.DiffLine) {
	text := line.Prefix() + strings.TrimSuffix(line.Content, "\r")

	var styled string
	switch line.Kind {
	case textedit.LineAdded:
		styled = styles.DiffAdd.Render(text)
	case textedit.LineRemoved:
		styled = styles.DiffRemove.Render(text)
	default:
		styled = styles.DiffContext.Render(text)
	}

	fmt.Fprintln(out, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(additions, deletions int) {
	parts := []string{"1 file changed"}

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
