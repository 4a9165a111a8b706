package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the line under the final cursor with a caret.
	ShowContext bool

	// ShowSummary prints a one-line summary after the outcome.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// IncludeDocument adds the rewritten document to JSON output.
	// Used when the input came from stdin and nothing was written to disk.
	IncludeDocument bool

	// TermWidth bounds the outline table. Zero picks a default.
	TermWidth int

	// WorkingDir is the directory to make paths relative to.
	// If empty, the process working directory is used.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
	}
}
