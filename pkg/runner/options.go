// Package runner applies move requests to task files with the safety steps
// around them: cursor resolution, repeated moves, task verification, diffing,
// backup and atomic write.
package runner

import (
	"errors"

	"github.com/yaklabco/gomdtask/pkg/config"
	"github.com/yaklabco/gomdtask/pkg/fsutil"
	"github.com/yaklabco/gomdtask/pkg/reorder"
)

// StdinPath is the path that selects in-memory content instead of a file.
const StdinPath = "-"

// OffsetUnset marks Request.Offset as not given.
const OffsetUnset = -1

// Errors returned for bad requests.
var (
	// ErrInvalidPosition means the line, column or offset lies outside the document.
	ErrInvalidPosition = errors.New("invalid cursor position")

	// ErrInvalidCount means Count is below 1.
	ErrInvalidCount = errors.New("count must be at least 1")
)

// Request describes one move command.
type Request struct {
	// Path is the file to rewrite, or StdinPath to work on Content.
	Path string

	// Content is the document when Path is StdinPath.
	Content []byte

	// Line and Column locate the cursor, both 1-based. Column 0 means 1.
	Line   int
	Column int

	// Offset is a byte offset that takes precedence over Line and Column
	// when it is not OffsetUnset.
	Offset int

	Direction reorder.Direction

	// Count repeats the move, stopping at the first one that changes nothing.
	Count int

	// DryRun computes the result and diff without writing.
	DryRun bool

	// Verify compares task inventories before writing.
	Verify bool

	// Force writes even when verification fails.
	Force bool

	Backup fsutil.BackupConfig
}

// NewRequest returns a request for path with defaults taken from cfg.
func NewRequest(path string, dir reorder.Direction, cfg *config.Config) Request {
	req := Request{
		Path:      path,
		Offset:    OffsetUnset,
		Direction: dir,
		Count:     1,
		Verify:    true,
		Backup: fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupModeSidecar,
		},
	}
	if cfg != nil {
		req.Verify = cfg.VerifyEnabled()
		req.Backup = BackupConfigFromConfig(cfg)
	}
	return req
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.BackupsEnabled(),
		Mode:    mode,
	}
}

// FromStdin reports whether the request works on in-memory content.
func (r Request) FromStdin() bool {
	return r.Path == StdinPath
}

// DisplayPath is the name used in diffs and reports.
func (r Request) DisplayPath() string {
	if r.FromStdin() {
		return "<stdin>"
	}
	return r.Path
}
