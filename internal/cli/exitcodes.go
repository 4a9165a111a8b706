package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtask/internal/configloader"
	"github.com/yaklabco/gomdtask/pkg/fsutil"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

// Exit codes for gomdtask.
const (
	// ExitSuccess covers a move that happened and one that was blocked.
	ExitSuccess = 0

	// ExitUnhandled means the cursor was not on a list line.
	ExitUnhandled = 3

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrNotListItem is returned when the cursor is not on a list line.
	ErrNotListItem = errors.New("not on a list item")

	// ErrNoBackup is returned by undo when the file has no backup.
	ErrNoBackup = errors.New("no backup found")

	errMissingFile     = errors.New("no FILE given and stdin is a terminal")
	errMissingPosition = errors.New("one of --line or --offset is required")
)

// ExitError carries the process exit code for err.
type ExitError struct {
	Code int
	Err  error

	// Silent errors were already shown to the user.
	Silent bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

func ioError(err error) error {
	return &ExitError{Code: ExitIOError, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.Is(err, ErrNotListItem):
		return ExitUnhandled
	case errors.Is(err, runner.ErrInvalidPosition), errors.Is(err, runner.ErrInvalidCount):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	case strings.HasPrefix(err.Error(), "unknown command"):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err was already presented to the user and
// should not be logged again.
func IsSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Silent
}
