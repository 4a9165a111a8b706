package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtask/internal/logging"
	"github.com/yaklabco/gomdtask/internal/ui/pretty"
	"github.com/yaklabco/gomdtask/pkg/fsutil"
	"github.com/yaklabco/gomdtask/pkg/runner"
)

func newUndoCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo FILE",
		Short: "Restore FILE from the backup of its last move",
		Long: `Replace FILE with the content it had before the most recent move and
remove the backup. Only one step is kept, so a second undo finds nothing.

Examples:
  gomdtask undo TODO.md`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndo(cmd, args[0], globals)
		},
	}

	return cmd
}

func runUndo(cmd *cobra.Command, path string, globals *globalFlags) error {
	if path == runner.StdinPath {
		return usageError(fmt.Errorf("undo needs a file path, not %q", path))
	}

	sess, err := newSession(cmd, globals, path, nil)
	if err != nil {
		return err
	}

	backup := runner.BackupConfigFromConfig(sess.cfg)
	if backup.Mode == fsutil.BackupModeNone {
		// Backups may have been written under an earlier configuration.
		backup.Mode = fsutil.BackupModeSidecar
	}

	restored, err := fsutil.RestoreBackup(sess.ctx, absPath(path), backup.Mode)
	if err != nil {
		return ioError(err)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(sess.color, cmd.OutOrStdout()))
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatUndo(path, restored))

	if !restored {
		return &ExitError{Code: ExitIOError, Err: ErrNoBackup, Silent: true}
	}
	sess.logger.Debug("restored backup", logging.FieldPath, path)
	return nil
}
