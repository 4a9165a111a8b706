package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups are kept.
type BackupMode string

const (
	// BackupModeSidecar keeps FILE.gomdtask.bak next to FILE.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".gomdtask.bak"

// BackupConfig controls backup creation.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupPath returns the backup location for path, or "" for BackupModeNone.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// WriteBackup stores content as the backup of the file described by info,
// replacing any earlier backup. The backup always holds the state before
// the most recent rewrite. It returns the backup path, or "" when backups
// are disabled.
func WriteBackup(ctx context.Context, info *FileInfo, content []byte, cfg BackupConfig) (string, error) {
	if info == nil {
		return "", ErrNilFileInfo
	}
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return "", nil
	}

	backupPath := BackupPath(info.Path, cfg.Mode)
	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// RestoreBackup copies the backup of path back over path and removes the
// backup. It returns false when there is no backup.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}

	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, info, err := ReadFile(ctx, backupPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if _, err := RemoveBackup(path, mode); err != nil {
		return true, err
	}
	return true, nil
}

// RemoveBackup deletes the backup of path. It returns false if none existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	if err := os.Remove(backupPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether path has a backup.
func BackupExists(path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	_, err := os.Stat(backupPath)
	return err == nil
}
