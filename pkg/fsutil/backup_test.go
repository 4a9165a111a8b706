package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtask/pkg/fsutil"
)

var sidecar = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "todo.md.gomdtask.bak", fsutil.BackupPath("todo.md", fsutil.BackupModeSidecar))
	assert.Equal(t, "todo.md.gomdtask.bak", fsutil.BackupPath("todo.md", "other"))
	assert.Empty(t, fsutil.BackupPath("todo.md", fsutil.BackupModeNone))
}

func TestWriteBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTemp(t, "todo.md", "v1")
	content, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	backupPath, err := fsutil.WriteBackup(ctx, info, content, sidecar)
	require.NoError(t, err)
	assert.Equal(t, path+fsutil.BackupSuffix, backupPath)
	assert.True(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

	// A later backup replaces the earlier one.
	_, err = fsutil.WriteBackup(ctx, info, []byte("v2"), sidecar)
	require.NoError(t, err)
	got, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestWriteBackup_Disabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTemp(t, "todo.md", "v1")
	content, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	for _, cfg := range []fsutil.BackupConfig{
		{Enabled: false, Mode: fsutil.BackupModeSidecar},
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		backupPath, err := fsutil.WriteBackup(ctx, info, content, cfg)
		require.NoError(t, err)
		assert.Empty(t, backupPath)
	}
	assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

	_, err = fsutil.WriteBackup(ctx, nil, content, sidecar)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTemp(t, "todo.md", "before")
	content, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	_, err = fsutil.WriteBackup(ctx, info, content, sidecar)
	require.NoError(t, err)
	require.NoError(t, fsutil.ReplaceFile(ctx, info, []byte("after")))

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.True(t, restored)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "before", string(got))
	assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

	restored, err = fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeTemp(t, "todo.md", "x")
	content, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)
	_, err = fsutil.WriteBackup(ctx, info, content, sidecar)
	require.NoError(t, err)

	removed, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = fsutil.RemoveBackup(path, fsutil.BackupModeNone)
	require.NoError(t, err)
	assert.False(t, removed)
}
