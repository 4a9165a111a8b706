package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtask/pkg/fsutil"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "tasks.md", "- [ ] A\n")

	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "- [ ] A\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
	assert.Len(t, info.HashHex(), 64)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = fsutil.ReadFile(ctx, t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(cancelled, writeTemp(t, "a.md", "x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadFile_PermissionDenied(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	path := writeTemp(t, "locked.md", "x")
	require.NoError(t, os.Chmod(path, 0o000))

	_, _, err := fsutil.ReadFile(context.Background(), path)
	require.ErrorIs(t, err, fsutil.ErrPermissionDenied)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "- [ ] A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("size changed", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "- [ ] A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("- [ ] A\n- [ ] B\n"), 0o600))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("same size and mtime, different content", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "- [ ] A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("- [x] A\n"), 0o600))
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "x")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.md")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("hello"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(got))

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
		}
	})

	t.Run("replaces content and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "original")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("updated"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "updated", string(got))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "a.md")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0))
	})
}

func TestReplaceFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes when unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "- [ ] A\n- [ ] B\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, fsutil.ReplaceFile(ctx, info, []byte("- [ ] B\n- [ ] A\n")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "- [ ] B\n- [ ] A\n", string(got))

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
		}
	})

	t.Run("refuses when modified", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "- [ ] A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("edited elsewhere\n"), 0o600))

		err = fsutil.ReplaceFile(ctx, info, []byte("x"))
		require.ErrorIs(t, err, fsutil.ErrModified)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "edited elsewhere\n", string(got))
	})
}
