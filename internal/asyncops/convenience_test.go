package asyncops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvenienceWrappers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello world"), 0o644))

	m := newTestManager(t, Config{})
	defer m.Close()

	ctx := context.Background()

	exists, err := m.PathExists(ctx, file)
	require.NoError(t, err)
	assert.True(t, exists)

	info, err := m.Stat(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Name)
	assert.True(t, info.IsFile)

	size, err := m.FileSize(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	mtime, err := m.ModifiedTime(ctx, file)
	require.NoError(t, err)
	assert.False(t, mtime.IsZero())

	sub := filepath.Join(dir, "sub")
	require.NoError(t, m.Mkdir(ctx, sub))
	assert.DirExists(t, sub)

	entries, err := m.List(ctx, dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	moved := filepath.Join(sub, "notes.txt")
	require.NoError(t, m.Move(ctx, file, moved))
	assert.NoFileExists(t, file)
	assert.FileExists(t, moved)

	copied := filepath.Join(dir, "copy.txt")
	require.NoError(t, m.Copy(ctx, moved, copied))
	assert.FileExists(t, moved)
	assert.FileExists(t, copied)

	require.NoError(t, m.Delete(ctx, sub))
	assert.NoDirExists(t, sub)

	// Primitive failures surface as plain errors.
	_, err = m.Stat(ctx, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
