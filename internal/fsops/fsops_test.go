package fsops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	writeFile(t, file, "data")

	assert.True(t, Exists(file))
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "absent.txt")))
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	writeFile(t, file, "hello world")

	info, err := Stat(file)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", info.Name)
	assert.Equal(t, int64(11), info.Size)
	assert.True(t, info.IsFile)
	assert.False(t, info.IsDir)
	assert.Equal(t, "txt", info.Extension)
	assert.Contains(t, info.MIME, "text/plain")
	assert.WithinDuration(t, time.Now(), info.Modified, time.Minute)
	assert.False(t, info.Hidden)
}

func TestStatHiddenFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	writeFile(t, file, "SECRET=1")

	info, err := Stat(file)
	require.NoError(t, err)
	assert.True(t, info.Hidden)
}

func TestStatDirectory(t *testing.T) {
	dir := t.TempDir()

	info, err := Stat(dir)
	require.NoError(t, err)

	assert.True(t, info.IsDir)
	assert.False(t, info.IsFile)
	assert.Empty(t, info.Extension)
	assert.Empty(t, info.MIME)
}

func TestStatMissing(t *testing.T) {
	_, err := Stat(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "bb")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	infos, err := ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "sub"}, names)
}

func TestReadDirMissing(t *testing.T) {
	_, err := ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755))
	writeFile(t, filepath.Join(dir, "top.go"), "x")
	writeFile(t, filepath.Join(dir, "sub", "deep", "nested.go"), "y")
	writeFile(t, filepath.Join(dir, "sub", "other.txt"), "z")

	matches, err := Glob(filepath.Join(dir, "**", "*.go"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMkdir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, Mkdir(nested))
	assert.True(t, Exists(nested))

	// Idempotent on an existing directory.
	assert.NoError(t, Mkdir(nested))
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gone.txt")
	writeFile(t, file, "bye")

	require.NoError(t, Delete(file))
	assert.False(t, Exists(file))
}

func TestDeleteDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "inner"), 0o755))
	writeFile(t, filepath.Join(target, "inner", "leaf.txt"), "leaf")

	require.NoError(t, Delete(target))
	assert.False(t, Exists(target))
}

func TestDeleteMissing(t *testing.T) {
	assert.Error(t, Delete(filepath.Join(t.TempDir(), "missing")))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "new", "dst.txt")
	writeFile(t, src, "payload")

	require.NoError(t, Copy(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	// Source stays in place.
	assert.True(t, Exists(src))
}

func TestCopyDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	writeFile(t, filepath.Join(src, "root.txt"), "r")
	writeFile(t, filepath.Join(src, "nested", "leaf.txt"), "l")

	dst := filepath.Join(dir, "dst")
	require.NoError(t, Copy(context.Background(), src, dst))

	assert.True(t, Exists(filepath.Join(dst, "root.txt")))
	assert.True(t, Exists(filepath.Join(dst, "nested", "leaf.txt")))
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Copy(context.Background(), filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestCopyCancelledBetweenEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(src, 0o755))
	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(src, string(rune('a'+i))+".txt"), "x")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Copy(ctx, src, filepath.Join(dir, "dst"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.txt")
	dst := filepath.Join(dir, "moved", "new.txt")
	writeFile(t, src, "contents")

	require.NoError(t, Move(context.Background(), src, dst))

	assert.False(t, Exists(src))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, Move(context.Background(), filepath.Join(dir, "nope"), filepath.Join(dir, "dst")))
}

func TestSize(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sized.txt")
	writeFile(t, file, "12345")

	size, err := Size(file)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "a.txt"), "123")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "4567")

	total, err := DirSize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

func TestModTime(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "timed.txt")
	writeFile(t, file, "t")

	mtime, err := ModTime(file)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), mtime, time.Minute)

	_, err = ModTime(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
