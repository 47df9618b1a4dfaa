package fsops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Exists reports whether path exists. A stat failure of any kind counts as
// not existing, matching how the UI treats unreadable paths.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns metadata for a file or directory.
func Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat failed: %w", err)
	}
	return newFileInfo(path, info), nil
}

// ReadDir lists directory contents. Entries whose metadata cannot be read
// are skipped rather than failing the whole listing.
func ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory failed: %w", err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, newFileInfo(filepath.Join(path, entry.Name()), info))
	}
	return infos, nil
}

// Glob returns the paths matching a doublestar pattern (supports **).
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob failed: %w", err)
	}
	return matches, nil
}

// Mkdir creates a directory and any missing parents.
func Mkdir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory failed: %w", err)
	}
	return nil
}

// Delete removes a file or directory. Directories are removed recursively.
func Delete(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// Copy copies src to dst. Files are copied with their permission bits,
// directories recursively. Missing parent directories of dst are created.
// The context is checked between entries so a large tree copy can stop at
// an entry boundary; an in-flight single file copy is not interrupted.
func Copy(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source not accessible: %w", err)
	}

	if info.IsDir() {
		return copyDir(ctx, src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

func copyFile(src, dst string, mode os.FileMode) error {
	if parent := filepath.Dir(dst); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create destination directory failed: %w", err)
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("create destination failed: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	return nil
}

func copyDir(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create destination directory failed: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read source directory failed: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat source entry failed: %w", err)
		}
		if err := copyFile(srcPath, dstPath, info.Mode()); err != nil {
			return err
		}
	}
	return nil
}

// Move renames src to dst, falling back to copy+delete when the rename
// crosses filesystems.
func Move(ctx context.Context, src, dst string) error {
	if parent := filepath.Dir(dst); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("create destination directory failed: %w", err)
		}
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return fmt.Errorf("move failed: %w", err)
	}

	if err := Copy(ctx, src, dst); err != nil {
		return err
	}
	return Delete(src)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// Size returns the size of a file in bytes.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("size failed: %w", err)
	}
	return info.Size(), nil
}

// DirSize returns the total size of all regular files under path.
func DirSize(ctx context.Context, path string) (int64, error) {
	var total int64
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, path, func(p string, d os.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		atomic.AddInt64(&total, info.Size())
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("directory size failed: %w", err)
	}
	return atomic.LoadInt64(&total), nil
}

// ModTime returns the last modification time of a path.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("modified time failed: %w", err)
	}
	return info.ModTime(), nil
}
