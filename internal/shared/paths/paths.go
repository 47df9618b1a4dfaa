// Package paths provides home-relative path expansion and normalization
// shared by the config loader and the bookmark store, so "~/notes" in a
// config file and in a bookmark entry mean the same place.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" or "~/" with the user's home
// directory. Paths without the prefix, and "~user" forms, pass through
// unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Normalize expands a leading tilde and cleans the path. Relative paths
// are made absolute against the working directory when possible.
func Normalize(path string) string {
	expanded := filepath.Clean(ExpandHome(path))
	if filepath.IsAbs(expanded) {
		return expanded
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return expanded
	}
	return abs
}

// IsHidden reports whether the path's base name is dot-prefixed.
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return len(base) > 1 && strings.HasPrefix(base, ".")
}
