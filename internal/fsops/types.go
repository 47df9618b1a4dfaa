package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/filedeck/filedeck/internal/shared/paths"
)

// FileInfo represents file metadata
type FileInfo struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	IsFile    bool      `json:"is_file"`
	Mode      string    `json:"mode"`
	Modified  time.Time `json:"modified"`
	ReadOnly  bool      `json:"read_only"`
	Hidden    bool      `json:"hidden"`
	Extension string    `json:"extension,omitempty"`
	MIME      string    `json:"mime,omitempty"`
}

// newFileInfo builds a FileInfo from an os.FileInfo. MIME sniffing is only
// attempted for regular files and failures leave the field empty.
func newFileInfo(path string, info os.FileInfo) FileInfo {
	fi := FileInfo{
		Path:     path,
		Name:     filepath.Base(path),
		Size:     info.Size(),
		IsDir:    info.IsDir(),
		IsFile:   info.Mode().IsRegular(),
		Mode:     info.Mode().String(),
		Modified: info.ModTime(),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
		Hidden:   paths.IsHidden(path),
	}

	if fi.IsFile {
		fi.Extension = strings.TrimPrefix(filepath.Ext(path), ".")
		if mtype, err := mimetype.DetectFile(path); err == nil {
			fi.MIME = mtype.String()
		}
	}

	return fi
}
