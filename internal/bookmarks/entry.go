package bookmarks

import (
	"fmt"
	"strings"
	"time"

	"github.com/filedeck/filedeck/internal/shared/id"
)

// Type classifies what an entry points at.
type Type string

const (
	TypeFile       Type = "file"
	TypeDirectory  Type = "directory"
	TypeWeblink    Type = "weblink"
	TypeCollection Type = "collection"
)

// Valid reports whether t is one of the known entry types.
func (t Type) Valid() bool {
	switch t {
	case TypeFile, TypeDirectory, TypeWeblink, TypeCollection:
		return true
	}
	return false
}

// OnDisk reports whether entries of this type reference a local path.
func (t Type) OnDisk() bool {
	return t == TypeFile || t == TypeDirectory
}

// Entry is one bookmark. Path is set for file and directory entries, URL
// for weblinks, and Children for collections; the other fields are free-form
// user metadata.
type Entry struct {
	ID          id.EntryID   `json:"id"`
	Type        Type         `json:"type"`
	Path        string       `json:"path,omitempty"`
	URL         string       `json:"url,omitempty"`
	Name        string       `json:"name"`
	Nickname    string       `json:"nickname,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Children    []id.EntryID `json:"children,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate checks the type-dependent required fields.
func (e *Entry) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("unknown entry type: %q", e.Type)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("entry name required")
	}
	switch e.Type {
	case TypeFile, TypeDirectory:
		if e.Path == "" {
			return fmt.Errorf("%s entry requires a path", e.Type)
		}
	case TypeWeblink:
		if e.URL == "" {
			return fmt.Errorf("weblink entry requires a url")
		}
	}
	return nil
}

// HasTag reports whether the entry carries the tag (case-insensitive).
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// DisplayName prefers the nickname when one is set.
func (e *Entry) DisplayName() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	return e.Name
}
