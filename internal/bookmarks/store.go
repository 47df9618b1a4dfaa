package bookmarks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/filedeck/filedeck/internal/shared/id"
	"github.com/filedeck/filedeck/internal/shared/paths"
)

var (
	// ErrNotFound is returned when an entry ID is not in the store.
	ErrNotFound = errors.New("bookmark entry not found")
)

// storeVersion is the current on-disk format. Version 0 files (a bare
// entry array, written by early builds) are still accepted on load.
const storeVersion = 1

type storeFile struct {
	Version int      `json:"version"`
	Entries []*Entry `json:"entries"`
}

// Store is the path-bound bookmark collection. All entries live in memory;
// Save persists the whole set. Insertion order is preserved so listings and
// verification are stable across restarts.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[id.EntryID]*Entry
	order   []id.EntryID
}

// NewStore builds an empty store bound to path. No I/O happens here.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		entries: make(map[id.EntryID]*Entry),
	}
}

// Open builds a store bound to path and loads it. A missing file is an
// empty store, not an error.
func Open(path string) (*Store, error) {
	s := NewStore(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory set with the file's contents.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read bookmark store: %w", err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return fmt.Errorf("decode bookmark store %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[id.EntryID]*Entry, len(entries))
	s.order = s.order[:0]
	for _, e := range entries {
		if _, dup := s.entries[e.ID]; dup {
			continue
		}
		s.entries[e.ID] = e
		s.order = append(s.order, e.ID)
	}
	return nil
}

func decodeEntries(data []byte) ([]*Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	// Legacy files are a bare array of entries.
	if trimmed[0] == '[' {
		var entries []*Entry
		if err := sonic.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var doc storeFile
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// Save writes the whole set to disk. The write goes through a temp file and
// a rename so a crash cannot leave a truncated store behind.
func (s *Store) Save() error {
	s.mu.RLock()
	doc := storeFile{
		Version: storeVersion,
		Entries: make([]*Entry, 0, len(s.order)),
	}
	for _, entryID := range s.order {
		doc.Entries = append(doc.Entries, s.entries[entryID])
	}
	s.mu.RUnlock()

	data, err := sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmark store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bookmark store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace bookmark store: %w", err)
	}
	return nil
}

// Add validates the entry, assigns an ID and timestamps, and appends it.
func (s *Store) Add(e *Entry) (*Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if e.Type.OnDisk() {
		e.Path = paths.Normalize(e.Path)
	}

	now := time.Now().UTC()
	e.ID = id.NewEntryID()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
	return e, nil
}

// Get returns the entry with the given ID.
func (s *Store) Get(entryID id.EntryID) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Update replaces an existing entry's mutable fields, keeping its ID,
// creation time, and position.
func (s *Store) Update(entryID id.EntryID, updated *Entry) (*Entry, error) {
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if updated.Type.OnDisk() {
		updated.Path = paths.Normalize(updated.Path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.entries[entryID]
	if !ok {
		return nil, ErrNotFound
	}

	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	s.entries[entryID] = updated
	return updated, nil
}

// Remove deletes the entry and strips it from any collection that lists it
// as a child.
func (s *Store) Remove(entryID id.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entryID]; !ok {
		return ErrNotFound
	}
	delete(s.entries, entryID)

	for i, eid := range s.order {
		if eid == entryID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	for _, e := range s.entries {
		if e.Type != TypeCollection {
			continue
		}
		for i, child := range e.Children {
			if child == entryID {
				e.Children = append(e.Children[:i], e.Children[i+1:]...)
				break
			}
		}
	}
	return nil
}

// List returns all entries in insertion order.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.order))
	for _, entryID := range s.order {
		out = append(out, s.entries[entryID])
	}
	return out
}

// ByTag returns entries carrying the tag, in insertion order.
func (s *Store) ByTag(tag string) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Entry
	for _, entryID := range s.order {
		if e := s.entries[entryID]; e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
