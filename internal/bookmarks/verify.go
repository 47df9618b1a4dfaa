package bookmarks

import (
	"context"
	"fmt"

	"github.com/filedeck/filedeck/internal/asyncops"
	"github.com/filedeck/filedeck/internal/shared/id"
)

// Verification is the checked state of one filesystem-backed entry.
type Verification struct {
	EntryID id.EntryID `json:"entry_id"`
	Path    string     `json:"path"`
	Exists  bool       `json:"exists"`
	Err     string     `json:"error,omitempty"`
}

// Verify checks every file and directory entry against the filesystem in
// one batch through the operation manager. Results come back in store
// order; weblinks and collections are skipped. An entry whose check failed
// or was cut short carries Err and Exists=false rather than failing the
// whole verification.
func (s *Store) Verify(ctx context.Context, mgr *asyncops.Manager) ([]Verification, error) {
	type target struct {
		entryID id.EntryID
		path    string
	}

	s.mu.RLock()
	targets := make([]target, 0, len(s.order))
	for _, entryID := range s.order {
		e := s.entries[entryID]
		if e.Type.OnDisk() {
			targets = append(targets, target{entryID: e.ID, path: e.Path})
		}
	}
	s.mu.RUnlock()

	if len(targets) == 0 {
		return []Verification{}, nil
	}

	ops := make([]asyncops.Operation, len(targets))
	for i, tgt := range targets {
		ops[i] = asyncops.Exists(tgt.path)
	}

	h, err := mgr.Submit(asyncops.Batch(ops...))
	if err != nil {
		return nil, fmt.Errorf("submit verification batch: %w", err)
	}

	res, err := h.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("verification batch ended %s", res.Kind)
	}

	items, ok := res.Value.([]asyncops.Result)
	if !ok {
		return nil, fmt.Errorf("unexpected batch result shape")
	}

	out := make([]Verification, len(targets))
	for i, tgt := range targets {
		v := Verification{EntryID: tgt.entryID, Path: tgt.path}
		if i < len(items) {
			item := items[i]
			if exists, ok := item.Value.(bool); item.IsSuccess() && ok {
				v.Exists = exists
			} else if item.Err != "" {
				v.Err = item.Err
			} else {
				v.Err = item.Kind.String()
			}
		}
		out[i] = v
	}
	return out, nil
}
