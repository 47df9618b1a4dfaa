package asyncops

import (
	"context"
	"sync"

	"github.com/filedeck/filedeck/internal/shared/id"
)

// Handle is the caller-facing capability for one submitted task. It holds
// only the task's registry key; once a terminal result has been observed
// it is cached locally, so a handle stays answerable even after the
// registry evicts the task.
type Handle struct {
	taskID id.TaskID
	mgr    *Manager

	mu     sync.Mutex
	cached *Result
}

// ID returns the task identifier.
func (h *Handle) ID() id.TaskID {
	return h.taskID
}

// Wait blocks until the task reaches a terminal state and returns its
// Result. The block is scoped to this caller only: workers and other
// handles are unaffected. The context bounds the wait itself, not the
// task; a context error leaves the task running.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	if res, ok := h.cachedResult(); ok {
		return res, nil
	}

	t, ok := h.mgr.reg.get(h.taskID)
	if !ok {
		// Evicted before observation: the task was abandoned past the
		// grace period. Report it as cancelled rather than inventing an
		// error the primitive never produced.
		return h.cache(cancelledResult), nil
	}

	select {
	case <-t.done:
		return h.cache(t.result), nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Poll never blocks: it reports the terminal Result if the task has one,
// or ok=false while the task is still pending or running.
func (h *Handle) Poll() (Result, bool) {
	if res, ok := h.cachedResult(); ok {
		return res, true
	}

	t, ok := h.mgr.reg.get(h.taskID)
	if !ok {
		return h.cache(cancelledResult), true
	}

	select {
	case <-t.done:
		return h.cache(t.result), true
	default:
		return Result{}, false
	}
}

// Cancel requests cancellation of the underlying task. Idempotent: extra
// calls, and calls on an already-terminal task, are no-ops.
func (h *Handle) Cancel() {
	h.mgr.reg.cancel(h.taskID)
}

// Clone returns a second handle bound to the same task. Cancellation
// through either handle affects the single underlying task.
func (h *Handle) Clone() *Handle {
	return &Handle{taskID: h.taskID, mgr: h.mgr}
}

func (h *Handle) cachedResult() (Result, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cached != nil {
		return *h.cached, true
	}
	return Result{}, false
}

func (h *Handle) cache(res Result) Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cached == nil {
		h.cached = &res
	}
	return *h.cached
}
