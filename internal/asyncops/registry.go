package asyncops

import (
	"sync"
	"time"

	"github.com/filedeck/filedeck/internal/shared/id"
)

// registry is the single piece of mutable shared state in the subsystem.
// Every task state transition and the write-once result commit go through
// its mutex; tasks are never mutated through ambient references.
type registry struct {
	mu    sync.Mutex
	tasks map[id.TaskID]*task
}

func newRegistry() *registry {
	return &registry{tasks: make(map[id.TaskID]*task)}
}

func (r *registry) add(t *task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.id] = t
}

func (r *registry) get(taskID id.TaskID) (*task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[taskID]
	return t, ok
}

// claim transitions a pending task to running. It fails when the task was
// cancelled (or otherwise finished) before any worker got to it, which is
// what makes pre-claim cancellation a guarantee rather than a race.
func (r *registry) claim(t *task) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.state != StatePending {
		return false
	}
	t.state = StateRunning
	return true
}

// commit writes the terminal result exactly once. The first caller wins;
// later timeout or cancellation signals arriving for an already-finished
// task are dropped here. Reports whether this call performed the write.
func (r *registry) commit(t *task, res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commitLocked(t, res)
}

func (r *registry) commitLocked(t *task, res Result) bool {
	if t.state == StateDone {
		return false
	}
	t.state = StateDone
	t.result = res
	t.finishedAt = time.Now()
	close(t.done)
	return true
}

// cancel requests cancellation. Idempotent; a no-op on terminal tasks.
// Pending tasks are committed Cancelled on the spot so no worker can ever
// claim them; running tasks only get the advisory signal.
func (r *registry) cancel(taskID id.TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok || t.state == StateDone {
		return
	}

	if !t.cancelFlag {
		t.cancelFlag = true
		close(t.cancelCh)
	}

	if t.state == StatePending {
		r.commitLocked(t, cancelledResult)
	}
}

// sweep evicts terminal tasks that have been done for longer than grace.
// Eviction is purely age-based: a handle that observed the result holds it
// in its own cache, and one that has not yet observed it can still read
// the commit from the registry until the grace runs out. Returns the
// number of evicted tasks.
func (r *registry) sweep(grace time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	evicted := 0
	for taskID, t := range r.tasks {
		if t.state != StateDone {
			continue
		}
		if now.Sub(t.finishedAt) > grace {
			delete(r.tasks, taskID)
			evicted++
		}
	}
	return evicted
}

// cancelAllPending commits Cancelled on every non-terminal task. Used
// during shutdown so abandoned waiters unblock.
func (r *registry) cancelAllPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.state != StateDone {
			if !t.cancelFlag {
				t.cancelFlag = true
				close(t.cancelCh)
			}
			r.commitLocked(t, cancelledResult)
		}
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}
