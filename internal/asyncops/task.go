package asyncops

import (
	"time"

	"github.com/filedeck/filedeck/internal/shared/id"
)

// State tracks a task through its lifecycle. Terminal outcome detail lives
// in the committed Result's kind.
type State uint8

const (
	StatePending State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// task is the runtime record for one submitted descriptor. All mutable
// fields are guarded by the registry's mutex; done is closed exactly once
// when the terminal result is committed, and the result is never written
// after that, so readers that observed done closed may read result without
// the lock.
type task struct {
	id        id.TaskID
	op        Operation
	submitted time.Time
	timeout   time.Duration

	state      State
	result     Result
	cancelFlag bool
	finishedAt time.Time

	done     chan struct{} // closed at commit
	cancelCh chan struct{} // closed on first cancel request
}

func newTask(op Operation, timeout time.Duration) *task {
	return &task{
		id:        id.NewTaskID(),
		op:        op,
		submitted: time.Now(),
		timeout:   timeout,
		state:     StatePending,
		done:      make(chan struct{}),
		cancelCh:  make(chan struct{}),
	}
}
