package asyncops

import "errors"

var (
	// ErrManagerClosed is returned by Submit after Close. Submitting to a
	// torn-down manager is a contract violation and is rejected loudly.
	ErrManagerClosed = errors.New("operation manager is closed")

	// ErrQueueFull is returned when the pending queue cannot accept a task
	// without blocking the caller.
	ErrQueueFull = errors.New("task queue full")

	// ErrTimeout is the error form of a Timeout result, used by the
	// convenience wrappers.
	ErrTimeout = errors.New("operation timed out")

	// ErrCancelled is the error form of a Cancelled result, used by the
	// convenience wrappers.
	ErrCancelled = errors.New("operation cancelled")
)
