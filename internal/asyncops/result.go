package asyncops

import "fmt"

// ResultKind is the terminal outcome of a task. Timeout and Cancelled are
// not errors: callers can tell "it failed" apart from "we gave up".
type ResultKind uint8

const (
	ResultSuccess ResultKind = iota
	ResultError
	ResultTimeout
	ResultCancelled
)

var resultNames = map[ResultKind]string{
	ResultSuccess:   "success",
	ResultError:     "error",
	ResultTimeout:   "timeout",
	ResultCancelled: "cancelled",
}

func (k ResultKind) String() string {
	if name, ok := resultNames[k]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler for JSON payloads.
func (k ResultKind) MarshalText() ([]byte, error) {
	name, ok := resultNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown result kind: %d", uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON payloads.
func (k *ResultKind) UnmarshalText(text []byte) error {
	for kind, name := range resultNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown result kind: %q", string(text))
}

// Result is the single terminal outcome of a task. Value's shape depends
// on the originating descriptor: bool for exists, fsops.FileInfo for stat,
// []fsops.FileInfo for list, int64 for size, time.Time for mod_time, bool
// true for mkdir/delete/copy/move, and []Result for a batch.
type Result struct {
	Kind  ResultKind `json:"kind"`
	Value any        `json:"value,omitempty"`
	Err   string     `json:"error,omitempty"`
}

// Success wraps a value in a successful result.
func Success(value any) Result {
	return Result{Kind: ResultSuccess, Value: value}
}

// Errorf builds an error result from a format string.
func Errorf(format string, args ...any) Result {
	return Result{Kind: ResultError, Err: fmt.Sprintf(format, args...)}
}

var (
	timeoutResult   = Result{Kind: ResultTimeout}
	cancelledResult = Result{Kind: ResultCancelled}
)

// IsSuccess reports whether the result carries a value.
func (r Result) IsSuccess() bool { return r.Kind == ResultSuccess }

// IsError reports whether the result carries a primitive failure.
func (r Result) IsError() bool { return r.Kind == ResultError }

// IsTerminalFailure reports whether the task ended without a value.
func (r Result) IsTerminalFailure() bool { return r.Kind != ResultSuccess }
