package asyncops

import (
	"errors"
	"fmt"
)

// Kind identifies an operation variant. The set is closed: dispatch is an
// exhaustive switch, not reflection.
type Kind uint8

const (
	KindExists Kind = iota
	KindStat
	KindList
	KindMkdir
	KindDelete
	KindCopy
	KindMove
	KindSize
	KindModTime
	KindBatch
)

var kindNames = map[Kind]string{
	KindExists:  "exists",
	KindStat:    "stat",
	KindList:    "list",
	KindMkdir:   "mkdir",
	KindDelete:  "delete",
	KindCopy:    "copy",
	KindMove:    "move",
	KindSize:    "size",
	KindModTime: "mod_time",
	KindBatch:   "batch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler for JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown operation kind: %d", uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON payloads.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown operation kind: %q", string(text))
}

// Operation is an immutable descriptor for one unit of filesystem work.
// It is fully self-describing and carries no references to the caller.
type Operation struct {
	Kind Kind        `json:"op"`
	Path string      `json:"path,omitempty"`
	Src  string      `json:"src,omitempty"`
	Dst  string      `json:"dst,omitempty"`
	Sub  []Operation `json:"ops,omitempty"`
}

// Exists describes a path existence check.
func Exists(path string) Operation {
	return Operation{Kind: KindExists, Path: path}
}

// Stat describes a file metadata query.
func Stat(path string) Operation {
	return Operation{Kind: KindStat, Path: path}
}

// List describes a directory listing.
func List(path string) Operation {
	return Operation{Kind: KindList, Path: path}
}

// Mkdir describes a recursive directory creation.
func Mkdir(path string) Operation {
	return Operation{Kind: KindMkdir, Path: path}
}

// Delete describes removal of a file or directory tree.
func Delete(path string) Operation {
	return Operation{Kind: KindDelete, Path: path}
}

// Copy describes a recursive copy from src to dst.
func Copy(src, dst string) Operation {
	return Operation{Kind: KindCopy, Src: src, Dst: dst}
}

// Move describes a rename from src to dst.
func Move(src, dst string) Operation {
	return Operation{Kind: KindMove, Src: src, Dst: dst}
}

// Size describes a file size query.
func Size(path string) Operation {
	return Operation{Kind: KindSize, Path: path}
}

// ModTime describes a modification time query.
func ModTime(path string) Operation {
	return Operation{Kind: KindModTime, Path: path}
}

// Batch describes an ordered list of sub-operations executed sequentially
// on one worker. An empty batch is valid and resolves immediately.
func Batch(ops ...Operation) Operation {
	return Operation{Kind: KindBatch, Sub: ops}
}

// Validate checks that the descriptor carries the arguments its kind needs.
func (op Operation) Validate() error {
	switch op.Kind {
	case KindExists, KindStat, KindList, KindMkdir, KindDelete, KindSize, KindModTime:
		if op.Path == "" {
			return fmt.Errorf("%s: path required", op.Kind)
		}
	case KindCopy, KindMove:
		if op.Src == "" || op.Dst == "" {
			return fmt.Errorf("%s: src and dst required", op.Kind)
		}
	case KindBatch:
		for i, sub := range op.Sub {
			if err := sub.Validate(); err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
		}
	default:
		return errors.New("unknown operation kind")
	}
	return nil
}
