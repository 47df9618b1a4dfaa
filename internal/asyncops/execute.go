package asyncops

import (
	"context"

	"github.com/filedeck/filedeck/internal/fsops"
)

// executeSafe runs the dispatch with panic recovery: a misbehaving
// primitive is reported as an Error result and the worker lives on.
func (m *Manager) executeSafe(ctx context.Context, t *task) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Errorf("operation panicked: %v", r)
		}
	}()
	return m.execute(ctx, t.op)
}

// execute dispatches one descriptor to its primitive. The switch is
// exhaustive over the closed Kind set; every path ends in a Result.
func (m *Manager) execute(ctx context.Context, op Operation) Result {
	switch op.Kind {
	case KindExists:
		return Success(fsops.Exists(op.Path))

	case KindStat:
		info, err := fsops.Stat(op.Path)
		if err != nil {
			return Errorf("%v", err)
		}
		return Success(info)

	case KindList:
		infos, err := fsops.ReadDir(op.Path)
		if err != nil {
			return Errorf("%v", err)
		}
		return Success(infos)

	case KindMkdir:
		if err := fsops.Mkdir(op.Path); err != nil {
			return Errorf("%v", err)
		}
		return Success(true)

	case KindDelete:
		if err := fsops.Delete(op.Path); err != nil {
			return Errorf("%v", err)
		}
		return Success(true)

	case KindCopy:
		if err := fsops.Copy(ctx, op.Src, op.Dst); err != nil {
			return Errorf("%v", err)
		}
		return Success(true)

	case KindMove:
		if err := fsops.Move(ctx, op.Src, op.Dst); err != nil {
			return Errorf("%v", err)
		}
		return Success(true)

	case KindSize:
		info, err := fsops.Stat(op.Path)
		if err != nil {
			return Errorf("%v", err)
		}
		if info.IsDir {
			size, derr := fsops.DirSize(ctx, op.Path)
			if derr != nil {
				return Errorf("%v", derr)
			}
			return Success(size)
		}
		size, err := fsops.Size(op.Path)
		if err != nil {
			return Errorf("%v", err)
		}
		return Success(size)

	case KindModTime:
		mtime, err := fsops.ModTime(op.Path)
		if err != nil {
			return Errorf("%v", err)
		}
		return Success(mtime)

	case KindBatch:
		return m.executeBatch(ctx, op)

	default:
		return Errorf("unknown operation kind: %s", op.Kind)
	}
}

// executeBatch folds the sub-operations in order, recording every item's
// individual outcome. A failing item does not abort the rest: callers of
// multi-file operations need to know exactly which items succeeded. Only
// cancellation (or timeout), observed between items, stops the fold; the
// discarded partial list never surfaces because the supervisor has
// already committed the terminal result by then.
func (m *Manager) executeBatch(ctx context.Context, op Operation) Result {
	results := make([]Result, 0, len(op.Sub))
	for _, sub := range op.Sub {
		if ctx.Err() != nil {
			return cancelledResult
		}
		results = append(results, m.execute(ctx, sub))
	}
	return Success(results)
}
