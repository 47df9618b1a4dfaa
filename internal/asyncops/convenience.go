package asyncops

import (
	"context"
	"errors"
	"time"

	"github.com/filedeck/filedeck/internal/fsops"
)

// The methods below wrap submit-and-wait for callers that want a plain
// synchronous answer. Each still goes through the registry, so these
// calls share the worker pool and show up in metrics like any other task.

func (m *Manager) PathExists(ctx context.Context, path string) (bool, error) {
	res, err := m.await(ctx, Exists(path))
	if err != nil {
		return false, err
	}
	v, ok := res.Value.(bool)
	if !ok {
		return false, errors.New("unexpected result type for exists")
	}
	return v, nil
}

func (m *Manager) Stat(ctx context.Context, path string) (fsops.FileInfo, error) {
	res, err := m.await(ctx, Stat(path))
	if err != nil {
		return fsops.FileInfo{}, err
	}
	v, ok := res.Value.(fsops.FileInfo)
	if !ok {
		return fsops.FileInfo{}, errors.New("unexpected result type for stat")
	}
	return v, nil
}

func (m *Manager) List(ctx context.Context, path string) ([]fsops.FileInfo, error) {
	res, err := m.await(ctx, List(path))
	if err != nil {
		return nil, err
	}
	v, ok := res.Value.([]fsops.FileInfo)
	if !ok {
		return nil, errors.New("unexpected result type for list")
	}
	return v, nil
}

func (m *Manager) Mkdir(ctx context.Context, path string) error {
	_, err := m.await(ctx, Mkdir(path))
	return err
}

func (m *Manager) Delete(ctx context.Context, path string) error {
	_, err := m.await(ctx, Delete(path))
	return err
}

func (m *Manager) Copy(ctx context.Context, src, dst string) error {
	_, err := m.await(ctx, Copy(src, dst))
	return err
}

func (m *Manager) Move(ctx context.Context, src, dst string) error {
	_, err := m.await(ctx, Move(src, dst))
	return err
}

func (m *Manager) FileSize(ctx context.Context, path string) (int64, error) {
	res, err := m.await(ctx, Size(path))
	if err != nil {
		return 0, err
	}
	v, ok := res.Value.(int64)
	if !ok {
		return 0, errors.New("unexpected result type for size")
	}
	return v, nil
}

func (m *Manager) ModifiedTime(ctx context.Context, path string) (time.Time, error) {
	res, err := m.await(ctx, ModTime(path))
	if err != nil {
		return time.Time{}, err
	}
	v, ok := res.Value.(time.Time)
	if !ok {
		return time.Time{}, errors.New("unexpected result type for mod_time")
	}
	return v, nil
}

// await submits op and blocks until its terminal result, translating
// non-success outcomes into errors.
func (m *Manager) await(ctx context.Context, op Operation) (Result, error) {
	h, err := m.Submit(op)
	if err != nil {
		return Result{}, err
	}
	res, err := h.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	switch res.Kind {
	case ResultSuccess:
		return res, nil
	case ResultTimeout:
		return Result{}, ErrTimeout
	case ResultCancelled:
		return Result{}, ErrCancelled
	default:
		return Result{}, errors.New(res.Err)
	}
}
