package asyncops

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/filedeck/filedeck/internal/logging"
	"github.com/filedeck/filedeck/internal/monitoring"
	"github.com/filedeck/filedeck/internal/shared/id"
)

// Config holds manager tuning knobs.
type Config struct {
	// Workers is the number of concurrent executor goroutines.
	Workers int
	// QueueSize bounds the pending queue. Submit fails with ErrQueueFull
	// rather than blocking when it is exhausted.
	QueueSize int
	// EvictionGrace is how long a terminal task survives in the registry
	// before the janitor sweeps it. Handles cache the result they
	// observed, so eviction never erases an answer a caller already saw.
	EvictionGrace time.Duration
}

// DefaultConfig returns a reasonable configuration for interactive use.
func DefaultConfig() Config {
	return Config{
		Workers:       4,
		QueueSize:     64,
		EvictionGrace: 5 * time.Minute,
	}
}

// Manager owns the task registry, the executor pool, and the janitor.
// The interactive thread is always a producer and never a worker: Submit
// returns immediately and all execution happens on pool goroutines.
type Manager struct {
	cfg     Config
	reg     *registry
	queue   chan *task
	logger  *logging.Logger
	metrics *monitoring.Metrics

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup // workers
	janitorW sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New creates a manager and starts its worker pool and janitor.
func New(cfg Config, logger *logging.Logger) *Manager {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	if cfg.EvictionGrace <= 0 {
		cfg.EvictionGrace = DefaultConfig().EvictionGrace
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		cfg:    cfg,
		reg:    newRegistry(),
		queue:  make(chan *task, cfg.QueueSize),
		logger: logger.Named("asyncops"),
		ctx:    ctx,
		cancel: cancel,
	}

	m.logger.Info("Starting operation manager",
		zap.Int("workers", cfg.Workers),
		zap.Int("queue_size", cfg.QueueSize),
	)

	for i := 0; i < cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i + 1)
	}

	m.janitorW.Add(1)
	go m.janitor()

	return m
}

// WithMetrics attaches a metrics collector. Call before the first Submit.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Submit enqueues a descriptor without a deadline: the task runs until it
// completes or is explicitly cancelled.
func (m *Manager) Submit(op Operation) (*Handle, error) {
	return m.SubmitTimeout(op, 0)
}

// SubmitTimeout enqueues a descriptor with a per-task timeout (0 means
// none). It never blocks: the handle is returned before any execution
// happens. Submitting to a closed manager fails with ErrManagerClosed.
func (m *Manager) SubmitTimeout(op Operation, timeout time.Duration) (*Handle, error) {
	t := newTask(op, timeout)
	handle := &Handle{taskID: t.id, mgr: m}

	// The lock covers the closed check and the enqueue together so Close
	// cannot shut the queue between them. The send has a default arm and
	// never holds the lock for long.
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}

	m.reg.add(t)

	// An empty batch has nothing to execute: resolve it on the spot.
	if op.Kind == KindBatch && len(op.Sub) == 0 {
		m.mu.Unlock()
		m.reg.commit(t, Success([]Result{}))
		if m.metrics != nil {
			m.metrics.RecordSubmission()
			m.metrics.RecordCompletion(ResultSuccess.String(), op.Kind.String(), 0)
		}
		return handle, nil
	}

	select {
	case m.queue <- t:
		m.mu.Unlock()
	default:
		m.mu.Unlock()
		m.reg.cancel(t.id)
		return nil, ErrQueueFull
	}

	if m.metrics != nil {
		m.metrics.RecordSubmission()
		m.metrics.QueueDepth.Set(float64(len(m.queue)))
	}

	m.logger.Debug("Task submitted",
		zap.String("task_id", t.id.String()),
		zap.String("op", op.Kind.String()),
		zap.Duration("timeout", timeout),
	)

	return handle, nil
}

// Lookup returns a fresh handle for a task still in the registry. The
// second return is false for unknown or already-evicted IDs.
func (m *Manager) Lookup(taskID id.TaskID) (*Handle, bool) {
	if _, ok := m.reg.get(taskID); !ok {
		return nil, false
	}
	return &Handle{taskID: taskID, mgr: m}, true
}

// ActiveTasks returns the number of tasks currently in the registry.
func (m *Manager) ActiveTasks() int {
	return m.reg.len()
}

// Close shuts the manager down: no new submissions are accepted, workers
// finish the tasks they already claimed, and everything still pending is
// committed Cancelled so waiters unblock.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("Stopping operation manager")

	// Workers finish the tasks they already claimed; everything still
	// sitting in the queue is committed Cancelled, not run. The drain
	// races the workers' receives, but a cancel that lands first makes
	// the claim fail, so a queued task runs or cancels, never both.
	close(m.queue)
	for t := range m.queue {
		m.reg.cancel(t.id)
	}
	m.wg.Wait()

	m.cancel()
	m.janitorW.Wait()

	// Workers are gone; anything not terminal now was never claimed.
	m.reg.cancelAllPending()
}

// worker drains the queue. One claimed task at a time; a failing or
// panicking primitive never takes the worker down.
func (m *Manager) worker(n int) {
	defer m.wg.Done()

	for t := range m.queue {
		if m.metrics != nil {
			m.metrics.QueueDepth.Set(float64(len(m.queue)))
		}

		// A cancel that landed before this claim already committed the
		// task; the primitive must not run.
		if !m.reg.claim(t) {
			continue
		}

		if m.metrics != nil {
			m.metrics.WorkersBusy.Inc()
		}
		m.run(t)
		if m.metrics != nil {
			m.metrics.WorkersBusy.Dec()
		}
	}

	m.logger.Debug("Worker stopped", zap.Int("worker", n))
}

// run supervises one claimed task: the primitive races the timeout timer
// and the cancellation signal, and the first finisher commits. The
// registry's write-once commit is the arbiter when two arrive together.
func (m *Manager) run(t *task) {
	start := time.Now()

	ctx, cancel := context.WithCancel(m.ctx)
	defer cancel()

	resCh := make(chan Result, 1)
	go func() {
		resCh <- m.executeSafe(ctx, t)
	}()

	var timerC <-chan time.Time
	if t.timeout > 0 {
		timer := time.NewTimer(t.timeout)
		defer timer.Stop()
		timerC = timer.C
	}

	var res Result
	select {
	case res = <-resCh:
	case <-timerC:
		// Stop the batch loop and tree walks; a blocking single
		// primitive call may still run to completion in the background
		// and its late result will lose the commit race.
		cancel()
		res = timeoutResult
	case <-t.cancelCh:
		cancel()
		res = cancelledResult
	}

	committed := m.reg.commit(t, res)
	elapsed := time.Since(start)

	if committed && m.metrics != nil {
		m.metrics.RecordCompletion(res.Kind.String(), t.op.Kind.String(), elapsed)
	}

	m.logger.Debug("Task finished",
		zap.String("task_id", t.id.String()),
		zap.String("op", t.op.Kind.String()),
		zap.String("outcome", res.Kind.String()),
		zap.Duration("elapsed", elapsed),
	)
}

// janitor periodically evicts terminal tasks so abandoned handles cannot
// grow the registry without bound.
func (m *Manager) janitor() {
	defer m.janitorW.Done()

	interval := m.cfg.EvictionGrace / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if n := m.reg.sweep(m.cfg.EvictionGrace); n > 0 {
				if m.metrics != nil {
					for i := 0; i < n; i++ {
						m.metrics.RecordEviction()
					}
				}
				m.logger.Debug("Swept terminal tasks", zap.Int("evicted", n))
			}
		}
	}
}
