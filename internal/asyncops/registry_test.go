package asyncops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCommitWriteOnce(t *testing.T) {
	reg := newRegistry()
	tk := newTask(Exists("/tmp/x"), 0)
	reg.add(tk)
	require.True(t, reg.claim(tk))

	require.True(t, reg.commit(tk, Success(true)))
	assert.False(t, reg.commit(tk, timeoutResult), "second commit must lose")
	assert.Equal(t, ResultSuccess, tk.result.Kind)

	select {
	case <-tk.done:
	default:
		t.Fatal("done channel not closed after commit")
	}
}

func TestRegistryCancelBeforeClaim(t *testing.T) {
	reg := newRegistry()
	tk := newTask(Delete("/tmp/keep"), 0)
	reg.add(tk)

	reg.cancel(tk.id)

	assert.False(t, reg.claim(tk), "cancelled task must not be claimable")
	assert.Equal(t, StateDone, tk.state)
	assert.Equal(t, ResultCancelled, tk.result.Kind)
}

func TestRegistryCancelIdempotent(t *testing.T) {
	reg := newRegistry()
	tk := newTask(Exists("/tmp/x"), 0)
	reg.add(tk)

	reg.cancel(tk.id)
	reg.cancel(tk.id)
	reg.cancel(tk.id)

	assert.Equal(t, ResultCancelled, tk.result.Kind)

	// Cancel on an already-successful task changes nothing.
	tk2 := newTask(Exists("/tmp/y"), 0)
	reg.add(tk2)
	require.True(t, reg.claim(tk2))
	require.True(t, reg.commit(tk2, Success(true)))
	reg.cancel(tk2.id)
	assert.Equal(t, ResultSuccess, tk2.result.Kind)

	// Unknown IDs are a no-op, not a panic.
	reg.cancel(newTask(Exists("/tmp/z"), 0).id)
}

func TestRegistryRunningCancelIsAdvisory(t *testing.T) {
	reg := newRegistry()
	tk := newTask(Copy("/src", "/dst"), 0)
	reg.add(tk)
	require.True(t, reg.claim(tk))

	reg.cancel(tk.id)

	// Running tasks only get the signal; the supervisor commits later.
	assert.Equal(t, StateRunning, tk.state)
	select {
	case <-tk.cancelCh:
	default:
		t.Fatal("cancel signal not delivered")
	}
}

func TestRegistrySweep(t *testing.T) {
	reg := newRegistry()

	fresh := newTask(Exists("/b"), 0)
	reg.add(fresh)
	require.True(t, reg.claim(fresh))
	reg.commit(fresh, Success(false))

	stale := newTask(Exists("/c"), 0)
	reg.add(stale)
	require.True(t, reg.claim(stale))
	reg.commit(stale, Success(false))
	stale.finishedAt = time.Now().Add(-time.Hour)

	running := newTask(Exists("/d"), 0)
	reg.add(running)
	require.True(t, reg.claim(running))

	evicted := reg.sweep(time.Minute)
	assert.Equal(t, 1, evicted, "only the stale terminal task goes")
	assert.Equal(t, 2, reg.len())

	_, ok := reg.get(fresh.id)
	assert.True(t, ok, "terminal task within grace must survive")
	_, ok = reg.get(running.id)
	assert.True(t, ok, "running task must never be evicted")
}

func TestRegistryCancelAllPending(t *testing.T) {
	reg := newRegistry()
	pending := newTask(Exists("/a"), 0)
	reg.add(pending)

	done := newTask(Exists("/b"), 0)
	reg.add(done)
	require.True(t, reg.claim(done))
	reg.commit(done, Success(true))

	reg.cancelAllPending()

	assert.Equal(t, ResultCancelled, pending.result.Kind)
	assert.Equal(t, ResultSuccess, done.result.Kind, "terminal results are never rewritten")
}
