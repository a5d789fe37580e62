package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/shandysiswandi/userbite/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by the CPU count when NewManager receives
// a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs background tasks on a bounded number of goroutines.
//
// Tasks submitted while the manager is saturated or closed are dropped and
// logged, never queued. Wait closes the manager and joins every task error.
type Manager struct {
	slots chan struct{}
	wg    sync.WaitGroup

	// gate is held for reading while a task is admitted so Wait never races
	// with wg.Add.
	gate   sync.RWMutex
	closed bool

	errMu sync.Mutex
	errs  []error

	dropped atomic.Int64
}

// NewManager creates a Manager that runs at most limit tasks at once.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{slots: make(chan struct{}, limit)}
}

// Go runs task in its own goroutine when a slot is free.
//
// The task is skipped when ctx is already done by the time it starts.
func (m *Manager) Go(ctx context.Context, task func(ctx context.Context) error) {
	if m == nil {
		return
	}

	if !m.admit(ctx) {
		m.dropped.Add(1)
		return
	}

	go func() {
		defer m.wg.Done()
		defer m.release(ctx)

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "goroutine canceled", "because", err)
			return
		}

		if err := task(ctx); err != nil {
			m.errMu.Lock()
			m.errs = append(m.errs, err)
			m.errMu.Unlock()
		}
	}()
}

// Dropped reports how many tasks were refused because the manager was full or closed.
func (m *Manager) Dropped() int64 {
	if m == nil {
		return 0
	}
	return m.dropped.Load()
}

// Wait closes the manager, blocks until running tasks finish and returns
// their joined errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.gate.Lock()
	m.closed = true
	m.gate.Unlock()

	m.wg.Wait()

	m.errMu.Lock()
	defer m.errMu.Unlock()
	return errors.Join(m.errs...)
}

func (m *Manager) admit(ctx context.Context) bool {
	m.gate.RLock()
	defer m.gate.RUnlock()

	if m.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return false
	}

	select {
	case m.slots <- struct{}{}:
		m.wg.Add(1)
		return true
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, skipping new goroutine", "limit", cap(m.slots))
		return false
	}
}

func (m *Manager) release(ctx context.Context) {
	<-m.slots

	if rvr := recover(); rvr != nil {
		if paths := stacktrace.Capture(0); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", paths)
			return
		}
		slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", string(debug.Stack()))
	}
}
