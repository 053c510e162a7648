package clock

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"go.uber.org/atomic"

	"github.com/vango-dev/vroute/pkg/ui"
)

// ErrLoopClosed is returned when work is submitted to a closed loop.
var ErrLoopClosed = errors.New("clock: loop closed")

// DefaultQueueSize is the dispatch queue capacity used by NewLoop.
const DefaultQueueSize = 256

// FaultHandler receives panics recovered from dispatched callbacks.
type FaultHandler func(recovered any, stack []byte)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger used to report dropped work and faults.
func WithLogger(l *slog.Logger) LoopOption {
	return func(loop *Loop) {
		loop.logger = l
	}
}

// WithFaultHandler sets the handler for panics in dispatched callbacks.
func WithFaultHandler(fn FaultHandler) LoopOption {
	return func(loop *Loop) {
		loop.onFault = fn
	}
}

// WithQueueSize sets the dispatch queue capacity.
func WithQueueSize(n int) LoopOption {
	return func(loop *Loop) {
		if n > 0 {
			loop.queueSize = n
		}
	}
}

// Loop is a single-goroutine event loop. Every function handed to Dispatch,
// and every Delay callback, runs on the loop goroutine, so reactive state
// touched only from the loop needs no locking.
type Loop struct {
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool
	running    atomic.Bool
	queueSize  int
	logger     *slog.Logger
	onFault    FaultHandler
}

// NewLoop creates a loop. Call Run (usually in its own goroutine) to start
// processing.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		done:      make(chan struct{}),
		queueSize: DefaultQueueSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.dispatchCh = make(chan func(), l.queueSize)
	return l
}

// Run processes dispatched work until ctx is done or Close is called.
// It returns ctx.Err() or nil after Close.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("clock: loop already running")
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.dispatchCh:
			l.safeExecute(fn)
		}
	}
}

// safeExecute runs fn with panic recovery.
func (l *Loop) safeExecute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			l.logger.Error("loop callback panic",
				"panic", r,
				"stack", string(stack))
			if l.onFault != nil {
				l.onFault(r, stack)
			}
		}
	}()

	fn()
}

// Dispatch queues fn to run on the loop. It is safe to call from any
// goroutine. It reports whether fn was queued.
func (l *Loop) Dispatch(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.dispatchCh <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.logger.Warn("dispatch queue full, discarding callback")
		return false
	}
}

// post queues fn, waiting for room in the queue. It fails only once the
// loop is closed.
func (l *Loop) post(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.dispatchCh <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
// It must not be called from the loop goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Dispatch(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delay implements ui.Scheduler. When the timer fires the callback is queued
// onto the loop, waiting for room if the queue is full; it is never dropped
// while the loop is open. Stopping the timer also drops a callback that has
// been queued but has not run yet.
func (l *Loop) Delay(d time.Duration, fn func()) ui.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

// Close stops the loop. Pending work is discarded.
func (l *Loop) Close() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.done)
	}
}

// Done returns a channel closed when the loop is closed.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop implements ui.Timer.
func (t *loopTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}
