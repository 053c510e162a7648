package clock

import (
	"container/heap"
	"sync"
	"time"

	"github.com/vango-dev/vroute/pkg/ui"
)

// Manual is a virtual-time scheduler. Time only moves when Advance is called,
// and due callbacks run synchronously on the caller's goroutine in due-time
// order (ties broken by scheduling order).
//
// Manual is the scheduler used by tests and by the simulate command.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the virtual time elapsed since the clock was created.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Delay schedules fn to run once the clock has advanced by d.
// A non-positive d runs fn on the next Advance, including Advance(0).
func (m *Manual) Delay(d time.Duration, fn func()) ui.Timer {
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		clock: m,
		due:   m.now + d,
		seq:   m.seq,
		fn:    fn,
	}
	heap.Push(&m.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that becomes
// due, including callbacks scheduled by other callbacks while advancing.
// It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		m.mu.Lock()
		if len(m.timers) == 0 || m.timers[0].due > target {
			m.now = target
			m.mu.Unlock()
			return fired
		}
		t := heap.Pop(&m.timers).(*manualTimer)
		t.index = -1
		if t.due > m.now {
			m.now = t.due
		}
		m.mu.Unlock()

		t.fn()
		fired++
	}
}

// Flush advances until no timers remain and returns the callbacks run.
// A callback that keeps rescheduling itself would never let Flush return,
// so Flush gives up after limit callbacks.
func (m *Manual) Flush(limit int) int {
	fired := 0
	for fired < limit {
		m.mu.Lock()
		if len(m.timers) == 0 {
			m.mu.Unlock()
			return fired
		}
		next := m.timers[0].due - m.now
		m.mu.Unlock()

		n := m.advanceOne(next)
		if n == 0 {
			return fired
		}
		fired += n
	}
	return fired
}

// advanceOne advances to the next due time and runs one callback.
func (m *Manual) advanceOne(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	if len(m.timers) == 0 || m.timers[0].due > target {
		m.now = target
		m.mu.Unlock()
		return 0
	}
	t := heap.Pop(&m.timers).(*manualTimer)
	t.index = -1
	m.now = target
	m.mu.Unlock()

	t.fn()
	return 1
}

// Pending returns the number of scheduled callbacks that have not run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

type manualTimer struct {
	clock *Manual
	due   time.Duration
	seq   uint64
	fn    func()
	index int
}

// Stop implements ui.Timer.
func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.index < 0 {
		return false
	}
	heap.Remove(&m.timers, t.index)
	t.index = -1
	return true
}

// timerHeap orders timers by due time, then by scheduling order.
type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].seq < h[j].seq
	}
	return h[i].due < h[j].due
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
