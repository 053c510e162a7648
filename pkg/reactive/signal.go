package reactive

import (
	"reflect"
	"sync"

	"go.uber.org/atomic"
)

var ids atomic.Uint64

func nextID() uint64 {
	return ids.Inc()
}

// Source is a value that can notify subscribers when it changes.
// Signals are Sources; effects list the Sources they depend on.
type Source interface {
	// Subscribe registers fn to run after each change and returns a function
	// that removes the subscription.
	Subscribe(fn func()) (unsubscribe func())
}

// subscription is one registered change callback.
type subscription struct {
	id uint64
	fn func()
}

// signalBase provides type-erased subscriber management.
type signalBase struct {
	subs  []subscription
	subMu sync.RWMutex
}

// Subscribe implements Source.
func (s *signalBase) Subscribe(fn func()) func() {
	id := nextID()

	s.subMu.Lock()
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notifySubscribers runs every subscriber. Uses copy-before-notify so
// subscribers may subscribe or unsubscribe while being notified.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.fn()
	}
}

// subscriberCount returns the number of live subscriptions.
func (s *signalBase) subscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// Signal is a reactive value container. Set notifies subscribers only when
// the new value differs from the current one.
type Signal[T any] struct {
	base signalBase

	id    uint64
	value T
	mu    sync.RWMutex

	// equal decides whether a Set changes the value. If nil,
	// reflect.DeepEqual is used.
	equal func(T, T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update atomically reads and replaces the value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Subscribe implements Source.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.base.Subscribe(fn)
}

// Subscribers returns the number of live subscriptions.
func (s *Signal[T]) Subscribers() int {
	return s.base.subscriberCount()
}

// WithEquals sets a custom equality function and returns the signal.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}
