package reactive

import (
	"sync"

	"go.uber.org/atomic"
)

// Owner represents a component scope that owns reactive primitives.
// When an Owner is disposed, its child owners, effects and cleanup functions
// are disposed too, which is how unmounting releases timers and tweens.
//
// Owners form a hierarchy that mirrors the component tree. Context values
// set on an owner are visible to its descendants.
type Owner struct {
	id uint64

	// parent is nil for a root owner.
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups run in reverse registration order on dispose.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// values stores context values for this scope.
	values   map[any]any
	valuesMu sync.RWMutex

	disposed atomic.Bool
}

// NewOwner creates an Owner. A non-nil parent adopts the new owner as a
// child; a nil parent creates a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has run.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// Children returns the live child owners.
func (o *Owner) Children() []*Owner {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	return append([]*Owner(nil), o.children...)
}

func (o *Owner) addChild(child *Owner) {
	if o.disposed.Load() {
		child.Dispose()
		return
	}
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) registerEffect(e *Effect) bool {
	if o.disposed.Load() {
		return false
	}
	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
	return true
}

// OnCleanup registers fn to run when the Owner is disposed. On an already
// disposed Owner fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// SetValue stores a context value visible to this Owner and its descendants.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()
	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// GetValue looks key up on this Owner, then on its ancestors.
func (o *Owner) GetValue(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		cur.valuesMu.RLock()
		v, ok := cur.values[key]
		cur.valuesMu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Dispose disposes children (last created first), then effects, then runs
// cleanups in reverse order, and detaches from the parent.
// Disposing twice is a no-op.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()
	for i := len(effects) - 1; i >= 0; i-- {
		effects[i].dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}
}
