package reactive

// Cleanup is returned by an effect function and runs before the effect
// re-runs and when the effect is disposed.
type Cleanup func()

// Effect is a side effect that re-runs whenever one of its dependencies
// changes.
//
// Dependencies are declared when the effect is created, like a hook
// dependency list; reads inside the body are not tracked.
// A change notified while the effect body is running is not lost: the effect
// runs once more after the current run returns.
type Effect struct {
	id    uint64
	owner *Owner
	fn    func() Cleanup

	cleanup Cleanup
	unsubs  []func()

	running  bool
	pending  bool
	disposed bool
	runs     int
}

// CreateEffect creates an effect owned by owner, runs it immediately, and
// re-runs it after any of deps changes. The effect is disposed with its
// owner. Creating an effect on a disposed owner returns a disposed effect
// that never runs.
func CreateEffect(owner *Owner, fn func() Cleanup, deps ...Source) *Effect {
	e := &Effect{
		id:    nextID(),
		owner: owner,
		fn:    fn,
	}

	if owner != nil && !owner.registerEffect(e) {
		e.disposed = true
		return e
	}

	for _, dep := range deps {
		e.unsubs = append(e.unsubs, dep.Subscribe(e.markDirty))
	}

	e.run()
	return e
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the effect body has run.
func (e *Effect) Runs() int {
	return e.runs
}

// markDirty is the dependency callback.
func (e *Effect) markDirty() {
	if e.disposed {
		return
	}
	if e.running {
		e.pending = true
		return
	}
	e.run()
}

// run executes the effect body, then repeats while changes arrived during
// the run.
func (e *Effect) run() {
	for {
		if e.disposed {
			return
		}
		e.pending = false

		if e.cleanup != nil {
			c := e.cleanup
			e.cleanup = nil
			c()
		}

		e.running = true
		e.runs++
		e.cleanup = e.fn()
		e.running = false

		if !e.pending {
			return
		}
	}
}

// Dispose stops the effect and runs its last cleanup.
func (e *Effect) Dispose() {
	e.dispose()
}

func (e *Effect) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil

	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
}
