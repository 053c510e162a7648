package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalSetNotifiesOnChange(t *testing.T) {
	s := NewSignal(1)
	calls := 0
	unsub := s.Subscribe(func() { calls++ })

	s.Set(2)
	s.Set(2)
	assert.Equal(t, 1, calls, "equal value must not notify")
	assert.Equal(t, 2, s.Get())

	s.Update(func(v int) int { return v + 1 })
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, s.Get())

	unsub()
	s.Set(10)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, s.Subscribers())
}

func TestSignalWithEquals(t *testing.T) {
	type pair struct{ a, b int }
	s := NewSignal(pair{1, 1}).WithEquals(func(x, y pair) bool { return x.a == y.a })
	calls := 0
	s.Subscribe(func() { calls++ })

	s.Set(pair{1, 2})
	assert.Equal(t, 0, calls)
	assert.Equal(t, pair{1, 1}, s.Get(), "value kept when considered equal")

	s.Set(pair{2, 2})
	assert.Equal(t, 1, calls)
}

func TestEffectRunsOnCreateAndOnChange(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	count := NewSignal(0)
	var seen []int
	e := CreateEffect(owner, func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	}, count)

	count.Set(1)
	count.Set(2)

	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3, e.Runs())
}

func TestEffectCleanupOrder(t *testing.T) {
	owner := NewOwner(nil)
	count := NewSignal(0)
	var log []string

	CreateEffect(owner, func() Cleanup {
		v := count.Get()
		log = append(log, "run")
		return func() {
			if v >= 0 {
				log = append(log, "cleanup")
			}
		}
	}, count)

	count.Set(1)
	owner.Dispose()
	count.Set(2)

	assert.Equal(t, []string{"run", "cleanup", "run", "cleanup"}, log)
	assert.Equal(t, 0, count.Subscribers())
}

func TestEffectReentrantWriteRerunsOnce(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	s := NewSignal(0)
	runs := 0
	CreateEffect(owner, func() Cleanup {
		runs++
		if s.Get() == 1 {
			s.Set(2)
		}
		return nil
	}, s)

	s.Set(1)
	assert.Equal(t, 2, s.Get())
	assert.Equal(t, 3, runs, "initial run, run for 1, rerun for the write made during the run")
}

func TestEffectOnDisposedOwnerNeverRuns(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	CreateEffect(owner, func() Cleanup {
		ran = true
		return nil
	})
	assert.False(t, ran)
}

func TestOwnerDisposeOrder(t *testing.T) {
	root := NewOwner(nil)
	a := NewOwner(root)
	b := NewOwner(root)
	var log []string

	root.OnCleanup(func() { log = append(log, "root-1") })
	root.OnCleanup(func() { log = append(log, "root-2") })
	a.OnCleanup(func() { log = append(log, "a") })
	b.OnCleanup(func() { log = append(log, "b") })

	require.Len(t, root.Children(), 2)
	root.Dispose()
	root.Dispose()

	assert.Equal(t, []string{"b", "a", "root-2", "root-1"}, log)
	assert.True(t, a.IsDisposed())
	assert.Empty(t, root.Children())

	ran := false
	root.OnCleanup(func() { ran = true })
	assert.True(t, ran, "cleanup on a disposed owner runs immediately")
}

func TestOwnerChildDisposeDetaches(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	child.Dispose()
	assert.Empty(t, root.Children())
	assert.Equal(t, root, child.Parent())
}

func TestContext(t *testing.T) {
	theme := CreateContext("light")
	root := NewOwner(nil)
	mid := NewOwner(root)
	leaf := NewOwner(mid)
	sibling := NewOwner(root)

	assert.Equal(t, "light", theme.Use(leaf))

	theme.Provide(mid, "dark")
	assert.Equal(t, "dark", theme.Use(leaf))
	assert.Equal(t, "dark", theme.Use(mid))
	assert.Equal(t, "light", theme.Use(sibling), "siblings do not see the value")
	assert.Equal(t, "light", theme.Use(nil))

	_, ok := theme.Lookup(sibling)
	assert.False(t, ok)

	other := CreateContext("other")
	assert.Equal(t, "other", other.Use(leaf), "contexts with the same type do not collide")
	assert.Equal(t, "light", theme.Default())
}
