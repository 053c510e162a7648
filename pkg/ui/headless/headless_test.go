package headless

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vroute/pkg/ui"
	"github.com/vango-dev/vroute/pkg/ui/clock"
)

func TestNodeTree(t *testing.T) {
	root := NewRoot()
	a := root.NewChild(ui.ClassFrame, ui.Props{ui.PropName: "a"})
	b := a.NewChild(ui.ClassTextButton, ui.Props{ui.PropName: "b", ui.PropText: "go"})

	require.Len(t, root.Children(), 1)
	assert.Equal(t, a, root.Children()[0])
	assert.Equal(t, ui.Node(root), a.Parent())
	assert.NotEqual(t, a.ID(), b.ID())

	found := root.Find("b")
	require.NotNil(t, found)
	assert.Equal(t, ui.ClassTextButton, found.Class())
	assert.Len(t, root.FindAll(ui.ClassFrame), 2)

	a.Destroy()
	assert.True(t, a.Destroyed())
	assert.True(t, b.Destroyed())
	assert.Empty(t, root.Children())
	assert.Nil(t, a.Parent())
	assert.Nil(t, root.Find("b"))

	// Destroying twice is harmless.
	a.Destroy()
}

func TestNodeEvents(t *testing.T) {
	root := NewRoot()
	btn := root.NewChild(ui.ClassTextButton, nil).(*Node)

	clicks := 0
	disconnect := btn.Connect(ui.EventActivated, func() { clicks++ })

	assert.Equal(t, 1, btn.Fire(ui.EventActivated))
	disconnect()
	assert.Equal(t, 0, btn.Fire(ui.EventActivated))
	assert.Equal(t, 1, clicks)

	btn.Connect(ui.EventActivated, func() { clicks++ })
	btn.Destroy()
	assert.Equal(t, 0, btn.Fire(ui.EventActivated))
}

func TestNodeSetIgnoredAfterDestroy(t *testing.T) {
	root := NewRoot()
	n := root.NewChild(ui.ClassFrame, ui.Props{ui.PropBackgroundTransparency: 1.0}).(*Node)
	n.Destroy()
	n.Set(ui.Props{ui.PropBackgroundTransparency: 0.0})

	v, _ := n.Get(ui.PropBackgroundTransparency)
	assert.Equal(t, 1.0, v)
}

func TestTweenInterpolatesAndCompletes(t *testing.T) {
	m := clock.NewManual()
	svc := NewTweenService(m, WithSteps(4), WithRecording())
	root := NewRoot()
	n := root.NewChild(ui.ClassFrame, ui.Props{
		ui.PropPosition:               ui.FromScale(1, 0),
		ui.PropBackgroundTransparency: 1.0,
	})

	tw := svc.Create(n, 400*time.Millisecond, ui.Props{
		ui.PropPosition:               ui.FromScale(0, 0),
		ui.PropBackgroundTransparency: 0.0,
	})
	done := 0
	tw.OnCompleted(func() { done++ })
	tw.Play()

	m.Advance(100 * time.Millisecond)
	pos, _ := n.Get(ui.PropPosition)
	assert.InDelta(t, 0.75, pos.(ui.UDim2).XScale, 1e-9)
	bg, _ := n.Get(ui.PropBackgroundTransparency)
	assert.InDelta(t, 0.75, bg.(float64), 1e-9)

	m.Advance(300 * time.Millisecond)
	pos, _ = n.Get(ui.PropPosition)
	assert.Equal(t, ui.FromScale(0, 0), pos)
	assert.Equal(t, 1, done)

	recorded := svc.Created()
	require.Len(t, recorded, 1)
	assert.Equal(t, TweenCompleted, recorded[0].State())

	// Late subscribers on a completed tween run immediately.
	tw.OnCompleted(func() { done++ })
	assert.Equal(t, 2, done)
}

func TestTweenCancel(t *testing.T) {
	m := clock.NewManual()
	svc := NewTweenService(m, WithRecording())
	n := NewRoot().NewChild(ui.ClassFrame, ui.Props{ui.PropBackgroundTransparency: 1.0})

	tw := svc.Create(n, time.Second, ui.Props{ui.PropBackgroundTransparency: 0.0})
	completed := false
	tw.OnCompleted(func() { completed = true })
	tw.Play()
	tw.Cancel()

	m.Advance(2 * time.Second)
	assert.False(t, completed)
	v, _ := n.Get(ui.PropBackgroundTransparency)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, TweenCancelled, svc.Created()[0].State())
	assert.Equal(t, 0, m.Pending())

	tw.Destroy()
	assert.True(t, svc.Created()[0].IsDestroyed())
}

func TestTweenServiceKeepsNothingByDefault(t *testing.T) {
	m := clock.NewManual()
	svc := NewTweenService(m)
	root := NewRoot()

	for i := 0; i < 100; i++ {
		n := root.NewChild(ui.ClassFrame, ui.Props{ui.PropBackgroundTransparency: 1.0})
		tw := svc.Create(n, 10*time.Millisecond, ui.Props{ui.PropBackgroundTransparency: 0.0})
		tw.OnCompleted(tw.Destroy)
		tw.Play()
		m.Advance(10 * time.Millisecond)
		n.Destroy()
	}

	assert.Empty(t, svc.Created())
	assert.Empty(t, root.Children())
	assert.Equal(t, 0, m.Pending())
}

func TestDump(t *testing.T) {
	root := NewRoot()
	root.NewChild(ui.ClassTextLabel, ui.Props{ui.PropText: "hi"})

	out := root.Dump()
	assert.Contains(t, out, "Frame Name=Root")
	assert.Contains(t, out, "\n  TextLabel Text=hi\n")
}
