package vtest

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/ui"
	"github.com/vango-dev/vroute/pkg/ui/clock"
	"github.com/vango-dev/vroute/pkg/ui/headless"
)

// flushLimit bounds Settle so a self-rescheduling callback cannot hang a
// test.
const flushLimit = 100000

// Harness is a mounted router on a headless tree driven by a manual clock.
type Harness struct {
	Clock    *clock.Manual
	Root     *headless.Node
	Tweens   *headless.TweenService
	Provider *router.ProviderComponent
	Store    *router.Store
	Scope    *reactive.Owner

	tb testing.TB

	mu     sync.Mutex
	events []router.Event
}

// HarnessBuilder configures a Harness before mounting.
type HarnessBuilder struct {
	child component.Component
	opts  []router.Option
	steps int
}

// New starts building a harness around child, usually a router.Routes.
//
// Example:
//
//	h := vtest.New(router.Routes(
//	    router.Route("/home", component.Text("home")),
//	    router.Route("/profile/:id", component.Text("profile")),
//	)).WithInitialPath("/home").Mount(t)
func New(child component.Component) *HarnessBuilder {
	return &HarnessBuilder{child: child, steps: 1}
}

// WithInitialPath sets the provider's initial path.
func (b *HarnessBuilder) WithInitialPath(path string) *HarnessBuilder {
	b.opts = append(b.opts, router.WithInitialPath(path))
	return b
}

// WithDuration sets the provider's default transition duration.
func (b *HarnessBuilder) WithDuration(d time.Duration) *HarnessBuilder {
	b.opts = append(b.opts, router.WithTransitionDuration(d))
	return b
}

// WithTweenSteps sets the number of frames per headless tween.
func (b *HarnessBuilder) WithTweenSteps(n int) *HarnessBuilder {
	b.steps = n
	return b
}

// WithOptions appends provider options. They apply after the harness's own
// scheduler and tween service, so they can replace them.
func (b *HarnessBuilder) WithOptions(opts ...router.Option) *HarnessBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Mount mounts the provider and registers an unmount with tb.Cleanup.
func (b *HarnessBuilder) Mount(tb testing.TB) *Harness {
	tb.Helper()

	clk := clock.NewManual()
	tweens := headless.NewTweenService(clk, headless.WithSteps(b.steps), headless.WithRecording())
	h := &Harness{
		Clock:  clk,
		Root:   headless.NewRoot(),
		Tweens: tweens,
		Scope:  reactive.NewOwner(nil),
		tb:     tb,
	}

	opts := append([]router.Option{
		router.WithScheduler(clk),
		router.WithTweenService(tweens),
		router.WithObserver(h.record),
	}, b.opts...)
	h.Provider = router.Provider(b.child, opts...)
	h.Provider.Mount(h.Scope, h.Root)
	h.Store = h.Provider.Store()

	tb.Cleanup(h.Unmount)
	return h
}

// Mount is a shorthand for New(child).WithOptions(opts...).Mount(tb).
func Mount(tb testing.TB, child component.Component, opts ...router.Option) *Harness {
	tb.Helper()
	return New(child).WithOptions(opts...).Mount(tb)
}

func (h *Harness) record(e router.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

// Navigate calls Navigate on the store.
func (h *Harness) Navigate(path string) {
	h.Store.Navigate(path)
}

// Advance moves the manual clock forward by d.
func (h *Harness) Advance(d time.Duration) int {
	return h.Clock.Advance(d)
}

// Settle runs every pending timer.
func (h *Harness) Settle() int {
	return h.Clock.Flush(flushLimit)
}

// Unmount disposes the provider's scope. It is safe to call more than once.
func (h *Harness) Unmount() {
	h.Scope.Dispose()
}

// Events returns the recorded store events, optionally filtered by type.
func (h *Harness) Events(types ...router.EventType) []router.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(types) == 0 {
		return append([]router.Event(nil), h.events...)
	}
	var out []router.Event
	for _, e := range h.events {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Route returns the mounted controller for pattern, or nil.
func (h *Harness) Route(pattern string) *router.Controller {
	for _, c := range h.Store.Controllers() {
		if c.Pattern().String() == pattern {
			return c
		}
	}
	return nil
}

// Phase returns the phase of the route with pattern, or PhaseHidden when
// no such route is mounted.
func (h *Harness) Phase(pattern string) router.Phase {
	c := h.Route(pattern)
	if c == nil {
		return router.PhaseHidden
	}
	return c.Phase()
}

// Shown returns the patterns of routes that are entering or visible.
func (h *Harness) Shown() []string {
	var out []string
	for _, c := range h.Store.Controllers() {
		switch c.Phase() {
		case router.PhaseEntering, router.PhaseVisible:
			out = append(out, c.Pattern().String())
		}
	}
	return out
}

// Rendered returns the patterns of routes that are not hidden.
func (h *Harness) Rendered() []string {
	var out []string
	for _, c := range h.Store.Controllers() {
		if c.Phase() != router.PhaseHidden {
			out = append(out, c.Pattern().String())
		}
	}
	return out
}

// Find returns the first node named name, or nil.
func (h *Harness) Find(name string) *headless.Node {
	return h.Root.Find(name)
}

// Click fires the Activated event on the node named name.
func (h *Harness) Click(name string) {
	h.tb.Helper()
	n := h.Find(name)
	if n == nil {
		h.tb.Fatalf("no node named %q in tree:\n%s", name, truncate(h.Root.Dump(), 2000))
		return
	}
	if n.Fire(ui.EventActivated) == 0 {
		h.tb.Errorf("node %q has no %s handler", name, ui.EventActivated)
	}
}

// ExpectPhase asserts the phase of a route.
func (h *Harness) ExpectPhase(pattern string, want router.Phase) {
	h.tb.Helper()
	if got := h.Phase(pattern); got != want {
		h.tb.Errorf("route %s: phase = %s, want %s", pattern, got, want)
	}
}

// ExpectShown asserts that exactly the given routes are entering or
// visible.
func (h *Harness) ExpectShown(patterns ...string) {
	h.tb.Helper()
	got := h.Shown()
	if strings.Join(got, ",") != strings.Join(patterns, ",") {
		h.tb.Errorf("shown routes = %v, want %v", got, patterns)
	}
}

// ExpectParam asserts a value in the params snapshot.
func (h *Harness) ExpectParam(name, want string) {
	h.tb.Helper()
	got, ok := h.Store.Params().Get(name)
	if !ok {
		h.tb.Errorf("param %q not set, params = %v", name, h.Store.Params())
		return
	}
	if got != want {
		h.tb.Errorf("param %q = %q, want %q", name, got, want)
	}
}

// ExpectContains asserts that the tree dump contains substr.
func (h *Harness) ExpectContains(substr string) {
	h.tb.Helper()
	ExpectContains(h.tb, h.Root, substr)
}

// ExpectNotContains asserts that the tree dump does not contain substr.
func (h *Harness) ExpectNotContains(substr string) {
	h.tb.Helper()
	ExpectNotContains(h.tb, h.Root, substr)
}

// ExpectContains asserts that the dump of n contains expected.
//
// Example:
//
//	vtest.ExpectContains(t, root, "Text=Profile")
func ExpectContains(tb testing.TB, n *headless.Node, expected string) {
	tb.Helper()
	dump := n.Dump()
	if !strings.Contains(dump, expected) {
		tb.Errorf("expected tree to contain %q, got:\n%s", expected, truncate(dump, 2000))
	}
}

// ExpectNotContains asserts that the dump of n does not contain
// unexpected.
func ExpectNotContains(tb testing.TB, n *headless.Node, unexpected string) {
	tb.Helper()
	dump := n.Dump()
	if strings.Contains(dump, unexpected) {
		tb.Errorf("expected tree to NOT contain %q, got:\n%s", unexpected, truncate(dump, 2000))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
