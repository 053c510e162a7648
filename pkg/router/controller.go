package router

import (
	"time"

	"go.uber.org/atomic"

	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/transition"
	"github.com/vango-dev/vroute/pkg/ui"
)

// Phase is the rendering state of a route.
type Phase string

const (
	// PhaseHidden renders nothing.
	PhaseHidden Phase = "hidden"

	// PhaseEntering renders the content moving toward the animate style.
	PhaseEntering Phase = "entering"

	// PhaseVisible renders the content at rest.
	PhaseVisible Phase = "visible"

	// PhaseExiting renders the content moving toward the exit style, after
	// which the route becomes hidden.
	PhaseExiting Phase = "exiting"
)

// State is the visibility state of one route.
type State struct {
	Visible   bool `json:"visible"`
	Animating bool `json:"animating"`

	// Matched reports whether the route matched the path at its last
	// evaluation.
	Matched bool `json:"matched"`

	// Generation is the token of the transition that produced this state.
	Generation uint64 `json:"generation"`
}

// Phase derives the rendering phase.
func (s State) Phase() Phase {
	switch {
	case !s.Visible && !s.Animating:
		return PhaseHidden
	case s.Matched && s.Animating:
		return PhaseEntering
	case s.Matched:
		return PhaseVisible
	default:
		return PhaseExiting
	}
}

// Controller runs the show/animate/hide state machine of one mounted route.
//
// Each evaluation that starts a transition takes a new generation token.
// The delayed callback that finishes the transition carries its token and
// does nothing when a newer evaluation has run since, so only the latest
// decision is ever applied. The pending timer is also stopped.
type Controller struct {
	store    *Store
	pattern  *routepath.Pattern
	content  component.Component
	kind     transition.Kind
	duration time.Duration
	config   transition.Config

	scope  *reactive.Owner
	parent ui.Node

	state *reactive.Signal[State]
	gen   atomic.Uint64
	timer ui.Timer

	view     *view
	phase    Phase
	disposed bool
}

// view is what a non-hidden route renders.
type view struct {
	container ui.Node
	scope     *reactive.Owner
	tween     ui.Tween

	// target is set once a target style has been applied.
	target  bool
	matched bool
}

func newController(store *Store, def *RouteDef, scope *reactive.Owner, parent ui.Node, kind transition.Kind, d time.Duration) *Controller {
	return &Controller{
		store:    store,
		pattern:  def.pattern,
		content:  def.content,
		kind:     kind,
		duration: d,
		config:   transition.Lookup(kind),
		scope:    scope,
		parent:   parent,
		state:    reactive.NewSignal(State{}),
		phase:    PhaseHidden,
	}
}

// Pattern returns the compiled route pattern.
func (c *Controller) Pattern() *routepath.Pattern { return c.pattern }

// Kind returns the resolved transition kind.
func (c *Controller) Kind() transition.Kind { return c.kind }

// Duration returns the resolved transition duration.
func (c *Controller) Duration() time.Duration { return c.duration }

// State returns the current state.
func (c *Controller) State() State { return c.state.Get() }

// Phase returns the current rendering phase.
func (c *Controller) Phase() Phase { return c.state.Get().Phase() }

// Container returns the node holding the route content, or nil while
// hidden.
func (c *Controller) Container() ui.Node {
	if c.view == nil {
		return nil
	}
	return c.view.container
}

func (c *Controller) mount() {
	c.store.register(c)
	c.scope.OnCleanup(c.unmount)
	c.store.emit(Event{Type: EventMount, Path: c.store.Path(), Route: c.pattern.String()})

	reactive.CreateEffect(c.scope, func() reactive.Cleanup {
		c.render()
		return nil
	}, c.state)

	reactive.CreateEffect(c.scope, func() reactive.Cleanup {
		c.evaluate()
		return nil
	}, c.store.path)
}

// evaluate matches the current path and starts the matching transition.
func (c *Controller) evaluate() {
	if c.disposed {
		return
	}

	res := c.pattern.Match(c.store.Path())
	cur := c.state.Get()

	if res.IsMatch {
		c.store.publishParams(res.Params)
	} else if !cur.Visible && !cur.Animating {
		// Already hidden; nothing to exit from.
		return
	}

	gen := c.gen.Inc()
	c.stopTimer()

	direction := DirectionExit
	if res.IsMatch {
		direction = DirectionEnter
	}
	c.store.metrics.transition(direction)

	c.state.Set(State{
		Visible:    cur.Visible || res.IsMatch,
		Animating:  true,
		Matched:    res.IsMatch,
		Generation: gen,
	})

	c.schedule(gen, !res.IsMatch)
}

func (c *Controller) schedule(gen uint64, exiting bool) {
	settle := func() { c.settle(gen, exiting) }

	sched := c.store.cfg.sched
	if sched == nil || c.duration <= 0 {
		settle()
		return
	}
	c.timer = sched.Delay(c.duration, settle)
}

// settle finishes the transition started with token gen.
func (c *Controller) settle(gen uint64, exiting bool) {
	if c.disposed || c.gen.Load() != gen {
		c.store.metrics.staleCallback()
		c.store.logger.Debug("discarding stale transition callback",
			"route", c.pattern.String(),
			"generation", gen,
			"current", c.gen.Load())
		return
	}
	c.timer = nil

	next := c.state.Get()
	next.Animating = false
	if exiting {
		next.Visible = false
	}
	c.state.Set(next)
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// render brings the tree in line with the current state.
func (c *Controller) render() {
	if c.disposed {
		return
	}
	st := c.state.Get()
	phase := st.Phase()

	if phase == PhaseHidden {
		c.teardownView()
	} else {
		c.ensureView()
		c.applyTarget(st.Matched)
	}

	if phase != c.phase {
		prev := c.phase
		c.phase = phase
		c.store.logger.Debug("route phase",
			"route", c.pattern.String(),
			"from", string(prev),
			"to", string(phase),
			"generation", st.Generation)
		c.store.emit(Event{
			Type:       EventPhase,
			Path:       c.store.Path(),
			Route:      c.pattern.String(),
			Phase:      phase,
			Prev:       prev,
			Generation: st.Generation,
		})
	}
}

// ensureView creates the container, starting from the kind's initial
// style, and mounts the route content into it.
func (c *Controller) ensureView() {
	if c.view != nil {
		return
	}

	props := ui.Props{
		ui.PropName:                   "Route " + c.pattern.String(),
		ui.PropSize:                   ui.FromScale(1, 1),
		ui.PropPosition:               ui.FromScale(0, 0),
		ui.PropBackgroundTransparency: 1.0,
	}
	for k, v := range c.config.Start().TweenProps() {
		props[k] = v
	}

	container := c.parent.NewChild(ui.ClassFrame, props)
	c.view = &view{
		container: container,
		scope:     component.Mount(c.content, c.scope, container),
	}
}

// applyTarget moves the container toward the animate or exit style. A new
// tween is created only when the target changes.
func (c *Controller) applyTarget(matched bool) {
	v := c.view
	if v.target && v.matched == matched {
		return
	}
	v.target = true
	v.matched = matched

	props := c.config.Target(matched).TweenProps()
	if v.tween != nil {
		v.tween.Cancel()
		v.tween.Destroy()
		v.tween = nil
	}

	tweens := c.store.cfg.tweens
	if tweens == nil || c.duration <= 0 {
		v.container.Set(props)
		return
	}

	tw := tweens.Create(v.container, c.duration, props)
	v.tween = tw
	tw.OnCompleted(func() {
		tw.Destroy()
		if v.tween == tw {
			v.tween = nil
		}
	})
	tw.Play()
}

func (c *Controller) teardownView() {
	v := c.view
	if v == nil {
		return
	}
	c.view = nil

	if v.tween != nil {
		v.tween.Cancel()
		v.tween.Destroy()
	}
	v.scope.Dispose()
	v.container.Destroy()
}

// unmount runs when the route's scope is disposed.
func (c *Controller) unmount() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.gen.Inc()
	c.stopTimer()
	c.teardownView()
	c.store.unregister(c)
	c.store.emit(Event{Type: EventUnmount, Path: c.store.Path(), Route: c.pattern.String()})
}
