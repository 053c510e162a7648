package router_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/router"
	"github.com/vango-dev/vroute/pkg/transition"
	"github.com/vango-dev/vroute/pkg/ui"
	"github.com/vango-dev/vroute/pkg/ui/clock"
	"github.com/vango-dev/vroute/pkg/ui/headless"
	"github.com/vango-dev/vroute/pkg/vtest"
)

const d300 = 300 * time.Millisecond

func homeProfile() *router.RoutesComponent {
	return router.Routes(
		router.Route("/home", component.Text("home")),
		router.Route("/profile/:id", component.Text("profile")),
	)
}

func TestNavigateToProfile(t *testing.T) {
	h := vtest.New(homeProfile()).
		WithInitialPath("/home").
		WithDuration(d300).
		Mount(t)

	h.ExpectPhase("/home", router.PhaseEntering)
	h.Advance(d300)
	h.ExpectPhase("/home", router.PhaseVisible)

	h.Navigate("/profile/7")
	h.ExpectPhase("/home", router.PhaseExiting)
	h.ExpectPhase("/profile/:id", router.PhaseEntering)
	h.ExpectParam("id", "7")

	h.Advance(d300)
	h.ExpectPhase("/home", router.PhaseHidden)
	h.ExpectPhase("/profile/:id", router.PhaseVisible)
	h.ExpectParam("id", "7")
	assert.Equal(t, "/profile/7", h.Store.Path())

	h.ExpectContains("Text=profile")
	h.ExpectNotContains("Route /home")
	h.ExpectNotContains("Text=home")
}

func TestNavigateSamePathIsIdempotent(t *testing.T) {
	h := vtest.New(homeProfile()).WithInitialPath("/home").Mount(t)
	h.Settle()

	before := h.Store.Snapshot()
	h.Navigate("/home")
	h.Navigate("/home")
	assert.Equal(t, 0, h.Clock.Pending(), "same path must not start a transition")
	h.Settle()
	assert.Equal(t, before, h.Store.Snapshot())

	h.Navigate("/profile/3")
	h.Navigate("/profile/3")
	h.Settle()
	after := h.Store.Snapshot()

	h.Navigate("/profile/3")
	h.Settle()
	assert.Equal(t, after, h.Store.Snapshot())
	h.ExpectShown("/profile/:id")
}

func TestAtMostOneRouteShownAtRest(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/", component.Text("index")),
		router.Route("/a", component.Text("a")),
		router.Route("/b", component.Text("b")),
		router.Route("/users/:id", component.Text("user")),
		router.Route("/users/:id/posts", component.Text("posts")),
	)).Mount(t)

	paths := []string{"/a", "/users/1", "/users/1/posts", "/b", "/nowhere", "/", "/users/2", "/a"}
	for _, p := range paths {
		h.Navigate(p)
		h.Settle()
		assert.LessOrEqual(t, len(h.Shown()), 1, "path %s: shown %v", p, h.Shown())
		assert.Equal(t, h.Shown(), h.Rendered(), "path %s: nothing may be left exiting", p)
	}

	h.Navigate("/nowhere")
	h.Settle()
	assert.Empty(t, h.Rendered(), "zero matches hides everything")
}

func TestRapidDoubleNavigation(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/", component.Text("index")),
		router.Route("/a", component.Text("a")),
		router.Route("/b", component.Text("b")),
	)).Mount(t)
	h.Settle()

	h.Navigate("/a")
	h.Advance(100 * time.Millisecond)
	h.Navigate("/b")

	h.Advance(250 * time.Millisecond)
	h.ExpectPhase("/", router.PhaseExiting)
	h.ExpectPhase("/a", router.PhaseExiting)
	h.ExpectPhase("/b", router.PhaseEntering)

	h.Advance(50 * time.Millisecond)
	h.ExpectShown("/b")
	assert.Equal(t, []string{"/b"}, h.Rendered())
	assert.Equal(t, 0, h.Clock.Pending())
}

// leakyScheduler hands out timers that cannot be stopped, like a timer that
// already fired and queued its callback on a busy loop.
type leakyScheduler struct {
	clk *clock.Manual
}

func (s leakyScheduler) Delay(d time.Duration, fn func()) ui.Timer {
	s.clk.Delay(d, fn)
	return unstoppable{}
}

type unstoppable struct{}

func (unstoppable) Stop() bool { return false }

func TestStaleCallbacksAreDiscarded(t *testing.T) {
	reg, metrics := newMetrics()
	clk := clock.NewManual()

	root := headless.NewRoot()
	scope := reactive.NewOwner(nil)
	defer scope.Dispose()

	p := router.Provider(router.Routes(
		router.Route("/", component.Text("index")),
		router.Route("/a", component.Text("a")),
		router.Route("/b", component.Text("b")),
	), router.WithScheduler(leakyScheduler{clk}), router.WithMetrics(metrics))
	p.Mount(scope, root)
	s := p.Store()

	phase := func(pattern string) router.Phase {
		for _, c := range s.Controllers() {
			if c.Pattern().String() == pattern {
				return c.Phase()
			}
		}
		return ""
	}

	clk.Advance(d300)
	require.Equal(t, router.PhaseVisible, phase("/"))

	s.Navigate("/a")                   // t=300, exits and entry due at 600
	clk.Advance(100 * time.Millisecond) // t=400
	s.Navigate("/b")                   // new transitions due at 700

	clk.Advance(250 * time.Millisecond) // t=650, the 600 callbacks fired
	assert.Equal(t, router.PhaseExiting, phase("/"), "a stale exit callback must not hide the route early")
	assert.Equal(t, router.PhaseExiting, phase("/a"))
	assert.Equal(t, 2.0, metricValue(t, reg, "vroute_stale_callbacks_total"))

	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, router.PhaseHidden, phase("/"))
	assert.Equal(t, router.PhaseHidden, phase("/a"))
	assert.Equal(t, router.PhaseVisible, phase("/b"))
}

func TestUnmountCancelsPendingWork(t *testing.T) {
	reg, metrics := newMetrics()
	h := vtest.New(homeProfile()).
		WithInitialPath("/home").
		WithTweenSteps(4).
		WithOptions(router.WithMetrics(metrics)).
		Mount(t)

	assert.Equal(t, 2.0, metricValue(t, reg, "vroute_mounted_routes"))

	h.Navigate("/profile/1")
	require.Greater(t, h.Clock.Pending(), 0)
	tweens := h.Tweens.Created()
	require.NotEmpty(t, tweens)

	h.Unmount()

	assert.Equal(t, 0, h.Clock.Pending(), "unmount must stop timers and tweens")
	assert.Empty(t, h.Root.Children())
	assert.Empty(t, h.Store.Controllers())
	assert.Equal(t, 0.0, metricValue(t, reg, "vroute_mounted_routes"))
	for _, tw := range tweens {
		assert.NotEqual(t, headless.TweenPlaying, tw.State())
	}

	unmounts := h.Events(router.EventUnmount)
	assert.Len(t, unmounts, 2)

	phases := len(h.Events(router.EventPhase))
	h.Advance(time.Second)
	assert.Len(t, h.Events(router.EventPhase), phases, "nothing may run after unmount")
}

func TestParamsMergeAndPersist(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/", component.Text("index")),
		router.Route("/users/:id", component.Text("user")),
		router.Route("/posts/:slug", component.Text("post")),
	)).Mount(t)

	h.Navigate("/users/42")
	h.Settle()
	h.ExpectParam("id", "42")

	h.Navigate("/posts/hello")
	h.Settle()
	h.ExpectParam("slug", "hello")
	h.ExpectParam("id", "42")

	h.Navigate("/users/43")
	h.Navigate("/")
	h.Settle()
	h.ExpectParam("id", "43")
	assert.Equal(t, 2, h.Store.Params().Len())

	events := h.Events(router.EventParams)
	require.Len(t, events, 3)
	assert.Equal(t, "42", events[0].Params.Value("id"))
}

func TestRematchKeepsContainer(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/users/:id", component.Text("user")),
	)).WithInitialPath("/users/1").Mount(t)
	h.Settle()

	c := h.Route("/users/:id")
	require.NotNil(t, c)
	container := c.Container()
	created := len(h.Tweens.Created())

	h.Navigate("/users/2")
	h.ExpectPhase("/users/:id", router.PhaseEntering)
	h.Settle()
	h.ExpectPhase("/users/:id", router.PhaseVisible)
	h.ExpectParam("id", "2")

	assert.Same(t, container, c.Container())
	assert.Equal(t, created, len(h.Tweens.Created()), "same target style needs no new tween")
}

func TestSlideStyles(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/", component.Text("index")),
		router.Route("/next", component.Text("next"), router.Transition(transition.SlideLeft)),
	)).Mount(t)
	h.Settle()

	h.Navigate("/next")
	c := h.Route("/next")
	container, ok := headless.AsNode(c.Container())
	require.True(t, ok)

	pos, _ := container.Get(ui.PropPosition)
	assert.Equal(t, ui.FromScale(1, 0), pos, "slide-left enters from the right")

	h.Advance(d300)
	pos, _ = container.Get(ui.PropPosition)
	assert.Equal(t, ui.FromScale(0, 0), pos)

	h.Navigate("/")
	tweens := h.Tweens.Created()
	last := tweens[len(tweens)-1]
	assert.Same(t, c.Container(), last.Target)
	assert.Equal(t, ui.Props{ui.PropPosition: ui.FromScale(-1, 0)}, last.Props)

	h.Advance(d300)
	assert.True(t, container.Destroyed())
	assert.Nil(t, c.Container())
}

func TestFadeStyles(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/", component.Text("index")),
	)).Mount(t)

	container, ok := headless.AsNode(h.Route("/").Container())
	require.True(t, ok)
	bg, _ := container.Get(ui.PropBackgroundTransparency)
	tr, _ := container.Get(ui.PropTransparency)
	assert.Equal(t, 1.0, bg)
	assert.Equal(t, 1.0, tr)

	h.Settle()
	bg, _ = container.Get(ui.PropBackgroundTransparency)
	tr, _ = container.Get(ui.PropTransparency)
	assert.Equal(t, 0.0, bg)
	assert.Equal(t, 0.0, tr)

	size, _ := container.Get(ui.PropSize)
	assert.Equal(t, ui.FromScale(1, 1), size)
	name, _ := container.Get(ui.PropName)
	assert.Equal(t, "Route /", name)
}

func TestZeroDurationSettlesImmediately(t *testing.T) {
	h := vtest.New(router.Routes(
		router.Route("/", component.Text("index")),
		router.Route("/a", component.Text("a")),
	)).WithDuration(0).Mount(t)

	h.ExpectPhase("/", router.PhaseVisible)
	h.Navigate("/a")
	h.ExpectShown("/a")
	assert.Equal(t, []string{"/a"}, h.Rendered())
	assert.Equal(t, 0, h.Clock.Pending())
	assert.Empty(t, h.Tweens.Created())
}

func TestWithoutSchedulerSettlesImmediately(t *testing.T) {
	h := vtest.New(homeProfile()).
		WithInitialPath("/home").
		WithOptions(router.WithScheduler(nil)).
		Mount(t)

	h.ExpectPhase("/home", router.PhaseVisible)
	h.Navigate("/profile/9")
	h.ExpectPhase("/home", router.PhaseHidden)
	h.ExpectPhase("/profile/:id", router.PhaseVisible)
}

func TestTransitionSettingsPrecedence(t *testing.T) {
	h := vtest.New(component.Group(
		router.Routes(
			router.Route("/grouped", nil, router.Transition(transition.Fade), router.Duration(time.Second)),
		).Transition(transition.SlideLeft),
		router.Routes(
			router.Route("/own", nil, router.Transition(transition.SlideRight)),
			router.Route("/inherited", nil),
		),
	)).WithOptions(
		router.WithTransition(transition.SlideUp),
		router.WithTransitionDuration(500*time.Millisecond),
	).Mount(t)

	tests := []struct {
		pattern  string
		kind     transition.Kind
		duration time.Duration
	}{
		{"/grouped", transition.SlideLeft, time.Second},
		{"/own", transition.SlideRight, 500 * time.Millisecond},
		{"/inherited", transition.SlideUp, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		c := h.Route(tt.pattern)
		require.NotNil(t, c, tt.pattern)
		assert.Equal(t, tt.kind, c.Kind(), tt.pattern)
		assert.Equal(t, tt.duration, c.Duration(), tt.pattern)
	}
}

func TestBuiltInDefaults(t *testing.T) {
	h := vtest.New(router.Routes(router.Route("/", nil))).Mount(t)
	c := h.Route("/")
	assert.Equal(t, transition.Fade, c.Kind())
	assert.Equal(t, d300, c.Duration())
}

func TestMalformedPatternsAreRejected(t *testing.T) {
	_, err := router.NewRoute("/users/:", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, routepath.ErrEmptyParamName)
	assert.Equal(t, errors.CodeInvalidPattern, errors.Code(err))

	_, err = router.NewRoute("/a/:id/b/:id", nil)
	assert.ErrorIs(t, err, routepath.ErrDuplicateParam)

	assert.Panics(t, func() { router.Route("/users/:", nil) })

	r, err := router.NewRoute("/users/:id", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, r.Pattern().Params())
}

func TestRouteOutsideProviderPanics(t *testing.T) {
	scope := reactive.NewOwner(nil)
	defer scope.Dispose()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.Equal(t, errors.CodeNoProvider, errors.Code(err))
	}()
	router.Route("/", nil).Mount(scope, headless.NewRoot())
}

func TestEventsOrder(t *testing.T) {
	h := vtest.New(homeProfile()).WithInitialPath("/home").Mount(t)
	h.Settle()

	start := len(h.Events())
	h.Navigate("/profile/7")
	h.Settle()

	var got []string
	for _, e := range h.Events()[start:] {
		got = append(got, string(e.Type)+" "+e.Route+" "+string(e.Phase))
	}
	assert.Equal(t, []string{
		"navigate  ",
		"phase /home exiting",
		"params  ",
		"phase /profile/:id entering",
		"phase /home hidden",
		"phase /profile/:id visible",
	}, got)

	all := h.Events()
	for i := 1; i < len(all); i++ {
		assert.Equal(t, all[i-1].Seq+1, all[i].Seq)
	}
}

func TestSnapshotJSON(t *testing.T) {
	h := vtest.New(homeProfile()).WithInitialPath("/profile/5").Mount(t)
	h.Settle()

	data, err := json.Marshal(h.Store.Snapshot())
	require.NoError(t, err)

	var decoded struct {
		Path   string            `json:"path"`
		Params map[string]string `json:"params"`
		Routes []struct {
			Pattern    string `json:"pattern"`
			Phase      string `json:"phase"`
			Transition string `json:"transition"`
			DurationMS int64  `json:"durationMs"`
			Visible    bool   `json:"visible"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "/profile/5", decoded.Path)
	assert.Equal(t, map[string]string{"id": "5"}, decoded.Params)
	require.Len(t, decoded.Routes, 2)
	assert.Equal(t, "hidden", decoded.Routes[0].Phase)
	assert.Equal(t, "visible", decoded.Routes[1].Phase)
	assert.Equal(t, "fade", decoded.Routes[1].Transition)
	assert.Equal(t, int64(300), decoded.Routes[1].DurationMS)
	assert.True(t, decoded.Routes[1].Visible)
}

func TestStatePhase(t *testing.T) {
	tests := []struct {
		state router.State
		want  router.Phase
	}{
		{router.State{}, router.PhaseHidden},
		{router.State{Visible: true, Animating: true, Matched: true}, router.PhaseEntering},
		{router.State{Visible: true, Matched: true}, router.PhaseVisible},
		{router.State{Visible: true, Animating: true}, router.PhaseExiting},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.Phase(), "%+v", tt.state)
	}
}
