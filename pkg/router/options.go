package router

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vroute/pkg/transition"
	"github.com/vango-dev/vroute/pkg/ui"
)

// DefaultInitialPath is the path a store starts at unless configured.
const DefaultInitialPath = "/"

// Settings is a transition kind and duration, each of which may be unset.
// Unset values are inherited from the enclosing Routes, the Provider, or the
// built-in defaults, in that order.
type Settings struct {
	Kind        transition.Kind
	Duration    time.Duration
	KindSet     bool
	DurationSet bool
}

// WithKind returns s with the kind set.
func (s Settings) WithKind(k transition.Kind) Settings {
	s.Kind = k
	s.KindSet = true
	return s
}

// WithDuration returns s with the duration set.
func (s Settings) WithDuration(d time.Duration) Settings {
	s.Duration = d
	s.DurationSet = true
	return s
}

// Or fills the unset values of s from fallback.
func (s Settings) Or(fallback Settings) Settings {
	if !s.KindSet && fallback.KindSet {
		s = s.WithKind(fallback.Kind)
	}
	if !s.DurationSet && fallback.DurationSet {
		s = s.WithDuration(fallback.Duration)
	}
	return s
}

// Over overrides s with the values set in override.
func (s Settings) Over(override Settings) Settings {
	return override.Or(s)
}

// Resolved returns the kind and duration, falling back to
// transition.DefaultKind and transition.DefaultDuration. Negative
// durations count as zero.
func (s Settings) Resolved() (transition.Kind, time.Duration) {
	kind := transition.DefaultKind
	if s.KindSet && s.Kind.Valid() {
		kind = s.Kind
	}
	d := transition.DefaultDuration
	if s.DurationSet {
		d = s.Duration
	}
	if d < 0 {
		d = 0
	}
	return kind, d
}

// storeConfig holds everything a Store is configured with.
type storeConfig struct {
	initialPath string
	defaults    Settings
	sched       ui.Scheduler
	tweens      ui.TweenService
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer
	languages   []string
	observers   []func(Event)
}

// Option configures a Store created directly or by a Provider.
type Option func(*storeConfig)

// WithInitialPath sets the path the store starts at. Default "/".
func WithInitialPath(path string) Option {
	return func(c *storeConfig) {
		c.initialPath = path
	}
}

// WithTransition sets the default transition kind for routes that do not
// choose one.
func WithTransition(k transition.Kind) Option {
	return func(c *storeConfig) {
		c.defaults = c.defaults.WithKind(k)
	}
}

// WithTransitionDuration sets the default transition duration for routes
// that do not choose one.
func WithTransitionDuration(d time.Duration) Option {
	return func(c *storeConfig) {
		c.defaults = c.defaults.WithDuration(d)
	}
}

// WithScheduler sets the scheduler for delayed transition callbacks.
// Without one, transitions settle immediately.
func WithScheduler(s ui.Scheduler) Option {
	return func(c *storeConfig) {
		c.sched = s
	}
}

// WithTweenService sets the tween service that animates route containers.
// Without one, target styles are applied directly.
func WithTweenService(ts ui.TweenService) Option {
	return func(c *storeConfig) {
		c.tweens = ts
	}
}

// WithLogger sets the logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *storeConfig) {
		c.logger = l
	}
}

// WithMetrics sets the Prometheus collectors to update.
func WithMetrics(m *Metrics) Option {
	return func(c *storeConfig) {
		c.metrics = m
	}
}

// WithTracer sets the tracer for navigation spans. Default is the global
// provider's "vroute" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *storeConfig) {
		c.tracer = t
	}
}

// WithLanguage sets the preferred languages for the labels the router
// renders itself, e.g. "es" or "fr-CA, en;q=0.8".
func WithLanguage(langs ...string) Option {
	return func(c *storeConfig) {
		c.languages = langs
	}
}

// WithObserver subscribes fn to the store's events from creation on, so it
// also sees the mount events of the first render.
func WithObserver(fn func(Event)) Option {
	return func(c *storeConfig) {
		c.observers = append(c.observers, fn)
	}
}

// RouteOption configures a single Route.
type RouteOption func(*Settings)

// Transition sets the route's transition kind.
func Transition(k transition.Kind) RouteOption {
	return func(s *Settings) {
		*s = s.WithKind(k)
	}
}

// Duration sets the route's transition duration.
func Duration(d time.Duration) RouteOption {
	return func(s *Settings) {
		*s = s.WithDuration(d)
	}
}
