package router

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/vango-dev/vroute/internal/locale"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/routepath"
)

const tracerName = "vroute"

// Store is the navigation state of one routed subtree: the current path,
// the params snapshot, and the navigate operation. A Provider creates one
// Store per mount and shares it with its descendants.
//
// Navigate and everything it triggers must run on the UI loop. Observers
// may subscribe from any goroutine.
type Store struct {
	path   *reactive.Signal[string]
	params *reactive.Signal[routepath.Params]

	cfg     storeConfig
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
	locale  *locale.Localizer

	mu          sync.Mutex
	controllers []*Controller
	observers   []observer
	nextObs     uint64
	seq         atomic.Uint64
}

// NewStore creates a store. Most applications get one from Provider; tools
// that drive a router without a tree can create one directly.
func NewStore(opts ...Option) *Store {
	cfg := storeConfig{
		initialPath: DefaultInitialPath,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(tracerName)
	}

	s := &Store{
		path:    reactive.NewSignal(cfg.initialPath),
		params:  reactive.NewSignal(routepath.Params{}).WithEquals(routepath.Params.Equal),
		cfg:     cfg,
		logger:  cfg.logger,
		tracer:  cfg.tracer,
		metrics: cfg.metrics,
	}

	for _, fn := range cfg.observers {
		s.Subscribe(fn)
	}

	s.locale = locale.English()
	if len(cfg.languages) > 0 {
		l, err := locale.New(cfg.languages...)
		if err != nil {
			s.logger.Warn("router locale unavailable, using English", "languages", cfg.languages, "error", err)
		} else {
			s.locale = l
		}
	}
	return s
}

// Path returns the current path.
func (s *Store) Path() string {
	return s.path.Get()
}

// Params returns the current params snapshot.
func (s *Store) Params() routepath.Params {
	return s.params.Get()
}

// PathSource returns the reactive source that changes with the path, for
// effects that depend on it.
func (s *Store) PathSource() reactive.Source {
	return s.path
}

// ParamsSource returns the reactive source that changes with the params
// snapshot.
func (s *Store) ParamsSource() reactive.Source {
	return s.params
}

// Defaults returns the provider-level transition settings.
func (s *Store) Defaults() Settings {
	return s.cfg.defaults
}

// Navigate replaces the current path. Every mounted route re-evaluates
// before Navigate returns. Navigating to the current path changes nothing.
func (s *Store) Navigate(path string) {
	s.NavigateContext(context.Background(), path)
}

// NavigateContext is Navigate with a caller context for tracing.
func (s *Store) NavigateContext(ctx context.Context, path string) {
	from := s.path.Get()

	_, span := s.tracer.Start(ctx, "vroute.navigate", trace.WithAttributes(
		attribute.String("vroute.path", path),
		attribute.String("vroute.from", from),
	))
	defer span.End()

	s.metrics.navigation()
	s.logger.Debug("navigate", "from", from, "to", path)
	s.emit(Event{Type: EventNavigate, Path: path, From: from})

	s.path.Set(path)

	span.SetAttributes(attribute.StringSlice("vroute.matched", s.matched()))
}

// publishParams merges captured into the params snapshot. Keys are
// overwritten one by one; nothing is ever removed.
func (s *Store) publishParams(captured routepath.Params) {
	if captured.Len() == 0 {
		return
	}
	cur := s.params.Get()
	next := cur.Merge(captured)
	if next.Equal(cur) {
		return
	}
	s.params.Set(next)
	s.emit(Event{Type: EventParams, Path: s.path.Get(), Params: &next})
}

// Subscribe registers fn to receive every event emitted from now on and
// returns a function that cancels the subscription. fn runs on the
// goroutine that caused the event and must not block.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) emit(e Event) {
	e.Seq = s.seq.Inc()

	s.mu.Lock()
	obs := make([]observer, len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()

	for _, o := range obs {
		o.fn(e)
	}
}

func (s *Store) register(c *Controller) {
	s.mu.Lock()
	s.controllers = append(s.controllers, c)
	s.mu.Unlock()
	s.metrics.routeMounted(1)
}

func (s *Store) unregister(c *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.controllers {
		if existing == c {
			s.controllers = append(s.controllers[:i], s.controllers[i+1:]...)
			s.metrics.routeMounted(-1)
			return
		}
	}
}

// Controllers returns the mounted route controllers in mount order.
func (s *Store) Controllers() []*Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Controller(nil), s.controllers...)
}

// matched returns the patterns of the routes matching the current path.
func (s *Store) matched() []string {
	var out []string
	for _, c := range s.Controllers() {
		if c.State().Matched {
			out = append(out, c.Pattern().String())
		}
	}
	return out
}

// Snapshot is a point-in-time view of a store.
type Snapshot struct {
	Path   string           `json:"path"`
	Params routepath.Params `json:"params"`
	Routes []RouteSnapshot  `json:"routes"`
}

// RouteSnapshot is the state of one mounted route.
type RouteSnapshot struct {
	Pattern    string `json:"pattern"`
	Phase      Phase  `json:"phase"`
	Transition string `json:"transition"`
	DurationMS int64  `json:"durationMs"`
	State
}

// Snapshot returns the current path, params and route states. Call it on
// the UI loop.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Path:   s.Path(),
		Params: s.Params(),
		Routes: []RouteSnapshot{},
	}
	for _, c := range s.Controllers() {
		st := c.State()
		snap.Routes = append(snap.Routes, RouteSnapshot{
			Pattern:    c.Pattern().String(),
			Phase:      st.Phase(),
			Transition: c.Kind().String(),
			DurationMS: c.Duration().Milliseconds(),
			State:      st,
		})
	}
	return snap
}
