package devtools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/routepath"
	"github.com/vango-dev/vroute/pkg/router"
)

// Dispatcher runs a function on the goroutine that owns the router and
// waits for it. *clock.Loop implements it.
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
}

// Options configures a Server.
type Options struct {
	// Store is the router being inspected. Required.
	Store *router.Store

	// Loop owns Store. When nil, handlers touch the store directly, which
	// is only safe when nothing else does.
	Loop Dispatcher

	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Registerer receives the request metrics. Nil disables them.
	Registerer prometheus.Registerer

	// Tracer defaults to the global provider's "vroute/devtools" tracer.
	Tracer trace.Tracer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the devtools HTTP inspector for one store.
type Server struct {
	store    *router.Store
	loop     Dispatcher
	gatherer prometheus.Gatherer
	metrics  *requestMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
	hub      *Hub
	mux      chi.Router
	cancel   func()
}

// NavigateRequest is the body of POST /api/navigate.
type NavigateRequest struct {
	Path string `json:"path"`
}

// MatchResponse is the body returned by GET /api/match.
type MatchResponse struct {
	Pattern string           `json:"pattern"`
	Path    string           `json:"path"`
	IsMatch bool             `json:"isMatch"`
	Params  routepath.Params `json:"params"`
}

// New creates a server and subscribes it to the store's events.
func New(opts Options) *Server {
	s := &Server{
		store:    opts.Store,
		loop:     opts.Loop,
		gatherer: opts.Gatherer,
		tracer:   opts.Tracer,
		logger:   opts.Logger,
	}
	if opts.Registerer != nil {
		s.metrics = newRequestMetrics(opts.Registerer)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("vroute/devtools")
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.hub = NewHub(s.logger)
	s.cancel = s.store.Subscribe(s.hub.Broadcast)
	s.mux = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/navigate", s.handleNavigate)
		r.Get("/match", s.handleMatch)
	})
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// Handler returns the HTTP handler serving every devtools endpoint.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Hub returns the event stream hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Close unsubscribes from the store and disconnects all stream clients.
func (s *Server) Close() {
	s.cancel()
	s.hub.Close()
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("devtools listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.New(errors.CodeServe).WithDetail("listen " + addr).Wrap(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New(errors.CodeServe).Wrap(err)
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.New(errors.CodeServe).Wrap(err)
	}
	return nil
}

// run executes fn on the loop that owns the store.
func (s *Server) run(ctx context.Context, fn func()) error {
	if s.loop == nil {
		fn()
		return nil
	}
	return s.loop.Do(ctx, fn)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap router.Snapshot
	if err := s.run(r.Context(), func() { snap = s.store.Snapshot() }); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeBadNavigation).Wrap(err))
		return
	}
	if !strings.HasPrefix(req.Path, "/") {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeBadNavigation).
			WithDetailf("path %q must start with '/'", req.Path))
		return
	}

	ctx := r.Context()
	var snap router.Snapshot
	err := s.run(ctx, func() {
		s.store.NavigateContext(ctx, req.Path)
		snap = s.store.Snapshot()
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pattern, path := q.Get("pattern"), q.Get("path")

	p, err := routepath.Compile(pattern)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidPattern).Wrap(err))
		return
	}
	res := p.Match(path)
	writeJSON(w, http.StatusOK, MatchResponse{
		Pattern: pattern,
		Path:    path,
		IsMatch: res.IsMatch,
		Params:  res.Params,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, e *errors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(e.FormatJSON()))
}
