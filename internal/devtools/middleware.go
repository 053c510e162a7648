package devtools

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// requestMetrics holds the Prometheus collectors for inspector requests.
type requestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newRequestMetrics(reg prometheus.Registerer) *requestMetrics {
	factory := promauto.With(reg)

	return &requestMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vroute",
			Subsystem: "devtools",
			Name:      "requests_total",
			Help:      "Total number of devtools HTTP requests",
		}, []string{"route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vroute",
			Subsystem: "devtools",
			Name:      "request_duration_seconds",
			Help:      "Devtools HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// routePattern returns the chi pattern that served r, e.g. "/api/state".
// It is only known once routing is done.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func statusOf(ww middleware.WrapResponseWriter) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}

// instrument traces, measures and logs every request. The span is the
// parent of any navigation the request triggers.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, span := s.tracer.Start(r.Context(), "devtools "+r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		route := routePattern(r)
		code := statusOf(ww)
		elapsed := time.Since(start)

		span.SetName(fmt.Sprintf("devtools %s %s", r.Method, route))
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", code),
		)
		if code >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(code))
		}

		if s.metrics != nil {
			s.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
			s.metrics.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		}

		s.logger.Debug("devtools request",
			"method", r.Method,
			"route", route,
			"status", code,
			"duration", elapsed,
		)
	})
}
