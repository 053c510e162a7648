package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transition directions used as the "direction" label.
const (
	DirectionEnter = "enter"
	DirectionExit  = "exit"
)

// Metrics holds the Prometheus collectors updated by stores and route
// controllers. A nil *Metrics is valid and records nothing.
type Metrics struct {
	navigations    prometheus.Counter
	transitions    *prometheus.CounterVec
	staleCallbacks prometheus.Counter
	mountedRoutes  prometheus.Gauge
}

// NewMetrics creates the router collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		navigations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vroute",
			Name:      "navigations_total",
			Help:      "Total number of navigate calls",
		}),

		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vroute",
			Name:      "transitions_total",
			Help:      "Total number of route transitions started, by direction",
		}, []string{"direction"}),

		staleCallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vroute",
			Name:      "stale_callbacks_total",
			Help:      "Delayed transition callbacks discarded because a newer transition superseded them",
		}),

		mountedRoutes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vroute",
			Name:      "mounted_routes",
			Help:      "Number of mounted route controllers",
		}),
	}
}

func (m *Metrics) navigation() {
	if m == nil {
		return
	}
	m.navigations.Inc()
}

func (m *Metrics) transition(direction string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(direction).Inc()
}

func (m *Metrics) staleCallback() {
	if m == nil {
		return
	}
	m.staleCallbacks.Inc()
}

func (m *Metrics) routeMounted(delta float64) {
	if m == nil {
		return
	}
	m.mountedRoutes.Add(delta)
}
