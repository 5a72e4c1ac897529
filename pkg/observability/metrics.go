package observability

import (
	"context"
	"net/http"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for flow invocations.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    *prometheus.GaugeVec
}

// NewMetrics creates the collectors on a private registry, so several
// instances (e.g. in tests) never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeassist_flow_invocations_total",
				Help: "Total number of flow invocations by outcome",
			},
			[]string{"flow", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lifeassist_flow_duration_seconds",
				Help:    "Duration of flow invocations, including the reasoning call",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"flow"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lifeassist_flow_in_flight",
				Help: "Flow invocations currently waiting on the reasoning service",
			},
			[]string{"flow"},
		),
	}
	m.registry.MustRegister(
		m.invocations,
		m.duration,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks records every invocation. The outcome label is "ok" or the error kind.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInvokeStart: func(_ context.Context, e *domain.InvocationEvent) {
			m.inFlight.WithLabelValues(e.Flow).Inc()
		},
		OnInvokeEnd: func(_ context.Context, e *domain.InvocationEvent) {
			m.inFlight.WithLabelValues(e.Flow).Dec()
			outcome := "ok"
			if e.ErrorKind != "" {
				outcome = string(e.ErrorKind)
			}
			m.invocations.WithLabelValues(e.Flow, outcome).Inc()
			m.duration.WithLabelValues(e.Flow).Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
