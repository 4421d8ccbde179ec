package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome label values of the calls counter.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics collects advised-call telemetry into a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors under the given namespace ("aspect"
// when empty) and registers them together with the Go runtime collectors.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "aspect"
	}
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.calls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Advised calls, by aspect, target and outcome.",
		},
		[]string{"aspect", "target", "outcome"},
	)
	m.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Duration of advised calls, including inner layers.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"aspect", "target"},
	)

	m.registry.MustRegister(
		m.calls,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCall records one advised call.
func (m *Metrics) RecordCall(aspect, target string, duration time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.calls.WithLabelValues(aspect, target, outcome).Inc()
	m.duration.WithLabelValues(aspect, target).Observe(duration.Seconds())
}
