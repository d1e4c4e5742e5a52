package reload

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics is a MetricsProvider backed by Prometheus collectors.
type PrometheusMetrics struct {
	state    prometheus.Gauge
	changes  prometheus.Counter
	applied  prometheus.Counter
	keys     prometheus.Gauge
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors under namespace and registers
// them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reload",
			Name:      "state",
			Help:      "Current reloader state (0=loading, 1=healthy, 2=degraded, 3=empty).",
		}),
		changes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reload",
			Name:      "changes_received_total",
			Help:      "Documents received from the watcher.",
		}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reload",
			Name:      "applied_total",
			Help:      "Documents applied to the configuration.",
		}),
		keys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reload",
			Name:      "applied_keys",
			Help:      "Number of keys in the last applied document.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reload",
			Name:      "failures_total",
			Help:      "Documents rejected, by stage.",
		}, []string{"stage"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reload",
			Name:      "process_duration_seconds",
			Help:      "Time spent decoding and applying a document.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.state, m.changes, m.applied, m.keys, m.failures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) OnStateChange(_, to State) {
	m.state.Set(float64(to))
}

func (m *PrometheusMetrics) OnApplied(keys int, took time.Duration) {
	m.applied.Inc()
	m.keys.Set(float64(keys))
	m.duration.WithLabelValues("applied").Observe(took.Seconds())
}

func (m *PrometheusMetrics) OnRejected(stage string, took time.Duration) {
	m.failures.WithLabelValues(stage).Inc()
	m.duration.WithLabelValues("rejected").Observe(took.Seconds())
}

func (m *PrometheusMetrics) OnDocumentReceived() {
	m.changes.Inc()
}

var _ MetricsProvider = (*PrometheusMetrics)(nil)
