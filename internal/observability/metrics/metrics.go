package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Config configures the metrics registry.
type Config struct {
	Namespace string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	reloads         *prometheus.CounterVec
	catalogSize     prometheus.Gauge
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New registers the catalog instruments on reg.
func New(cfg Config, reg prometheus.Registerer) (*Metrics, error) {
	ns := namespace(cfg)
	m := &Metrics{
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the catalog backend.",
		}, []string{"operation", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of catalog backend requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "catalog_reloads_total",
			Help:      "Full catalog reloads.",
		}, []string{"outcome"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "catalog_products",
			Help:      "Products in the cached catalog.",
		}),
	}

	for _, c := range []prometheus.Collector{m.backendRequests, m.backendDuration, m.reloads, m.catalogSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveBackend records one backend call.
func (m *Metrics) ObserveBackend(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	operation = strings.TrimSpace(operation)
	m.backendRequests.WithLabelValues(operation, outcome(err)).Inc()
	m.backendDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveReload records a reload and, on success, the new catalog size.
func (m *Metrics) ObserveReload(size int, err error) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		m.catalogSize.Set(float64(size))
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func namespace(cfg Config) string {
	ns := strings.TrimSpace(cfg.Namespace)
	if ns == "" {
		return "vitrine"
	}
	return strings.ReplaceAll(ns, "-", "_")
}
