package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "irqhal"

// metrics are the Prometheus counters of one monitor. Each monitor owns its
// registry so that several can live in one process.
type metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	deliveries *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "operations_total",
				Help:      "Operations dispatched to a controller, by result.",
			},
			[]string{"controller", "op", "result"},
		),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "deliveries_total",
				Help:      "Interrupts that reached a handler or found none.",
			},
			[]string{"controller", "outcome"},
		),
	}

	m.registry.MustRegister(m.operations, m.deliveries)

	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
