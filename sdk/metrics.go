package sdk

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the SDK's Prometheus collectors.
type Metrics struct {
	routeDuration *prometheus.HistogramVec
	operations    *prometheus.CounterVec
	errors        *prometheus.CounterVec
}

// NewMetrics creates the SDK collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		routeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "magicswap_route_duration_seconds",
				Help:    "Time spent finding a route.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"mode"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magicswap_operations_total",
				Help: "Total number of router call descriptors built, by method.",
			},
			[]string{"method"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magicswap_errors_total",
				Help: "Total number of failed SDK calls, by operation and error kind.",
			},
			[]string{"operation", "kind"},
		),
	}
	reg.MustRegister(m.routeDuration, m.operations, m.errors)
	return m
}
