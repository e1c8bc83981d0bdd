package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "sustainamine"

type metrics struct {
	registry  *prometheus.Registry
	estimates *prometheus.CounterVec
	invalid   *prometheus.CounterVec
	co2PerKg  prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Estimates computed, by metal and production route.",
		}, []string{"metal", "route"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_inputs_total",
			Help:      "Rejected estimate requests, by offending field.",
		}, []string{"field"}),
		co2PerKg: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_co2_per_kg",
			Help:      "Energy-adjusted kg CO2e per kg of metal.",
			Buckets:   []float64{1, 2, 4, 6, 8, 12, 16, 20, 25},
		}),
	}
	m.registry.MustRegister(
		m.estimates,
		m.invalid,
		m.co2PerKg,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
