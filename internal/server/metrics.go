package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service collectors. Each server registers its own set
// so tests can run side by side.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	splits   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dslsplit_http_requests_total",
				Help: "Total number of HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dslsplit_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		splits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dslsplit_splits_total",
				Help: "Total number of split words by the method that produced the answer.",
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.splits)
	return m
}
