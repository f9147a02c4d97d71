package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylemix_http_requests_total",
			Help: "Number of HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylemix_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CombinationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylemix_combinations_created_total",
			Help: "Number of combinations created.",
		},
	)

	PrototypesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylemix_prototypes_created_total",
			Help: "Number of combination prototypes created.",
		},
	)
)
