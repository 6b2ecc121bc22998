package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered on the default registry through promauto and
// exposed by the server under /metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// EngineOperations counts engine calls by outcome (ok, not_found, validation, ...)
	EngineOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_engine_operations_total",
			Help: "Total number of social graph engine operations",
		},
		[]string{"operation", "outcome"},
	)

	StoreTxDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_store_tx_duration_seconds",
			Help:    "Duration of graph store transactions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
)
