// Package metrics holds the prometheus collectors exported by the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Evaluation outcome labels.
const (
	StatusOK       = "ok"
	StatusNoResult = "no_result"
)

var (
	// Evaluations counts calculator evaluations by outcome.
	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_evaluations_total",
			Help: "Calculator evaluations by calculator and outcome",
		},
		[]string{"calculator", "status"},
	)

	// ParamWarnings counts query parameters rejected during decoding.
	ParamWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_param_warnings_total",
			Help: "Rejected calculator parameters",
		},
		[]string{"calculator"},
	)

	// CacheLookups counts evaluation cache lookups.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_cache_lookups_total",
			Help: "Evaluation cache lookups by result",
		},
		[]string{"result"},
	)

	// HTTPRequests counts API requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "method", "code"},
	)

	// HTTPDuration observes API latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fincalc_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)
