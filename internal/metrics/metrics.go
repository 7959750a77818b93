// Package metrics defines the Prometheus collectors exported by the job assistant.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "job_assistant"

var (
	// JobSourceTotal counts which job source served each matching run.
	JobSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_source_total",
			Help:      "Matching runs by the job source that supplied postings",
		},
		[]string{"source"},
	)

	// LLMRequestDuration times completion calls per provider and outcome.
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// PageCacheTotal counts page text cache lookups.
	PageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_cache_total",
			Help:      "Page text cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		JobSourceTotal,
		LLMRequestDuration,
		PageCacheTotal,
		httpRequestDuration,
		httpRequestsTotal,
	)
}
