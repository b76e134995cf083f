package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moviesearch_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moviesearch_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moviesearch_omdb_requests_total",
		Help: "Total number of requests sent to the OMDb API by outcome",
	}, []string{"outcome"})

	UpstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moviesearch_omdb_request_duration_seconds",
		Help:    "Duration of OMDb API requests in seconds",
		Buckets: prometheus.DefBuckets,
	})

	UpstreamCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moviesearch_omdb_cache_hits_total",
		Help: "Search pages served from the local cache",
	})

	UpstreamSharedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moviesearch_omdb_shared_requests_total",
		Help: "Searches that joined an identical in-flight OMDb request",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "moviesearch_active_sessions",
		Help: "Number of browser search sessions held in memory",
	})
)
