// Package metrics registers the Prometheus collectors of the curbmap service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesh-intelligence/curbmap/internal/engine"
)

var (
	FilterRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curbmap_filter_runs_total",
		Help: "Total number of filter runs by dataset",
	}, []string{"dataset"})
	FilterDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "curbmap_filter_duration_ms",
		Help:    "Filter run duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	FeaturesOutTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "curbmap_features_out_total",
		Help: "Total number of resolved features returned",
	})
	InvalidRangesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "curbmap_invalid_ranges_total",
		Help: "Total number of features skipped for start >= end",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "curbmap_cache_hits_total",
		Help: "Total result cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "curbmap_cache_misses_total",
		Help: "Total result cache misses",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curbmap_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(FilterRunsTotal)
	prometheus.MustRegister(FilterDurationMs)
	prometheus.MustRegister(FeaturesOutTotal)
	prometheus.MustRegister(InvalidRangesTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
}

// ObserveFilter records one filter run.
func ObserveFilter(dataset string, stats engine.Stats, durationMs float64) {
	FilterRunsTotal.WithLabelValues(dataset).Inc()
	FilterDurationMs.Observe(durationMs)
	FeaturesOutTotal.Add(float64(stats.FeaturesOut))
	InvalidRangesTotal.Add(float64(stats.InvalidRanges))
}

// Handler serves the registered collectors in the Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }
