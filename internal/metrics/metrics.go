// Package metrics exposes Prometheus counters, gauges, and histograms for
// the scan/classify pipeline and the HTTP surface that fronts it.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus metric the coordinator and HTTP adapter
// record against.
type Metrics struct {
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	FilesProcessedTotal prometheus.CounterVec
	FilesFailedTotal    prometheus.CounterVec
	FileProcessDuration prometheus.Histogram
	ScanDuration        prometheus.Histogram
	ScanActive          prometheus.Gauge

	LookupCacheHitsTotal   prometheus.Counter
	LookupCacheMissesTotal prometheus.Counter
	OnlineLookupsTotal     prometheus.CounterVec

	CheckpointsTotal prometheus.Counter
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize builds and registers every metric exactly once. Safe to call
// from multiple goroutines; only the first call has effect.
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sonicindex_http_requests_total",
					Help: "Total number of HTTP requests handled.",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "sonicindex_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds.",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			FilesProcessedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sonicindex_files_processed_total",
					Help: "Total number of files successfully merged into the index.",
				},
				[]string{"stage"},
			),
			FilesFailedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sonicindex_files_failed_total",
					Help: "Total number of files that failed during scan or classify.",
				},
				[]string{"stage"},
			),
			FileProcessDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "sonicindex_file_process_duration_seconds",
					Help:    "Per-file decode+analyze+classify latency in seconds.",
					Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
				},
			),
			ScanDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "sonicindex_scan_duration_seconds",
					Help:    "Total wall-clock time of a full scan run.",
					Buckets: prometheus.ExponentialBuckets(1, 2, 14),
				},
			),
			ScanActive: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "sonicindex_scan_active",
					Help: "1 while a scan or classify run is in progress, 0 otherwise.",
				},
			),
			LookupCacheHitsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "sonicindex_lookup_cache_hits_total",
					Help: "Total online-lookup cache hits (L1 or L2).",
				},
			),
			LookupCacheMissesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "sonicindex_lookup_cache_misses_total",
					Help: "Total online-lookup cache misses.",
				},
			),
			OnlineLookupsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sonicindex_online_lookups_total",
					Help: "Total AcoustID lookup attempts by outcome.",
				},
				[]string{"outcome"},
			),
			CheckpointsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "sonicindex_checkpoints_total",
					Help: "Total number of mid-scan checkpoint saves.",
				},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance, initializing it if necessary.
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
