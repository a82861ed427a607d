package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector

	// Prometheus metrics
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	cacheHitRate     prometheus.Gauge
	cacheKeys        prometheus.Gauge
	cacheMemoryBytes prometheus.Gauge
	cacheEvictions   prometheus.Counter
	adds             *prometheus.CounterVec
	removes          prometheus.Counter
	removesRejected  *prometheus.CounterVec
	storeErrors      prometheus.Counter
}

// NewPrometheusExporter creates a new Prometheus exporter.
func NewPrometheusExporter(collector *Collector) *PrometheusExporter {
	return &PrometheusExporter{
		collector: collector,
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kimera_registry_cache_hits_total",
			Help: "Total number of cache hits for subtype lookups",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kimera_registry_cache_misses_total",
			Help: "Total number of cache misses for subtype lookups",
		}),
		cacheHitRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kimera_registry_cache_hit_rate",
			Help: "Current registry cache hit rate (0.0 to 1.0)",
		}),
		cacheKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kimera_registry_cache_keys_current",
			Help: "Current number of keys in the registry cache",
		}),
		cacheMemoryBytes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kimera_registry_cache_memory_bytes",
			Help: "Current memory usage of the registry cache in bytes",
		}),
		cacheEvictions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kimera_registry_cache_evictions_total",
			Help: "Total number of registry cache evictions due to memory limits",
		}),
		adds: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kimera_list_adds_total",
				Help: "Total number of Add calls by outcome",
			},
			[]string{"outcome"},
		),
		removes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kimera_list_removes_total",
			Help: "Total number of successful Remove calls",
		}),
		removesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kimera_list_removes_rejected_total",
				Help: "Total number of Remove calls silently rejected, by guard",
			},
			[]string{"guard"},
		),
		storeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kimera_store_errors_total",
			Help: "Total number of persistence failures",
		}),
	}
}

// Update updates Gauge metrics from the collector.
// Counters are updated via the Record* methods, so only update gauges here.
// This should be called periodically (e.g., every 10 seconds).
func (e *PrometheusExporter) Update() {
	cacheMetrics := e.collector.GetCacheMetrics()
	e.cacheHitRate.Set(cacheMetrics.HitRate)
	e.cacheKeys.Set(float64(cacheMetrics.KeysCurrent))
	e.cacheMemoryBytes.Set(float64(cacheMetrics.MemoryBytes))
}

// RecordAdd records an Add outcome in Prometheus.
func (e *PrometheusExporter) RecordAdd(outcome string) {
	e.adds.WithLabelValues(outcome).Inc()
}

// RecordRemove records a successful Remove in Prometheus.
func (e *PrometheusExporter) RecordRemove() {
	e.removes.Inc()
}

// RecordRemoveRejected records a rejected Remove in Prometheus.
func (e *PrometheusExporter) RecordRemoveRejected(guard string) {
	e.removesRejected.WithLabelValues(guard).Inc()
}

// RecordStoreError records a persistence failure in Prometheus.
func (e *PrometheusExporter) RecordStoreError() {
	e.storeErrors.Inc()
}

// RecordCacheHit records a registry cache hit.
func (e *PrometheusExporter) RecordCacheHit() {
	e.cacheHits.Inc()
}

// RecordCacheMiss records a registry cache miss.
func (e *PrometheusExporter) RecordCacheMiss() {
	e.cacheMisses.Inc()
}

// RecordCacheEviction records a registry cache eviction.
func (e *PrometheusExporter) RecordCacheEviction() {
	e.cacheEvictions.Inc()
}
