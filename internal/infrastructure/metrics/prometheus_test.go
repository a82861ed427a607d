package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/asakaida/kimera/pkg/cache/memorycache"
)

// The exporter registers with the default Prometheus registry, so one
// instance is created here and every assertion shares it.
func TestPrometheusExporter(t *testing.T) {
	collector := NewCollector()

	c, err := memorycache.New(&memorycache.Config{MaxSizeBytes: 64 * 1024, EnableMetrics: true})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	collector.SetCache(c)
	if err := c.Set(context.Background(), "subtypes:Image", []string{"Image"}, time.Minute); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	exporter := NewPrometheusExporter(collector)

	exporter.RecordAdd("added")
	exporter.RecordAdd("added")
	exporter.RecordAdd("skipped_no_owner")
	exporter.RecordRemove()
	exporter.RecordRemoveRejected(GuardClass)
	exporter.RecordStoreError()
	exporter.RecordCacheHit()
	exporter.RecordCacheMiss()

	counters := []struct {
		name string
		got  float64
		want float64
	}{
		{"adds{added}", testutil.ToFloat64(exporter.adds.WithLabelValues("added")), 2},
		{"adds{skipped_no_owner}", testutil.ToFloat64(exporter.adds.WithLabelValues("skipped_no_owner")), 1},
		{"removes", testutil.ToFloat64(exporter.removes), 1},
		{"removes_rejected{class}", testutil.ToFloat64(exporter.removesRejected.WithLabelValues(GuardClass)), 1},
		{"store_errors", testutil.ToFloat64(exporter.storeErrors), 1},
		{"cache_hits", testutil.ToFloat64(exporter.cacheHits), 1},
		{"cache_misses", testutil.ToFloat64(exporter.cacheMisses), 1},
	}
	for _, tt := range counters {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// Update syncs the gauges from the collector's cache view.
	exporter.Update()
	if got := testutil.ToFloat64(exporter.cacheKeys); got != 1 {
		t.Errorf("cache_keys_current = %v, want 1", got)
	}
	if got := testutil.ToFloat64(exporter.cacheMemoryBytes); got <= 0 {
		t.Errorf("cache_memory_bytes = %v, want > 0", got)
	}
}
