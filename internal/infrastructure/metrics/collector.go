package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/asakaida/kimera/pkg/cache"
	"github.com/asakaida/kimera/pkg/cache/memorycache"
)

// Guard names under which silently rejected removals are counted.
const (
	GuardClass    = "class"
	GuardRelation = "relation"
	GuardOwner    = "owner"
)

// Collector collects and aggregates metrics for collection operations.
type Collector struct {
	// Collection operation metrics
	adds            sync.Map // map[string]*uint64 - add outcome -> count
	removes         uint64
	removesRejected sync.Map // map[string]*uint64 - guard -> count
	storeErrors     uint64

	// Cache reference (optional, for querying registry cache metrics)
	cache cache.Cache
}

// CacheMetrics holds registry cache performance metrics.
type CacheMetrics struct {
	Hits        uint64
	Misses      uint64
	HitRate     float64
	KeysCurrent int64
	MemoryBytes int64
	Evictions   uint64
}

// OperationMetrics holds collection operation metrics.
type OperationMetrics struct {
	AddCounts           map[string]uint64
	Removes             uint64
	RemoveRejectedCount map[string]uint64
	StoreErrors         uint64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetCache sets the cache instance for collecting registry cache metrics.
func (c *Collector) SetCache(cache cache.Cache) {
	c.cache = cache
}

// RecordAdd records an Add call by outcome name.
func (c *Collector) RecordAdd(outcome string) {
	counter := c.getOrCreateCounter(&c.adds, outcome)
	atomic.AddUint64(counter, 1)
}

// RecordRemove records a successful Remove.
func (c *Collector) RecordRemove() {
	atomic.AddUint64(&c.removes, 1)
}

// RecordRemoveRejected records a Remove silently rejected by the named guard.
func (c *Collector) RecordRemoveRejected(guard string) {
	counter := c.getOrCreateCounter(&c.removesRejected, guard)
	atomic.AddUint64(counter, 1)
}

// RecordStoreError records a persistence failure.
func (c *Collector) RecordStoreError() {
	atomic.AddUint64(&c.storeErrors, 1)
}

// GetCacheMetrics returns current registry cache metrics.
func (c *Collector) GetCacheMetrics() *CacheMetrics {
	if c.cache == nil {
		return &CacheMetrics{}
	}

	metrics := c.cache.Metrics()
	if metrics == nil {
		return &CacheMetrics{}
	}

	result := &CacheMetrics{
		Hits:      metrics.Hits,
		Misses:    metrics.Misses,
		HitRate:   metrics.HitRate(),
		Evictions: metrics.KeysEvicted,
	}

	// Get current keys and memory if available
	if memCache, ok := c.cache.(*memorycache.Cache); ok {
		result.KeysCurrent = int64(memCache.Len())
		result.MemoryBytes = memCache.Size()
	}

	return result
}

// GetOperationMetrics returns current collection operation metrics.
func (c *Collector) GetOperationMetrics() *OperationMetrics {
	result := &OperationMetrics{
		AddCounts:           make(map[string]uint64),
		Removes:             atomic.LoadUint64(&c.removes),
		RemoveRejectedCount: make(map[string]uint64),
		StoreErrors:         atomic.LoadUint64(&c.storeErrors),
	}

	c.adds.Range(func(key, value interface{}) bool {
		outcome := key.(string)
		result.AddCounts[outcome] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.removesRejected.Range(func(key, value interface{}) bool {
		guard := key.(string)
		result.RemoveRejectedCount[guard] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
