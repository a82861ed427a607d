package memorycache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/asakaida/kimera/pkg/cache"
)

// item is a cached value with its expiry and accounted size.
type item struct {
	key       string
	value     interface{}
	expiresAt time.Time
	size      int64
}

// Cache implements an LRU cache with TTL support, sized by an approximate
// byte budget. Subtype sets are small, so the budget mostly bounds the key
// count under pathological registries.
type Cache struct {
	mu sync.Mutex

	elements map[string]*list.Element
	lru      *list.List // front = most recent, back = least recent

	budget int64
	used   int64

	metrics *counters
}

type counters struct {
	hits        uint64
	misses      uint64
	keysAdded   uint64
	keysEvicted uint64
}

// Config holds configuration for the memory cache.
type Config struct {
	// MaxSizeBytes is the approximate total size budget. When exceeded,
	// least recently used items are evicted.
	MaxSizeBytes int64

	// EnableMetrics enables collection of cache metrics.
	EnableMetrics bool
}

// New creates a new memory cache with the given configuration.
func New(config *Config) (*Cache, error) {
	c := &Cache{
		elements: make(map[string]*list.Element),
		lru:      list.New(),
		budget:   config.MaxSizeBytes,
	}
	if config.EnableMetrics {
		c.metrics = &counters{}
	}
	return c, nil
}

// Get retrieves a value from cache. Expired entries are removed on access.
func (c *Cache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.elements[key]
	if !exists {
		c.miss()
		return nil, false
	}

	it := elem.Value.(*item)
	if time.Now().After(it.expiresAt) {
		c.evict(elem, false)
		c.miss()
		return nil, false
	}

	c.lru.MoveToFront(elem)
	if c.metrics != nil {
		c.metrics.hits++
	}
	return it.value, true
}

// Set stores a value in cache with the specified TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := approximateSize(key, value)

	if elem, exists := c.elements[key]; exists {
		it := elem.Value.(*item)
		c.used += size - it.size
		it.value = value
		it.expiresAt = time.Now().Add(ttl)
		it.size = size
		c.lru.MoveToFront(elem)
		c.trim()
		return nil
	}

	elem := c.lru.PushFront(&item{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(ttl),
		size:      size,
	})
	c.elements[key] = elem
	c.used += size
	if c.metrics != nil {
		c.metrics.keysAdded++
	}

	c.trim()
	return nil
}

// Delete removes a value from cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.elements[key]; exists {
		c.evict(elem, false)
	}
	return nil
}

// Clear removes all entries from cache.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.elements = make(map[string]*list.Element)
	c.lru.Init()
	c.used = 0
	return nil
}

// Close releases resources (no-op for memory cache).
func (c *Cache) Close() error {
	return nil
}

// Metrics returns cache statistics.
func (c *Cache) Metrics() *cache.Metrics {
	if c.metrics == nil {
		return &cache.Metrics{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return &cache.Metrics{
		Hits:        c.metrics.hits,
		Misses:      c.metrics.misses,
		KeysAdded:   c.metrics.keysAdded,
		KeysEvicted: c.metrics.keysEvicted,
	}
}

// Len returns the current number of items in cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Size returns the current accounted size in bytes.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// trim evicts LRU items until the budget is respected.
// Must be called with the lock held.
func (c *Cache) trim() {
	for c.used > c.budget && c.lru.Len() > 0 {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.evict(oldest, true)
	}
}

// evict removes an element. Must be called with the lock held.
func (c *Cache) evict(elem *list.Element, counted bool) {
	c.lru.Remove(elem)
	it := elem.Value.(*item)
	delete(c.elements, it.key)
	c.used -= it.size
	if counted && c.metrics != nil {
		c.metrics.keysEvicted++
	}
}

func (c *Cache) miss() {
	if c.metrics != nil {
		c.metrics.misses++
	}
}

// approximateSize estimates the memory cost of an entry. String-slice values
// (subtype sets) are accounted per element; anything else pays a flat rate.
func approximateSize(key string, value interface{}) int64 {
	size := int64(64 + len(key))
	if names, ok := value.([]string); ok {
		for _, name := range names {
			size += int64(16 + len(name))
		}
		return size
	}
	return size + 100
}
