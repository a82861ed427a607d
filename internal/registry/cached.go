package registry

import (
	"context"
	"time"

	"github.com/asakaida/kimera/pkg/cache"
)

const subtypeKeyPrefix = "subtypes:"

// Cached wraps a TypeRegistry with a TTL cache over the subtype closure.
// Collections snapshot the closure at construction, so the cache only pays
// off when many collections are built for the same owner type; a miss falls
// through to the inner registry and stores the result.
type Cached struct {
	inner TypeRegistry
	cache cache.Cache
	ttl   time.Duration
}

// NewCached creates a caching decorator around inner.
func NewCached(inner TypeRegistry, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// SubtypesOf returns the cached closure for typeName, consulting the inner
// registry on a miss. Unknown types are not cached.
func (c *Cached) SubtypesOf(typeName string) ([]string, error) {
	ctx := context.Background()
	key := subtypeKeyPrefix + c.inner.Normalization().Canon(typeName)

	if v, ok := c.cache.Get(ctx, key); ok {
		if names, ok := v.([]string); ok {
			return names, nil
		}
	}

	names, err := c.inner.SubtypesOf(typeName)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, names, c.ttl); err != nil {
		// A full or closed cache must not fail the lookup.
		return names, nil
	}
	return names, nil
}

// Normalization returns the inner registry's policy.
func (c *Cached) Normalization() Normalization {
	return c.inner.Normalization()
}
