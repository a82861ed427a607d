package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/asakaida/kimera/pkg/cache/memorycache"
)

// countingRegistry wraps a Hierarchy and counts lookups.
type countingRegistry struct {
	inner   *Hierarchy
	lookups int
}

func (c *countingRegistry) SubtypesOf(typeName string) ([]string, error) {
	c.lookups++
	return c.inner.SubtypesOf(typeName)
}

func (c *countingRegistry) Normalization() Normalization {
	return c.inner.Normalization()
}

func newCachedRegistry(t *testing.T, norm Normalization) (*Cached, *countingRegistry) {
	t.Helper()
	inner := &countingRegistry{
		inner: mustHierarchy(t, norm, []string{"Image", "Photo"}, []Edge{{Child: "Photo", Parent: "Image"}}),
	}
	c, err := memorycache.New(&memorycache.Config{MaxSizeBytes: 64 * 1024, EnableMetrics: true})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return NewCached(inner, c, time.Minute), inner
}

func TestCached_ServesFromCache(t *testing.T) {
	cached, inner := newCachedRegistry(t, NormalizeExact)

	first, err := cached.SubtypesOf("Image")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cached.SubtypesOf("Image")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.lookups != 1 {
		t.Errorf("inner lookups = %d, want 1", inner.lookups)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}
}

func TestCached_NormalizesKeys(t *testing.T) {
	cached, inner := newCachedRegistry(t, NormalizeFold)

	if _, err := cached.SubtypesOf("Image"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.SubtypesOf("IMAGE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.lookups != 1 {
		t.Errorf("inner lookups = %d, want 1 (differently cased names share a key)", inner.lookups)
	}
}

func TestCached_UnknownTypeNotCached(t *testing.T) {
	cached, inner := newCachedRegistry(t, NormalizeExact)

	for i := 0; i < 2; i++ {
		if _, err := cached.SubtypesOf("Widget"); !errors.Is(err, ErrUnknownType) {
			t.Fatalf("expected ErrUnknownType, got %v", err)
		}
	}
	if inner.lookups != 2 {
		t.Errorf("inner lookups = %d, want 2 (errors must not be cached)", inner.lookups)
	}
}
