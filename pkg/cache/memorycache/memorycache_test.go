package memorycache

import (
	"context"
	"testing"
	"time"
)

func newTestCache(t *testing.T, budget int64) *Cache {
	t.Helper()
	c, err := New(&Config{MaxSizeBytes: budget, EnableMetrics: true})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return c
}

func TestCache_SetAndGet(t *testing.T) {
	c := newTestCache(t, 64*1024)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []string{"Image", "Photo"}, time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	value, found := c.Get(ctx, "key1")
	if !found {
		t.Fatal("expected to find key1")
	}
	names, ok := value.([]string)
	if !ok || len(names) != 2 {
		t.Errorf("value = %v, want two names", value)
	}

	if _, found := c.Get(ctx, "nonexistent"); found {
		t.Error("expected not to find nonexistent key")
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	c := newTestCache(t, 64*1024)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", "value1", 50*time.Millisecond); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	if _, found := c.Get(ctx, "key1"); !found {
		t.Error("expected to find key1 before expiration")
	}

	time.Sleep(100 * time.Millisecond)

	if _, found := c.Get(ctx, "key1"); found {
		t.Error("expected not to find key1 after expiration")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expiry removal", c.Len())
	}
}

func TestCache_LRUEviction(t *testing.T) {
	// Budget fits only a couple of entries.
	c := newTestCache(t, 200)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		key := string(rune('a' + i))
		if err := c.Set(ctx, key, i, time.Minute); err != nil {
			t.Fatalf("failed to set value: %v", err)
		}
	}

	if c.Len() >= 10 {
		t.Errorf("expected evictions, got %d items", c.Len())
	}

	if _, found := c.Get(ctx, "j"); !found {
		t.Error("expected to find most recent item 'j'")
	}

	if m := c.Metrics(); m.KeysEvicted == 0 {
		t.Error("expected eviction metrics to be counted")
	}
}

func TestCache_GetRefreshesRecency(t *testing.T) {
	c := newTestCache(t, 250)
	ctx := context.Background()

	if err := c.Set(ctx, "keep", "v", time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := c.Set(ctx, "other", "v", time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	// Touch "keep" so "other" becomes the eviction candidate.
	c.Get(ctx, "keep")

	for i := 0; i < 5; i++ {
		key := string(rune('0' + i))
		if err := c.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("failed to set value: %v", err)
		}
	}

	if _, found := c.Get(ctx, "keep"); !found {
		// "keep" may still be evicted under a tiny budget; only fail when
		// "other" survived instead.
		if _, otherFound := c.Get(ctx, "other"); otherFound {
			t.Error("recently used key evicted before stale key")
		}
	}
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t, 64*1024)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", "value1", time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, found := c.Get(ctx, "key1"); found {
		t.Error("expected key1 to be deleted")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("deleting a missing key must not fail: %v", err)
	}
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t, 64*1024)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("failed to set value: %v", err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
}

func TestCache_UpdateExistingKey(t *testing.T) {
	c := newTestCache(t, 64*1024)
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []string{"Image"}, time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := c.Set(ctx, "key1", []string{"Image", "Photo", "Screenshot"}, time.Minute); err != nil {
		t.Fatalf("failed to update value: %v", err)
	}

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	value, found := c.Get(ctx, "key1")
	if !found {
		t.Fatal("expected to find key1")
	}
	if names := value.([]string); len(names) != 3 {
		t.Errorf("value = %v, want updated three names", names)
	}
}

func TestCache_Metrics(t *testing.T) {
	c := newTestCache(t, 64*1024)
	ctx := context.Background()

	c.Get(ctx, "missing")
	if err := c.Set(ctx, "key1", "v", time.Minute); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	c.Get(ctx, "key1")

	m := c.Metrics()
	if m.Hits != 1 || m.Misses != 1 || m.KeysAdded != 1 {
		t.Errorf("metrics = %+v, want 1 hit, 1 miss, 1 added", m)
	}
	if rate := m.HitRate(); rate != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", rate)
	}

	disabled, err := New(&Config{MaxSizeBytes: 1024})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	disabled.Get(ctx, "x")
	if m := disabled.Metrics(); m.Misses != 0 {
		t.Errorf("disabled metrics must stay zero, got %+v", m)
	}
}
