package secrets

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache[string](time.Minute, 4)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache returned ok")
	}

	c.Set("a", "alpha")
	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = %q, %v, want alpha, true", got, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache[string](time.Minute, 4)
	c.now = func() time.Time { return now }

	c.Set("a", "alpha")
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned an expired entry")
	}
	if _, stored := c.entries["a"]; stored {
		t.Error("expired entry was not dropped on access")
	}
}

func TestCacheEvictsOldestWhenFull(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache[int](time.Minute, 2)
	c.now = func() time.Time { return now }

	c.Set("first", 1)
	now = now.Add(time.Second)
	c.Set("second", 2)
	now = now.Add(time.Second)
	c.Set("third", 3)

	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if v, ok := c.Get("third"); !ok || v != 3 {
		t.Errorf("Get(third) = %d, %v, want 3, true", v, ok)
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache[string](time.Minute, 2)
	c.Set("a", "alpha")
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned a deleted entry")
	}
}
