package cache

import (
	"testing"

	"github.com/iotguard/iotguard/internal/domain"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemory()

	if _, ok := c.Get("alice:unlock the door"); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Set(domain.CacheEntry{Key: "alice:unlock the door", Reply: "- Risk Level: High", Analyzer: "gemini"})
	c.Set(domain.CacheEntry{Key: "alice:unlock the door", Reply: "- Risk Level: Low", Analyzer: "gemini"})

	entry, ok := c.Get("alice:unlock the door")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if entry.Reply != "- Risk Level: Low" {
		t.Fatalf("Reply = %q, want overwritten value", entry.Reply)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	c.Set(domain.CacheEntry{Key: "", Reply: "ignored"})
	if c.Len() != 1 {
		t.Fatal("empty key must not be stored")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", c.Len())
	}
}
