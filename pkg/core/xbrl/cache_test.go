package xbrl

import "testing"

func TestFactCacheHitAndMiss(t *testing.T) {
	cache := NewFactCache(2)

	if _, ok := cache.Get("doc-a"); ok {
		t.Error("Expected miss on empty cache")
	}

	facts := FactSet{Revenue: floatPtr(1000)}
	cache.Put("doc-a", facts)

	got, ok := cache.Get("doc-a")
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if got.Revenue == nil || *got.Revenue != 1000 {
		t.Errorf("Expected cached Revenue 1000, got %v", got.Revenue)
	}
}

func TestFactCacheDifferentContentNeverStale(t *testing.T) {
	cache := NewFactCache(2)
	cache.Put("doc-a", FactSet{Revenue: floatPtr(1000)})

	// Same "identity" in the caller's eyes but different content must miss:
	// the key is the content fingerprint itself.
	if _, ok := cache.Get("doc-a CHANGED"); ok {
		t.Error("Expected miss for changed content")
	}
}

func TestFactCacheEvictsOldestAtCapacity(t *testing.T) {
	cache := NewFactCache(2)
	cache.Put("doc-a", FactSet{})
	cache.Put("doc-b", FactSet{})
	cache.Put("doc-c", FactSet{})

	if cache.Len() != 2 {
		t.Fatalf("Expected capacity bound of 2, got %d entries", cache.Len())
	}
	if _, ok := cache.Get("doc-a"); ok {
		t.Error("Expected oldest entry evicted")
	}
	if _, ok := cache.Get("doc-c"); !ok {
		t.Error("Expected newest entry retained")
	}
}

func TestFactCacheNonPositiveCapacityUsesDefault(t *testing.T) {
	cache := NewFactCache(0)
	for i := 0; i < DefaultCacheCapacity+5; i++ {
		cache.Put(string(rune('a'+i)), FactSet{})
	}
	if cache.Len() != DefaultCacheCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultCacheCapacity, cache.Len())
	}
}

func TestContentHashStableAndDistinct(t *testing.T) {
	if ContentHash("abc") != ContentHash("abc") {
		t.Error("Expected stable hash for identical content")
	}
	if ContentHash("abc") == ContentHash("abd") {
		t.Error("Expected distinct hashes for different content")
	}
}
