package httputil

import (
	"os"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileCacheRoundTrip(t *testing.T) {
	cache, err := NewFileCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	in := payload{Name: "repo", Count: 42}
	if err := cache.Set("key", in); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var out payload
	hit, err := cache.Get("key", &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestFileCacheMiss(t *testing.T) {
	cache, err := NewFileCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var out payload
	hit, err := cache.Get("never-set", &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if hit {
		t.Error("expected miss for unknown key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileCache(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Set("key", payload{Name: "stale"}); err != nil {
		t.Fatal(err)
	}

	// Age the entry by backdating the file's mtime.
	old := time.Now().Add(-time.Minute)
	if err := os.Chtimes(cache.keyPath("key"), old, old); err != nil {
		t.Fatal(err)
	}

	var out payload
	hit, err := cache.Get("key", &out)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	cache, err := NewFileCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("key", payload{Name: "forever"}); err != nil {
		t.Fatal(err)
	}

	old := time.Now().Add(-24 * 365 * time.Hour)
	if err := os.Chtimes(cache.keyPath("key"), old, old); err != nil {
		t.Fatal(err)
	}

	var out payload
	hit, err := cache.Get("key", &out)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("zero TTL entry should never expire")
	}
}

func TestFileCacheKeysAreFilesystemSafe(t *testing.T) {
	cache, err := NewFileCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	keys := []string{
		"repo:owner/name",
		"file:owner/repo:src/main/java/App.java",
		"commits:o/r@feature/branch",
	}
	for _, key := range keys {
		if err := cache.Set(key, payload{Name: key}); err != nil {
			t.Fatalf("set %q failed: %v", key, err)
		}
		var out payload
		hit, err := cache.Get(key, &out)
		if err != nil || !hit {
			t.Fatalf("get %q: hit=%v err=%v", key, hit, err)
		}
		if out.Name != key {
			t.Errorf("key collision: got %q back for %q", out.Name, key)
		}
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	cache := NewNullCache()
	if err := cache.Set("key", payload{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	var out payload
	hit, err := cache.Get("key", &out)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("null cache must never hit")
	}
}
