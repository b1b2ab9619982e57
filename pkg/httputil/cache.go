package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Cache stores JSON-marshalable values under string keys. Implementations
// wrap the remote client transparently: a cache hit avoids a remote call,
// a miss falls through to the network.
//
// Get reports (true, nil) on a fresh hit, (false, nil) on a miss or an
// expired entry, and (false, err) on I/O or decoding failures. Set
// overwrites any existing entry and refreshes its TTL.
type Cache interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
}

// NullCache is a Cache that stores nothing. Use it to disable caching
// without branching at call sites.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(string, any) (bool, error) { return false, nil }
func (*NullCache) Set(string, any) error         { return nil }

// FileCache stores each entry as a JSON file in a directory, with the
// filename derived from a SHA-256 hash of the key. Hashed names keep
// arbitrary keys filesystem-safe and collision-free.
//
// Entries expire based on file modification time. A TTL of 0 means entries
// never expire. Multiple processes can safely share a directory; the
// filesystem provides atomic file replacement.
type FileCache struct {
	dir string
	ttl time.Duration
}

// NewFileCache creates a FileCache rooted at dir with the given TTL.
// If dir is empty, ~/.cache/repolens/ is used. The directory is created
// if it does not exist.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "repolens")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, ttl: ttl}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get retrieves a cached value by key and unmarshals it into v.
// Expired entries are treated as misses; the stale file stays on disk
// until the next Set overwrites it.
func (c *FileCache) Get(key string, v any) (bool, error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value in the cache under the given key.
func (c *FileCache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(key), data, 0o644)
}

func (c *FileCache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
