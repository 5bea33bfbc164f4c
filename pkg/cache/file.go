package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache implements a file-based artifact cache for CLI usage.
// Artifacts are binary blobs (GIF/PNG bytes), so the payload is stored
// raw and the expiration lives in a small JSON sidecar next to it.
// JSON-wrapping the payload would base64-inflate every animation by a
// third.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entryMeta is the sidecar content for one cached artifact.
type entryMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves an artifact from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	dataPath := c.path(key)
	metaPath := dataPath + ".meta"

	metaData, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meta entryMeta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		// Corrupt sidecar - drop the entry and treat as miss
		c.remove(dataPath)
		return nil, false, nil
	}
	if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
		c.remove(dataPath)
		return nil, false, nil
	}

	data, err := os.ReadFile(dataPath)
	if os.IsNotExist(err) {
		c.remove(dataPath)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores an artifact in the cache. A zero TTL means no expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var meta entryMeta
	if ttl > 0 {
		meta.ExpiresAt = time.Now().Add(ttl)
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	dataPath := c.path(key)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		return err
	}
	return os.WriteFile(dataPath+".meta", metaData, 0o644)
}

// Delete removes an artifact from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.remove(c.path(key))
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// remove drops an artifact and its sidecar, ignoring missing files.
func (c *FileCache) remove(dataPath string) {
	_ = os.Remove(dataPath)
	_ = os.Remove(dataPath + ".meta")
}

// path converts a cache key to a file path.
// The first two hash characters shard entries across subdirectories so a
// long-lived cache doesn't pile thousands of files into one directory.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".bin")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
