package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Round trip
	payload := []byte("GIF89a...")
	if err := c.Set(ctx, "artifact:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != string(payload) {
		t.Errorf("Get = %q, want %q", data, payload)
	}

	// Delete
	if err := c.Delete(ctx, "artifact:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "artifact:abc")
	if hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "artifact:missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "key", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheZeroTTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ := c.Get(ctx, "key")
	if !hit {
		t.Error("zero TTL should mean no expiration")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestArtifactKey(t *testing.T) {
	gridHash := Hash([]byte("grid"))
	planHash := Hash([]byte("plan"))

	k1 := ArtifactKey(gridHash, planHash, ArtifactKeyOpts{Format: "gif", Scale: 5, DelayMS: 300})
	k2 := ArtifactKey(gridHash, planHash, ArtifactKeyOpts{Format: "gif", Scale: 5, DelayMS: 300})
	if k1 != k2 {
		t.Error("same inputs should produce the same key")
	}

	// Different options must produce different keys
	k3 := ArtifactKey(gridHash, planHash, ArtifactKeyOpts{Format: "gif", Scale: 10, DelayMS: 300})
	if k1 == k3 {
		t.Error("different scale should produce a different key")
	}
	k4 := ArtifactKey(gridHash, planHash, ArtifactKeyOpts{Format: "png", Scale: 5, DelayMS: 300})
	if k1 == k4 {
		t.Error("different format should produce a different key")
	}

	// Different inputs must produce different keys
	k5 := ArtifactKey(Hash([]byte("other")), planHash, ArtifactKeyOpts{Format: "gif", Scale: 5, DelayMS: 300})
	if k1 == k5 {
		t.Error("different grid should produce a different key")
	}
}
