package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds an artifact key as prefix:sha256(parts...). The parts
// are JSON-marshaled so adding a field to ArtifactKeyOpts automatically
// changes the key.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the content hash of a serialized grid or plan.
// Returns the full 64-character hex SHA-256.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
