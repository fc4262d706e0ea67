package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a stage cache key by hashing the content hash together with
// the stage's key options. The key format is: stage:hash(parts...), so
// "topology:..." and "artifact:..." entries never collide even for identical
// option payloads.
func hashKey(stage string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) keeps plan collisions out of reach.
	return fmt.Sprintf("%s:%s", stage, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 content hash used for plan geometry and
// serialized topologies. Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
