package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// InputHash identifies a chart by its serialized values and settings.
func InputHash(values, settings []byte) string {
	return hashKey("input", string(values), string(settings))
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	HoverScript bool    `json:"hover_script,omitempty"`
	HoverAt     *float64 `json:"hover_at,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// ArtifactKey generates the key of one rendered format of an input.
func ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
