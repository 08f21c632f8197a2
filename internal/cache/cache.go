// Package cache stores serialized analysis reports keyed by a digest of
// the input framework and the analysis parameters. Extension enumeration
// is the only expensive step of an analysis, so re-running the same file
// under the same configuration becomes a lookup.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the raw apx input and the analysis tokens
// (semantics, measure, aggregation). Any change to the input bytes or the
// parameters yields a different key.
func Key(input []byte, params ...string) string {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(params, "|")))
	return "cosar:v1:" + hex.EncodeToString(h.Sum(nil))
}
