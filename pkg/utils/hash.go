package utils

import (
	"crypto/sha256"
	"fmt"
)

// HashString returns a hex digest used as a cache key. Keys derived from
// user prompts must not collide across categories, so callers prefix the
// input accordingly.
func HashString(input string) string {
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash)
}
