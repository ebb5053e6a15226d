package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a short stable hex digest of s, used to correlate
// addresses in logs without writing them out. Case and surrounding space
// are ignored.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:8])
}
