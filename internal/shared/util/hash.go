package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives a filesystem- and S3-safe path segment from a
// user ID. IDs include characters like ':' (OAuth subjects), so the
// raw value cannot be used directly. Returns the first 32 hex
// characters of the SHA-256 digest.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:16])
}
