// Package checksum provides content hashing for upload-time checksumming
// and bulk-import dedup keys.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the SHA-256 of b as 64 lower-case hex characters.
func Sum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
