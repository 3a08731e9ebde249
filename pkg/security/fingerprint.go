package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a deterministic non-reversible digest of a raw
// refresh token. It is stored as an indexed column so a presented
// token can be found in O(1) instead of argon2-verifying every session
// of a user. It is a lookup hint only, never proof of possession: the
// salted hash still has to verify before the row is trusted.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
