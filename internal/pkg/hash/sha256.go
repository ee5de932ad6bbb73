package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256 implements Hash as a plain hex-encoded SHA-256 digest.
//
// It is deterministic and unsalted, which keeps stored credentials portable
// across deployments at the cost of rainbow-table resistance. Prefer the
// bcrypt driver unless compatibility with existing records is required.
type SHA256 struct{}

// NewSHA256 returns the digest-based hasher.
func NewSHA256() *SHA256 {
	return &SHA256{}
}

// Hash returns the lowercase hex SHA-256 digest of plaintext.
func (*SHA256) Hash(plaintext string) ([]byte, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(hex.EncodeToString(sum[:])), nil
}

// Verify compares the digest of plaintext against hashed in constant time.
func (h *SHA256) Verify(hashed, plaintext string) bool {
	sum, err := h.Hash(plaintext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(sum, []byte(hashed)) == 1
}
