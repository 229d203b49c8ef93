package project

import (
	"crypto/sha256"
)

// Digest is a SHA-256 value, the same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by every salt in order.
func Combine(content Digest, salts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		_, _ = h.Write(s)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
