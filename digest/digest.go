// Package digest provides the canonical hashing primitive used for
// transaction ids and signing messages.
package digest

import (
	"encoding/hex"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

const (
	// Size is the digest length in bytes.
	Size = 32

	// HexLen is the length of the hex-encoded digest.
	HexLen = Size * 2
)

// SumBytes returns the raw SHA-256 digest of data.
func SumBytes(data []byte) []byte {
	return bsvhash.Sha256(data)
}

// Sum returns the SHA-256 digest of data as 64 lowercase hex characters.
func Sum(data []byte) string {
	return hex.EncodeToString(SumBytes(data))
}

// SumString hashes the UTF-8 bytes of s.
func SumString(s string) string {
	return Sum([]byte(s))
}

// IsDigest reports whether s is a well-formed hex digest.
func IsDigest(s string) bool {
	if len(s) != HexLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
