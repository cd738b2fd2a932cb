package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// ComputeSetHash hashes a set of encoded records regardless of their order
func ComputeSetHash(records []string) Hash {
	sorted := append([]string(nil), records...)
	sort.Strings(sorted)
	return NewHash([]byte(strings.Join(sorted, "\x1e")))
}
