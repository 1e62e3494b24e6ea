package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
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

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough to tell runs apart in logs
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// SequenceHash fingerprints the exact symbol codes of a sequence
type SequenceHash Hash

func (h SequenceHash) String() string { return Hash(h).String() }

// ComputeSequenceHash hashes codes as fixed-width little-endian words so that
// [1, 23] and [12, 3] never collide.
func ComputeSequenceHash(codes []int) SequenceHash {
	buf := make([]byte, 8*len(codes))
	for i, c := range codes {
		binary.LittleEndian.PutUint64(buf[8*i:], uint64(int64(c)))
	}
	return SequenceHash(NewHash(buf))
}
