package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
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

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	ModelFingerprint Hash
	CodeVersion      Hash
)

// Constructors
func NewModelFingerprint(data []byte) ModelFingerprint { return ModelFingerprint(NewHash(data)) }
func NewCodeVersion(data []byte) CodeVersion           { return CodeVersion(NewHash(data)) }

// String conversions
func (h ModelFingerprint) String() string { return Hash(h).String() }
func (h CodeVersion) String() string      { return Hash(h).String() }

// ComputeModelFingerprint hashes a set of named concentration vectors into a
// stable fingerprint. Keys are sorted and values serialized with full float64
// precision, so two models fingerprint equal iff their vectors are
// bit-identical.
func ComputeModelFingerprint(vectors map[string][]float64) ModelFingerprint {
	keys := make([]string, 0, len(vectors))
	for k := range vectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString(":")
		for _, v := range vectors[key] {
			data.WriteString(strconv.FormatFloat(v, 'x', -1, 64))
			data.WriteString(",")
		}
		data.WriteString(";")
	}

	return NewModelFingerprint([]byte(data.String()))
}
