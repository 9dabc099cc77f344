package core

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Hash represents a cryptographic hash
type Hash string

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Fingerprinter accumulates fields into a content hash. Fields are separated
// by a unit separator so ("ab","c") and ("a","bc") hash differently.
type Fingerprinter struct {
	h hash.Hash
}

// NewFingerprinter starts an empty SHA-256 fingerprint
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{h: sha256.New()}
}

// Add appends fields followed by a record separator
func (f *Fingerprinter) Add(fields ...string) {
	for _, field := range fields {
		f.h.Write([]byte(field))
		f.h.Write([]byte{0x1f})
	}
	f.h.Write([]byte{0x1e})
}

// Sum returns the accumulated hash
func (f *Fingerprinter) Sum() Hash {
	return Hash(hex.EncodeToString(f.h.Sum(nil)))
}
