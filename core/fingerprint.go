package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint generates a deterministic 64-bit digest of text content using
// BLAKE2b hashing. Identical content always produces the same fingerprint, so
// a stored embedding can be reused only while the feature text that produced
// it is unchanged.
func Fingerprint(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}
