package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// DomainSequence separates sequence digests from any other hash use.
// The version suffix leaves room for a future encoding change.
const DomainSequence = "lagplot/sequence/v1"

// Digest returns SHA256(domain + 0x00 + bits(v0) + bits(v1) + ...), each
// value encoded as little-endian IEEE-754 bits, hex encoded.
func Digest(values []float64) string {
	h := sha256.New()
	h.Write([]byte(DomainSequence))
	h.Write([]byte{0x00})

	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
