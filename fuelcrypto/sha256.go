package fuelcrypto

import (
	"crypto/sha256"

	"github.com/fuellabs/fuelvm/fueltypes"
)

// SHA256 computes the SHA-256 digest of the concatenation of data, backing
// the S256 opcode.
func SHA256(data ...[]byte) []byte {
	h := sha256.New()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// SHA256Bytes32 computes SHA-256 and returns it as a Bytes32.
func SHA256Bytes32(data ...[]byte) fueltypes.Bytes32 {
	return fueltypes.BytesToBytes32(SHA256(data...))
}
