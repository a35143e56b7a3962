package fuelcrypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/fuellabs/fuelvm/fueltypes"
)

// Keccak256 computes the Keccak-256 hash of the concatenation of data,
// backing the K256 opcode.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Bytes32 computes Keccak-256 and returns it as a Bytes32.
func Keccak256Bytes32(data ...[]byte) fueltypes.Bytes32 {
	return fueltypes.BytesToBytes32(Keccak256(data...))
}
