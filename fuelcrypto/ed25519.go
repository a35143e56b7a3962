package fuelcrypto

import (
	"crypto/ed25519"
	"errors"
)

// ErrEd25519InvalidKeyLength is returned when a public key is not 32 bytes.
var ErrEd25519InvalidKeyLength = errors.New("fuelcrypto: ed25519 public key must be 32 bytes")

// ErrEd25519InvalidSigLength is returned when a signature is not 64 bytes.
var ErrEd25519InvalidSigLength = errors.New("fuelcrypto: ed25519 signature must be 64 bytes")

// VerifyEd25519 verifies an ed25519 signature over message given a 32-byte
// public key and a 64-byte signature, backing the ED19 opcode. No curve
// library in the corpus implements ed25519; this wraps the standard
// library's constant-time implementation directly (see DESIGN.md).
func VerifyEd25519(pubkey, message, sig []byte) (bool, error) {
	if len(pubkey) != ed25519.PublicKeySize {
		return false, ErrEd25519InvalidKeyLength
	}
	if len(sig) != ed25519.SignatureSize {
		return false, ErrEd25519InvalidSigLength
	}
	return ed25519.Verify(ed25519.PublicKey(pubkey), message, sig), nil
}
