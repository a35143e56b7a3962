package fuelcrypto

import (
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// secp256k1N is the order of the secp256k1 curve.
var secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// secp256k1halfN is half the order, used for the low-S malleability check.
var secp256k1halfN = new(big.Int).Div(secp256k1N, big.NewInt(2))

var (
	ErrSecp256k1InvalidLength = errors.New("fuelcrypto: secp256k1 signature must be 64 bytes [R || S]")
	ErrSecp256k1InvalidV      = errors.New("fuelcrypto: secp256k1 recovery id must be 0 or 1")
	ErrSecp256k1InvalidR      = errors.New("fuelcrypto: secp256k1 R must be in [1, n-1]")
	ErrSecp256k1InvalidS      = errors.New("fuelcrypto: secp256k1 S must be in [1, n-1]")
	ErrSecp256k1Malleable     = errors.New("fuelcrypto: secp256k1 S is in the upper half of the curve order")
	ErrSecp256k1HashLength    = errors.New("fuelcrypto: message hash must be 32 bytes")
	ErrSecp256k1RecoverFailed = errors.New("fuelcrypto: public key recovery failed")
)

// RecoverSecp256k1 recovers the 64-byte uncompressed public key (X || Y,
// without the leading 0x04 tag) from a 32-byte message hash and a 64-byte
// compact signature [R || S], given the single-bit recovery id. It backs
// the ECK1 opcode.
func RecoverSecp256k1(hash, sig []byte, recoveryID byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, ErrSecp256k1HashLength
	}
	if len(sig) != 64 {
		return nil, ErrSecp256k1InvalidLength
	}
	if recoveryID > 1 {
		return nil, ErrSecp256k1InvalidV
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if r.Sign() <= 0 || r.Cmp(secp256k1N) >= 0 {
		return nil, ErrSecp256k1InvalidR
	}
	if s.Sign() <= 0 || s.Cmp(secp256k1N) >= 0 {
		return nil, ErrSecp256k1InvalidS
	}
	if s.Cmp(secp256k1halfN) > 0 {
		return nil, ErrSecp256k1Malleable
	}

	compact := make([]byte, 65)
	compact[0] = recoveryID + 27
	copy(compact[1:33], sig[:32])
	copy(compact[33:65], sig[32:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, ErrSecp256k1RecoverFailed
	}

	uncompressed := pub.SerializeUncompressed()
	return uncompressed[1:], nil
}

// GenerateSecp256k1Key generates a new secp256k1 private key, for use by
// tests that need to construct ECK1 fixtures.
func GenerateSecp256k1Key() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}

// SignSecp256k1 produces a 65-byte compact signature [V || R || S] over
// hash using priv, for use by tests constructing ECK1 fixtures.
func SignSecp256k1(hash []byte, priv *secp256k1.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, ErrSecp256k1HashLength
	}
	sig := ecdsa.SignCompact(priv, hash, false)
	return sig, nil
}
