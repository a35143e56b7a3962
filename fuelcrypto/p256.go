package fuelcrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

// VerifyP256 verifies an ECDSA signature over the secp256r1 (NIST P-256)
// curve, backing the ECR1 opcode. hash, r, s, x, y are each 32-byte
// big-endian values.
func VerifyP256(hash, r, s, x, y []byte) bool {
	xi := new(big.Int).SetBytes(x)
	yi := new(big.Int).SetBytes(y)
	if !elliptic.P256().IsOnCurve(xi, yi) {
		return false
	}
	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: xi, Y: yi}
	return ecdsa.Verify(pub, hash, new(big.Int).SetBytes(r), new(big.Int).SetBytes(s))
}
