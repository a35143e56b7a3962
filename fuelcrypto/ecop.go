package fuelcrypto

// ECOpKind selects the sub-operation; the ECOP opcode takes it from the
// low byte of its RD register.
type ECOpKind byte

const (
	// ECOpAdd performs point addition on the BN254 G1 group.
	ECOpAdd ECOpKind = 0
	// ECOpMul performs scalar multiplication on the BN254 G1 group.
	ECOpMul ECOpKind = 1
)

// ECOP performs a BN254 elliptic-curve operation (add of two affine points,
// or scalar multiply of an affine point), returning the 64-byte affine
// result. It backs the ECOP opcode; this function only distinguishes add
// from mul by kind.
func ECOP(kind ECOpKind, input []byte) ([]byte, error) {
	switch kind {
	case ECOpAdd:
		return BN254Add(input)
	case ECOpMul:
		return BN254ScalarMul(input)
	default:
		return nil, errBN254InvalidLength
	}
}

// EPAR checks a BN254 pairing equation over a sequence of (G1, G2) point
// pairs, returning true iff the product of pairings equals the identity in
// GT. It backs the EPAR opcode.
func EPAR(input []byte) (bool, error) {
	out, err := BN254PairingCheck(input)
	if err != nil {
		return false, err
	}
	return len(out) == 32 && out[31] == 1, nil
}
