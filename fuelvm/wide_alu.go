package fuelvm

import (
	"math/big"

	"github.com/holiman/uint256"
)

// WideSubOp selects which wide-arithmetic operation a WD*/WQ* instruction
// performs; the immediate's sub-operation bits select one of these at
// decode time.
type WideSubOp byte

const (
	WideOpAdd WideSubOp = iota
	WideOpSub
	WideOpMul
	WideOpDiv
	WideOpAddMod
	WideOpMulMod
	WideOpMulDiv
)

var mask128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func bytesToBig(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

func bigToBytes(v *big.Int, width int) []byte {
	out := make([]byte, width)
	b := v.Bytes()
	if len(b) > width {
		b = b[len(b)-width:]
	}
	copy(out[width-len(b):], b)
	return out
}

// Wide128 performs a 128-bit wide-arithmetic op (the "D" instruction
// family) over 16-byte big-endian operands a and b (plus c for AddMod/
// MulMod/MulDiv), returning the 16-byte result, whether the true result
// overflowed 128 bits, and whether a zero divisor or modulus was given.
func Wide128(op WideSubOp, a, b, c []byte) (result [16]byte, overflow bool, errCond bool) {
	ai, bi, ci := bytesToBig(a), bytesToBig(b), bytesToBig(c)
	var r *big.Int
	switch op {
	case WideOpAdd:
		r = new(big.Int).Add(ai, bi)
	case WideOpSub:
		r = new(big.Int).Sub(ai, bi)
		if r.Sign() < 0 {
			r.Add(r, new(big.Int).Lsh(big.NewInt(1), 128))
			overflow = true
		}
	case WideOpMul:
		r = new(big.Int).Mul(ai, bi)
	case WideOpDiv:
		if bi.Sign() == 0 {
			return [16]byte{}, false, true
		}
		r = new(big.Int).Div(ai, bi)
	case WideOpAddMod:
		if ci.Sign() == 0 {
			return [16]byte{}, false, true
		}
		r = new(big.Int).Mod(new(big.Int).Add(ai, bi), ci)
	case WideOpMulMod:
		if ci.Sign() == 0 {
			return [16]byte{}, false, true
		}
		r = new(big.Int).Mod(new(big.Int).Mul(ai, bi), ci)
	case WideOpMulDiv:
		if ci.Sign() == 0 {
			return [16]byte{}, false, true
		}
		r = new(big.Int).Div(new(big.Int).Mul(ai, bi), ci)
	default:
		return [16]byte{}, false, true
	}
	if r.Cmp(mask128) > 0 {
		overflow = true
		r.And(r, mask128)
	}
	copy(result[:], bigToBytes(r, 16))
	return result, overflow, false
}

// Compare128 orders two 16-byte big-endian values as unsigned integers.
func Compare128(a, b []byte) int {
	return bytesToBig(a).Cmp(bytesToBig(b))
}

func to256(b []byte) *uint256.Int {
	v := new(uint256.Int)
	v.SetBytes(b)
	return v
}

// Wide256 performs a 256-bit wide-arithmetic op (the "Q" instruction
// family) over three 32-byte big-endian operands (c unused outside
// AddMod/MulMod/MulDiv).
func Wide256(op WideSubOp, a, b, c []byte) (result [32]byte, overflow bool, errCond bool) {
	ai, bi, ci := to256(a), to256(b), to256(c)
	r := new(uint256.Int)
	switch op {
	case WideOpAdd:
		overflow = r.AddOverflow(ai, bi)
	case WideOpSub:
		overflow = r.SubOverflow(ai, bi)
	case WideOpMul:
		overflow = r.MulOverflow(ai, bi)
	case WideOpDiv:
		if bi.IsZero() {
			return [32]byte{}, false, true
		}
		r.Div(ai, bi)
	case WideOpAddMod:
		if ci.IsZero() {
			return [32]byte{}, false, true
		}
		r.AddMod(ai, bi, ci)
	case WideOpMulMod:
		if ci.IsZero() {
			return [32]byte{}, false, true
		}
		r.MulMod(ai, bi, ci)
	case WideOpMulDiv:
		if ci.IsZero() {
			return [32]byte{}, false, true
		}
		_, overflow = r.MulDivOverflow(ai, bi, ci)
	default:
		return [32]byte{}, false, true
	}
	return r.Bytes32(), overflow, false
}

// Compare256 orders two 32-byte big-endian values as unsigned integers.
func Compare256(a, b []byte) int {
	return to256(a).Cmp(to256(b))
}
