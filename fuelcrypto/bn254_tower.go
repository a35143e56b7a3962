package fuelcrypto

// Successive extensions of the BN254 base field, built up as a tower:
// tw2 = F_p[i]/(i^2+1), tw6 = tw2[v]/(v^3-xi) (cubic over tw2), tw12 =
// tw6[w]/(w^2-v) (quadratic over tw6), with xi = 9+i. G2 coordinates live
// in tw2; the pairing's target group G_T lives in tw12.

import "math/big"

// tw2 represents a0 + a1*i.
type tw2 struct {
	a0, a1 *big.Int
}

func newTw2(a0, a1 *big.Int) *tw2 {
	return &tw2{a0: new(big.Int).Set(a0), a1: new(big.Int).Set(a1)}
}

func tw2Zero() *tw2 {
	return &tw2{a0: new(big.Int), a1: new(big.Int)}
}

func tw2One() *tw2 {
	return &tw2{a0: big.NewInt(1), a1: new(big.Int)}
}

func (e *tw2) isZero() bool {
	return e.a0.Sign() == 0 && e.a1.Sign() == 0
}

func (e *tw2) equal(f *tw2) bool {
	a0 := new(big.Int).Mod(e.a0, bn254P)
	a1 := new(big.Int).Mod(e.a1, bn254P)
	b0 := new(big.Int).Mod(f.a0, bn254P)
	b1 := new(big.Int).Mod(f.a1, bn254P)
	return a0.Cmp(b0) == 0 && a1.Cmp(b1) == 0
}

func tw2Add(e, f *tw2) *tw2 {
	return &tw2{a0: fpAdd(e.a0, f.a0), a1: fpAdd(e.a1, f.a1)}
}

func tw2Sub(e, f *tw2) *tw2 {
	return &tw2{a0: fpSub(e.a0, f.a0), a1: fpSub(e.a1, f.a1)}
}

// tw2Mul computes (a0+a1*i)(b0+b1*i) via Karatsuba: one cross-term product
// instead of two.
func tw2Mul(e, f *tw2) *tw2 {
	v0 := fpMul(e.a0, f.a0)
	v1 := fpMul(e.a1, f.a1)
	return &tw2{
		a0: fpSub(v0, v1),
		a1: fpSub(fpMul(fpAdd(e.a0, e.a1), fpAdd(f.a0, f.a1)), fpAdd(v0, v1)),
	}
}

func tw2Sqr(e *tw2) *tw2 {
	ab := fpMul(e.a0, e.a1)
	return &tw2{
		a0: fpMul(fpAdd(e.a0, e.a1), fpSub(e.a0, e.a1)),
		a1: fpAdd(ab, ab),
	}
}

func tw2Neg(e *tw2) *tw2 {
	return &tw2{a0: fpNeg(e.a0), a1: fpNeg(e.a1)}
}

// tw2Conj returns a0 - a1*i.
func tw2Conj(e *tw2) *tw2 {
	return &tw2{a0: new(big.Int).Set(e.a0), a1: fpNeg(e.a1)}
}

// tw2Inv returns e^(-1) as (a0-a1*i)/(a0^2+a1^2).
func tw2Inv(e *tw2) *tw2 {
	norm := fpAdd(fpSqr(e.a0), fpSqr(e.a1))
	inv := fpInv(norm)
	return &tw2{a0: fpMul(e.a0, inv), a1: fpMul(fpNeg(e.a1), inv)}
}

func tw2MulScalar(e *tw2, s *big.Int) *tw2 {
	return &tw2{a0: fpMul(e.a0, s), a1: fpMul(e.a1, s)}
}

// tw2MulByNonResidue multiplies by xi = 9+i, the non-residue the sextic
// twist and the tw6/tw12 reductions are built on:
// (a+b*i)(9+i) = (9a-b) + (a+9b)*i.
func tw2MulByNonResidue(e *tw2) *tw2 {
	nine := big.NewInt(9)
	return &tw2{
		a0: fpSub(fpMul(e.a0, nine), e.a1),
		a1: fpAdd(fpMul(e.a1, nine), e.a0),
	}
}

// tw6 represents c0 + c1*v + c2*v^2, v^3 = xi.
type tw6 struct {
	c0, c1, c2 *tw2
}

func tw6Zero() *tw6 {
	return &tw6{c0: tw2Zero(), c1: tw2Zero(), c2: tw2Zero()}
}

func tw6One() *tw6 {
	return &tw6{c0: tw2One(), c1: tw2Zero(), c2: tw2Zero()}
}

func (e *tw6) isZero() bool {
	return e.c0.isZero() && e.c1.isZero() && e.c2.isZero()
}

func tw6Add(e, f *tw6) *tw6 {
	return &tw6{c0: tw2Add(e.c0, f.c0), c1: tw2Add(e.c1, f.c1), c2: tw2Add(e.c2, f.c2)}
}

func tw6Sub(e, f *tw6) *tw6 {
	return &tw6{c0: tw2Sub(e.c0, f.c0), c1: tw2Sub(e.c1, f.c1), c2: tw2Sub(e.c2, f.c2)}
}

func tw6Neg(e *tw6) *tw6 {
	return &tw6{c0: tw2Neg(e.c0), c1: tw2Neg(e.c1), c2: tw2Neg(e.c2)}
}

// tw6Mul is the degree-2-over-tw2 Toom-Cook product, folding overflow terms
// back in through the xi non-residue.
func tw6Mul(e, f *tw6) *tw6 {
	t0 := tw2Mul(e.c0, f.c0)
	t1 := tw2Mul(e.c1, f.c1)
	t2 := tw2Mul(e.c2, f.c2)

	c0 := tw2Add(t0, tw2MulByNonResidue(
		tw2Sub(tw2Sub(tw2Mul(tw2Add(e.c1, e.c2), tw2Add(f.c1, f.c2)), t1), t2)))

	c1 := tw2Add(
		tw2Sub(tw2Sub(tw2Mul(tw2Add(e.c0, e.c1), tw2Add(f.c0, f.c1)), t0), t1),
		tw2MulByNonResidue(t2))

	c2 := tw2Add(
		tw2Sub(tw2Sub(tw2Mul(tw2Add(e.c0, e.c2), tw2Add(f.c0, f.c2)), t0), t2),
		t1)

	return &tw6{c0: c0, c1: c1, c2: c2}
}

func tw6Sqr(e *tw6) *tw6 {
	s0 := tw2Sqr(e.c0)
	ab := tw2Mul(e.c0, e.c1)
	s1 := tw2Add(ab, ab)
	s2 := tw2Sqr(tw2Sub(tw2Add(e.c0, e.c2), e.c1))
	bc := tw2Mul(e.c1, e.c2)
	s3 := tw2Add(bc, bc)
	s4 := tw2Sqr(e.c2)

	c0 := tw2Add(s0, tw2MulByNonResidue(s3))
	c1 := tw2Add(s1, tw2MulByNonResidue(s4))
	c2 := tw2Sub(tw2Sub(tw2Add(tw2Add(s1, s2), s3), s0), s4)

	return &tw6{c0: c0, c1: c1, c2: c2}
}

// tw6Inv solves the cubic-extension inverse directly rather than via
// exponentiation: A = c0^2 - xi*c1*c2, B = xi*c2^2 - c0*c1, C = c1^2 - c0*c2,
// then e^(-1) = (A,B,C) / (c0*A + xi*(c2*B + c1*C)).
func tw6Inv(e *tw6) *tw6 {
	a := tw2Sub(tw2Sqr(e.c0), tw2MulByNonResidue(tw2Mul(e.c1, e.c2)))
	b := tw2Sub(tw2MulByNonResidue(tw2Sqr(e.c2)), tw2Mul(e.c0, e.c1))
	c := tw2Sub(tw2Sqr(e.c1), tw2Mul(e.c0, e.c2))

	f := tw2Add(tw2Mul(e.c0, a),
		tw2MulByNonResidue(tw2Add(tw2Mul(e.c2, b), tw2Mul(e.c1, c))))
	fInv := tw2Inv(f)

	return &tw6{c0: tw2Mul(a, fInv), c1: tw2Mul(b, fInv), c2: tw2Mul(c, fInv)}
}

// tw6MulByTw2 scales every coefficient of e by the tw2 element s.
func tw6MulByTw2(e *tw6, s *tw2) *tw6 {
	return &tw6{c0: tw2Mul(e.c0, s), c1: tw2Mul(e.c1, s), c2: tw2Mul(e.c2, s)}
}

// tw6MulByV multiplies e by v, shifting coefficients up one degree and
// folding the c2*v^3 term back through xi: (c0+c1*v+c2*v^2)*v = c2*xi +
// c0*v + c1*v^2.
func tw6MulByV(e *tw6) *tw6 {
	return &tw6{
		c0: tw2MulByNonResidue(e.c2),
		c1: newTw2(e.c0.a0, e.c0.a1),
		c2: newTw2(e.c1.a0, e.c1.a1),
	}
}

// tw12 represents c0 + c1*w, w^2 = v. This is the pairing's target group.
type tw12 struct {
	c0, c1 *tw6
}

func tw12Zero() *tw12 {
	return &tw12{c0: tw6Zero(), c1: tw6Zero()}
}

func tw12One() *tw12 {
	return &tw12{c0: tw6One(), c1: tw6Zero()}
}

func (e *tw12) isOne() bool {
	return !e.c0.c0.isZero() &&
		e.c0.c0.a0.Cmp(big.NewInt(1)) == 0 &&
		e.c0.c0.a1.Sign() == 0 &&
		e.c0.c1.isZero() && e.c0.c2.isZero() &&
		e.c1.isZero()
}

// tw12Mul computes (a+b*w)(c+d*w) = (ac+bd*v) + (ad+bc)*w, bd*v via
// tw6MulByV.
func tw12Mul(e, f *tw12) *tw12 {
	t1 := tw6Mul(e.c0, f.c0)
	t2 := tw6Mul(e.c1, f.c1)

	c0 := tw6Add(t1, tw6MulByV(t2))
	c1 := tw6Sub(tw6Sub(tw6Mul(tw6Add(e.c0, e.c1), tw6Add(f.c0, f.c1)), t1), t2)

	return &tw12{c0: c0, c1: c1}
}

func tw12Sqr(e *tw12) *tw12 {
	ab := tw6Mul(e.c0, e.c1)

	t := tw6Add(e.c0, e.c1)
	u := tw6Add(e.c0, tw6MulByV(e.c1))
	c0 := tw6Sub(tw6Sub(tw6Mul(t, u), ab), tw6MulByV(ab))
	c1 := tw6Add(ab, ab)

	return &tw12{c0: c0, c1: c1}
}

// tw12Inv returns (a-b*w) / (a^2 - b^2*v).
func tw12Inv(e *tw12) *tw12 {
	t := tw6Sub(tw6Sqr(e.c0), tw6MulByV(tw6Sqr(e.c1)))
	tInv := tw6Inv(t)
	return &tw12{c0: tw6Mul(e.c0, tInv), c1: tw6Neg(tw6Mul(e.c1, tInv))}
}

// tw12Conj returns c0 - c1*w; for a unitary element (norm 1) this equals
// the inverse, which the pairing's easy part relies on to avoid tw12Inv.
func tw12Conj(e *tw12) *tw12 {
	return &tw12{
		c0: &tw6{
			c0: newTw2(e.c0.c0.a0, e.c0.c0.a1),
			c1: newTw2(e.c0.c1.a0, e.c0.c1.a1),
			c2: newTw2(e.c0.c2.a0, e.c0.c2.a1),
		},
		c1: tw6Neg(e.c1),
	}
}

// tw12Exp raises e to the power k by square-and-multiply over the bits of
// k, high to low.
func tw12Exp(e *tw12, k *big.Int) *tw12 {
	if k.Sign() == 0 {
		return tw12One()
	}
	r := tw12One()
	base := &tw12{
		c0: &tw6{
			c0: newTw2(e.c0.c0.a0, e.c0.c0.a1),
			c1: newTw2(e.c0.c1.a0, e.c0.c1.a1),
			c2: newTw2(e.c0.c2.a0, e.c0.c2.a1),
		},
		c1: &tw6{
			c0: newTw2(e.c1.c0.a0, e.c1.c0.a1),
			c1: newTw2(e.c1.c1.a0, e.c1.c1.a1),
			c2: newTw2(e.c1.c2.a0, e.c1.c2.a1),
		},
	}
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = tw12Sqr(r)
		if k.Bit(i) == 1 {
			r = tw12Mul(r, base)
		}
	}
	return r
}
