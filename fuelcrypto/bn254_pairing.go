package fuelcrypto

// Optimal Ate pairing over BN254, the last step EPAR needs: given the
// (G1, G2) pairs an EPAR call decodes, reduce each to a tw12 element via
// the miller loop and exponentiate to the final GT value.
//
// Built on the tower from bn254_tower.go: F_p^12 = F_p^6[w]/(w^2-v),
// F_p^6 = F_p^2[v]/(v^3-xi), F_p^2 = F_p[i]/(i^2+1), xi = 9+i. The D-type
// sextic twist carries (x', y') in E'(F_p^2) to (x'*w^2, y'*w^3) in
// E(F_p^12).

import "math/big"

// ateLoopCount is |6u+2| for BN254: 29793968203157093288.
var ateLoopCount, _ = new(big.Int).SetString("29793968203157093288", 10)

// BN parameter u. This is the BN254 curve parameter such that p = 36u^4 + 36u^3 + 24u^2 + 6u + 1
// and the ate loop count = |6u+2| = 29793968203157093288.
var bn254U, _ = new(big.Int).SetString("4965661367192848881", 10)

// sixuPlus2NAF is 6u+2 in non-adjacent form, LSB first.
var sixuPlus2NAF = []int8{0, 0, 0, 1, 0, 1, 0, -1, 0, 0, 1, -1, 0, 0, 1, 0,
	0, 1, 1, 0, -1, 0, 0, 1, 0, -1, 0, 0, 0, 0, 1, 1,
	1, 0, 0, -1, 0, 0, 1, 0, 0, 0, 0, 0, -1, 0, 0, 1,
	1, 0, 0, -1, 0, 0, 0, 1, 1, 0, -1, 0, 0, 1, 0, 1, 1}

// BN254Pair computes the optimal Ate pairing e(P, Q).
func BN254Pair(p *G1Point, q *G2Point) *tw12 {
	if p.g1IsInfinity() || q.g2IsInfinity() {
		return tw12One()
	}
	px, py := p.g1ToAffine()
	qx, qy := q.g2ToAffine()
	f := millerLoop(px, py, qx, qy)
	return finalExp(f)
}

// bn254MultiPairing checks prod e(Pi, Qi) == 1 in G_T.
func bn254MultiPairing(g1Points []*G1Point, g2Points []*G2Point) bool {
	if len(g1Points) != len(g2Points) {
		return false
	}
	f := tw12One()
	for i := range g1Points {
		if g1Points[i].g1IsInfinity() || g2Points[i].g2IsInfinity() {
			continue
		}
		px, py := g1Points[i].g1ToAffine()
		qx, qy := g2Points[i].g2ToAffine()
		ml := millerLoop(px, py, qx, qy)
		f = tw12Mul(f, ml)
	}
	result := finalExp(f)
	return result.isOne()
}

// twist point in Jacobian coordinates for the Miller loop.
type twistPointJ struct {
	x, y, z, t *tw2 // t = z^2
}

func newTwistPointJ(x, y, z *tw2) *twistPointJ {
	t := tw2Sqr(z)
	return &twistPointJ{x: x, y: y, z: z, t: t}
}

// lineFunctionDouble computes the tangent line at R (Jacobian), updates R to 2R,
// and returns the line evaluation coefficients a, b, c for sparse Tw12 multiply.
// The line element in Tw12 is: c + (a*v + b*v^2)*w.
func lineFunctionDouble(r *twistPointJ, qx, qy *big.Int) (a, b, c *tw2, rOut *twistPointJ) {
	// Algorithm from "Faster Computation of the Tate Pairing" for a=0 curves.
	A := tw2Sqr(r.x)
	B := tw2Sqr(r.y)
	C := tw2Sqr(B)

	D := tw2Add(r.x, B)
	D = tw2Sqr(D)
	D = tw2Sub(D, A)
	D = tw2Sub(D, C)
	D = tw2Add(D, D)

	E := tw2Add(tw2Add(A, A), A) // 3A

	G := tw2Sqr(E)

	rOut = &twistPointJ{}
	rOut.x = tw2Sub(tw2Sub(G, D), D)

	rOut.z = tw2Add(r.y, r.z)
	rOut.z = tw2Sqr(rOut.z)
	rOut.z = tw2Sub(rOut.z, B)
	rOut.z = tw2Sub(rOut.z, r.t)

	rOut.y = tw2Sub(D, rOut.x)
	rOut.y = tw2Mul(rOut.y, E)
	t := tw2Add(C, C)
	t = tw2Add(t, t)
	t = tw2Add(t, t)
	rOut.y = tw2Sub(rOut.y, t)

	rOut.t = tw2Sqr(rOut.z)

	// Line coefficients.
	t = tw2Mul(E, r.t)
	t = tw2Add(t, t)
	b = tw2Neg(t)
	b = tw2MulScalar(b, qx) // b = -2*E*r.t * qx

	a = tw2Add(r.x, E)
	a = tw2Sqr(a)
	a = tw2Sub(a, A)
	a = tw2Sub(a, G)
	t = tw2Add(B, B)
	t = tw2Add(t, t)
	a = tw2Sub(a, t) // a = (rx+E)^2 - A - G - 4B

	c = tw2Mul(rOut.z, r.t)
	c = tw2Add(c, c)
	c = tw2MulScalar(c, qy) // c = 2*rOut.z*r.t * qy

	return
}

// lineFunctionAdd computes the line through R and P (affine twist point),
// updates R to R+P, returns line evaluation coefficients.
func lineFunctionAdd(r *twistPointJ, px, py *tw2, qx, qy *big.Int, r2 *tw2) (a, b, c *tw2, rOut *twistPointJ) {
	// Mixed addition algorithm from "Faster Computation of the Tate Pairing".
	B := tw2Mul(px, r.t) // px * r.t

	D := tw2Add(py, r.z)
	D = tw2Sqr(D)
	D = tw2Sub(D, r2)
	D = tw2Sub(D, r.t)
	D = tw2Mul(D, r.t)

	H := tw2Sub(B, r.x)
	I := tw2Sqr(H)

	E := tw2Add(I, I)
	E = tw2Add(E, E) // 4*I

	J := tw2Mul(H, E)

	L1 := tw2Sub(D, r.y)
	L1 = tw2Sub(L1, r.y)

	V := tw2Mul(r.x, E)

	rOut = &twistPointJ{}
	rOut.x = tw2Sub(tw2Sub(tw2Sqr(L1), J), tw2Add(V, V))

	rOut.z = tw2Add(r.z, H)
	rOut.z = tw2Sqr(rOut.z)
	rOut.z = tw2Sub(rOut.z, r.t)
	rOut.z = tw2Sub(rOut.z, I)

	t := tw2Sub(V, rOut.x)
	t = tw2Mul(t, L1)
	t2 := tw2Mul(r.y, J)
	t2 = tw2Add(t2, t2)
	rOut.y = tw2Sub(t, t2)

	rOut.t = tw2Sqr(rOut.z)

	// Line coefficients.
	t = tw2Add(py, rOut.z)
	t = tw2Sqr(t)
	t = tw2Sub(t, r2)
	t = tw2Sub(t, rOut.t)

	t2 = tw2Mul(L1, px)
	t2 = tw2Add(t2, t2)
	a = tw2Sub(t2, t)

	c = tw2MulScalar(rOut.z, qy)
	c = tw2Add(c, c)

	b = tw2Neg(L1)
	b = tw2MulScalar(b, qx)
	b = tw2Add(b, b)

	return
}

// mulLine multiplies ret by the sparse line element c + (b + a*v)*w.
// This is a specialized Tw12 multiplication that exploits sparsity.
//
// In our tower: Tw12 = c0 + c1*w, Tw6 = c0 + c1*v + c2*v^2.
// The line element has c0 = (c, 0, 0) and c1 = (b, a, 0) in Tw6.
func mulLine(ret *tw12, a, b, c *tw2) *tw12 {
	// Let ret = (X, Y) where X = ret.c1, Y = ret.c0 (in Tw6).
	// Line = (c, 0, 0) + (b, a, 0)*w.
	//
	// ret * line = (X*w + Y) * ((b,a,0)*w + (c,0,0))
	//           = X*(b,a,0)*w^2 + X*(c,0,0)*w + Y*(b,a,0)*w + Y*(c,0,0)
	//           = X*(b,a,0)*v + Y*(c,0,0) + (X*(c,0,0) + Y*(b,a,0))*w
	//
	// new_c0 = X*(b,a,0)*v + Y*(c,0,0) = MulByV(X*(b,a,0)) + Y*c
	// new_c1 = X*(c,0,0) + Y*(b,a,0)
	//
	// But computing each product is expensive. Use Karatsuba:
	// X*(b,a,0) call it a2
	// Y*c call it t3
	// new_c0 = MulByV(a2) + t3
	// new_c1 = (X+Y)*(b+c,a,0) - a2 - t3
	//        where (b+c,a,0) = (c,0,0) + (b,a,0) absorbs c into the b slot.

	lineC1 := &tw6{c0: b, c1: a, c2: tw2Zero()}

	a2 := tw6Mul(lineC1, ret.c1)   // (b,a,0) * ret.c1
	t3 := tw6MulByTw2(ret.c0, c)   // ret.c0 * c (scalar mult of Tw6 by Tw2)

	// For Karatsuba: (ret.c1 + ret.c0) * ((b,a,0) + (c,0,0))
	// = (ret.c1 + ret.c0) * (b+c, a, 0)
	t := tw2Add(b, c) // b+c
	lineSum := &tw6{c0: t, c1: a, c2: tw2Zero()}

	retXplusY := tw6Add(ret.c1, ret.c0)

	newC1 := tw6Mul(retXplusY, lineSum)
	newC1 = tw6Sub(newC1, a2)
	newC1 = tw6Sub(newC1, t3)

	// Wait, t3 is ret.c0*c but the "sum product" includes ret.c0 * line.c1 and ret.c1 * line.c0.
	// Actually I need to be more careful. Let me just use:
	// new_c0_tw6 = tw6MulByV(a2) + t3    [since w^2 = v, X*lineC1*w^2 = X*lineC1*v]
	// Actually the formula is: a2 = lineC1 * ret.c1
	// And the w^2 = v factor means we multiply a2 by v.
	// tw6MulByV shifts: (c0, c1, c2) -> (c2*xi, c0, c1)
	// But wait... is the "tau" in the reference the same as "v" in our tower?

	// In the reference: gfP12 = x*omega + y, where omega^2 = tau.
	// ret.x corresponds to our ret.c1 (the w coefficient)
	// ret.y corresponds to our ret.c0 (the constant)
	// omega = w, tau = v.
	// So MulTau in the reference = multiply by v = our tw6MulByV.

	// new_c0 = MulTau(a2) + t3 = tw6MulByV(a2) + t3
	newC0 := tw6Add(tw6MulByV(a2), t3)

	// But wait, the Karatsuba approach: I computed newC1 using a sum that includes
	// lineSum = (b+c, a, 0), the sum (c,0,0) + (b,a,0). OK that's right.
	// Then (retX + retY) * (b+c,a,0) - a2 - t3 should give new_c1.
	// But actually t3 = retY * (c,0,0) which in Tw6 is ret.c0 scaled by c.
	// And a2 = (b,a,0) * retX.
	// The sum (retX+retY)*(b+c,a,0) = retX*(b+c,a,0) + retY*(b+c,a,0)
	//   = retX*(c,0,0) + retX*(b,a,0) + retY*(c,0,0) + retY*(b,a,0)
	//   = retX*c + a2 + t3 + retY*(b,a,0)
	// So (retX+retY)*(b+c,a,0) - a2 - t3 = retX*c + retY*(b,a,0)
	// which is ret.c1*c + ret.c0*(b,a,0) = new_c1. Correct!

	// Hmm, but wait. The Karatsuba for t3: t3 uses MulScalar (Tw6 * Tw2), not Tw6 * Tw6.
	// The full product uses Tw6 * Tw6 for the sum. So the t3 used in subtraction should
	// also be the Tw6*Tw6 version of ret.c0 * (c,0,0).
	// MulScalar(ret.c0, c) should give the same result as Mul(ret.c0, tw6{c0:c, c1:zero, c2:zero}).
	// Let me verify: tw6MulByTw2 is defined as scaling each coefficient by c.
	// But Mul((c0,c1,c2), (c,0,0)):
	//   Using the Tw6 multiplication formula with (d0,d1,d2) = (c,0,0):
	//   result.c0 = c0*c (since d1=d2=0, no cross terms with xi)
	//   result.c1 = c1*c
	//   result.c2 = c2*c
	// Yes, this is the same as MulScalar. Good.

	// Hmm, but actually, there's a problem with my Karatsuba decomposition.
	// The sum product uses Tw6*Tw6 with (b+c,a,0) which is NOT the same as
	// (c,0,0) + (b,a,0) in the multiplication sense. But in terms of addition
	// of Tw6 elements, (c,0,0) + (b,a,0) = (b+c,a,0), so the Karatsuba is fine.

	// Actually, let me re-derive. I need:
	// new_c1 = ret.c1 * line.c0 + ret.c0 * line.c1
	// where line.c0 = (c,0,0) and line.c1 = (b,a,0)
	//
	// Using Karatsuba:
	// (ret.c1 + ret.c0) * (line.c0 + line.c1) - ret.c1*line.c1 - ret.c0*line.c0
	// = (ret.c1 + ret.c0) * (b+c,a,0) - a2 - t3
	//
	// But a2 = line.c1 * ret.c1 = (b,a,0)*ret.c1 and t3 = ret.c0*line.c0 = ret.c0*(c,0,0).
	// So the formula gives ret.c1*line.c0 + ret.c0*line.c1 = new_c1. Yes!

	return &tw12{c0: newC0, c1: newC1}
}

// millerLoop performs the Miller loop for the optimal Ate pairing using
// projective twist point coordinates and NAF representation of 6u+2.
func millerLoop(px, py *big.Int, qx, qy *tw2) *tw12 {
	ret := tw12One()

	// Start with affine twist point as Jacobian (z=1, t=1).
	one := &tw2{a0: new(big.Int).SetInt64(1), a1: new(big.Int)}
	r := &twistPointJ{
		x: newTw2(qx.a0, qx.a1),
		y: newTw2(qy.a0, qy.a1),
		z: newTw2(one.a0, one.a1),
		t: newTw2(one.a0, one.a1),
	}

	// Negative of the affine twist point.
	minusQy := tw2Neg(qy)

	r2 := tw2Sqr(qy) // for line function add

	for i := len(sixuPlus2NAF) - 1; i > 0; i-- {
		a, b, c, newR := lineFunctionDouble(r, px, py)
		if i != len(sixuPlus2NAF)-1 {
			ret = tw12Sqr(ret)
		}
		ret = mulLine(ret, a, b, c)
		r = newR

		switch sixuPlus2NAF[i-1] {
		case 1:
			a, b, c, newR = lineFunctionAdd(r, qx, qy, px, py, r2)
			ret = mulLine(ret, a, b, c)
			r = newR
		case -1:
			a, b, c, newR = lineFunctionAdd(r, qx, minusQy, px, py, r2)
			ret = mulLine(ret, a, b, c)
			r = newR
		}
	}

	// Two extra steps: add Q1 (Frobenius of Q) and -Q2 (neg-Frobenius^2 of Q).
	q1x, q1y := frobeniusEndomorphism(qx, qy)

	r2 = tw2Sqr(q1y)
	a, b, c, newR := lineFunctionAdd(r, q1x, q1y, px, py, r2)
	ret = mulLine(ret, a, b, c)
	r = newR

	// For Q2: x gets multiplied by xiToPSqMinus1Over3, y stays the same.
	// This gives -Q2 (the minus comes from the p^2 Frobenius on y).
	minusQ2x := tw2MulScalar(qx, frobSqXa0) // xiToPSqMinus1Over3 is a scalar in Fp
	minusQ2y := newTw2(qy.a0, qy.a1)         // y unchanged = -Q2's y

	r2 = tw2Sqr(minusQ2y)
	a, b, c, _ = lineFunctionAdd(r, minusQ2x, minusQ2y, px, py, r2)
	ret = mulLine(ret, a, b, c)

	return ret
}

// Frobenius endomorphism constants for G2.
var (
	frobXa0, _ = new(big.Int).SetString("21575463638280843010398324269430826099269044274347216827212613867836435027261", 10)
	frobXa1, _ = new(big.Int).SetString("10307601595873709700152284273816112264069230130616436755625194854815875713954", 10)
	frobYa0, _ = new(big.Int).SetString("2821565182194536844548159561693502659359617185244120367078079554186484126554", 10)
	frobYa1, _ = new(big.Int).SetString("3505843767911556378687030309984248845540243509899259641013678093033130930403", 10)

	xiToPMinus1Over3Twist = &tw2{a0: frobXa0, a1: frobXa1}
	xiToPMinus1Over2Twist = &tw2{a0: frobYa0, a1: frobYa1}
)

func frobeniusEndomorphism(qx, qy *tw2) (*tw2, *tw2) {
	x := tw2Mul(tw2Conj(qx), xiToPMinus1Over3Twist)
	y := tw2Mul(tw2Conj(qy), xiToPMinus1Over2Twist)
	return x, y
}

var (
	frobSqXa0, _ = new(big.Int).SetString("21888242871839275220042445260109153167277707414472061641714758635765020556616", 10)
	frobSqYa0, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208582", 10)
)

// finalExp computes f^((p^12-1)/n).
func finalExp(f *tw12) *tw12 {
	// Easy part: f^((p^6-1)*(p^2+1))
	fInv := tw12Inv(f)
	f1 := tw12Mul(tw12Conj(f), fInv) // f^(p^6-1)
	f2 := tw12Mul(tw12FrobSq(f1), f1) // f1^(p^2+1)
	return finalExpHard(f2)
}

func finalExpHard(f *tw12) *tw12 {
	fu := tw12Exp(f, bn254U)
	fu2 := tw12Exp(fu, bn254U)
	fu3 := tw12Exp(fu2, bn254U)

	fp1 := tw12Frob(f)
	tw2_ := tw12FrobSq(f)
	fp3 := tw12Frob3(f)

	fup := tw12Frob(fu)
	fu2p := tw12Frob(fu2)
	fu3p := tw12Frob(fu3)
	fu2p2 := tw12FrobSq(fu2)

	y0 := tw12Mul(tw12Mul(fp1, tw2_), fp3)
	y1 := tw12Conj(f)
	y2 := fu2p2
	y3 := tw12Conj(fup)
	y4 := tw12Mul(tw12Conj(fu), tw12Conj(fu2p))
	y5 := tw12Conj(fu2)
	y6 := tw12Conj(tw12Mul(fu3, fu3p))

	t0 := tw12Mul(tw12Mul(tw12Sqr(y6), y4), y5)
	t1 := tw12Mul(tw12Mul(y3, y5), t0)
	t0 = tw12Mul(t0, y2)
	t1 = tw12Mul(tw12Sqr(t1), t0)
	t1 = tw12Sqr(t1)
	t0 = tw12Mul(t1, y1)
	t1 = tw12Mul(t1, y0)
	t0 = tw12Mul(tw12Sqr(t0), t1)

	return t0
}

// tw12Frob computes f^p (Frobenius endomorphism) using precomputed constants.
func tw12Frob(f *tw12) *tw12 { return tw12FrobeniusEfficient(f) }

// tw12FrobSq computes f^(p^2) using precomputed constants.
func tw12FrobSq(f *tw12) *tw12 { return tw12FrobeniusSqEfficient(f) }

// tw12Frob3 computes f^(p^3) using precomputed constants.
func tw12Frob3(f *tw12) *tw12 { return tw12FrobeniusCubeEfficient(f) }

// tw6MulByVPairing multiplies a tw6 element by v.
// This is also known as MulTau in the cloudflare/bn256 implementation.
// In F_p^6 = F_p^2[v]/(v^3-xi): v*(c0 + c1*v + c2*v^2) = c2*xi + c0*v + c1*v^2
func tw6MulByVPairing(a *tw6) *tw6 {
	return &tw6{
		c0: tw2MulByNonResidue(a.c2), // c2 * xi
		c1: newTw2(a.c0.a0, a.c0.a1), // c0
		c2: newTw2(a.c1.a0, a.c1.a1), // c1
	}
}
