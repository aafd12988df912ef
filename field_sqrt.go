package p224

import (
	"go.uber.org/zap"

	"p224.mleku.dev/internal/mod"
	"p224.mleku.dev/internal/nat"
)

// maxSqrtAttempts bounds the reseeded ladders run for fields whose two-adicity
// is too small for a single ladder to find a root with overwhelming probability
const maxSqrtAttempts = 64

// Sqrt returns a square root of e, or nil if e is a quadratic non-residue.
// The ladder seed is drawn from DefaultSource.
func (e *FieldElement) Sqrt() *FieldElement {
	return e.SqrtWith(DefaultSource())
}

// SqrtWith returns a square root of e, or nil if e is a quadratic non-residue,
// drawing the ladder seed from src. Every root is checked by squaring before
// it is returned, so src only affects which root is found and how fast.
//
// The root is found with Lucas sequences: a pair (d, e) stands for d + e*s in
// GF(p)[s]/(s^2 + c), and f caches -c*e^2. The pair is raised to the odd part
// q of p-1 and then squared until its real part vanishes; one step earlier
// d0^2 = c*e0^2, so d0/e0 is a root of c.
func (e *FieldElement) SqrtWith(src Source) *FieldElement {
	c := e.x
	if nat.IsZero(c) || nat.IsOne(c) {
		return e
	}

	f := e.f
	l := &lucas{f: f, c: c, t: nat.Create(f.limbs)}

	root, _ := l.sqrt(src)
	if root != nil || !f.sqrtRetry {
		return root
	}

	// The seed was unlucky or c has no root; only the former is worth
	// another attempt.
	if !f.isSquare(c) {
		return nil
	}
	for i := 1; i < maxSqrtAttempts; i++ {
		if root, _ = l.sqrt(src); root != nil {
			return root
		}
	}
	return nil
}

// IsSquare reports whether e is a quadratic residue, by Euler's criterion
func (e *FieldElement) IsSquare() bool {
	if nat.IsZero(e.x) {
		return true
	}
	return e.f.isSquare(e.x)
}

// isSquare returns true if c^((p-1)/2) = 1
func (f *Field) isSquare(c []uint32) bool {
	z := nat.Create(f.limbs)
	z[0] = 1
	for i := nat.BitLen(f.halfOrder) - 1; i >= 0; i-- {
		f.r.Square(z, z)
		if nat.GetBit(f.halfOrder, i) == 1 {
			f.r.Multiply(z, c, z)
		}
	}
	return nat.IsOne(z)
}

// lucas holds the operand and scratch space of one square root computation
type lucas struct {
	f *Field
	c []uint32
	t []uint32
}

// sqrt runs one seeded ladder and returns the verified root, or nil, and
// whether the ladder reached a pair with zero real part
func (l *lucas) sqrt(src Source) (*FieldElement, bool) {
	f := l.f

	d1 := mod.Random(f.p, src)
	e1 := nat.Create(f.limbs)
	e1[0] = 1
	fv := nat.Create(f.limbs)

	l.pow(d1, e1, fv)
	l.double(d1, e1, fv)

	d0 := nat.Create(f.limbs)
	e0 := nat.Create(f.limbs)

	converged := false
	for i := 0; i < f.sqrtRounds; i++ {
		nat.Copy(d1, d0)
		nat.Copy(e1, e0)

		l.double(d1, e1, fv)

		if nat.IsZero(d1) {
			converged = true
			break
		}
	}
	if !converged {
		logger().Debug("sqrt ladder did not converge",
			zap.String("field", f.name),
			zap.Int("rounds", f.sqrtRounds),
		)
	}

	mod.Invert(f.p, e0, fv)
	f.r.Multiply(fv, d0, fv)

	f.r.Square(fv, d1)
	if !nat.Eq(l.c, d1) {
		return nil, converged
	}
	return f.wrap(fv), converged
}

// double maps the pair (d, e) to its square, keeping f = -c*e^2:
//
//	d' = d^2 + f, e' = 2de, f' = 4*f*d^2
func (l *lucas) double(d, e, f []uint32) {
	r := l.f.r
	t := l.t

	r.Multiply(e, d, e)
	r.Square(d, t)
	r.Add(f, t, d)
	r.Twice(e, e)
	r.Multiply(f, t, f)
	c := nat.ShiftUpBits(f, 2, 0)
	r.Reduce32(c, f)
}

// merge sets (d1, e1) to the product of (d0, e0) and (d1, e1) and recomputes
// f = -c*e1^2:
//
//	d1' = d1*d0 - c*e1*e0, e1' = e1*d0 + d1*e0
func (l *lucas) merge(d0, e0, d1, e1, f []uint32) {
	r := l.f.r
	t := l.t

	r.Multiply(e1, e0, t)
	r.Multiply(t, l.c, t)
	r.Negate(t, t)
	r.Multiply(d1, d0, f)
	r.Add(f, t, f)
	r.Multiply(d1, e0, t)
	nat.Copy(f, d1)
	r.Multiply(e1, d0, e1)
	r.Add(e1, t, e1)
	r.Square(e1, f)
	r.Multiply(f, l.c, f)
	r.Negate(f, f)
}

// pow raises (d1, e1) to the odd part q of p-1, starting from e1 = 1. On
// return f = -c*e1^2 for the new pair.
func (l *lucas) pow(d1, e1, f []uint32) {
	fld := l.f
	fld.r.Negate(l.c, f)

	d0 := nat.Create(fld.limbs)
	e0 := nat.Create(fld.limbs)

	if fld.chain >= 0 {
		// q = 2^(2^k) - 1: after round i the exponent is 2^(2^(i+1)) - 1
		for i := 0; i < fld.chain; i++ {
			nat.Copy(d1, d0)
			nat.Copy(e1, e0)

			for j := 0; j < 1<<i; j++ {
				l.double(d1, e1, f)
			}

			l.merge(d0, e0, d1, e1, f)
		}
		return
	}

	// left-to-right binary ladder over the bits of q
	nat.Copy(d1, d0)
	nat.Copy(e1, e0)
	for i := nat.BitLen(fld.oddPart) - 2; i >= 0; i-- {
		l.double(d1, e1, f)
		if nat.GetBit(fld.oddPart, i) == 1 {
			l.merge(d0, e0, d1, e1, f)
		}
	}
}
