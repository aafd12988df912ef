// Package mod provides modular inversion and random element generation for an
// arbitrary odd modulus held as a limb vector.
package mod

import (
	"math/bits"

	"p224.mleku.dev/internal/nat"
)

// Source supplies uniformly distributed 32-bit words
type Source interface {
	Uint32() uint32
}

// Invert sets z = x^-1 mod p using the binary extended Euclidean algorithm.
// p must be odd and x must be in [0, p). If x is zero, z is set to zero.
func Invert(p, x, z []uint32) {
	n := len(p)
	if nat.IsZero(x) {
		for i := range z[:n] {
			z[i] = 0
		}
		return
	}
	if nat.IsOne(x) {
		nat.Copy(x, z)
		return
	}

	u := nat.Clone(x)
	v := nat.Clone(p)
	a := nat.Create(n)
	a[0] = 1
	b := nat.Create(n)

	// Invariants: a*x = u and b*x = v (mod p), gcd(u, v) = 1.
	for !nat.IsOne(u) && !nat.IsOne(v) {
		for u[0]&1 == 0 {
			nat.ShiftDownBit(u, 0)
			halve(p, a)
		}
		for v[0]&1 == 0 {
			nat.ShiftDownBit(v, 0)
			halve(p, b)
		}
		if nat.Gte(u, v) {
			nat.Sub(u, v, u)
			subMod(p, a, b, a)
		} else {
			nat.Sub(v, u, v)
			subMod(p, b, a, b)
		}
	}

	if nat.IsOne(u) {
		nat.Copy(a, z)
	} else {
		nat.Copy(b, z)
	}
}

// Random returns a uniformly distributed element of [0, p), drawing words
// from src and rejecting candidates that are not below p.
func Random(p []uint32, src Source) []uint32 {
	n := len(p)
	z := nat.Create(n)

	top := p[n-1]
	mask := uint32(0xFFFFFFFF) >> uint(bits.LeadingZeros32(top))

	for {
		for i := range z {
			z[i] = src.Uint32()
		}
		z[n-1] &= mask
		if !nat.Gte(z, p) {
			return z
		}
	}
}

// halve sets a = a/2 mod p
func halve(p, a []uint32) {
	if a[0]&1 == 0 {
		nat.ShiftDownBit(a, 0)
		return
	}
	c := nat.Add(a, p, a)
	nat.ShiftDownBit(a, c)
}

// subMod sets z = x - y mod p
func subMod(p, x, y, z []uint32) {
	if nat.Sub(x, y, z) != 0 {
		nat.Add(z, p, z)
	}
}
