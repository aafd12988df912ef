// Package secp224r1 implements arithmetic modulo the secp224r1 (NIST P-224)
// field prime p = 2^224 - 2^96 + 1 on 7x32-bit little-endian limb vectors.
//
// Every function expects canonical inputs (values in [0, p)) and produces a
// canonical output. Outputs may alias inputs.
package secp224r1

import (
	"p224.mleku.dev/internal/nat"
)

// Limbs is the number of 32-bit limbs in a field element
const Limbs = 7

// P holds the field prime 2^224 - 2^96 + 1
var P = []uint32{0x00000001, 0x00000000, 0x00000000, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}

// Field is the reducer value handed to the generic field layer
type Field struct{}

func (Field) Add(x, y, z []uint32)      { Add(x, y, z) }
func (Field) AddOne(x, z []uint32)      { AddOne(x, z) }
func (Field) Subtract(x, y, z []uint32) { Subtract(x, y, z) }
func (Field) Negate(x, z []uint32)      { Negate(x, z) }
func (Field) Twice(x, z []uint32)       { Twice(x, z) }
func (Field) Multiply(x, y, z []uint32) { Multiply(x, y, z) }
func (Field) Square(x, z []uint32)      { Square(x, z) }
func (Field) Reduce32(c uint32, z []uint32) {
	Reduce32(c, z)
}

// Add sets z = x + y mod p
func Add(x, y, z []uint32) {
	c := nat.Add(x, y, z)
	if c != 0 || nat.Gte(z, P) {
		subP(z)
	}
}

// AddOne sets z = x + 1 mod p
func AddOne(x, z []uint32) {
	nat.Copy(x, z)
	c := nat.AddWordAt(1, z, 0)
	if c != 0 || nat.Gte(z, P) {
		subP(z)
	}
}

// Subtract sets z = x - y mod p
func Subtract(x, y, z []uint32) {
	if nat.Sub(x, y, z) != 0 {
		nat.Add(z, P, z)
	}
}

// Negate sets z = -x mod p
func Negate(x, z []uint32) {
	if nat.IsZero(x) {
		for i := range z[:Limbs] {
			z[i] = 0
		}
		return
	}
	nat.Sub(P, x, z)
}

// Twice sets z = 2x mod p
func Twice(x, z []uint32) {
	c := nat.ShiftUpBit(x, z, 0)
	if c != 0 || nat.Gte(z, P) {
		subP(z)
	}
}

// Multiply sets z = x * y mod p
func Multiply(x, y, z []uint32) {
	var tt [2 * Limbs]uint32
	mulWide(x, y, &tt)
	Reduce(tt[:], z)
}

// Square sets z = x^2 mod p
func Square(x, z []uint32) {
	var tt [2 * Limbs]uint32
	sqrWide(x, &tt)
	Reduce(tt[:], z)
}

// Reduce32 folds c*2^224 into z, leaving z canonical. z must be below 2^224.
func Reduce32(c uint32, z []uint32) {
	fold(z, int64(c))
}

// Reduce sets z = xx mod p for a 448-bit xx, using the FIPS 186 fast reduction
// for P-224. With c the 14 input words:
//
//	s1 = ( c6, c5, c4, c3, c2, c1, c0)
//	s2 = (c10, c9, c8, c7,  0,  0,  0)
//	s3 = (  0,c13,c12,c11,  0,  0,  0)
//	d1 = (c13,c12,c11,c10, c9, c8, c7)
//	d2 = (  0,  0,  0,  0,c13,c12,c11)
//
// z = s1 + s2 + s3 - d1 - d2.
func Reduce(xx []uint32, z []uint32) {
	var c [2 * Limbs]int64
	for i := range c {
		c[i] = int64(xx[i])
	}

	var cc int64
	cc += c[0] - c[7] - c[11]
	z[0] = uint32(cc)
	cc >>= 32
	cc += c[1] - c[8] - c[12]
	z[1] = uint32(cc)
	cc >>= 32
	cc += c[2] - c[9] - c[13]
	z[2] = uint32(cc)
	cc >>= 32
	cc += c[3] + c[7] + c[11] - c[10]
	z[3] = uint32(cc)
	cc >>= 32
	cc += c[4] + c[8] + c[12] - c[11]
	z[4] = uint32(cc)
	cc >>= 32
	cc += c[5] + c[9] + c[13] - c[12]
	z[5] = uint32(cc)
	cc >>= 32
	cc += c[6] + c[10] - c[13]
	z[6] = uint32(cc)
	cc >>= 32

	fold(z, cc)
}

// fold adds cc*2^224 to z modulo p, using 2^224 = 2^96 - 1 (mod p), then
// brings z into [0, p). cc may be negative.
func fold(z []uint32, cc int64) {
	for cc != 0 {
		var c int64
		c = int64(z[0]) - cc
		z[0] = uint32(c)
		c >>= 32
		c += int64(z[1])
		z[1] = uint32(c)
		c >>= 32
		c += int64(z[2])
		z[2] = uint32(c)
		c >>= 32
		c += int64(z[3]) + cc
		z[3] = uint32(c)
		c >>= 32
		for i := 4; i < Limbs; i++ {
			c += int64(z[i])
			z[i] = uint32(c)
			c >>= 32
		}
		cc = c
	}
	if nat.Gte(z, P) {
		subP(z)
	}
}

// subP subtracts p from z, discarding the borrow
func subP(z []uint32) {
	nat.Sub(z, P, z)
}

// mulWide computes the full 448-bit product of x and y
func mulWide(x, y []uint32, tt *[2 * Limbs]uint32) {
	for i := 0; i < Limbs; i++ {
		var c uint64
		xi := uint64(x[i])
		for j := 0; j < Limbs; j++ {
			c += xi*uint64(y[j]) + uint64(tt[i+j])
			tt[i+j] = uint32(c)
			c >>= 32
		}
		tt[i+Limbs] = uint32(c)
	}
}

// sqrWide computes the full 448-bit square of x, forming each cross product
// once and doubling the sum before adding the diagonal.
func sqrWide(x []uint32, tt *[2 * Limbs]uint32) {
	for i := 0; i < Limbs-1; i++ {
		var c uint64
		xi := uint64(x[i])
		for j := i + 1; j < Limbs; j++ {
			c += xi*uint64(x[j]) + uint64(tt[i+j])
			tt[i+j] = uint32(c)
			c >>= 32
		}
		tt[i+Limbs] = uint32(c)
	}

	nat.ShiftUpBit(tt[:], tt[:], 0)

	var c uint64
	for i := 0; i < Limbs; i++ {
		xi := uint64(x[i])
		c += xi*xi + uint64(tt[2*i])
		tt[2*i] = uint32(c)
		c >>= 32
		c += uint64(tt[2*i+1])
		tt[2*i+1] = uint32(c)
		c >>= 32
	}
}
