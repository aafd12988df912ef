// Package nat implements fixed-width unsigned integers stored as little-endian
// slices of 32-bit limbs. The width of every operation is the length of its
// operands, which must all agree.
package nat

import (
	"math/big"
	"math/bits"
)

// Create returns a zeroed vector of n limbs
func Create(n int) []uint32 {
	return make([]uint32, n)
}

// IsZero returns true if every limb of x is zero
func IsZero(x []uint32) bool {
	for i := range x {
		if x[i] != 0 {
			return false
		}
	}
	return true
}

// IsOne returns true if x represents the integer 1
func IsOne(x []uint32) bool {
	if len(x) == 0 || x[0] != 1 {
		return false
	}
	for i := 1; i < len(x); i++ {
		if x[i] != 0 {
			return false
		}
	}
	return true
}

// GetBit returns bit i of x, or 0 if i is outside the vector
func GetBit(x []uint32, i int) uint32 {
	if i < 0 {
		return 0
	}
	w := i >> 5
	if w >= len(x) {
		return 0
	}
	return (x[w] >> uint(i&31)) & 1
}

// BitLen returns the index of the highest set bit plus one
func BitLen(x []uint32) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return i*32 + bits.Len32(x[i])
		}
	}
	return 0
}

// Eq returns true if x and y hold the same limbs
func Eq(x, y []uint32) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Gte returns true if x >= y
func Gte(x, y []uint32) bool {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			return x[i] > y[i]
		}
	}
	return true
}

// Copy copies x into z
func Copy(x, z []uint32) {
	copy(z, x)
}

// Clone returns a fresh copy of x
func Clone(x []uint32) []uint32 {
	z := make([]uint32, len(x))
	copy(z, x)
	return z
}

// Add sets z = x + y and returns the carry out of the top limb
func Add(x, y, z []uint32) uint32 {
	var c uint64
	for i := range z {
		c += uint64(x[i]) + uint64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// Sub sets z = x - y and returns the borrow (0 or 1)
func Sub(x, y, z []uint32) uint32 {
	var c int64
	for i := range z {
		c += int64(x[i]) - int64(y[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(-c)
}

// AddWordAt adds w to z starting at limb i and returns the carry out
func AddWordAt(w uint32, z []uint32, i int) uint32 {
	c := uint64(w)
	for ; i < len(z) && c != 0; i++ {
		c += uint64(z[i])
		z[i] = uint32(c)
		c >>= 32
	}
	return uint32(c)
}

// ShiftUpBit sets z = (x << 1) | (c >> 31) and returns the bit shifted out
func ShiftUpBit(x, z []uint32, c uint32) uint32 {
	for i := range z {
		next := x[i]
		z[i] = next<<1 | c>>31
		c = next
	}
	return c >> 31
}

// ShiftUpBits shifts z left in place by bits (1..31), feeding the top bits of c
// in from below, and returns the bits shifted out of the top limb.
func ShiftUpBits(z []uint32, bits uint, c uint32) uint32 {
	for i := range z {
		next := z[i]
		z[i] = next<<bits | c>>(32-bits)
		c = next
	}
	return c >> (32 - bits)
}

// ShiftDownBit shifts z right in place by one, feeding bit 0 of c in at the top
func ShiftDownBit(z []uint32, c uint32) {
	for i := len(z) - 1; i >= 0; i-- {
		next := z[i]
		z[i] = next>>1 | c<<31
		c = next
	}
}

// ToBig converts x to a big.Int
func ToBig(x []uint32) *big.Int {
	return new(big.Int).SetBytes(Bytes(x))
}

// FromBig converts a non-negative n into a vector of the given limb count.
// Bits of n beyond the vector width are dropped.
func FromBig(n *big.Int, limbs int) []uint32 {
	z := Create(limbs)
	buf := make([]byte, 4*limbs)
	if n.BitLen() > len(buf)*8 {
		n = new(big.Int).SetBytes(n.Bytes()[len(n.Bytes())-len(buf):])
	}
	n.FillBytes(buf)
	for i := 0; i < limbs; i++ {
		j := len(buf) - 4*(i+1)
		z[i] = uint32(buf[j])<<24 | uint32(buf[j+1])<<16 | uint32(buf[j+2])<<8 | uint32(buf[j+3])
	}
	return z
}

// Bytes returns the big-endian encoding of x, 4*len(x) bytes long
func Bytes(x []uint32) []byte {
	out := make([]byte, 4*len(x))
	for i := range x {
		j := len(out) - 4*(i+1)
		out[j] = byte(x[i] >> 24)
		out[j+1] = byte(x[i] >> 16)
		out[j+2] = byte(x[i] >> 8)
		out[j+3] = byte(x[i])
	}
	return out
}
