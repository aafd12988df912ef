// Package p224 implements arithmetic in prime fields GF(p) with p = 1 mod 8,
// with the NIST P-224 base field 2^224 - 2^96 + 1 as the built-in instance.
//
// A Field describes one prime together with the reduction routines for it.
// FieldElement values are immutable: every operation returns a new element.
// Square roots use a Lucas-sequence ladder that works for any p = 1 mod 8,
// so the field arithmetic and the root finder are shared by every Field.
package p224

import (
	"fmt"
	"math/big"
	"math/bits"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"p224.mleku.dev/internal/nat"
	"p224.mleku.dev/internal/secp224r1"
)

// ErrInvalidFieldElement is returned when a value is negative or not below the
// field modulus
var ErrInvalidFieldElement = errors.New("invalid field element")

// Reducer is the prime-specific arithmetic backing a Field. All routines take
// and produce canonical limb vectors in [0, p), and outputs may alias inputs.
type Reducer interface {
	Add(x, y, z []uint32)
	AddOne(x, z []uint32)
	Subtract(x, y, z []uint32)
	Negate(x, z []uint32)
	Twice(x, z []uint32)
	Multiply(x, y, z []uint32)
	Square(x, z []uint32)
	// Reduce32 sets z = (c*2^(32*len(z)) + z) mod p, where z is any
	// value of the vector width
	Reduce32(c uint32, z []uint32)
}

// Field describes a prime field: the modulus, its reduction routines and the
// constants the square root ladder derives from it. A Field is read-only
// after construction and may be shared freely.
type Field struct {
	name  string
	p     []uint32
	pBig  *big.Int
	bits  int
	limbs int
	r     Reducer
	id    uint64

	// p - 1 = 2^twoAdicity * oddPart
	twoAdicity int
	oddPart    []uint32

	// chain is k when oddPart = 2^(2^k) - 1, which allows the short ladder,
	// and -1 otherwise
	chain int

	// sqrtRounds caps the doubling rounds that search for the root
	sqrtRounds int

	// sqrtRetry is set when a single ladder fails for residues often
	// enough to justify reseeding after an Euler criterion check
	sqrtRetry bool

	// halfOrder is (p-1)/2
	halfOrder []uint32
}

// NewField creates a field for the odd prime p, which must satisfy
// p = 1 mod 8. Primality is not checked.
func NewField(name string, p *big.Int, r Reducer) (*Field, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, errors.New("modulus must be positive")
	}
	if p.Bit(0) == 0 {
		return nil, errors.Errorf("%s: modulus must be odd", name)
	}
	if p.Bit(1) != 0 || p.Bit(2) != 0 {
		return nil, errors.Errorf("%s: modulus must be 1 mod 8", name)
	}
	if r == nil {
		return nil, errors.Errorf("%s: no reducer", name)
	}

	f := &Field{
		name:  name,
		pBig:  new(big.Int).Set(p),
		bits:  p.BitLen(),
		limbs: (p.BitLen() + 31) / 32,
		r:     r,
	}
	f.p = nat.FromBig(p, f.limbs)
	f.id = xxhash.Sum64(nat.Bytes(f.p))

	pm1 := new(big.Int).Sub(p, big.NewInt(1))
	f.twoAdicity = int(pm1.TrailingZeroBits())
	q := new(big.Int).Rsh(pm1, uint(f.twoAdicity))
	f.oddPart = nat.FromBig(q, f.limbs)
	f.chain = allOnesChain(q)

	// The ladder exponent starts at 2*oddPart and the root appears one
	// doubling before the round that zeroes d, so twoAdicity - 1 rounds
	// reach every element of order up to 2^twoAdicity.
	f.sqrtRounds = f.twoAdicity - 1

	// One seed fails for a residue with probability 2^(2-twoAdicity).
	f.sqrtRetry = f.twoAdicity < 66
	f.halfOrder = nat.FromBig(new(big.Int).Rsh(pm1, 1), f.limbs)

	return f, nil
}

// allOnesChain returns k if q = 2^(2^k) - 1, and -1 otherwise
func allOnesChain(q *big.Int) int {
	m := q.BitLen()
	if new(big.Int).Add(q, big.NewInt(1)).TrailingZeroBits() != uint(m) {
		return -1
	}
	if m == 0 || m&(m-1) != 0 {
		return -1
	}
	return bits.TrailingZeros(uint(m))
}

var (
	p224Field *Field
	p224Once  sync.Once
)

// P224 returns the base field of the NIST P-224 curve, p = 2^224 - 2^96 + 1
func P224() *Field {
	p224Once.Do(func() {
		f, err := NewField("SecP224R1Field", nat.ToBig(secp224r1.P), secp224r1.Field{})
		if err != nil {
			panic(err)
		}
		p224Field = f
	})
	return p224Field
}

// Name returns the name the field was created with
func (f *Field) Name() string { return f.name }

// Size returns the bit length of the modulus
func (f *Field) Size() int { return f.bits }

// Modulus returns a copy of the field prime
func (f *Field) Modulus() *big.Int { return new(big.Int).Set(f.pBig) }

// Zero returns the additive identity
func (f *Field) Zero() *FieldElement {
	return f.wrap(nat.Create(f.limbs))
}

// One returns the multiplicative identity
func (f *Field) One() *FieldElement {
	x := nat.Create(f.limbs)
	x[0] = 1
	return f.wrap(x)
}

// FromUint64 returns v mod p
func (f *Field) FromUint64(v uint64) *FieldElement {
	n := new(big.Int).SetUint64(v)
	return f.wrap(nat.FromBig(n.Mod(n, f.pBig), f.limbs))
}

// NewElement returns the element with value x, which must be in [0, p)
func (f *Field) NewElement(x *big.Int) (*FieldElement, error) {
	return NewFieldElement(f, x)
}

// wrap takes ownership of an already reduced vector
func (f *Field) wrap(x []uint32) *FieldElement {
	return &FieldElement{f: f, x: x}
}

// FieldElement is an element of a prime field in canonical form. The zero
// value is not usable; obtain elements from a Field or NewFieldElement.
//
// Operands of a binary operation must come from the same Field. Mixing
// fields is a programming error and is not detected.
type FieldElement struct {
	f *Field
	// x holds the value in [0, p) as little-endian 32-bit limbs
	x []uint32
}

// NewFieldElement validates x against the modulus of f and converts it
func NewFieldElement(f *Field, x *big.Int) (*FieldElement, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(f.pBig) >= 0 {
		return nil, errors.Wrapf(ErrInvalidFieldElement, "x value invalid for %s", f.name)
	}
	return f.wrap(nat.FromBig(x, f.limbs)), nil
}

// Field returns the field the element belongs to
func (e *FieldElement) Field() *Field { return e.f }

// IsZero returns true if the element is zero
func (e *FieldElement) IsZero() bool { return nat.IsZero(e.x) }

// IsOne returns true if the element is one
func (e *FieldElement) IsOne() bool { return nat.IsOne(e.x) }

// TestBitZero returns the least significant bit of the canonical value
func (e *FieldElement) TestBitZero() bool { return nat.GetBit(e.x, 0) == 1 }

// ToBig returns the value of the element as a big.Int
func (e *FieldElement) ToBig() *big.Int { return nat.ToBig(e.x) }

// FieldName returns the name of the element's field
func (e *FieldElement) FieldName() string { return e.f.name }

// FieldSize returns the bit length of the element's modulus
func (e *FieldElement) FieldSize() int { return e.f.bits }

// Equal returns true if both elements have the same modulus and value
func (e *FieldElement) Equal(o *FieldElement) bool {
	if e == o {
		return true
	}
	if o == nil || e == nil {
		return false
	}
	if e.f != o.f && !nat.Eq(e.f.p, o.f.p) {
		return false
	}
	return nat.Eq(e.x, o.x)
}

// Hash returns a hash consistent with Equal that also mixes in the modulus
func (e *FieldElement) Hash() uint64 {
	return e.f.id ^ xxhash.Sum64(nat.Bytes(e.x))
}

// String returns the value in hexadecimal
func (e *FieldElement) String() string {
	return fmt.Sprintf("%x", e.ToBig())
}
