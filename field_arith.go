package p224

import (
	"p224.mleku.dev/internal/mod"
	"p224.mleku.dev/internal/nat"
)

// Add returns e + b
func (e *FieldElement) Add(b *FieldElement) *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.Add(e.x, b.x, z)
	return e.f.wrap(z)
}

// AddOne returns e + 1
func (e *FieldElement) AddOne() *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.AddOne(e.x, z)
	return e.f.wrap(z)
}

// Subtract returns e - b
func (e *FieldElement) Subtract(b *FieldElement) *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.Subtract(e.x, b.x, z)
	return e.f.wrap(z)
}

// Negate returns -e
func (e *FieldElement) Negate() *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.Negate(e.x, z)
	return e.f.wrap(z)
}

// Twice returns 2e
func (e *FieldElement) Twice() *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.Twice(e.x, z)
	return e.f.wrap(z)
}

// Multiply returns e * b
func (e *FieldElement) Multiply(b *FieldElement) *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.Multiply(e.x, b.x, z)
	return e.f.wrap(z)
}

// Square returns e^2
func (e *FieldElement) Square() *FieldElement {
	z := nat.Create(e.f.limbs)
	e.f.r.Square(e.x, z)
	return e.f.wrap(z)
}

// Invert returns e^-1. Zero has no inverse; inverting it is a caller error and
// yields zero.
func (e *FieldElement) Invert() *FieldElement {
	z := nat.Create(e.f.limbs)
	mod.Invert(e.f.p, e.x, z)
	return e.f.wrap(z)
}

// Divide returns e * b^-1. Dividing by zero yields zero.
func (e *FieldElement) Divide(b *FieldElement) *FieldElement {
	z := nat.Create(e.f.limbs)
	mod.Invert(e.f.p, b.x, z)
	e.f.r.Multiply(z, e.x, z)
	return e.f.wrap(z)
}
