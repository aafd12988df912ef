package secp224r1

import (
	"math/big"
	mathrand "math/rand"
	"testing"

	"p224.mleku.dev/internal/nat"
)

var bigP = nat.ToBig(P)

func randomElement(rng *mathrand.Rand) []uint32 {
	n := new(big.Int).Rand(rng, bigP)
	return nat.FromBig(n, Limbs)
}

// edgeElements returns values near the ends of [0, p) and around 2^96
func edgeElements() [][]uint32 {
	vals := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(2),
		new(big.Int).Sub(bigP, big.NewInt(1)),
		new(big.Int).Sub(bigP, big.NewInt(2)),
		new(big.Int).Lsh(big.NewInt(1), 96),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1)),
		new(big.Int).Lsh(big.NewInt(1), 223),
	}
	out := make([][]uint32, len(vals))
	for i, v := range vals {
		out[i] = nat.FromBig(v, Limbs)
	}
	return out
}

func checkCanonical(t *testing.T, name string, z []uint32, want *big.Int) {
	t.Helper()
	if !nat.Gte(P, z) || nat.Eq(P, z) {
		t.Fatalf("%s: result %x is not below p", name, z)
	}
	if got := nat.ToBig(z); got.Cmp(want) != 0 {
		t.Fatalf("%s: got %x, want %x", name, got, want)
	}
}

func TestFieldPrime(t *testing.T) {
	want := new(big.Int).Lsh(big.NewInt(1), 224)
	want.Sub(want, new(big.Int).Lsh(big.NewInt(1), 96))
	want.Add(want, big.NewInt(1))
	if bigP.Cmp(want) != 0 {
		t.Errorf("P limbs encode %x, want %x", bigP, want)
	}
	if !bigP.ProbablyPrime(20) {
		t.Error("P should be prime")
	}
}

func TestArithmeticAgainstBig(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(224))

	xs := edgeElements()
	for i := 0; i < 300; i++ {
		xs = append(xs, randomElement(rng))
	}

	z := make([]uint32, Limbs)
	for i, x := range xs {
		y := xs[(i*7+3)%len(xs)]
		bx, by := nat.ToBig(x), nat.ToBig(y)
		want := new(big.Int)

		Add(x, y, z)
		checkCanonical(t, "Add", z, want.Mod(want.Add(bx, by), bigP))

		AddOne(x, z)
		checkCanonical(t, "AddOne", z, want.Mod(want.Add(bx, big.NewInt(1)), bigP))

		Subtract(x, y, z)
		checkCanonical(t, "Subtract", z, want.Mod(want.Sub(bx, by), bigP))

		Negate(x, z)
		checkCanonical(t, "Negate", z, want.Mod(want.Neg(bx), bigP))

		Twice(x, z)
		checkCanonical(t, "Twice", z, want.Mod(want.Lsh(bx, 1), bigP))

		Multiply(x, y, z)
		checkCanonical(t, "Multiply", z, want.Mod(want.Mul(bx, by), bigP))

		Square(x, z)
		checkCanonical(t, "Square", z, want.Mod(want.Mul(bx, bx), bigP))
	}
}

func TestSquareMatchesMultiply(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(7))
	s, m := make([]uint32, Limbs), make([]uint32, Limbs)
	for i := 0; i < 200; i++ {
		x := randomElement(rng)
		Square(x, s)
		Multiply(x, x, m)
		if !nat.Eq(s, m) {
			t.Fatalf("Square(%x) = %x, Multiply gives %x", x, s, m)
		}
	}
}

func TestAliasing(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(8))
	x, y := randomElement(rng), randomElement(rng)
	want := make([]uint32, Limbs)
	Multiply(x, y, want)

	z := nat.Clone(x)
	Multiply(z, y, z)
	if !nat.Eq(z, want) {
		t.Error("Multiply with output aliasing the first input gave a different result")
	}

	Subtract(x, y, want)
	z = nat.Clone(y)
	Subtract(x, z, z)
	if !nat.Eq(z, want) {
		t.Error("Subtract with output aliasing the second input gave a different result")
	}
}

func TestReduce32(t *testing.T) {
	rng := mathrand.New(mathrand.NewSource(9))
	xs := edgeElements()
	for i := 0; i < 100; i++ {
		xs = append(xs, randomElement(rng))
	}

	for _, x := range xs {
		for _, c := range []uint32{0, 1, 2, 3, 0xFFFFFFFF} {
			// z holds x shifted left by two bits with the top bits in c, as
			// produced by the Lucas double-step
			z := nat.Clone(x)
			top := nat.ShiftUpBits(z, 2, 0)
			if c > 3 {
				top = c
			}
			want := new(big.Int).Lsh(big.NewInt(int64(top)), 224)
			want.Add(want, nat.ToBig(z))
			want.Mod(want, bigP)

			Reduce32(top, z)
			checkCanonical(t, "Reduce32", z, want)
		}
	}
}

func TestReduceWide(t *testing.T) {
	// (p-1)^2 is the largest product of canonical inputs
	pm1 := new(big.Int).Sub(bigP, big.NewInt(1))
	xx := nat.FromBig(new(big.Int).Mul(pm1, pm1), 2*Limbs)
	z := make([]uint32, Limbs)
	Reduce(xx, z)
	checkCanonical(t, "Reduce", z, big.NewInt(1))

	// 2^448 - 1 exercises every carry path
	all := make([]uint32, 2*Limbs)
	for i := range all {
		all[i] = 0xFFFFFFFF
	}
	want := new(big.Int).Mod(nat.ToBig(all), bigP)
	Reduce(all, z)
	checkCanonical(t, "Reduce", z, want)
}

func BenchmarkMultiply(b *testing.B) {
	rng := mathrand.New(mathrand.NewSource(1))
	x, y := randomElement(rng), randomElement(rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Multiply(x, y, x)
	}
}

func BenchmarkSquare(b *testing.B) {
	rng := mathrand.New(mathrand.NewSource(1))
	x := randomElement(rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Square(x, x)
	}
}
