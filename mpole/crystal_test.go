package mpole

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/pme/vec3"
)

func cubicLattice(a float64) mat.Dense {
	return *mat.NewDense(3, 3, []float64{a, 0, 0, 0, a, 0, 0, 0, a})
}

func TestCrystalVolume(t *testing.T) {
	c, err := NewCrystal(cubicLattice(20), nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.Volume()-8000) > 1e-9 {
		t.Fatalf("expected volume 8000, got %v", c.Volume())
	}
}

func TestImageMinimumImage(t *testing.T) {
	c, err := NewCrystal(cubicLattice(20), nil)
	if err != nil {
		t.Fatal(err)
	}
	v := vec3.New(19, 0, 0) // should wrap to -1 in a 20A box
	wrapped, r2 := c.Image(v)
	if math.Abs(r2-1) > 1e-9 {
		t.Fatalf("expected squared distance 1, got %v", r2)
	}
	if math.Abs(wrapped.X+1) > 1e-9 {
		t.Fatalf("expected wrapped.X == -1, got %v", wrapped.X)
	}
}

func TestImageAperiodicIsNoOp(t *testing.T) {
	// A lattice of all zeros represents the degenerate aperiodic case;
	// NewCrystal rejects it as singular, so the aperiodic Crystal is
	// built directly instead.
	zero := mat.NewDense(3, 3, make([]float64, 9))
	c := &Crystal{Lattice: *zero, SymOps: []SymOp{IdentitySymOp()}}
	v := vec3.New(123.4, -5.6, 7.8)
	wrapped, r2 := c.Image(v)
	if wrapped != v {
		t.Fatalf("aperiodic image should be identity, got %v", wrapped)
	}
	if math.Abs(r2-v.NormSq()) > 1e-9 {
		t.Fatalf("expected r2 == |v|^2")
	}
}

func TestApplySymOpIdentity(t *testing.T) {
	c, err := NewCrystal(cubicLattice(10), nil)
	if err != nil {
		t.Fatal(err)
	}
	v := vec3.New(1, 2, 3)
	if c.ApplySymOp(0, v) != v {
		t.Fatalf("identity symop should not move v")
	}
}

// TestApplyInvSymRotationRoundTrip checks that the inverse rotation
// undoes the forward one for a proper rotation operator (here a 90
// degree turn about z).
func TestApplyInvSymRotationRoundTrip(t *testing.T) {
	rot := mat.NewDense(3, 3, []float64{0, -1, 0, 1, 0, 0, 0, 0, 1})
	c, err := NewCrystal(cubicLattice(10), []SymOp{IdentitySymOp(), {Rot: *rot}})
	if err != nil {
		t.Fatal(err)
	}
	v := vec3.New(0.3, -1.2, 2.5)
	back := c.ApplyInvSymRotation(1, c.ApplySymRotation(1, v))
	if math.Abs(back.X-v.X) > 1e-12 || math.Abs(back.Y-v.Y) > 1e-12 || math.Abs(back.Z-v.Z) > 1e-12 {
		t.Fatalf("inverse rotation did not undo forward rotation: %v vs %v", back, v)
	}
}
