package vec3

import (
	"math"
	"testing"
)

func TestCrossOrthogonality(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	z := x.Cross(y)
	if z.Dot(x) > 1e-12 || z.Dot(y) > 1e-12 {
		t.Fatalf("cross product not orthogonal to inputs: %v", z)
	}
	if math.Abs(z.Z-1) > 1e-12 {
		t.Fatalf("expected x cross y = z, got %v", z)
	}
}

func TestUnitZero(t *testing.T) {
	if Zero.Unit() != Zero {
		t.Fatalf("Unit of zero vector should stay zero")
	}
}

func TestUnitLength(t *testing.T) {
	v := New(3, 4, 0).Unit()
	if math.Abs(v.Norm()-1) > 1e-12 {
		t.Fatalf("expected unit length, got %v", v.Norm())
	}
}
