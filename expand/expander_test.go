package expand

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/v3"
)

func TestExpandIdentityOnlyIsNoOp(t *testing.T) {
	lattice := mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10})
	crystal, err := mpole.NewCrystal(*lattice, nil)
	if err != nil {
		t.Fatal(err)
	}
	asu, _ := v3.NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	images := Expand(crystal, asu)
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if images[0] != asu {
		t.Fatalf("expected image 0 to be the asu matrix itself")
	}
}

func TestExpandTwoFoldSymmetry(t *testing.T) {
	lattice := mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10})
	inversion := mat.NewDense(3, 3, []float64{-1, 0, 0, 0, -1, 0, 0, 0, -1})
	crystal, err := mpole.NewCrystal(*lattice, []mpole.SymOp{mpole.IdentitySymOp(), {Rot: *inversion}})
	if err != nil {
		t.Fatal(err)
	}
	asu, _ := v3.NewMatrix([]float64{1, 2, 3})
	images := Expand(crystal, asu)
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	got := images[1].RowVec(0)
	want := [3]float64{-1, -2, -3}
	for k := 0; k < 3; k++ {
		if math.Abs(got[k]-want[k]) > 1e-12 {
			t.Fatalf("expected inverted coordinate %v, got %v", want, got)
		}
	}
}

func TestScratchResetZeroes(t *testing.T) {
	s := NewScratch(3, 2)
	s.PermField[0].E[0] = 5
	s.Gradient[1].X = 7
	s.Reset()
	if s.PermField[0].E[0] != 0 || s.Gradient[1].X != 0 {
		t.Fatalf("expected Reset to zero buffers")
	}
}
