package field

import (
	"math"
	"testing"

	"github.com/rmera/pme/mpole"
)

func TestInducedFieldUndampedDipoleOnAxis(t *testing.T) {
	r := 3.0
	crystal, atoms, coords := aperiodicPair(t, []float64{0, 0, 0, r, 0, 0})
	dipoles := mpole.NewInducedDipoles(1, 2)
	dipoles[0][1] = mpole.InducedPair{Mu: [3]float64{1, 0, 0}, MuP: [3]float64{1, 0, 0}}
	ff := &mpole.ForceField{EwaldAlpha: 0, Cutoff: 100}

	out := mpole.NewFields(2)
	if err := Induced(crystal, atoms, coords, dipoles, nil, ff, out); err != nil {
		t.Fatal(err)
	}
	want := 2 / (r * r * r)
	if math.Abs(out[0].E[0]-want) > 1e-9 {
		t.Fatalf("on-axis induced field = %v, want %v", out[0].E[0], want)
	}
	if out[0].E != out[0].EP {
		t.Fatalf("expected d-masked and p-masked induced fields to agree with no covalent relations")
	}
}

func TestInducedFieldExcludedWithinIP11Group(t *testing.T) {
	r := 1.5
	crystal, atoms, coords := aperiodicPair(t, []float64{0, 0, 0, r, 0, 0})
	atoms[0].IP11 = []int{0, 1}
	atoms[1].IP11 = []int{0, 1}
	dipoles := mpole.NewInducedDipoles(1, 2)
	dipoles[0][1] = mpole.InducedPair{Mu: [3]float64{1, 0, 0}, MuP: [3]float64{1, 0, 0}}
	ff := &mpole.ForceField{EwaldAlpha: 0, Cutoff: 100, D11: 0}

	out := mpole.NewFields(2)
	if err := Induced(crystal, atoms, coords, dipoles, nil, ff, out); err != nil {
		t.Fatal(err)
	}
	if out[0].E != [3]float64{} {
		t.Fatalf("expected d-masked induced field fully excluded within an ip11 group, got %v", out[0].E)
	}
}
