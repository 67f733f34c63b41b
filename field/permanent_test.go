package field

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/v3"
)

func aperiodicPair(t *testing.T, coords []float64) (*mpole.Crystal, []*mpole.Atom, []*v3.Matrix) {
	t.Helper()
	crystal := &mpole.Crystal{Lattice: *mat.NewDense(3, 3, make([]float64, 9)), SymOps: []mpole.SymOp{mpole.IdentitySymOp()}}
	atoms := []*mpole.Atom{{Index: 0}, {Index: 1}}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		t.Fatal(err)
	}
	return crystal, atoms, []*v3.Matrix{m}
}

func TestPermanentFieldUndampedMonopolePair(t *testing.T) {
	r := 2.5
	crystal, atoms, coords := aperiodicPair(t, []float64{0, 0, 0, r, 0, 0})
	global := mpole.NewGlobalMultipoles(1, 2)
	global[0][0][mpole.T000] = 1.0
	global[0][1][mpole.T000] = 1.0
	ff := &mpole.ForceField{EwaldAlpha: 0, Cutoff: 100}

	out, outCR := mpole.NewFields(2), mpole.NewFields(2)
	if err := Permanent(crystal, atoms, coords, global, nil, ff, out, outCR); err != nil {
		t.Fatal(err)
	}

	got := math.Sqrt(out[0].E[0]*out[0].E[0] + out[0].E[1]*out[0].E[1] + out[0].E[2]*out[0].E[2])
	want := 1 / (r * r)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("field magnitude at atom 0 = %v, want %v", got, want)
	}
	if out[0] != outCR[0] {
		t.Fatalf("expected d-masked and p-masked fields to agree with no covalent relations")
	}
	// the like-charge field at atom 0 should point away from atom 1 (negative x).
	if out[0].E[0] >= 0 {
		t.Fatalf("expected field to point away from the like charge, got %v", out[0].E)
	}
}

func TestPermanentFieldRespectsCutoff(t *testing.T) {
	crystal, atoms, coords := aperiodicPair(t, []float64{0, 0, 0, 50, 0, 0})
	global := mpole.NewGlobalMultipoles(1, 2)
	global[0][0][mpole.T000] = 1.0
	global[0][1][mpole.T000] = 1.0
	ff := &mpole.ForceField{EwaldAlpha: 0, Cutoff: 9.0}

	out, outCR := mpole.NewFields(2), mpole.NewFields(2)
	if err := Permanent(crystal, atoms, coords, global, nil, ff, out, outCR); err != nil {
		t.Fatal(err)
	}
	if out[0] != (mpole.Field{}) {
		t.Fatalf("expected zero field beyond cutoff, got %v", out[0])
	}
}

func TestPermanentFieldAppliesCovalentPMask(t *testing.T) {
	r := 1.5
	crystal, atoms, coords := aperiodicPair(t, []float64{0, 0, 0, r, 0, 0})
	atoms[0].Covalent12 = []int{1}
	atoms[1].Covalent12 = []int{0}
	global := mpole.NewGlobalMultipoles(1, 2)
	global[0][0][mpole.T000] = 1.0
	global[0][1][mpole.T000] = 1.0
	ff := &mpole.ForceField{EwaldAlpha: 0, Cutoff: 100, P12: 0, D11: 0}

	out, outCR := mpole.NewFields(2), mpole.NewFields(2)
	if err := Permanent(crystal, atoms, coords, global, nil, ff, out, outCR); err != nil {
		t.Fatal(err)
	}
	if outCR[0] != (mpole.Field{}) {
		t.Fatalf("expected p-masked field fully excluded for a 1-2 partner, got %v", outCR[0])
	}
	if out[0] == (mpole.Field{}) {
		t.Fatalf("expected d-masked field to be unaffected by the p-mask")
	}
}

// TestPermanentFieldNeighborListMatchesFullLoop checks that a complete
// neighbor list reproduces the all-pairs screen exactly, and that an
// atom absent from the list contributes nothing.
func TestPermanentFieldNeighborListMatchesFullLoop(t *testing.T) {
	r := 2.0
	crystal, atoms, coords := aperiodicPair(t, []float64{0, 0, 0, r, 0, 0})
	global := mpole.NewGlobalMultipoles(1, 2)
	global[0][0][mpole.T000] = 1.0
	global[0][1][mpole.T000] = -1.0
	ff := &mpole.ForceField{EwaldAlpha: 0, Cutoff: 100}

	full, fullCR := mpole.NewFields(2), mpole.NewFields(2)
	if err := Permanent(crystal, atoms, coords, global, nil, ff, full, fullCR); err != nil {
		t.Fatal(err)
	}

	nl := [][][]int{{{1}, {0}}}
	listed, listedCR := mpole.NewFields(2), mpole.NewFields(2)
	if err := Permanent(crystal, atoms, coords, global, nl, ff, listed, listedCR); err != nil {
		t.Fatal(err)
	}
	if full[0] != listed[0] || full[1] != listed[1] {
		t.Fatalf("neighbor-list field %v differs from full-loop field %v", listed, full)
	}

	empty := [][][]int{{{}, {}}}
	none, noneCR := mpole.NewFields(2), mpole.NewFields(2)
	if err := Permanent(crystal, atoms, coords, global, empty, ff, none, noneCR); err != nil {
		t.Fatal(err)
	}
	if none[0] != (mpole.Field{}) || noneCR[0] != (mpole.Field{}) {
		t.Fatalf("expected zero field with an empty neighbor list, got %v", none[0])
	}
}
