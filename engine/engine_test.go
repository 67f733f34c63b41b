package engine

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/v3"
)

func aperiodicCrystal() *mpole.Crystal {
	return &mpole.Crystal{Lattice: *mat.NewDense(3, 3, make([]float64, 9)), SymOps: []mpole.SymOp{mpole.IdentitySymOp()}}
}

// TestEnergyMonopolePairAperiodic exercises the full orchestrator
// pipeline (expand, rotate, real-space field, SCF skipped, assemble,
// torque) on the simplest possible system: two like monopoles, no
// polarization, no reciprocal space. Net force must vanish and the
// energy must reduce to the bare Coulomb expression.
func TestEnergyMonopolePairAperiodic(t *testing.T) {
	atoms := []*mpole.Atom{
		{Index: 0, Local: mpole.LocalMultipole{Charge: 1}},
		{Index: 1, Local: mpole.LocalMultipole{Charge: 1}},
	}
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 3, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	ff := mpole.DefaultForceField()
	ff.EwaldAlpha = 0
	ff.Cutoff = 100

	eng, err := New(atoms, aperiodicCrystal(), ff, nil, nil, nil, NewPool(2), nil)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{UseSymmetry: true, DoPermanentReal: true}
	res, err := eng.Energy(coords, cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := mpole.Electric / 3.0
	if math.Abs(res.PermanentEnergy-want) > 1e-6 {
		t.Fatalf("permanent energy = %v, want %v", res.PermanentEnergy, want)
	}

	var sum [3]float64
	for _, g := range res.Gradient {
		sum[0] += g.X
		sum[1] += g.Y
		sum[2] += g.Z
	}
	for _, c := range sum {
		if math.Abs(c) > 1e-8 {
			t.Fatalf("expected zero net force, got %v", sum)
		}
	}
	if res.Gradient[0].X >= 0 {
		t.Fatalf("expected atom 0 pushed away from atom 1 (negative x), got %v", res.Gradient[0].X)
	}
}

// TestEnergyInversionMateForce checks the symmetry-mate reduction: one
// charge in a cell with an inversion operator interacts with its own
// inverted image at half weight from each end of the pair, and the
// inverse-rotated mate reaction must restore the full force on the
// asymmetric-unit atom.
func TestEnergyInversionMateForce(t *testing.T) {
	lattice := *mat.NewDense(3, 3, []float64{20, 0, 0, 0, 20, 0, 0, 0, 20})
	inversion := *mat.NewDense(3, 3, []float64{-1, 0, 0, 0, -1, 0, 0, 0, -1})
	crystal, err := mpole.NewCrystal(lattice, []mpole.SymOp{mpole.IdentitySymOp(), {Rot: inversion}})
	if err != nil {
		t.Fatal(err)
	}
	atoms := []*mpole.Atom{{Index: 0, Local: mpole.LocalMultipole{Charge: 1}}}
	coords, err := v3.NewMatrix([]float64{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	ff := mpole.DefaultForceField()
	ff.EwaldAlpha = 0
	ff.Cutoff = 9.0

	eng, err := New(atoms, crystal, ff, nil, nil, nil, NewPool(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := eng.Energy(coords, Config{UseSymmetry: true, DoPermanentReal: true})
	if err != nil {
		t.Fatal(err)
	}

	// The image sits at (-1,0,0), 2 Angstrom away; the pair is counted
	// once at half weight, the asymmetric unit's energy share.
	wantE := 0.5 * mpole.Electric / 2.0
	if math.Abs(res.PermanentEnergy-wantE) > 1e-6 {
		t.Fatalf("permanent energy = %v, want %v", res.PermanentEnergy, wantE)
	}

	// The full repulsive force q^2/r^2 must land on the atom once the
	// mate's reaction is rotated back through the inversion.
	wantF := mpole.Electric / 4.0
	if math.Abs(res.Gradient[0].X-wantF) > 1e-6 {
		t.Fatalf("force on atom 0 = %v, want %v", res.Gradient[0].X, wantF)
	}
}

// TestEnergyRejectsMismatchedAtomCount checks the coordinate/atom-count
// mismatch case caught at Energy time.
func TestEnergyRejectsMismatchedAtomCount(t *testing.T) {
	atoms := []*mpole.Atom{{Index: 0}}
	ff := mpole.DefaultForceField()
	ff.Cutoff = 10
	eng, err := New(atoms, aperiodicCrystal(), ff, nil, nil, nil, NewPool(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0})
	if _, err := eng.Energy(coords, DefaultConfig()); err == nil {
		t.Fatal("expected an error for mismatched atom/coordinate count")
	}
}

// TestNewRejectsEmptyAtomList checks that construction fails fast with
// no atoms.
func TestNewRejectsEmptyAtomList(t *testing.T) {
	ff := mpole.DefaultForceField()
	ff.Cutoff = 10
	if _, err := New(nil, aperiodicCrystal(), ff, nil, nil, nil, nil, nil); err == nil {
		t.Fatal("expected an error constructing an engine with zero atoms")
	}
}

// TestNewRejectsMisSizedNeighborLists checks that a neighbor list not
// covering every image/atom is a construction error.
func TestNewRejectsMisSizedNeighborLists(t *testing.T) {
	atoms := []*mpole.Atom{{Index: 0}, {Index: 1}}
	ff := mpole.DefaultForceField()
	ff.Cutoff = 10
	nl := [][][]int{{{1}}} // one atom entry, two atoms
	if _, err := New(atoms, aperiodicCrystal(), ff, nil, nil, nl, nil, nil); err == nil {
		t.Fatal("expected an error for a mis-sized neighbor list")
	}
}

// TestUseSymmetryFalseTruncatesToIdentity checks that disabling
// symmetry restricts the evaluation to image 0 without touching the
// engine's own crystal.
func TestUseSymmetryFalseTruncatesToIdentity(t *testing.T) {
	crystal, err := mpole.NewCrystal(*mat.NewDense(3, 3, []float64{10, 0, 0, 0, 10, 0, 0, 0, 10}), []mpole.SymOp{
		mpole.IdentitySymOp(),
		mpole.IdentitySymOp(),
	})
	if err != nil {
		t.Fatal(err)
	}
	atoms := []*mpole.Atom{{Index: 0, Local: mpole.LocalMultipole{Charge: 1}}}
	ff := mpole.DefaultForceField()
	ff.EwaldAlpha = 0
	ff.Cutoff = 100
	eng, err := New(atoms, crystal, ff, nil, nil, nil, NewPool(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	active := eng.activeCrystal(Config{UseSymmetry: false})
	if active.NImages() != 1 {
		t.Fatalf("expected 1 image with symmetry disabled, got %d", active.NImages())
	}
	if eng.Crystal.NImages() != 2 {
		t.Fatalf("expected the engine's own crystal to be untouched, got %d images", eng.Crystal.NImages())
	}
}
