package scf

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/recip"
	"github.com/rmera/pme/v3"
)

func aperiodicCrystal() *mpole.Crystal {
	return &mpole.Crystal{Lattice: *mat.NewDense(3, 3, make([]float64, 9)), SymOps: []mpole.SymOp{mpole.IdentitySymOp()}}
}

// TestSolveDirectSeedsFromPermanentField checks DIRECT mode: the
// induced dipole is seeded once from the direct field (plus
// self/reciprocal corrections, here zero since alpha=0 and permPhi is
// zero) and the solver returns without iterating.
func TestSolveDirectSeedsFromPermanentField(t *testing.T) {
	atoms := []*mpole.Atom{{Index: 0, Polarizability: 2.0}}
	coords, err := v3.NewMatrix([]float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	ff := mpole.DefaultForceField()
	ff.EwaldAlpha = 0
	ff.Polarization = mpole.Direct

	permField := mpole.NewFields(1)
	permField[0].E = [3]float64{1, 0, 0}
	permField[0].EP = [3]float64{1, 0, 0}
	permFieldCR := mpole.NewFields(1)
	permFieldCR[0].E = [3]float64{1, 0, 0}
	permFieldCR[0].EP = [3]float64{1, 0, 0}
	permPhi := make([]recip.PhiTensor, 1)
	induced := mpole.NewInducedDipoles(1, 1)

	res, err := Solve(aperiodicCrystal(), atoms, []*v3.Matrix{coords}, nil, ff, nil, nil, permField, permFieldCR, permPhi, induced, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 0 {
		t.Fatalf("DIRECT mode should report 0 iterations, got %d", res.Iterations)
	}
	want := 2.0 * 1.0
	if math.Abs(induced[0][0].Mu[0]-want) > 1e-9 {
		t.Fatalf("seeded induced dipole = %v, want %v", induced[0][0].Mu[0], want)
	}
}

// TestSolveMutualConvergesForIsolatedAtom checks MUTUAL mode on a
// single isolated atom with no reciprocal collaborator: the real-space
// induced field from "every other atom" is necessarily zero, so the
// SOR update cannot move past the DIRECT seed and must converge on the
// first iteration.
func TestSolveMutualConvergesForIsolatedAtom(t *testing.T) {
	atoms := []*mpole.Atom{{Index: 0, Polarizability: 1.0}}
	coords, err := v3.NewMatrix([]float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	ff := mpole.DefaultForceField()
	ff.EwaldAlpha = 0
	ff.Polarization = mpole.Mutual

	permField := mpole.NewFields(1)
	permField[0].E = [3]float64{0.5, 0, 0}
	permFieldCR := mpole.NewFields(1)
	permFieldCR[0].E = [3]float64{0.5, 0, 0}
	permPhi := make([]recip.PhiTensor, 1)
	induced := mpole.NewInducedDipoles(1, 1)

	res, err := Solve(aperiodicCrystal(), atoms, []*v3.Matrix{coords}, nil, ff, nil, nil, permField, permFieldCR, permPhi, induced, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 1 {
		t.Fatalf("expected convergence on the first iteration for an isolated atom, got %d", res.Iterations)
	}
	if res.Epsilon >= ff.SCFTolerance {
		t.Fatalf("expected epsilon below tolerance, got %v", res.Epsilon)
	}
}

// TestSolveTerminatesOnSignal checks the external termination hook: a
// closed terminate channel must stop the SOR loop and report
// Terminated, rather than running to convergence or MaxSCFIter.
func TestSolveTerminatesOnSignal(t *testing.T) {
	atoms := []*mpole.Atom{{Index: 0, Polarizability: 1.0}, {Index: 1, Polarizability: 1.0}}
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 2, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	ff := mpole.DefaultForceField()
	ff.EwaldAlpha = 0
	ff.Polarization = mpole.Mutual
	ff.SCFTolerance = 1e-12

	permField := mpole.NewFields(2)
	permFieldCR := mpole.NewFields(2)
	permPhi := make([]recip.PhiTensor, 2)
	induced := mpole.NewInducedDipoles(1, 2)

	terminate := make(chan struct{})
	close(terminate)

	res, err := Solve(aperiodicCrystal(), atoms, []*v3.Matrix{coords}, nil, ff, nil, nil, permField, permFieldCR, permPhi, induced, terminate)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Terminated {
		t.Fatalf("expected Terminated=true when the termination channel is already closed")
	}
}
