package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/recip"
	"github.com/rmera/pme/vec3"
)

// TestPermanentSelfSingleCharge checks the Ewald self-energy of a
// single monovalent point charge: -(alpha/sqrt(pi))*ELECTRIC at
// alpha=0.54 is about -101.18 kcal/mol.
func TestPermanentSelfSingleCharge(t *testing.T) {
	global := []mpole.Tensor10{{mpole.T000: 1}}
	got := PermanentSelf(global, 0.54, mpole.Electric)
	want := -101.18
	if math.Abs(got-want) > 0.1 {
		t.Fatalf("PermanentSelf = %v, want ~%v", got, want)
	}
}

func TestPermanentSelfZeroAlphaIsZero(t *testing.T) {
	global := []mpole.Tensor10{{mpole.T000: 1}}
	if got := PermanentSelf(global, 0, mpole.Electric); got != 0 {
		t.Fatalf("PermanentSelf with alpha=0 = %v, want 0", got)
	}
}

func TestInducedSelfZeroAlphaIsZero(t *testing.T) {
	global := []mpole.Tensor10{{mpole.T000: 1}}
	induced := mpole.NewInducedDipoles(1, 1)
	if got := InducedSelf(global, induced, 0, mpole.Electric); got != 0 {
		t.Fatalf("InducedSelf with alpha=0 = %v, want 0", got)
	}
}

func TestCovalentScaleDefaults(t *testing.T) {
	ff := mpole.DefaultForceField()
	a := &mpole.Atom{Index: 0, Covalent14: []int{1}}
	b := &mpole.Atom{Index: 1}
	if got := CovalentScale(a, b, ff); got != ff.M14 {
		t.Fatalf("CovalentScale(1-4 partner) = %v, want %v", got, ff.M14)
	}
	c := &mpole.Atom{Index: 2}
	if got := CovalentScale(a, c, ff); got != 1 {
		t.Fatalf("CovalentScale(unrelated) = %v, want 1", got)
	}
}

// TestPermanentPairChargeChargeUndamped checks the gl0 (charge-charge)
// contribution alone, with dipoles/quadrupoles zeroed and alpha=0
// (undamped): the pair energy should reduce to the plain Coulomb
// expression ci*ck/r.
func TestPermanentPairChargeChargeUndamped(t *testing.T) {
	r := vec3.New(3, 0, 0)
	out := PermanentPair(r, 1.0, vec3.Vector{}, Quad{}, -1.0, vec3.Vector{}, Quad{}, 0, 1, 1)
	want := 1.0 * -1.0 / 3.0
	if math.Abs(out.Energy-want) > 1e-9 {
		t.Fatalf("undamped charge-charge energy = %v, want %v", out.Energy, want)
	}
}

// TestPermanentPairSymmetricUnderSwap checks that swapping the field
// point and source (and negating the displacement) reproduces the same
// pair energy, since the gl-function algebra is symmetric in (i,k) up
// to the sign flips baked into sc3/sc4/sc7/sc8.
func TestPermanentPairSymmetricUnderSwap(t *testing.T) {
	r := vec3.New(2.5, 1.1, -0.4)
	di := vec3.New(0.1, 0.05, -0.02)
	dk := vec3.New(-0.03, 0.07, 0.01)
	qi := Quad{{0.01, 0.002, 0}, {0.002, -0.005, 0.001}, {0, 0.001, -0.005}}
	qk := Quad{{-0.004, 0.001, 0.002}, {0.001, 0.003, 0}, {0.002, 0, 0.001}}

	fwd := PermanentPair(r, 0.4, di, qi, -0.3, dk, qk, 0.35, 1, 1)
	rev := PermanentPair(r.Neg(), -0.3, dk, qk, 0.4, di, qi, 0.35, 1, 1)
	assert.InDelta(t, fwd.Energy, rev.Energy, 1e-9, "pair energy not symmetric under (i,k) swap")
	// The gradient and the swapped pair's gradient describe the same
	// physical pair from opposite ends, so they must be negations.
	assert.InDelta(t, fwd.GradOnI.X, -rev.GradOnI.X, 1e-9)
	assert.InDelta(t, fwd.GradOnI.Y, -rev.GradOnI.Y, 1e-9)
	assert.InDelta(t, fwd.GradOnI.Z, -rev.GradOnI.Z, 1e-9)
}

func TestPermanentReciprocalZeroPhiIsZero(t *testing.T) {
	m := mpole.Tensor10{mpole.T000: 1, mpole.T100: 0.1}
	out := PermanentReciprocal(m, recip.PhiTensor{}, mpole.Electric)
	if out.Energy != 0 || Epsilon3(out.Gradient) != 0 || Epsilon3(out.Torque) != 0 {
		t.Fatalf("expected all-zero outcome against a zero phi tensor, got %+v", out)
	}
}

func TestInducedReciprocalZeroPhiIsZero(t *testing.T) {
	mu := vec3.New(0.1, 0.2, -0.1)
	if got := InducedReciprocal(mu, recip.PhiTensor{}, mpole.Electric); got != 0 {
		t.Fatalf("InducedReciprocal against a zero phi tensor = %v, want 0", got)
	}
}

// TestDirectGradCorrectionZeroInducedIsZero checks that with no
// induced dipoles anywhere there is no mutual coupling to remove.
func TestDirectGradCorrectionZeroInducedIsZero(t *testing.T) {
	r := vec3.New(2.5, 0, 0)
	ai := &mpole.Atom{Index: 0, Pdamp: 0.4, Thole: 0.39}
	ak := &mpole.Atom{Index: 1, Pdamp: 0.4, Thole: 0.39}
	corr := DirectGradCorrection(r, vec3.Vector{}, vec3.Vector{}, vec3.Vector{}, vec3.Vector{}, ai, ak, 0.4, 1)
	if Epsilon3(corr) != 0 {
		t.Fatalf("expected zero correction with zero induced dipoles, got %v", corr)
	}
}

// TestDirectGradCorrectionRemovesMutualCoupling checks the structure
// of the correction for two parallel induced dipoles on the pair axis:
// with undamped sites (Pdamp=0, every Thole scale 1, complement 0) the
// undamped add-back vanishes and the correction reduces to minus the
// screened mutual-coupling force, which for this symmetric geometry
// lies along the axis.
func TestDirectGradCorrectionRemovesMutualCoupling(t *testing.T) {
	ai := &mpole.Atom{Index: 0}
	ak := &mpole.Atom{Index: 1}
	mu := vec3.New(0.1, 0, 0)

	r := vec3.New(2.5, 0, 0)
	corr := DirectGradCorrection(r, mu, mu, mu, mu, ai, ak, 0, 1)
	if Epsilon3(corr) == 0 {
		t.Fatalf("expected a nonzero mutual-coupling removal for coupled dipoles")
	}
	if math.Abs(corr.Y) > 1e-12 || math.Abs(corr.Z) > 1e-12 {
		t.Fatalf("expected an axial correction for an axial geometry, got %v", corr)
	}
}

func Epsilon3(v vec3.Vector) float64 { return math.Sqrt(v.Dot(v)) }
