package lambda

import (
	"math"
	"testing"

	"github.com/rmera/pme/energy"
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/vec3"
)

// TestHardHardPairIsLambdaIndependent checks that hard-hard pairs are
// left at full strength regardless of lambda: neither atom is soft, so
// PermanentPairDelta must report no correction at all.
func TestHardHardPairIsLambdaIndependent(t *testing.T) {
	ctx := Context{Lambda: 0.3, PermanentExponent: 2, PolarizationExponent: 2, AlphaPerm: 0.7}
	ai := &mpole.Atom{Index: 0}
	ak := &mpole.Atom{Index: 1}
	r := vec3.New(3, 0, 0)

	delta := ctx.PermanentPairDelta(r, 9, 1, vec3.Vector{}, energy.Quad{}, -1, vec3.Vector{}, energy.Quad{}, ai, ak, 0, 1, 1)
	if delta != (PairDelta{}) {
		t.Fatalf("hard-hard pair delta = %+v, want zero", delta)
	}
}

// TestSoftPairAtLambdaOneMatchesFullStrength checks the lambda=1
// endpoint: the softening term vanishes ((1-lambda)=0) and the
// power-law scale is 1, so the delta against the already-counted
// full-strength pair must be ~0.
func TestSoftPairAtLambdaOneMatchesFullStrength(t *testing.T) {
	one, _ := (Context{PermanentExponent: 2, PolarizationExponent: 2, AlphaPerm: 0.7}).Endpoints()
	ai := &mpole.Atom{Index: 0, Soft: true}
	ak := &mpole.Atom{Index: 1}
	r := vec3.New(3, 0, 0)

	delta := one.PermanentPairDelta(r, 9, 1, vec3.Vector{}, energy.Quad{}, -1, vec3.Vector{}, energy.Quad{}, ai, ak, 0, 1, 1)
	if math.Abs(delta.DeltaPermanent) > 1e-6 {
		t.Fatalf("lambda=1 soft-pair delta = %v, want ~0", delta.DeltaPermanent)
	}
}

// TestSoftPairAtLambdaZeroRemovesInteraction checks the other endpoint:
// lambda=0 drives the power-law scale to zero for any positive
// exponent, so the pair's full-strength energy must be entirely
// subtracted back out.
func TestSoftPairAtLambdaZeroRemovesInteraction(t *testing.T) {
	_, zero := (Context{PermanentExponent: 2, PolarizationExponent: 2, AlphaPerm: 0.7}).Endpoints()
	ai := &mpole.Atom{Index: 0, Soft: true}
	ak := &mpole.Atom{Index: 1}
	r := vec3.New(3, 0, 0)

	full := mpole.Electric * energy.PermanentPair(r, 1, vec3.Vector{}, energy.Quad{}, -1, vec3.Vector{}, energy.Quad{}, 0, 1, 1).Energy
	delta := zero.PermanentPairDelta(r, 9, 1, vec3.Vector{}, energy.Quad{}, -1, vec3.Vector{}, energy.Quad{}, ai, ak, 0, 1, 1)
	if math.Abs(delta.DeltaPermanent+full) > 1e-6 {
		t.Fatalf("lambda=0 soft-pair delta = %v, want %v", delta.DeltaPermanent, -full)
	}
}
