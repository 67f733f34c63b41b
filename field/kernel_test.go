package field

import (
	"math"
	"testing"

	"github.com/rmera/pme/vec3"
)

func TestMultipoleFieldChargeOnlyMatchesCoulomb(t *testing.T) {
	r := 3.0
	disp := vec3.New(r, 0, 0) // points from field point toward the source
	bn1 := Bn(r, 0, 1)[1]
	e := multipoleField(disp, 1.0, [3]float64{}, [3][3]float64{}, bn1, 0, 0)
	want := 1 / (r * r) // Coulomb field of a unit charge at distance r
	if math.Abs(e.Norm()-want) > 1e-9 {
		t.Fatalf("charge field magnitude = %v, want %v", e.Norm(), want)
	}
	// field points away from the source, i.e. opposite disp.
	if e.X >= 0 {
		t.Fatalf("expected field to point away from positive source, got %v", e)
	}
}

func TestDipoleFieldOnAxisMatchesClassicalFormula(t *testing.T) {
	r := 2.0
	disp := vec3.New(r, 0, 0)
	bn := Bn(r, 0, 2)
	mu := [3]float64{1, 0, 0} // dipole aligned with displacement
	e := dipoleField(disp, mu, bn[1], bn[2])
	want := 2 / (r * r * r) // on-axis dipole field: 2*mu/r^3
	if math.Abs(e.X-want) > 1e-9 {
		t.Fatalf("on-axis dipole field = %v, want %v", e.X, want)
	}
	if math.Abs(e.Y) > 1e-12 || math.Abs(e.Z) > 1e-12 {
		t.Fatalf("expected on-axis dipole field to have no transverse component, got %v", e)
	}
}
