package topology

import (
	"testing"

	"github.com/rmera/pme/v3"
)

// A 5-atom chain 0-1-2-3-4 should give 1 the 1-3 partner 3, the 1-4
// partner 4, and no 1-5 partners.
func TestBFSLevelsChain(t *testing.T) {
	bonds := []Bond{{I: 0, J: 1}, {I: 1, J: 2}, {I: 2, J: 3}, {I: 3, J: 4}}
	cov, err := BuildCovalent(5, nil, nil, bonds)
	if err != nil {
		t.Fatal(err)
	}
	if !containsInt(cov.C13[1], 3) {
		t.Fatalf("expected atom 1 to have 1-3 partner 3, got %v", cov.C13[1])
	}
	if !containsInt(cov.C14[1], 4) {
		t.Fatalf("expected atom 1 to have 1-4 partner 4, got %v", cov.C14[1])
	}
	if len(cov.C15[1]) != 0 {
		t.Fatalf("expected no 1-5 partners for atom 1, got %v", cov.C15[1])
	}
}

func TestAssignBondsWaterLikeGeometry(t *testing.T) {
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0, // O
		0.96, 0, 0, // H
		-0.24, 0.93, 0, // H
	})
	if err != nil {
		t.Fatal(err)
	}
	elements := []string{"O", "H", "H"}
	cov, err := BuildCovalent(3, coords, elements, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cov.Bonds) != 2 {
		t.Fatalf("expected 2 O-H bonds, got %d: %v", len(cov.Bonds), cov.Bonds)
	}
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
