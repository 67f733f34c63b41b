/*
 * matrix_test.go, part of gochem.
 */

package v3

import (
	"math"
	"testing"
)

func TestZerosAndSet(t *testing.T) {
	m := Zeros(3)
	if m.NVecs() != 3 {
		t.Fatalf("expected 3 vectors, got %d", m.NVecs())
	}
	m.SetRowVec(1, [3]float64{1, 2, 3})
	got := m.RowVec(1)
	if got != [3]float64{1, 2, 3} {
		t.Fatalf("RowVec/SetRowVec mismatch: %v", got)
	}
}

func TestSwapVecs(t *testing.T) {
	m := Zeros(2)
	m.SetRowVec(0, [3]float64{1, 0, 0})
	m.SetRowVec(1, [3]float64{0, 1, 0})
	m.SwapVecs(0, 1)
	if m.RowVec(0) != [3]float64{0, 1, 0} {
		t.Fatalf("swap failed: %v", m.RowVec(0))
	}
}

func TestDet3x3Identity(t *testing.T) {
	m := Zeros(3)
	m.SetRowVec(0, [3]float64{1, 0, 0})
	m.SetRowVec(1, [3]float64{0, 1, 0})
	m.SetRowVec(2, [3]float64{0, 0, 1})
	d := Det3x3(m.Dense)
	if math.Abs(d-1) > 1e-12 {
		t.Fatalf("expected det 1, got %v", d)
	}
}
