package mpole

import (
	"math"
	"testing"
)

// TestEwaldCoefficientMeetsPrecision checks that the bisected alpha
// satisfies erfc(alpha*cutoff)/cutoff < precision, and only just: a
// slightly smaller alpha must violate it.
func TestEwaldCoefficientMeetsPrecision(t *testing.T) {
	cutoff, precision := 9.0, 1e-8
	alpha := EwaldCoefficient(cutoff, precision)
	if alpha <= 0 {
		t.Fatalf("expected a positive Ewald coefficient, got %v", alpha)
	}
	if got := math.Erfc(alpha*cutoff) / cutoff; got >= precision {
		t.Fatalf("erfc(alpha*cutoff)/cutoff = %v, want < %v", got, precision)
	}
	loose := alpha * 0.99
	if got := math.Erfc(loose*cutoff) / cutoff; got < precision {
		t.Fatalf("alpha not tight: 0.99*alpha already meets precision (%v)", got)
	}
}

func TestEwaldCoefficientDegenerateInputs(t *testing.T) {
	if got := EwaldCoefficient(0, 1e-8); got != 0 {
		t.Fatalf("expected 0 for a zero cutoff, got %v", got)
	}
	if got := EwaldCoefficient(9, 0); got != 0 {
		t.Fatalf("expected 0 for a zero precision, got %v", got)
	}
}
