package field

import "testing"

func TestDampingZeroPdampMeansUndamped(t *testing.T) {
	s3, s5, s7 := Damping(1.0, 0, 0.6, 0.39)
	if s3 != 1 || s5 != 1 || s7 != 1 {
		t.Fatalf("expected no damping with pdamp=0, got %v %v %v", s3, s5, s7)
	}
}

func TestDampingShortRangeReducesScales(t *testing.T) {
	s3, _, _ := Damping(0.5, 0.4, 0.4, 0.39)
	if s3 >= 1 {
		t.Fatalf("expected scale3 < 1 at short range, got %v", s3)
	}
	if s3 < 0 {
		t.Fatalf("expected scale3 >= 0, got %v", s3)
	}
}

func TestDampingLargeDampGivesUnity(t *testing.T) {
	s3, s5, s7 := Damping(100, 0.4, 0.4, 0.39)
	if s3 != 1 || s5 != 1 || s7 != 1 {
		t.Fatalf("expected unity scales once damp overflows, got %v %v %v", s3, s5, s7)
	}
}
