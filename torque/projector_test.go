package torque

import (
	"testing"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/vec3"
)

func TestProjectForcesSumToZero(t *testing.T) {
	self := vec3.New(0, 0, 0)
	axis := []vec3.Vector{vec3.New(0, 0, 1), vec3.New(1, 0, 0.3)}
	trq := vec3.New(0.1, -0.2, 0.3)
	p := Project(self, axis, mpole.AxisZThenX, trq)
	total := p.SelfForce
	for _, f := range p.AxisForce {
		total = total.Add(f)
	}
	if Epsilon(total) > 1e-10 {
		t.Fatalf("forces do not sum to zero: %v", total)
	}
}

func TestProjectAxisNoneIsZero(t *testing.T) {
	p := Project(vec3.New(0, 0, 0), nil, mpole.AxisNone, vec3.New(1, 2, 3))
	if Epsilon(p.SelfForce) != 0 {
		t.Fatalf("expected zero self-force for AxisNone, got %v", p.SelfForce)
	}
}

func TestProjectZThenXWaterSymmetric(t *testing.T) {
	// Oxygen at the origin, two hydrogens in the xy plane mirrored
	// across the yz plane, torque purely about z (normal to the HOH
	// plane): the projected forces must sum to zero.
	self := vec3.New(0, 0, 0)
	h1 := vec3.New(0.757, 0.586, 0)
	h2 := vec3.New(-0.757, 0.586, 0)
	trq := vec3.New(0, 0, 1.0)
	p := Project(self, []vec3.Vector{h1, h2}, mpole.AxisZThenX, trq)
	total := p.SelfForce.Add(p.AxisForce[0]).Add(p.AxisForce[1])
	if Epsilon(total) > 1e-9 {
		t.Fatalf("expected zero net force, got %v", total)
	}
}

func TestProjectBisectorSumsToZero(t *testing.T) {
	self := vec3.New(0, 0, 0)
	axis := []vec3.Vector{vec3.New(1, 1, 0), vec3.New(-1, 1, 0)}
	trq := vec3.New(0.2, 0.1, 0.3)
	p := Project(self, axis, mpole.AxisBisector, trq)
	total := p.SelfForce.Add(p.AxisForce[0]).Add(p.AxisForce[1])
	if Epsilon(total) > 1e-9 {
		t.Fatalf("expected zero net force, got %v", total)
	}
}

func TestProjectThreefoldSumsToZero(t *testing.T) {
	self := vec3.New(0, 0, 0)
	axis := []vec3.Vector{
		vec3.New(1, 0, 0.3),
		vec3.New(-0.5, 0.87, 0.3),
		vec3.New(-0.5, -0.87, 0.3),
	}
	trq := vec3.New(0, 0, 0.5)
	p := Project(self, axis, mpole.AxisThreefold, trq)
	total := p.SelfForce
	for _, f := range p.AxisForce {
		total = total.Add(f)
	}
	if Epsilon(total) > 1e-9 {
		t.Fatalf("expected zero net force, got %v", total)
	}
}

func TestProjectZThenBisectorSumsToZero(t *testing.T) {
	self := vec3.New(0, 0, 0)
	axis := []vec3.Vector{
		vec3.New(0, 0, 1),
		vec3.New(1, 0, 0.3),
		vec3.New(-1, 0, 0.3),
	}
	trq := vec3.New(0.1, 0.2, -0.1)
	p := Project(self, axis, mpole.AxisZThenBisector, trq)
	total := p.SelfForce
	for _, f := range p.AxisForce {
		total = total.Add(f)
	}
	if Epsilon(total) > 1e-9 {
		t.Fatalf("expected zero net force, got %v", total)
	}
}
