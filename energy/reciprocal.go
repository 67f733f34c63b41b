/*
 * reciprocal.go, part of gochem's PME engine.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package energy

import (
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/recip"
	"github.com/rmera/pme/vec3"
)

// ReciprocalOutcome is one atom's permanent reciprocal-space energy
// share, gradient and torque.
type ReciprocalOutcome struct {
	Energy   float64
	Gradient vec3.Vector
	Torque   vec3.Vector
}

// PermanentReciprocal evaluates the reciprocal-space permanent
// energy/gradient/torque contraction at one atom: m is the atom's
// global Tensor10, phi its reciprocal phi-tensor. recip.PhiTensor is
// already Cartesian, so the contraction happens directly in Cartesian
// space with no fractional round-trip.
func PermanentReciprocal(m mpole.Tensor10, phi recip.PhiTensor, electric float64) ReciprocalOutcome {
	e := 0.5 * electric * dotT10Phi(m, phi)

	gx := m[mpole.T000]*phi[recip.T100] + m[mpole.T100]*phi[recip.T200] + m[mpole.T010]*phi[recip.T110] + m[mpole.T001]*phi[recip.T101] +
		m[mpole.T200]*phi[recip.T300] + m[mpole.T020]*phi[recip.T120] + m[mpole.T002]*phi[recip.T102] +
		m[mpole.T110]*phi[recip.T210] + m[mpole.T101]*phi[recip.T201] + m[mpole.T011]*phi[recip.T111]
	gy := m[mpole.T000]*phi[recip.T010] + m[mpole.T100]*phi[recip.T110] + m[mpole.T010]*phi[recip.T020] + m[mpole.T001]*phi[recip.T011] +
		m[mpole.T200]*phi[recip.T210] + m[mpole.T020]*phi[recip.T030] + m[mpole.T002]*phi[recip.T012] +
		m[mpole.T110]*phi[recip.T120] + m[mpole.T101]*phi[recip.T111] + m[mpole.T011]*phi[recip.T021]
	gz := m[mpole.T000]*phi[recip.T001] + m[mpole.T100]*phi[recip.T101] + m[mpole.T010]*phi[recip.T011] + m[mpole.T001]*phi[recip.T002] +
		m[mpole.T200]*phi[recip.T201] + m[mpole.T020]*phi[recip.T021] + m[mpole.T002]*phi[recip.T003] +
		m[mpole.T110]*phi[recip.T111] + m[mpole.T101]*phi[recip.T102] + m[mpole.T011]*phi[recip.T012]

	tqx := -m[mpole.T010]*phi[recip.T001] + m[mpole.T001]*phi[recip.T010]
	tqy := -m[mpole.T001]*phi[recip.T100] + m[mpole.T100]*phi[recip.T001]
	tqz := -m[mpole.T100]*phi[recip.T010] + m[mpole.T010]*phi[recip.T100]
	tqx -= 2.0 / 3.0 * (m[mpole.T110]*phi[recip.T101] + m[mpole.T020]*phi[recip.T011] + m[mpole.T011]*phi[recip.T002] -
		m[mpole.T101]*phi[recip.T110] - m[mpole.T011]*phi[recip.T020] - m[mpole.T002]*phi[recip.T011])
	tqy -= 2.0 / 3.0 * (m[mpole.T101]*phi[recip.T200] + m[mpole.T011]*phi[recip.T110] + m[mpole.T002]*phi[recip.T101] -
		m[mpole.T200]*phi[recip.T101] - m[mpole.T110]*phi[recip.T011] - m[mpole.T101]*phi[recip.T002])
	tqz -= 2.0 / 3.0 * (m[mpole.T200]*phi[recip.T110] + m[mpole.T110]*phi[recip.T020] + m[mpole.T101]*phi[recip.T011] -
		m[mpole.T110]*phi[recip.T200] - m[mpole.T020]*phi[recip.T110] - m[mpole.T011]*phi[recip.T101])

	return ReciprocalOutcome{
		Energy:   e,
		Gradient: vec3.New(gx, gy, gz).Scale(electric),
		Torque:   vec3.New(tqx, tqy, tqz).Scale(electric),
	}
}

// dotT10Phi returns the dot product of a Tensor10 and a PhiTensor's
// first ten (same-order) components.
func dotT10Phi(m mpole.Tensor10, phi recip.PhiTensor) float64 {
	var s float64
	for t := 0; t < 10; t++ {
		s += m[t] * phi[t]
	}
	return s
}

// InducedReciprocal evaluates the reciprocal-space induced energy
// contraction at one atom: mu is the group-masked induced dipole,
// permPhi the permanent-source phi tensor at the same atom. Only the
// potential's first derivatives enter.
func InducedReciprocal(mu vec3.Vector, permPhi recip.PhiTensor, electric float64) float64 {
	return electric * (mu.X*permPhi[recip.T100] + mu.Y*permPhi[recip.T010] + mu.Z*permPhi[recip.T001])
}

// InducedReciprocalGradTorque evaluates the gradient/torque an atom's
// reciprocal induced-dipole interaction contributes: m is the atom's
// global Tensor10, muD/muP its two induced-dipole conventions, permPhi
// the permanent-source phi, and sPhi = 0.5*(inducedPhiD + inducedPhiP)
// the averaged induced-source phi.
func InducedReciprocalGradTorque(m mpole.Tensor10, muD, muP vec3.Vector, permPhi, sPhi recip.PhiTensor, electric float64) (grad, torque vec3.Vector) {
	insx, insy, insz := muD.X+muP.X, muD.Y+muP.Y, muD.Z+muP.Z

	gx := insx*permPhi[recip.T200] + insy*permPhi[recip.T110] + insz*permPhi[recip.T101]
	gy := insx*permPhi[recip.T110] + insy*permPhi[recip.T020] + insz*permPhi[recip.T011]
	gz := insx*permPhi[recip.T101] + insy*permPhi[recip.T011] + insz*permPhi[recip.T002]

	gx += m[mpole.T000]*sPhi[recip.T100] + m[mpole.T100]*sPhi[recip.T200] + m[mpole.T010]*sPhi[recip.T110] + m[mpole.T001]*sPhi[recip.T101] +
		m[mpole.T200]*sPhi[recip.T300] + m[mpole.T020]*sPhi[recip.T120] + m[mpole.T002]*sPhi[recip.T102] +
		m[mpole.T110]*sPhi[recip.T210] + m[mpole.T101]*sPhi[recip.T201] + m[mpole.T011]*sPhi[recip.T111]
	gy += m[mpole.T000]*sPhi[recip.T010] + m[mpole.T100]*sPhi[recip.T110] + m[mpole.T010]*sPhi[recip.T020] + m[mpole.T001]*sPhi[recip.T011] +
		m[mpole.T200]*sPhi[recip.T210] + m[mpole.T020]*sPhi[recip.T030] + m[mpole.T002]*sPhi[recip.T012] +
		m[mpole.T110]*sPhi[recip.T120] + m[mpole.T101]*sPhi[recip.T111] + m[mpole.T011]*sPhi[recip.T021]
	gz += m[mpole.T000]*sPhi[recip.T001] + m[mpole.T100]*sPhi[recip.T101] + m[mpole.T010]*sPhi[recip.T011] + m[mpole.T001]*sPhi[recip.T002] +
		m[mpole.T200]*sPhi[recip.T201] + m[mpole.T020]*sPhi[recip.T021] + m[mpole.T002]*sPhi[recip.T003] +
		m[mpole.T110]*sPhi[recip.T111] + m[mpole.T101]*sPhi[recip.T102] + m[mpole.T011]*sPhi[recip.T012]

	d := m.Dipole()
	md := vec3.New(d[0], d[1], d[2])
	tqx := -md.Y*sPhi[recip.T001] + md.Z*sPhi[recip.T010]
	tqy := -md.Z*sPhi[recip.T100] + md.X*sPhi[recip.T001]
	tqz := -md.X*sPhi[recip.T010] + md.Y*sPhi[recip.T100]
	tqx -= 2.0 / 3.0 * (m[mpole.T110]*sPhi[recip.T101] + m[mpole.T020]*sPhi[recip.T011] + m[mpole.T011]*sPhi[recip.T002] -
		m[mpole.T101]*sPhi[recip.T110] - m[mpole.T011]*sPhi[recip.T020] - m[mpole.T002]*sPhi[recip.T011])
	tqy -= 2.0 / 3.0 * (m[mpole.T101]*sPhi[recip.T200] + m[mpole.T011]*sPhi[recip.T110] + m[mpole.T002]*sPhi[recip.T101] -
		m[mpole.T200]*sPhi[recip.T101] - m[mpole.T110]*sPhi[recip.T011] - m[mpole.T101]*sPhi[recip.T002])
	tqz -= 2.0 / 3.0 * (m[mpole.T200]*sPhi[recip.T110] + m[mpole.T110]*sPhi[recip.T020] + m[mpole.T101]*sPhi[recip.T011] -
		m[mpole.T110]*sPhi[recip.T200] - m[mpole.T020]*sPhi[recip.T110] - m[mpole.T011]*sPhi[recip.T101])

	return vec3.New(gx, gy, gz).Scale(0.5 * electric), vec3.New(tqx, tqy, tqz).Scale(electric)
}
