/*
 * self.go, part of gochem's PME engine.
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
)

const sqrtPi = 1.7724538509055159

// PermanentSelf computes the Ewald self-energy of the permanent
// multipoles: Eself = -(electric*alpha/sqrt(pi)) * sum_i [ci^2 +
// 2*alpha^2*(dii/3 + 4*alpha^2*qii/45)]. alpha = 0 returns 0 (Ewald
// summation disabled). |c|, |d|^2 and the quadrupole's Frobenius norm
// are rotation invariants, so the global (rotated) tensor gives the
// same result as the local-frame multipole; the global tensor is what
// the orchestrator already has in hand.
func PermanentSelf(global []mpole.Tensor10, alpha, electric float64) float64 {
	if alpha <= 0 {
		return 0
	}
	term := 2 * alpha * alpha
	fterm := -electric * alpha / sqrtPi
	var e float64
	for _, t := range global {
		cii := t.Charge() * t.Charge()
		d := t.Dipole()
		dii := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
		qii := t[mpole.T200]*t[mpole.T200] + t[mpole.T020]*t[mpole.T020] + t[mpole.T002]*t[mpole.T002] +
			2*(t[mpole.T110]*t[mpole.T110]+t[mpole.T101]*t[mpole.T101]+t[mpole.T011]*t[mpole.T011])
		e += fterm * (cii + term*(dii/3+2*term*qii/45))
	}
	return e
}

// InducedSelf computes the induced-dipole Ewald self-energy:
// -(2*electric*alpha^3/(3*sqrt(pi))) * sum_i mu_i . d_i, where mu_i is
// the converged induced dipole (the group-masked convention) and d_i
// the atom's permanent dipole.
func InducedSelf(global []mpole.Tensor10, induced mpole.InducedDipoles, alpha, electric float64) float64 {
	if alpha <= 0 {
		return 0
	}
	term := -2.0 / 3.0 * electric * alpha * alpha * alpha / sqrtPi
	var e float64
	for i, t := range global {
		d := t.Dipole()
		mu := induced[0][i].Mu
		e += term * (mu[0]*d[0] + mu[1]*d[1] + mu[2]*d[2])
	}
	return e
}

// InducedSelfTorque computes the per-atom torque contribution of the
// induced self-energy: tau_i = fterm * d_i x u_i, with u_i the average
// of the two induced dipole conventions and fterm = -2 times the
// induced self-energy prefactor.
func InducedSelfTorque(global []mpole.Tensor10, induced mpole.InducedDipoles, alpha, electric float64) []float64x3 {
	out := make([]float64x3, len(global))
	if alpha <= 0 {
		return out
	}
	term := -2.0 / 3.0 * electric * alpha * alpha * alpha / sqrtPi
	fterm := -2 * term
	for i, t := range global {
		d := t.Dipole()
		pair := induced[0][i]
		ux := 0.5 * (pair.Mu[0] + pair.MuP[0])
		uy := 0.5 * (pair.Mu[1] + pair.MuP[1])
		uz := 0.5 * (pair.Mu[2] + pair.MuP[2])
		out[i] = float64x3{
			fterm * (d[1]*uz - d[2]*uy),
			fterm * (d[2]*ux - d[0]*uz),
			fterm * (d[0]*uy - d[1]*ux),
		}
	}
	return out
}

// float64x3 is a bare 3-component scalar triple, used where the
// package's callers want a plain array rather than a vec3.Vector.
type float64x3 [3]float64
