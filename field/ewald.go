/*
 * ewald.go, part of gochem's PME engine.
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

// Package field implements the real-space field evaluators: the Ewald
// damping coefficients, Thole dipole-dipole screening, and the
// permanent/induced pair kernels that seed and iterate the induced
// dipoles.
package field

import "math"

const twoOverSqrtPi = 1.1283791670955126 // 2/sqrt(pi)

// Bn computes the Ewald real-space damping coefficients bn[0..order]
// for separation r and damping parameter alpha (Smith 1994), via
//
//	bn0        = erfc(alpha*r)/r
//	a0         = alpha * (2/sqrt(pi))
//	a_{k+1}    = 2*alpha^2*a_k
//	bn_{k+1}   = ((2k+1)*bn_k + a_k*exp(-alpha^2*r^2)) / r^2
//
// order must be >= 0; Bn panics if r <= 0, since the real-space kernel
// never evaluates a self pair.
func Bn(r, alpha float64, order int) []float64 {
	if r <= 0 {
		panic("field: Bn called with non-positive separation")
	}
	bn := make([]float64, order+1)
	bn[0] = math.Erfc(alpha*r) / r
	if order == 0 {
		return bn
	}
	r2 := r * r
	expTerm := math.Exp(-alpha * alpha * r2)
	a := alpha * twoOverSqrtPi
	for k := 0; k < order; k++ {
		bn[k+1] = (float64(2*k+1)*bn[k] + a*expTerm) / r2
		a *= 2 * alpha * alpha
	}
	return bn
}
