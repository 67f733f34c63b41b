/*
 * thole.go, part of gochem's PME engine.
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

package field

import "math"

// Damping computes the Thole dipole-dipole screening scale factors
// scale3, scale5 and scale7 for a pair separated by r, with combined
// damping width pdampI*pdampK and Thole parameter pgamma = min of the
// two sites' values:
//
//	damp = -pgamma * (r / (pdampI*pdampK))^3
//	if damp > -50: expdamp = exp(damp); scale3 = 1-expdamp;
//	               scale5 = 1-expdamp*(1-damp); scale7 = 1-expdamp*(1-damp+0.6*damp^2)
//	else: scale3 = scale5 = scale7 = 1
//
// pdampI or pdampK equal to 0 (an undamped site) also yields no
// damping, since the pdampI*pdampK product is then 0 and r/0 would
// otherwise be used to report a degenerate damp of -Inf.
func Damping(r, pdampI, pdampK, pgamma float64) (scale3, scale5, scale7 float64) {
	if pdampI == 0 || pdampK == 0 {
		return 1, 1, 1
	}
	ratio := r / (pdampI * pdampK)
	damp := -pgamma * ratio * ratio * ratio
	if damp <= -50 {
		return 1, 1, 1
	}
	expdamp := math.Exp(damp)
	scale3 = 1 - expdamp
	scale5 = 1 - expdamp*(1-damp)
	scale7 = 1 - expdamp*(1-damp+0.6*damp*damp)
	return scale3, scale5, scale7
}
