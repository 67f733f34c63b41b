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

package mpole

import "math"

// EwaldCoefficient returns the smallest Gaussian screening width alpha
// such that erfc(alpha*cutoff)/cutoff < precision, found by bisection.
// A larger alpha pushes more of the Coulomb sum into reciprocal space;
// the returned value is the conventional "just small enough" choice for
// the given real-space cutoff. cutoff and precision must be positive.
func EwaldCoefficient(cutoff, precision float64) float64 {
	if cutoff <= 0 || precision <= 0 {
		return 0
	}
	ratio := precision
	if ratio > 1 {
		ratio = 1
	}
	x := 0.5
	for i := 0; i < 50 && math.Erfc(x)/cutoff >= ratio; i++ {
		x *= 2
	}
	lo, hi := 0.0, x
	for i := 0; i < 64; i++ {
		mid := 0.5 * (lo + hi)
		if math.Erfc(mid)/cutoff >= ratio {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi / cutoff
}
