/*
 * mask.go, part of gochem's PME engine.
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

import "github.com/rmera/pme/mpole"

// CovalentScale returns the m12..m15 scale factor atom i applies to
// atom k's permanent-permanent pair energy: m12 for a 1-2 partner, m13
// for 1-3, m14 for 1-4, m15 for 1-5, 1 (unmasked) otherwise. The pair
// kernel uses this scalar only on the undamped ladder, subtracting
// efix = (1-scale)*undamped from the unscaled Ewald-damped ereal.
func CovalentScale(i, k *mpole.Atom, ff *mpole.ForceField) float64 {
	switch {
	case i.In12(k.Index):
		return ff.M12
	case i.In13(k.Index):
		return ff.M13
	case i.In14(k.Index):
		return ff.M14
	case i.In15(k.Index):
		return ff.M15
	default:
		return 1
	}
}

// pairPMask is the polarization-energy group-exclusion factor for one
// asymmetric-unit pair: p12 for a 1-2 partner, p13 for 1-3, 0.5 for a
// 1-4 partner that also shares i's ip11 group, 1 otherwise. It mirrors
// the p-mask the field evaluators apply, re-derived here because the
// group-exclusion factor is the energy loop's state to decide, not
// something to reach into the field package for.
func pairPMask(i, k *mpole.Atom, ff *mpole.ForceField) float64 {
	switch {
	case i.In12(k.Index):
		return ff.P12
	case i.In13(k.Index):
		return ff.P13
	case i.In14(k.Index) && i.InIP11(k.Index):
		return 0.5
	default:
		return 1
	}
}
