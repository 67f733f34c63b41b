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

package field

import "github.com/rmera/pme/mpole"

// The field evaluators carry two independent exclusion conventions
// (the group d-mask and the covalent p-mask), distinct from the
// m12..m15 covalent mask the permanent-permanent energy term applies.
// Both apply only within the asymmetric unit.

// dMask returns the d-masking factor atom i applies to atom k's
// contribution to the group-masked field: d11 if k is in i's ip11
// group, 1 (no exclusion) otherwise.
func dMask(i, k *mpole.Atom, ff *mpole.ForceField) float64 {
	if i.InIP11(k.Index) {
		return ff.D11
	}
	return 1
}

// pMask returns the p-masking factor atom i applies to atom k's
// contribution to the polarization-masked field: p12 for a 1-2
// partner, p13 for a 1-3 partner, 0.5 for a 1-4 partner that also
// shares i's ip11 group, 1 otherwise.
func pMask(i, k *mpole.Atom, ff *mpole.ForceField) float64 {
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
