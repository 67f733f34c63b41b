/*
 * induced.go, part of gochem's PME engine.
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

import (
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// Induced accumulates, into out, the real-space field at every
// asymmetric-unit atom due to the current induced dipole estimate
// (Mu, MuP) at every atom in every symmetry image within ff.Cutoff.
// Induced dipoles carry no charge or quadrupole moment, so only the
// dipole contraction and the scale3/scale5 Thole factors apply.
// dipoles holds one slice per image (dipoles[s][k] is atom k's current
// InducedPair in image s); nl follows the same convention as
// Permanent's. out is accumulated into, not reset.
func Induced(crystal *mpole.Crystal, atoms []*mpole.Atom, coords []*v3.Matrix, dipoles mpole.InducedDipoles, nl [][][]int, ff *mpole.ForceField, out mpole.Fields) error {
	n := len(atoms)
	if len(out) != n {
		return mpole.NewError("field: Induced output sized for %d atoms, got %d atoms", len(out), n)
	}
	cutoff2 := ff.Cutoff * ff.Cutoff
	full := fullRange(n)

	for i := 0; i < n; i++ {
		ai := atoms[i]
		posI := vec3.FromArray(coords[0].RowVec(i))

		for s := 0; s < crystal.NImages(); s++ {
			for _, k := range candidates(nl, s, i, full) {
				if s == 0 && k == i {
					continue
				}
				posK := vec3.FromArray(coords[s].RowVec(k))
				disp, r2 := crystal.Image(posK.Sub(posI))
				if r2 > cutoff2 || r2 == 0 {
					continue
				}
				r := disp.Norm()

				ak := atoms[k]
				pair := dipoles[s][k]

				bn := Bn(r, ff.EwaldAlpha, 2)

				pgamma := ai.Thole
				if ak.Thole < pgamma {
					pgamma = ak.Thole
				}
				scale3, scale5, _ := Damping(r, ai.Pdamp, ak.Pdamp, pgamma)
				r3, r5 := r*r*r, r*r*r*r*r
				drr3, drr5 := (1-scale3)/r3, 3*(1-scale5)/r5

				ewaldD := dipoleField(disp, pair.Mu, bn[1], bn[2])
				rationalD := dipoleField(disp, pair.Mu, drr3, drr5)
				ewaldP := dipoleField(disp, pair.MuP, bn[1], bn[2])
				rationalP := dipoleField(disp, pair.MuP, drr3, drr5)

				fieldD := ewaldD.Sub(rationalD)
				fieldP := ewaldP.Sub(rationalP)
				if s > 0 && k == i {
					fieldD = fieldD.Scale(0.5)
					fieldP = fieldP.Scale(0.5)
				}

				mD, mP := 1.0, 1.0
				if s == 0 {
					mD = dMask(ai, ak, ff)
					mP = pMask(ai, ak, ff)
				}

				d := fieldD.Scale(mD).Array()
				p := fieldP.Scale(mP).Array()
				out[i].E[0] += d[0]
				out[i].E[1] += d[1]
				out[i].E[2] += d[2]
				out[i].EP[0] += p[0]
				out[i].EP[1] += p[1]
				out[i].EP[2] += p[2]
			}
		}
	}
	return nil
}
