/*
 * permanent.go, part of gochem's PME engine.
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

// candidates returns the source-atom indices to screen for field point
// i against image s: the caller-built neighbor list entry when one is
// available, or every atom otherwise. full is a reusable [0,n) slice
// the caller allocates once.
func candidates(nl [][][]int, s, i int, full []int) []int {
	if nl == nil {
		return full
	}
	return nl[s][i]
}

func fullRange(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// Permanent accumulates, into out (group-masked) and outCR
// (polarization-masked), the real-space permanent multipole field at
// every asymmetric-unit atom due to every atom in every symmetry image
// within ff.Cutoff. atoms holds the asymmetric unit's static
// parameters (length n); coords holds one *v3.Matrix per image
// (coords[0] is the asymmetric unit itself); global holds the rotated
// multipole for every image/atom pair; nl, when non-nil, is the
// caller-built neighbor list indexed [image][atom] and holding every
// neighbor of the atom (the cutoff is still checked here). out and
// outCR must already be sized for n atoms and are accumulated into,
// not reset. The loop is single-threaded; the worker-pool fan-out
// lives one layer up, in the engine package.
func Permanent(crystal *mpole.Crystal, atoms []*mpole.Atom, coords []*v3.Matrix, global mpole.GlobalMultipoles, nl [][][]int, ff *mpole.ForceField, out, outCR mpole.Fields) error {
	n := len(atoms)
	if len(out) != n || len(outCR) != n {
		return mpole.NewError("field: Permanent output sized for %d atoms, got %d atoms", len(out), n)
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
				ck := global[s][k]

				bn := Bn(r, ff.EwaldAlpha, 3)
				ewald := multipoleField(disp, ck.Charge(), ck.Dipole(), ck.Quad(), bn[1], bn[2], bn[3])

				pgamma := ai.Thole
				if ak.Thole < pgamma {
					pgamma = ak.Thole
				}
				scale3, scale5, scale7 := Damping(r, ai.Pdamp, ak.Pdamp, pgamma)
				r3, r5, r7 := r*r*r, r*r*r*r*r, r*r*r*r*r*r*r
				drr3, drr5, drr7 := (1-scale3)/r3, 3*(1-scale5)/r5, 15*(1-scale7)/r7
				rational := multipoleField(disp, ck.Charge(), ck.Dipole(), ck.Quad(), drr3, drr5, drr7)

				pair := ewald.Sub(rational)
				if s > 0 && k == i {
					pair = pair.Scale(0.5)
				}

				mD, mP := 1.0, 1.0
				if s == 0 {
					mD = dMask(ai, ak, ff)
					mP = pMask(ai, ak, ff)
				}

				fD := pair.Scale(mD).Array()
				fP := pair.Scale(mP).Array()
				out[i].E[0] += fD[0]
				out[i].E[1] += fD[1]
				out[i].E[2] += fD[2]
				outCR[i].E[0] += fP[0]
				outCR[i].E[1] += fP[1]
				outCR[i].E[2] += fP[2]
			}
		}
	}
	return nil
}
