/*
 * kernel.go, part of gochem's PME engine.
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

import "github.com/rmera/pme/vec3"

// applyQuad returns Q*v for a symmetric 3x3 quadrupole Q.
func applyQuad(q [3][3]float64, v vec3.Vector) vec3.Vector {
	return vec3.New(
		q[0][0]*v.X+q[0][1]*v.Y+q[0][2]*v.Z,
		q[1][0]*v.X+q[1][1]*v.Y+q[1][2]*v.Z,
		q[2][0]*v.X+q[2][1]*v.Y+q[2][2]*v.Z,
	)
}

// multipoleField contracts a source multipole (charge ck, dipole dk,
// traceless quadrupole qk) against displacement vector rvec (pointing
// from the field point toward the source, |rvec| = r) using
// coefficient triple (c1, c2, c3) in place of bn1, bn2, bn3:
//
//	qr  = qk * rvec
//	rqr = rvec . qr
//	E   = -c1*ck*rvec - c1*dk + c2*(dk.rvec)*rvec + (2/3)*c2*qr - (1/3)*c3*rqr*rvec
//
// This is E = -grad(phi) for the point-multipole potential
// phi = q*T - mu.T_a + (1/3)*Theta:T_ab, with T the damped Coulomb
// tensor built from the same bn ladder. permanent.go calls it with
// (bn1,bn2,bn3) for the Ewald-damped field and with (drr3,drr5,drr7)
// for the rational counterpart that removes the already-masked part;
// the two share this contraction because with alpha = 0 the bn1, bn2,
// bn3 entries of Bn(r,0,3) reduce to exactly 1/r^3, 3/r^5, 15/r^7, the
// same prefactors drr3,drr5,drr7 carry.
func multipoleField(rvec vec3.Vector, ck float64, dk [3]float64, qk [3][3]float64, c1, c2, c3 float64) vec3.Vector {
	d := vec3.FromArray(dk)
	qr := applyQuad(qk, rvec)
	rqr := rvec.Dot(qr)
	e := rvec.Scale(-c1 * ck)
	e = e.Sub(d.Scale(c1))
	e = e.Add(rvec.Scale(c2 * d.Dot(rvec)))
	e = e.Add(qr.Scale(2.0 / 3.0 * c2))
	e = e.Sub(rvec.Scale(c3 * rqr / 3.0))
	return e
}

// dipoleField is multipoleField specialized to a pure dipole source (no
// charge, no quadrupole), as used by the induced dipole field
// evaluator: E = c2*(mu.rvec)*rvec - c1*mu.
func dipoleField(rvec vec3.Vector, mu [3]float64, c1, c2 float64) vec3.Vector {
	m := vec3.FromArray(mu)
	return rvec.Scale(c2 * m.Dot(rvec)).Sub(m.Scale(c1))
}
