/*
 * rotator.go, part of gochem's PME engine.
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

// Package rotate implements the multipole frame rotation: it builds a
// right-handed orthonormal local frame from an atom's axis atoms and
// rotates its local-frame permanent multipole into the global
// Cartesian frame, applying the Z-THEN-X chirality correction. The
// contractions are explicit unrolled dot products rather than general
// matrix library calls, since this runs once per (image, atom) on
// every energy call.
package rotate

import (
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/vec3"
)

// RotMatrix is a 3x3 rotation matrix whose columns are the local frame's
// x, y, z axes expressed in the global frame: RotMatrix[row][col].
type RotMatrix [3][3]float64

// FromColumns builds a RotMatrix whose columns are x, y, z.
func FromColumns(x, y, z vec3.Vector) RotMatrix {
	return RotMatrix{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
}

// Apply rotates vector v (in the local frame) into the global frame.
func (r RotMatrix) Apply(v [3]float64) [3]float64 {
	return [3]float64{
		r[0][0]*v[0] + r[0][1]*v[1] + r[0][2]*v[2],
		r[1][0]*v[0] + r[1][1]*v[1] + r[1][2]*v[2],
		r[2][0]*v[0] + r[2][1]*v[1] + r[2][2]*v[2],
	}
}

// RotateQuad rotates a 3x3 quadrupole Q as R*Q*R^T.
func (r RotMatrix) RotateQuad(q [3][3]float64) [3][3]float64 {
	// RQ = R*Q
	var rq [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += r[i][k] * q[k][j]
			}
			rq[i][j] = sum
		}
	}
	// out = RQ*R^T
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += rq[i][k] * r[j][k]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Orthonormal reports whether R^T*R == I to within tol, and det(R) == +1
// to within tol.
func (r RotMatrix) Orthonormal(tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += r[k][i] * r[k][j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			if abs(sum-want) > tol {
				return false
			}
		}
	}
	return abs(r.det()-1) <= tol
}

func (r RotMatrix) det() float64 {
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Frame builds the orthonormal local frame (x, y, z, each a unit
// vector in the global frame) for an atom at position self with axis
// atoms at the given positions. len(axis) must match what style
// expects: 0 for AxisNone, 2 for AxisZThenX and AxisBisector, 3 for
// AxisZThenBisector and AxisThreefold.
func Frame(self vec3.Vector, axis []vec3.Vector, style mpole.AxisType) (x, y, z vec3.Vector) {
	switch style {
	case mpole.AxisZThenX:
		z = axis[0].Sub(self).Unit()
		xr := axis[1].Sub(self)
		x = xr.Sub(z.Scale(xr.Dot(z))).Unit()
		y = z.Cross(x)
	case mpole.AxisBisector:
		u := axis[0].Sub(self).Unit()
		v := axis[1].Sub(self).Unit()
		z = u.Add(v).Unit()
		vr := axis[1].Sub(self)
		x = vr.Sub(z.Scale(vr.Dot(z))).Unit()
		y = z.Cross(x)
	case mpole.AxisZThenBisector:
		z = axis[0].Sub(self).Unit()
		u := axis[1].Sub(self).Unit()
		v := axis[2].Sub(self).Unit()
		bi := u.Add(v).Unit()
		x = bi.Sub(z.Scale(bi.Dot(z))).Unit()
		y = z.Cross(x)
	case mpole.AxisThreefold:
		var w vec3.Vector
		for _, a := range axis {
			w = w.Add(a.Sub(self).Unit())
		}
		z = w.Unit()
		// x is built the same way Z-THEN-X builds it, using the first
		// axis atom as the secondary reference.
		xr := axis[0].Sub(self)
		x = xr.Sub(z.Scale(xr.Dot(z))).Unit()
		y = z.Cross(x)
	default: // AxisNone
		return vec3.Vector{}, vec3.Vector{}, vec3.Vector{}
	}
	return x, y, z
}

// Chirality returns the signed scalar triple product
// (self - axis2) . [(axis0 - axis2) x (axis1 - axis2)], used by the
// Z-THEN-X chirality correction. Only meaningful when at least 3 axis
// atoms are known.
func Chirality(self, axis0, axis1, axis2 vec3.Vector) float64 {
	a := self.Sub(axis2)
	b := axis0.Sub(axis2)
	c := axis1.Sub(axis2)
	return a.Dot(b.Cross(c))
}

// Rotate produces the global-frame Tensor10 for an atom given its local
// multipole, frame style, the positions of its axis atoms (len matching
// style, as in Frame), its own position, and -- for the Z-THEN-X
// chirality check -- the position of a third reference atom when
// available (nil otherwise, in which case no chirality flip is
// attempted even if style is AxisZThenX). A negative triple product
// flips the local dipole's y component and the xy/yz quadrupole
// entries before rotating. With fewer than 2 axis atoms only the
// charge survives; dipole and quadrupole are zeroed.
func Rotate(local mpole.LocalMultipole, style mpole.AxisType, self vec3.Vector, axis []vec3.Vector, chiralityRef *vec3.Vector) mpole.Tensor10 {
	var out mpole.Tensor10
	out[mpole.T000] = local.Charge

	if style == mpole.AxisNone || len(axis) < 2 {
		return out
	}

	d := local.Dipole
	q := local.Quadrupole

	if style == mpole.AxisZThenX && len(axis) >= 2 && chiralityRef != nil {
		if Chirality(self, axis[0], axis[1], *chiralityRef) < 0 {
			d[1] = -d[1]
			q[0][1], q[1][0] = -q[0][1], -q[1][0]
			q[1][2], q[2][1] = -q[1][2], -q[2][1]
		}
	}

	x, y, z := Frame(self, axis, style)
	r := FromColumns(x, y, z)

	gd := r.Apply(d)
	gq := r.RotateQuad(q)

	out[mpole.T100], out[mpole.T010], out[mpole.T001] = gd[0], gd[1], gd[2]
	out[mpole.T200] = gq[0][0]
	out[mpole.T020] = gq[1][1]
	out[mpole.T002] = gq[2][2]
	out[mpole.T110] = gq[0][1]
	out[mpole.T101] = gq[0][2]
	out[mpole.T011] = gq[1][2]
	return out
}
