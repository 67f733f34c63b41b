/*
 * projector.go, part of gochem's PME engine.
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

// Package torque converts the per-atom torque produced by the energy
// assembly into forces on the 0-3 atoms that define that atom's local
// multipole frame, switching on the same frame tag the rotator uses.
package torque

import (
	"math"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/vec3"
)

// Projection holds the forces the torque on an atom distributes onto
// its axis atoms, plus the reaction force on the atom itself.
type Projection struct {
	AxisForce []vec3.Vector // one entry per axis atom, same order as the Axis slice
	SelfForce vec3.Vector   // reaction force on the atom bearing the torque
}

// Project distributes torque (about atom i, at position self) onto the
// atoms at axisPos (in the order of mpole.Atom.Axis). Frames with
// fewer than 2 axis atoms (AxisNone, or a malformed frame) contribute
// no force -- an ion has nothing to torque against.
func Project(self vec3.Vector, axisPos []vec3.Vector, style mpole.AxisType, trq vec3.Vector) Projection {
	if style == mpole.AxisNone || len(axisPos) < 2 {
		return Projection{AxisForce: make([]vec3.Vector, len(axisPos))}
	}
	switch style {
	case mpole.AxisZThenX:
		return zThenX(self, axisPos, trq, 1.0)
	case mpole.AxisBisector:
		return zThenX(self, axisPos, trq, 0.5)
	case mpole.AxisZThenBisector:
		return zThenBisector(self, axisPos, trq)
	case mpole.AxisThreefold:
		return threefold(self, axisPos, trq)
	default:
		return Projection{AxisForce: make([]vec3.Vector, len(axisPos))}
	}
}

// dir returns the unit vector and length from self to p.
func dir(self, p vec3.Vector) (vec3.Vector, float64) {
	d := p.Sub(self)
	n := d.Norm()
	if n == 0 {
		return vec3.Zero, 0
	}
	return d.Scale(1 / n), n
}

// zThenX resolves the torque on a Z-THEN-X frame into forces on the two
// axis atoms, with wFactor=1; the BISECTOR variant reuses it with
// wFactor=0.5, since there both axis atoms define the bisected z-axis
// symmetrically and each carries half of the out-of-uv-plane (w)
// contribution.
func zThenX(self vec3.Vector, axisPos []vec3.Vector, trq vec3.Vector, wFactor float64) Projection {
	u, usiz := dir(self, axisPos[0])
	v, vsiz := dir(self, axisPos[1])
	w := u.Cross(v)
	uvsin := w.Norm()
	if uvsin == 0 {
		return Projection{AxisForce: make([]vec3.Vector, 2)}
	}
	w = w.Scale(1 / uvsin)

	dphidu := -trq.Dot(u)
	dphidv := -trq.Dot(v)
	dphidw := -trq.Dot(w)

	fa := u.Cross(v).Scale(dphidv / (usiz * uvsin)).Add(u.Cross(w).Scale(wFactor * dphidw / usiz))
	fc := v.Cross(u).Scale(dphidu / (vsiz * uvsin)).Add(v.Cross(w).Scale(wFactor * dphidw / vsiz))
	fb := fa.Add(fc).Neg()

	return Projection{AxisForce: []vec3.Vector{fa, fc}, SelfForce: fb}
}

// zThenBisector resolves the torque on a Z-THEN-BISECTOR frame:
// axis[0] is the z-defining atom, axis[1] and axis[2] together define
// the bisector that plays the role of Z-THEN-X's second axis. The
// auxiliary frame r = unit(v+w), s = u x r resolves the z atom's
// contribution; the bisector atoms each carry half of the
// s-contribution plus their own projection against u.
func zThenBisector(self vec3.Vector, axisPos []vec3.Vector, trq vec3.Vector) Projection {
	u, usiz := dir(self, axisPos[0])
	v, vsiz := dir(self, axisPos[1])
	w, wsiz := dir(self, axisPos[2])

	r := v.Add(w)
	rn := r.Norm()
	if rn == 0 {
		return Projection{AxisForce: make([]vec3.Vector, 3)}
	}
	r = r.Scale(1 / rn)
	s := u.Cross(r)
	sn := s.Norm()
	if sn == 0 {
		return Projection{AxisForce: make([]vec3.Vector, 3)}
	}
	s = s.Scale(1 / sn)

	urSin := u.Cross(r).Norm()
	if urSin == 0 {
		return Projection{AxisForce: make([]vec3.Vector, 3)}
	}

	dphidu := -trq.Dot(u)
	dphidr := -trq.Dot(r)
	dphids := -trq.Dot(s)

	fa := u.Cross(r).Scale(dphidr / (usiz * urSin)).Add(u.Cross(s).Scale(dphids / usiz))

	vuSin := v.Cross(u).Norm()
	wuSin := w.Cross(u).Norm()
	var fc, fd vec3.Vector
	if vuSin != 0 {
		fc = v.Cross(u).Scale(dphidu / (vsiz * vuSin)).Add(v.Cross(s).Scale(0.5 * dphids / vsiz))
	}
	if wuSin != 0 {
		fd = w.Cross(u).Scale(dphidu / (wsiz * wuSin)).Add(w.Cross(s).Scale(0.5 * dphids / wsiz))
	}

	fb := fa.Add(fc).Add(fd).Neg()
	return Projection{AxisForce: []vec3.Vector{fa, fc, fd}, SelfForce: fb}
}

// threefold distributes the torque about the common z (=w) direction
// equally among the three axis atoms: a threefold-symmetric frame has
// no unique in-plane (x,y) decomposition among its three equivalent
// axis atoms.
func threefold(self vec3.Vector, axisPos []vec3.Vector, trq vec3.Vector) Projection {
	n := len(axisPos)
	dirs := make([]vec3.Vector, n)
	sizes := make([]float64, n)
	var wsum vec3.Vector
	for i, p := range axisPos {
		d, s := dir(self, p)
		dirs[i], sizes[i] = d, s
		wsum = wsum.Add(d)
	}
	w := wsum.Unit()
	dphidw := -trq.Dot(w)

	forces := make([]vec3.Vector, n)
	var total vec3.Vector
	for i, u := range dirs {
		cr := u.Cross(w)
		if cr.Norm() == 0 {
			continue
		}
		f := cr.Scale(dphidw / (float64(n) * sizes[i]))
		forces[i] = f
		total = total.Add(f)
	}
	return Projection{AxisForce: forces, SelfForce: total.Neg()}
}

// Epsilon is a small tolerance helper exposed for tests comparing
// projected-force sums against zero.
func Epsilon(v vec3.Vector) float64 { return math.Sqrt(v.Dot(v)) }
