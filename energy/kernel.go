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

// Package energy implements the energy and gradient assembly: the
// permanent self-energy, the reciprocal-space energy/gradient
// contraction from the phi tensor, and the real-space
// permanent-permanent and permanent-induced pair kernels.
package energy

import "github.com/rmera/pme/vec3"

// Quad is a dense, symmetric 3x3 quadrupole matrix, already divided by
// 3 (the energy contractions consume one-third of the stored
// magnitude), ready for the scalar-product identities below.
type Quad [3][3]float64

// FromTensorQuad divides a rotated quadrupole (as stored in a
// mpole.Tensor10, full magnitude) by 3.
func FromTensorQuad(q [3][3]float64) Quad {
	return Quad{
		{q[0][0] / 3, q[0][1] / 3, q[0][2] / 3},
		{q[1][0] / 3, q[1][1] / 3, q[1][2] / 3},
		{q[2][0] / 3, q[2][1] / 3, q[2][2] / 3},
	}
}

// Apply returns Q*v.
func (q Quad) Apply(v vec3.Vector) vec3.Vector {
	return vec3.New(
		q[0][0]*v.X+q[0][1]*v.Y+q[0][2]*v.Z,
		q[1][0]*v.X+q[1][1]*v.Y+q[1][2]*v.Z,
		q[2][0]*v.X+q[2][1]*v.Y+q[2][2]*v.Z,
	)
}

// frobenius returns sum_ab qi_ab*qk_ab.
func frobenius(qi, qk Quad) float64 {
	var s float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			s += qi[a][b] * qk[b][a]
		}
	}
	return s
}

// matMul returns qi*qk (matrix product, generally not symmetric).
func matMul(qi, qk Quad) Quad {
	var out Quad
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			var s float64
			for c := 0; c < 3; c++ {
				s += qi[a][c] * qk[c][b]
			}
			out[a][b] = s
		}
	}
	return out
}

// axial returns the axial vector of an antisymmetric 3x3 matrix a:
// (a[1][2], a[2][0], a[0][1]).
func axial(a Quad) vec3.Vector {
	return vec3.New(a[1][2], a[2][0], a[0][1])
}

// crossQuad returns the axial vector of [qi,qk] = qi*qk - qk*qi, the
// antisymmetric coupling between two quadrupoles that appears in both
// the permanent-permanent force and torque.
func crossQuad(qi, qk Quad) vec3.Vector {
	a := matMul(qi, qk)
	b := matMul(qk, qi)
	var d Quad
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d[i][j] = a[i][j] - b[i][j]
		}
	}
	return axial(d)
}

// pairScalars holds the scalar products and vector quantities shared by
// the permanent-permanent energy, force and torque contractions (the
// gl0..gl8 family) for one ordered pair (i, source k).
type pairScalars struct {
	r            vec3.Vector // displacement, source k minus field point i
	ci, ck       float64
	di, dk       vec3.Vector
	qi, qk       Quad
	qir, qkr     vec3.Vector
	qiqkr, qkqir vec3.Vector
	qixqk        vec3.Vector

	sc2, sc3, sc4, sc5, sc6, sc7, sc8, sc9, sc10 float64
	gl0, gl1, gl2, gl3, gl4, gl5, gl6, gl7, gl8  float64
}

func computePairScalars(r vec3.Vector, ci float64, di vec3.Vector, qi Quad, ck float64, dk vec3.Vector, qk Quad) pairScalars {
	p := pairScalars{r: r, ci: ci, ck: ck, di: di, dk: dk, qi: qi, qk: qk}
	p.qir = qi.Apply(r)
	p.qkr = qk.Apply(r)
	p.qiqkr = qi.Apply(p.qkr)
	p.qkqir = qk.Apply(p.qir)
	p.qixqk = crossQuad(qi, qk)

	p.sc2 = di.Dot(dk)
	p.sc3 = di.Dot(r)
	p.sc4 = dk.Dot(r)
	p.sc5 = p.qir.Dot(r)
	p.sc6 = p.qkr.Dot(r)
	p.sc7 = p.qir.Dot(dk)
	p.sc8 = p.qkr.Dot(di)
	p.sc9 = p.qir.Dot(p.qkr)
	p.sc10 = frobenius(qi, qk)

	p.gl0 = ci * ck
	p.gl1 = ck*p.sc3 - ci*p.sc4
	p.gl2 = ci*p.sc6 + ck*p.sc5 - p.sc3*p.sc4
	p.gl3 = p.sc3*p.sc6 - p.sc4*p.sc5
	p.gl4 = p.sc5 * p.sc6
	p.gl5 = -4 * p.sc9
	p.gl6 = p.sc2
	p.gl7 = 2 * (p.sc7 - p.sc8)
	p.gl8 = 2 * p.sc10
	return p
}
