/*
 * pair.go, part of gochem's PME engine.
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

import (
	"github.com/rmera/pme/field"
	"github.com/rmera/pme/vec3"
)

// PairOutcome is one ordered pair's contribution to the real-space
// permanent-permanent energy, the energy gradient at the field-point
// atom (the source atom's gradient is the negation; forces are minus
// the gradient), and the torque on each of the two atoms.
type PairOutcome struct {
	Energy    float64
	GradOnI   vec3.Vector // gradient on the source atom is -GradOnI
	TorqueOnI vec3.Vector
	TorqueOnK vec3.Vector
}

// PermanentPair evaluates the real-space permanent-permanent term for
// one pair: field point i carries (ci, di, qi), source k carries
// (ck, dk, qk), and r points from i to k. scale is the covalent mask
// (m12..m15) for this pair (1 if unmasked); selfScale is 0.5 for a
// symmetry self-image pair (i==k, s>0) and 1 otherwise.
func PermanentPair(r vec3.Vector, ci float64, di vec3.Vector, qi Quad, ck float64, dk vec3.Vector, qk Quad, alpha, scale, selfScale float64) PairOutcome {
	rr := r.Norm()
	bn := field.Bn(rr, alpha, 5)
	rrn := field.Bn(rr, 0, 5) // rr1, rr3, rr5, rr7, rr9, rr11: the undamped ladder

	p := computePairScalars(r, ci, di, qi, ck, dk, qk)

	scale1 := 1 - scale
	ereal := p.gl0*bn[0] + (p.gl1+p.gl6)*bn[1] + (p.gl2+p.gl7+p.gl8)*bn[2] + (p.gl3+p.gl5)*bn[3] + p.gl4*bn[4]
	efix := scale1 * (p.gl0*rrn[0] + (p.gl1+p.gl6)*rrn[1] + (p.gl2+p.gl7+p.gl8)*rrn[2] + (p.gl3+p.gl5)*rrn[3] + p.gl4*rrn[4])
	e := selfScale * (ereal - efix)

	grad, ttmI, ttmK := permanentGradTorque(p, bn[1], bn[2], bn[3], bn[4], bn[5])
	if scale1 != 0 {
		gradR, ttmIR, ttmKR := permanentGradTorque(p, rrn[1], rrn[2], rrn[3], rrn[4], rrn[5])
		grad = grad.Sub(gradR.Scale(scale1))
		ttmI = ttmI.Sub(ttmIR.Scale(scale1))
		ttmK = ttmK.Sub(ttmKR.Scale(scale1))
	}

	return PairOutcome{
		Energy:    e,
		GradOnI:   grad.Scale(selfScale),
		TorqueOnI: ttmI.Scale(selfScale),
		TorqueOnK: ttmK.Scale(selfScale),
	}
}

// permanentGradTorque evaluates the gf1..gf7 gradient contraction and
// the dipole/quadrupole torque contraction at one damping order (either
// the bn1..bn5 Ewald ladder or the rr3..rr11 undamped ladder, selected
// by the caller).
func permanentGradTorque(p pairScalars, c1, c2, c3, c4, c5 float64) (grad, ttmI, ttmK vec3.Vector) {
	r := p.r
	gf1 := c1*p.gl0 + c2*(p.gl1+p.gl6) + c3*(p.gl2+p.gl7+p.gl8) + c4*(p.gl3+p.gl5) + c5*p.gl4
	gf2 := -p.ck*c1 + p.sc4*c2 - p.sc6*c3
	gf3 := p.ci*c1 + p.sc3*c2 + p.sc5*c3
	gf4 := 2 * c2
	gf5 := 2 * (-p.ck*c2 + p.sc4*c3 - p.sc6*c4)
	gf6 := 2 * (-p.ci*c2 - p.sc3*c3 - p.sc5*c4)
	gf7 := 4 * c3

	qidk := p.qi.Apply(p.dk)
	qkdi := p.qk.Apply(p.di)

	grad = r.Scale(gf1).
		Add(p.di.Scale(gf2)).
		Add(p.dk.Scale(gf3)).
		Add(qkdi.Sub(qidk).Scale(gf4)).
		Add(p.qir.Scale(gf5)).
		Add(p.qkr.Scale(gf6)).
		Add(p.qiqkr.Add(p.qkqir).Scale(gf7))

	dixdk := p.di.Cross(p.dk)
	dixr := p.di.Cross(r)
	dkxr := p.dk.Cross(r)
	dixqkr := p.di.Cross(p.qkr)
	dkxqir := p.dk.Cross(p.qir)
	rxqir := r.Cross(p.qir)
	rxqkr := r.Cross(p.qkr)
	rxqikr := r.Cross(p.qiqkr)
	rxqkir := r.Cross(p.qkqir)
	rxqidk := r.Cross(qidk)
	rxqkdi := r.Cross(qkdi)
	qkrxqir := p.qkr.Cross(p.qir)

	ttmI = dixdk.Scale(-c1).
		Add(dixr.Scale(gf2)).
		Add(dixqkr.Add(dkxqir).Add(rxqidk).Sub(p.qixqk.Scale(2)).Scale(gf4)).
		Sub(rxqir.Scale(gf5)).
		Sub(rxqikr.Add(qkrxqir).Scale(gf7))

	ttmK = dixdk.Scale(c1).
		Add(dkxr.Scale(gf3)).
		Sub(dixqkr.Add(dkxqir).Add(rxqkdi).Sub(p.qixqk.Scale(2)).Scale(gf4)).
		Sub(rxqkr.Scale(gf6)).
		Sub(rxqkir.Sub(qkrxqir).Scale(gf7))

	return grad, ttmI, ttmK
}
