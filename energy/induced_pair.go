/*
 * induced_pair.go, part of gochem's PME engine.
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
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/vec3"
)

// InducedOutcome is one ordered pair's contribution to the real-space
// permanent-induced polarization energy, the energy gradient at the
// field-point atom (the source atom's is the negation), and the torque
// on each of the two atoms.
type InducedOutcome struct {
	Energy    float64
	GradOnI   vec3.Vector
	TorqueOnI vec3.Vector
	TorqueOnK vec3.Vector
}

// PermanentInducedPair evaluates the real-space permanent-induced term
// for one pair: field point i (permanent ci,di,qi and induced ui,pi),
// source k (permanent ck,dk,qk and induced uk,pk), separated by r
// (pointing from i to k). Both induced-dipole conventions enter
// symmetrically with a factor of one half. ai, ak select the Thole
// damping widths (a per-atom-pair physical property, independent of
// which symmetry image k is in); scalep is the group-exclusion factor
// of the polarization mask, which the caller sets to 1 for any pair
// spanning a symmetry image (the p-mask is only meaningful within the
// asymmetric unit). selfScale is the symmetry self-image factor. The
// Thole-damped exclusion enters only through the psc scale factors on
// the undamped ladder; the separate unscreened force/torque correction
// branch of the full damped-gradient algebra is not carried.
func PermanentInducedPair(r vec3.Vector, ci float64, di vec3.Vector, qi Quad, ui, pi vec3.Vector,
	ck float64, dk vec3.Vector, qk Quad, uk, pk vec3.Vector,
	ai, ak *mpole.Atom, alpha, scalep, selfScale float64) InducedOutcome {

	rr := r.Norm()
	bn := field.Bn(rr, alpha, 4)
	rrn := field.Bn(rr, 0, 3) // rr1, rr3, rr5, rr7

	scale3, scale5, scale7 := field.Damping(rr, ai.Pdamp, ak.Pdamp, minThole(ai.Thole, ak.Thole))
	psc3, psc5, psc7 := 1-scale3*scalep, 1-scale5*scalep, 1-scale7*scalep

	qir, qkr := qi.Apply(r), qk.Apply(r)
	sc3, sc4 := di.Dot(r), dk.Dot(r)
	sc5, sc6 := qir.Dot(r), qkr.Dot(r)

	sci1 := ui.Dot(dk) + di.Dot(uk)
	sci3, sci4 := ui.Dot(r), uk.Dot(r)
	sci7, sci8 := qir.Dot(uk), qkr.Dot(ui)
	scip1 := pi.Dot(dk) + di.Dot(pk)
	scip2 := ui.Dot(pk) + pi.Dot(uk)
	scip3, scip4 := pi.Dot(r), pk.Dot(r)
	scip7, scip8 := qir.Dot(pk), qkr.Dot(pi)

	gli1 := ck*sci3 - ci*sci4
	gli2 := -sc3*sci4 - sci3*sc4
	gli3 := sci3*sc6 - sci4*sc5
	gli6 := sci1
	gli7 := 2 * (sci7 - sci8)
	glip1 := ck*scip3 - ci*scip4
	glip2 := -sc3*scip4 - scip3*sc4
	glip3 := scip3*sc6 - scip4*sc5
	glip6 := scip1
	glip7 := 2 * (scip7 - scip8)

	bn1, bn2, bn3, bn4 := bn[1], bn[2], bn[3], bn[4]
	rr3, rr5, rr7 := rrn[1], rrn[2], rrn[3]

	ereal := (gli1+gli6)*bn1 + (gli2+gli7)*bn2 + gli3*bn3
	efix := (gli1+gli6)*rr3*psc3 + (gli2+gli7)*rr5*psc5 + gli3*rr7*psc7
	e := selfScale * 0.5 * (ereal - efix)

	gfi1 := 0.5*bn2*(gli1+glip1+gli6+glip6) + 0.5*bn2*scip2 + 0.5*bn3*(gli2+glip2+gli7+glip7) - 0.5*bn3*(sci3*scip4+scip3*sci4) + 0.5*bn4*(gli3+glip3)
	gfi2 := -ck*bn1 + sc4*bn2 - sc6*bn3
	gfi3 := ci*bn1 + sc3*bn2 + sc5*bn3
	gfi4 := 2 * bn2
	gfi5 := bn3 * (sci4 + scip4)
	gfi6 := -bn3 * (sci3 + scip3)

	qiuk, qiukp := qi.Apply(uk), qi.Apply(pk)
	qkui, qkuip := qk.Apply(ui), qk.Apply(pi)

	grad := r.Scale(gfi1).
		Add(ui.Add(pi).Scale(gfi2 * 0.5)).
		Add(pi.Scale(sci4 * 0.5 * bn2)).Add(ui.Scale(scip4 * 0.5 * bn2)).
		Add(uk.Add(pk).Scale(gfi3 * 0.5)).
		Add(pk.Scale(sci3 * 0.5 * bn2)).Add(uk.Scale(scip3 * 0.5 * bn2)).
		Add(di.Scale((sci4 + scip4) * 0.5 * bn2)).
		Add(dk.Scale((sci3 + scip3) * 0.5 * bn2)).
		Add(qkui.Add(qkuip).Sub(qiuk).Sub(qiukp).Scale(gfi4 * 0.5)).
		Add(qir.Scale(gfi5)).
		Add(qkr.Scale(gfi6))

	dixuk := di.Cross(uk)
	dixukp := di.Cross(pk)
	dixr := di.Cross(r)
	rxqir := r.Cross(qir)
	ukxqir := uk.Cross(qir)
	rxqiuk := r.Cross(qiuk)
	ukxqirp := pk.Cross(qir)
	rxqiukp := r.Cross(qiukp)

	gti2 := 0.5 * bn2 * (sci4 + scip4)
	gti5 := gfi5

	ttmI := dixuk.Add(dixukp).Scale(-0.5 * bn1).
		Add(dixr.Scale(gti2)).
		Sub(rxqir.Scale(gti5)).
		Add(ukxqir.Add(rxqiuk).Add(ukxqirp).Add(rxqiukp).Scale(0.5 * gfi4))

	dkxui := dk.Cross(ui)
	dkxuip := dk.Cross(pi)
	dkxr := dk.Cross(r)
	rxqkr := r.Cross(qkr)
	uixqkr := ui.Cross(qkr)
	rxqkui := r.Cross(qkui)
	uixqkrp := pi.Cross(qkr)
	rxqkuip := r.Cross(qkuip)

	gti3 := 0.5 * bn2 * (sci3 + scip3)
	gti6 := gfi6

	ttmK := dkxui.Add(dkxuip).Scale(-0.5 * bn1).
		Add(dkxr.Scale(gti3)).
		Sub(rxqkr.Scale(gti6)).
		Sub(uixqkr.Add(rxqkui).Add(uixqkrp).Add(rxqkuip).Scale(0.5 * gfi4))

	return InducedOutcome{
		Energy:    e,
		GradOnI:   grad.Scale(selfScale),
		TorqueOnI: ttmI.Scale(selfScale),
		TorqueOnK: ttmK.Scale(selfScale),
	}
}

// DirectGradCorrection converts the mutual-polarization gradient of
// PermanentInducedPair to the direct-polarization gradient: under
// DIRECT polarization the induced dipoles never couple to each other,
// so the induced-induced piece of the pair gradient would double-count
// and must be removed. The Ewald-screened mutual term is subtracted
// and its Thole-complement undamped counterpart added back. The
// returned vector is a correction to GradOnI (the source atom's is the
// negation); the pair energy and torques are unaffected.
func DirectGradCorrection(r vec3.Vector, ui, pi, uk, pk vec3.Vector, ai, ak *mpole.Atom, alpha, selfScale float64) vec3.Vector {
	rr := r.Norm()
	bn := field.Bn(rr, alpha, 3)
	rrn := field.Bn(rr, 0, 3)
	bn2, bn3 := bn[2], bn[3]
	rr5, rr7 := rrn[2], rrn[3]

	scale3, scale5, _ := field.Damping(rr, ai.Pdamp, ak.Pdamp, minThole(ai.Thole, ak.Thole))
	usc3, usc5 := 1-scale3, 1-scale5

	sci3, sci4 := ui.Dot(r), uk.Dot(r)
	scip2 := ui.Dot(pk) + pi.Dot(uk)
	scip3, scip4 := pi.Dot(r), pk.Dot(r)

	gfd := 0.5 * (bn2*scip2 - bn3*(scip3*sci4+sci3*scip4))
	gfdr := 0.5 * (rr5*scip2*usc3 - rr7*(scip3*sci4+sci3*scip4)*usc5)

	cross := pi.Scale(sci4).Add(ui.Scale(scip4)).Add(pk.Scale(sci3)).Add(uk.Scale(scip3))
	corr := r.Scale(gfdr - gfd).Add(cross.Scale(0.5 * (usc5*rr5 - bn2)))
	return corr.Scale(selfScale)
}

func minThole(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}
