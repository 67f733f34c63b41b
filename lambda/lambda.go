/*
 * lambda.go, part of gochem's PME engine.
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

// Package lambda implements the alchemical softcore pathway: a
// per-pair power-law scale (lambda^p for permanent, lambda^q for
// polarization terms) gating every pair that touches a "soft" atom,
// and a distance-softening substitution
// r^2 -> r^2 + alphaPerm*(1-lambda)^2 on the same pairs, with
// dU/dlambda and d2U/dlambda2 exposed alongside U. The package stays
// out of the energy kernels: it calls energy.PermanentPair and
// energy.PermanentInducedPair as black boxes and prices the soft-pair
// delta between full-strength and lambda-scaled interaction, so those
// kernels stay lambda-agnostic.
package lambda

import (
	"math"

	"github.com/rmera/pme/energy"
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/vec3"
)

// Context carries the per-call lambda state: the current lambda value,
// the two power-law exponents, and the permanent-softening alpha. It
// is immutable for the duration of one Delta call.
type Context struct {
	Lambda               float64
	PermanentExponent    float64
	PolarizationExponent float64
	AlphaPerm            float64
}

// soft reports whether a pair is subject to lambda scaling: soft-soft
// and soft-hard pairs are gated, hard-hard pairs stay at full strength
// regardless of lambda.
func soft(ai, ak *mpole.Atom) bool { return ai.Soft || ak.Soft }

// permScale returns lambda^PermanentExponent for a soft pair, 1 for a
// hard-hard pair.
func (c Context) permScale(ai, ak *mpole.Atom) float64 {
	if !soft(ai, ak) {
		return 1
	}
	return math.Pow(c.Lambda, c.PermanentExponent)
}

func (c Context) polScale(ai, ak *mpole.Atom) float64 {
	if !soft(ai, ak) {
		return 1
	}
	return math.Pow(c.Lambda, c.PolarizationExponent)
}

// dScale/d2Scale are the first and second derivatives of
// lambda^exponent with respect to lambda, 0 for a zero exponent.
func dScale(lambda, exponent float64) float64 {
	if exponent == 0 {
		return 0
	}
	return exponent * math.Pow(lambda, exponent-1)
}

func d2Scale(lambda, exponent float64) float64 {
	if exponent == 0 || exponent == 1 {
		return 0
	}
	return exponent * (exponent - 1) * math.Pow(lambda, exponent-2)
}

// softenR2 returns the lambda-softened squared distance:
// r^2 + alphaPerm*(1-lambda)^2 for soft-involving pairs, unchanged for
// hard-hard pairs.
func (c Context) softenR2(r2 float64, ai, ak *mpole.Atom) float64 {
	if !soft(ai, ak) {
		return r2
	}
	d := 1 - c.Lambda
	return r2 + c.AlphaPerm*d*d
}

// softenDeriv/softenSecondDeriv are d(r2soft)/dlambda and
// d2(r2soft)/dlambda2: -2*alphaPerm*(1-lambda) and 2*alphaPerm,
// 0 for a hard-hard pair.
func (c Context) softenDeriv(ai, ak *mpole.Atom) float64 {
	if !soft(ai, ak) {
		return 0
	}
	return -2 * c.AlphaPerm * (1 - c.Lambda)
}

func (c Context) softenSecondDeriv(ai, ak *mpole.Atom) float64 {
	if !soft(ai, ak) {
		return 0
	}
	return 2 * c.AlphaPerm
}

// softenedDisplacement rescales disp to the length sqrt(r2soft),
// keeping its direction, so the existing pair kernels (which take a
// displacement vector, not a bare r^2) can be evaluated at the
// softened distance without duplicating their algebra.
func softenedDisplacement(disp vec3.Vector, r2, r2soft float64) vec3.Vector {
	if r2 == 0 || r2soft == r2 {
		return disp
	}
	return disp.Scale(math.Sqrt(r2soft / r2))
}

// h is the central-difference step used to estimate dE/dr2 and
// d2E/dr2^2 from the pair kernels: the softening and power-law forms
// are handled analytically, while the kernel's own r-dependence is
// differentiated numerically rather than re-derived term by term.
const h = 1e-4

// PairDelta is one soft-involving pair's contribution to the lambda
// pathway: the permanent/polarization energy difference between the
// lambda-scaled, softened interaction and the full-strength one
// already included in a lambda-agnostic assembled result, plus that
// pair's contribution to dU/dlambda and d2U/dlambda2.
type PairDelta struct {
	DeltaPermanent    float64
	DeltaPolarization float64
	DU                float64
	D2U               float64
}

// PermanentPairDelta evaluates one permanent-permanent pair's lambda
// contribution. r2 and the unsoftened disp are the pair's actual
// geometry; the full-strength energy (already counted once by a prior
// lambda-agnostic assembly) is subtracted out so the caller can add
// DeltaPermanent directly onto that total.
func (c Context) PermanentPairDelta(disp vec3.Vector, r2 float64, ci float64, di vec3.Vector, qi energy.Quad, ck float64, dk vec3.Vector, qk energy.Quad, ai, ak *mpole.Atom, alpha, mScale, selfScale float64) PairDelta {
	if !soft(ai, ak) {
		return PairDelta{}
	}
	lPow := c.permScale(ai, ak)
	r2soft := c.softenR2(r2, ai, ak)
	dr2dl := c.softenDeriv(ai, ak)
	d2r2dl2 := c.softenSecondDeriv(ai, ak)

	eAt := func(rr2 float64) float64 {
		d := softenedDisplacement(disp, r2, rr2)
		return mpole.Electric * energy.PermanentPair(d, ci, di, qi, ck, dk, qk, alpha, mScale, selfScale).Energy
	}

	full := eAt(r2)
	e0 := eAt(r2soft)
	ePlus := eAt(r2soft + h)
	eMinus := eAt(r2soft - h)
	dEdr2 := (ePlus - eMinus) / (2 * h)
	d2Edr2 := (ePlus - 2*e0 + eMinus) / (h * h)

	dlPow := dScale(c.Lambda, c.PermanentExponent)
	d2lPow := d2Scale(c.Lambda, c.PermanentExponent)

	du := dlPow*e0 + lPow*dEdr2*dr2dl
	d2u := d2lPow*e0 + 2*dlPow*dEdr2*dr2dl + lPow*(d2Edr2*dr2dl*dr2dl+dEdr2*d2r2dl2)

	return PairDelta{DeltaPermanent: lPow*e0 - full, DU: du, D2U: d2u}
}

// PermanentInducedPairDelta is PermanentPairDelta's polarization
// counterpart, scaling by PolarizationExponent instead.
func (c Context) PermanentInducedPairDelta(disp vec3.Vector, r2 float64, ci float64, di vec3.Vector, qi energy.Quad, ui, pi vec3.Vector, ck float64, dk vec3.Vector, qk energy.Quad, uk, pk vec3.Vector, ai, ak *mpole.Atom, alpha, scalep, selfScale float64) PairDelta {
	if !soft(ai, ak) {
		return PairDelta{}
	}
	lPow := c.polScale(ai, ak)
	r2soft := c.softenR2(r2, ai, ak)
	dr2dl := c.softenDeriv(ai, ak)
	d2r2dl2 := c.softenSecondDeriv(ai, ak)

	eAt := func(rr2 float64) float64 {
		d := softenedDisplacement(disp, r2, rr2)
		return mpole.Electric * energy.PermanentInducedPair(d, ci, di, qi, ui, pi, ck, dk, qk, uk, pk, ai, ak, alpha, scalep, selfScale).Energy
	}

	full := eAt(r2)
	e0 := eAt(r2soft)
	ePlus := eAt(r2soft + h)
	eMinus := eAt(r2soft - h)
	dEdr2 := (ePlus - eMinus) / (2 * h)
	d2Edr2 := (ePlus - 2*e0 + eMinus) / (h * h)

	dlPow := dScale(c.Lambda, c.PolarizationExponent)
	d2lPow := d2Scale(c.Lambda, c.PolarizationExponent)

	du := dlPow*e0 + lPow*dEdr2*dr2dl
	d2u := d2lPow*e0 + 2*dlPow*dEdr2*dr2dl + lPow*(d2Edr2*dr2dl*dr2dl+dEdr2*d2r2dl2)

	return PairDelta{DeltaPolarization: lPow*e0 - full, DU: du, D2U: d2u}
}

// Endpoints returns the two endpoint Contexts: at lambda=1 every scale
// and softening term is a no-op, and at lambda=0 every soft-involving
// pair's scale vanishes (full removal from the real-space sum -- the
// softening term leaves r2soft finite at lambda=0, but a vanishing
// lPow already zeroes the pair regardless).
func (c Context) Endpoints() (atOne, atZero Context) {
	one, zero := c, c
	one.Lambda, zero.Lambda = 1, 0
	return one, zero
}
