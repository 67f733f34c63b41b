/*
 * lambda_region.go, part of gochem's PME engine.
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

package engine

import (
	"github.com/rmera/pme/energy"
	"github.com/rmera/pme/lambda"
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// lambdaCorrection returns dU/dLambda, d2U/dLambda2 and the permanent/
// polarization energy deltas that turn a lambda-agnostic assembled
// total into the softcore-scaled total, for cfg.Lambda and the
// engine's configured lambda exponents/alpha. Only pairs touching at
// least one soft atom can be lambda-dependent, so the loop mirrors the
// assembler's pair conventions (image/cutoff/self-scale) but skips
// every hard-hard pair.
func (e *Engine) lambdaCorrection(crystal *mpole.Crystal, coords []*v3.Matrix, global mpole.GlobalMultipoles, induced mpole.InducedDipoles, cfg Config) (du, d2u, deltaPerm, deltaPol float64) {
	ctx := lambda.Context{
		Lambda:               cfg.Lambda,
		PermanentExponent:    e.ForceField.PermanentLambdaExponent,
		PolarizationExponent: e.ForceField.PolarizationLambdaExponent,
		AlphaPerm:            e.ForceField.PermanentLambdaAlpha,
	}

	if !anySoft(e.Atoms) {
		return 0, 0, 0, 0
	}

	n := len(e.Atoms)
	alpha := e.ForceField.EwaldAlpha
	cutoff2 := e.ForceField.Cutoff * e.ForceField.Cutoff

	for i := 0; i < n; i++ {
		ai := e.Atoms[i]
		posI := vec3.FromArray(coords[0].RowVec(i))
		ci, di, qi := global[0][i].Charge(), vec3.FromArray(global[0][i].Dipole()), energy.FromTensorQuad(global[0][i].Quad())
		ui, pi := vec3.FromArray(induced[0][i].Mu), vec3.FromArray(induced[0][i].MuP)

		for s := 0; s < crystal.NImages(); s++ {
			kStart := 0
			if s == 0 {
				kStart = i + 1
			}
			for k := kStart; k < n; k++ {
				ak := e.Atoms[k]
				if !ai.Soft && !ak.Soft {
					continue
				}
				posK := vec3.FromArray(coords[s].RowVec(k))
				disp, r2 := crystal.Image(posK.Sub(posI))
				if r2 > cutoff2 || r2 == 0 {
					continue
				}

				selfScale := 1.0
				if s > 0 && k == i {
					selfScale = 0.5
				}
				mScale, pScaleK := 1.0, 1.0
				if s == 0 {
					mScale = energy.CovalentScale(ai, ak, e.ForceField)
					pScaleK = groupPMask(ai, ak, e.ForceField)
				}

				ck, dk, qk := global[s][k].Charge(), vec3.FromArray(global[s][k].Dipole()), energy.FromTensorQuad(global[s][k].Quad())

				pd := ctx.PermanentPairDelta(disp, r2, ci, di, qi, ck, dk, qk, ai, ak, alpha, mScale, selfScale)
				deltaPerm += pd.DeltaPermanent
				du += pd.DU
				d2u += pd.D2U

				uk, pk := vec3.FromArray(induced[s][k].Mu), vec3.FromArray(induced[s][k].MuP)
				id := ctx.PermanentInducedPairDelta(disp, r2, ci, di, qi, ui, pi, ck, dk, qk, uk, pk, ai, ak, alpha, pScaleK, selfScale)
				deltaPol += id.DeltaPolarization
				du += id.DU
				d2u += id.D2U
			}
		}
	}
	return du, d2u, deltaPerm, deltaPol
}

// anySoft reports whether any atom in the system is soft; a system
// with no soft atoms at all has a lambda-independent energy, so the
// caller can skip the pair loop entirely.
func anySoft(atoms []*mpole.Atom) bool {
	for _, a := range atoms {
		if a.Soft {
			return true
		}
	}
	return false
}

// groupPMask mirrors the polarization-energy group-exclusion factor
// the assembler applies (p12/p13/0.5 for a 1-4 partner sharing an ip11
// group): the mask is the caller's state to decide, not a shared
// library function.
func groupPMask(i, k *mpole.Atom, ff *mpole.ForceField) float64 {
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
