/*
 * assembler.go, part of gochem's PME engine.
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
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/recip"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// Result is the assembler's output: the permanent and polarization
// energy totals, the per-atom net force on the asymmetric unit, the
// per-atom torque awaiting torque projection, the per-image reaction
// forces and torques accumulated on symmetry mates (still expressed in
// each mate's own frame; the caller projects the mate torques with the
// image coordinates and rotates both back through the inverse symmetry
// rotation before reducing), and the number of pair interactions
// evaluated.
type Result struct {
	PermanentEnergy    float64
	PolarizationEnergy float64
	Gradient           []vec3.Vector
	Torque             []vec3.Vector
	MateGradient       [][]vec3.Vector // indexed [image][atom]; image 0 unused
	MateTorque         [][]vec3.Vector
	Interactions       int
}

// Assemble runs the full energy/gradient/torque contraction: self
// energy, the reciprocal-space phi contraction, and the real-space
// permanent-permanent and permanent-induced pair kernels.
//
// The pair loop draws the field point i from image 0 and the source k
// from every image: image 0 visits k > i (each intracell pair counted
// once, with the reaction folded onto k directly), while images s > 0
// keep the full k range with the i==k self-image term halved, and fold
// the reaction onto the mate buffers for later inverse-rotation
// reduction.
//
// global and induced must already cover every symmetry image (image 0
// solved by scf.Solve, images 1..N-1 rotated into place by the caller
// via crystal.ApplySymRotation, since induced dipoles transform as
// vectors). nl, when non-nil, is the caller-built neighbor list
// indexed [image][atom], holding every neighbor of the atom. permPhi,
// indPhiD and indPhiP are the reciprocal collaborator's phi tensors
// for the asymmetric unit (length n), already computed by the caller.
func Assemble(
	crystal *mpole.Crystal,
	atoms []*mpole.Atom,
	coords []*v3.Matrix,
	global mpole.GlobalMultipoles,
	induced mpole.InducedDipoles,
	nl [][][]int,
	permPhi, indPhiD, indPhiP []recip.PhiTensor,
	ff *mpole.ForceField,
	doPermReal, doPermRecip, doPolarization bool,
) Result {
	n := len(atoms)
	images := crystal.NImages()
	res := Result{
		Gradient:     make([]vec3.Vector, n),
		Torque:       make([]vec3.Vector, n),
		MateGradient: make([][]vec3.Vector, images),
		MateTorque:   make([][]vec3.Vector, images),
	}
	for s := 1; s < images; s++ {
		res.MateGradient[s] = make([]vec3.Vector, n)
		res.MateTorque[s] = make([]vec3.Vector, n)
	}

	alpha := ff.EwaldAlpha
	electric := mpole.Electric

	if doPermRecip {
		res.PermanentEnergy += PermanentSelf(global[0], alpha, electric)
	}
	if doPolarization {
		res.PolarizationEnergy += InducedSelf(global[0], induced, alpha, electric)
		tq := InducedSelfTorque(global[0], induced, alpha, electric)
		for i, t := range tq {
			res.Torque[i] = res.Torque[i].Add(vec3.New(t[0], t[1], t[2]))
		}
	}

	if doPermRecip {
		for i := 0; i < n; i++ {
			out := PermanentReciprocal(global[0][i], permPhi[i], electric)
			res.PermanentEnergy += out.Energy
			res.Gradient[i] = res.Gradient[i].Sub(out.Gradient)
			res.Torque[i] = res.Torque[i].Add(out.Torque)
		}
	}
	if doPolarization {
		for i := 0; i < n; i++ {
			muD, muP := vec3.FromArray(induced[0][i].Mu), vec3.FromArray(induced[0][i].MuP)
			res.PolarizationEnergy += InducedReciprocal(muD, permPhi[i], electric)

			var sPhi recip.PhiTensor
			for t := range sPhi {
				sPhi[t] = 0.5 * (indPhiD[i][t] + indPhiP[i][t])
			}
			grad, tq := InducedReciprocalGradTorque(global[0][i], muD, muP, permPhi[i], sPhi, electric)
			res.Gradient[i] = res.Gradient[i].Sub(grad)
			res.Torque[i] = res.Torque[i].Add(tq)
		}
	}

	cutoff2 := ff.Cutoff * ff.Cutoff
	full := make([]int, n)
	for i := range full {
		full[i] = i
	}
	for i := 0; i < n; i++ {
		ai := atoms[i]
		posI := vec3.FromArray(coords[0].RowVec(i))
		ci, di, qi := global[0][i].Charge(), vec3.FromArray(global[0][i].Dipole()), FromTensorQuad(global[0][i].Quad())
		ui, pi := vec3.FromArray(induced[0][i].Mu), vec3.FromArray(induced[0][i].MuP)

		for s := 0; s < images; s++ {
			list := full
			if nl != nil {
				list = nl[s][i]
			}
			for _, k := range list {
				if s == 0 && k <= i {
					continue
				}
				posK := vec3.FromArray(coords[s].RowVec(k))
				disp, r2 := crystal.Image(posK.Sub(posI))
				if r2 > cutoff2 || r2 == 0 {
					continue
				}

				ak := atoms[k]
				ck, dk, qk := global[s][k].Charge(), vec3.FromArray(global[s][k].Dipole()), FromTensorQuad(global[s][k].Quad())

				selfScale := 1.0
				if s > 0 && k == i {
					selfScale = 0.5
				}
				mScale, pScaleK := 1.0, 1.0
				if s == 0 {
					mScale = CovalentScale(ai, ak, ff)
					pScaleK = pairPMask(ai, ak, ff)
				}

				if doPermReal {
					out := PermanentPair(disp, ci, di, qi, ck, dk, qk, alpha, mScale, selfScale)
					res.PermanentEnergy += electric * out.Energy
					res.Gradient[i] = res.Gradient[i].Sub(out.GradOnI.Scale(electric))
					res.Torque[i] = res.Torque[i].Add(out.TorqueOnI.Scale(electric))
					if s == 0 {
						res.Gradient[k] = res.Gradient[k].Add(out.GradOnI.Scale(electric))
						res.Torque[k] = res.Torque[k].Add(out.TorqueOnK.Scale(electric))
					} else {
						res.MateGradient[s][k] = res.MateGradient[s][k].Add(out.GradOnI.Scale(electric))
						res.MateTorque[s][k] = res.MateTorque[s][k].Add(out.TorqueOnK.Scale(electric))
					}
					res.Interactions++
				}

				if doPolarization {
					uk, pk := vec3.FromArray(induced[s][k].Mu), vec3.FromArray(induced[s][k].MuP)
					out := PermanentInducedPair(disp, ci, di, qi, ui, pi, ck, dk, qk, uk, pk, ai, ak, alpha, pScaleK, selfScale)
					pairGrad := out.GradOnI
					if ff.Polarization == mpole.Direct {
						pairGrad = pairGrad.Add(DirectGradCorrection(disp, ui, pi, uk, pk, ai, ak, alpha, selfScale))
					}
					res.PolarizationEnergy += electric * out.Energy
					res.Gradient[i] = res.Gradient[i].Sub(pairGrad.Scale(electric))
					res.Torque[i] = res.Torque[i].Add(out.TorqueOnI.Scale(electric))
					if s == 0 {
						res.Gradient[k] = res.Gradient[k].Add(pairGrad.Scale(electric))
						res.Torque[k] = res.Torque[k].Add(out.TorqueOnK.Scale(electric))
					} else {
						res.MateGradient[s][k] = res.MateGradient[s][k].Add(pairGrad.Scale(electric))
						res.MateTorque[s][k] = res.MateTorque[s][k].Add(out.TorqueOnK.Scale(electric))
					}
				}
			}
		}
	}

	return res
}
