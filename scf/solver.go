/*
 * solver.go, part of gochem's PME engine.
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

// Package scf implements the induced-dipole self-consistent field
// solver: direct-dipole seeding from the permanent field plus
// Ewald/reciprocal self-corrections, and, under MUTUAL polarization,
// successive-over-relaxation iteration to convergence with divergence
// and iteration-limit detection. The two-buffer (previous/current)
// ping-pong keeps each iteration from mutating a buffer it is still
// reading, so one barrier between "compute field" and "apply update"
// suffices.
package scf

import (
	"math"

	"github.com/rmera/pme/field"
	"github.com/rmera/pme/gk"
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/recip"
	"github.com/rmera/pme/v3"
)

// debyeConv converts e*Angstrom dipole units to Debye for the
// convergence check.
const debyeConv = 4.80320451

// selfFactor and recipSelfFactor are the Ewald self-term and
// reciprocal self-correction prefactors, parameterized by alpha:
// fi += selfFactor(alpha)*di and fi += recipSelfFactor(alpha)*di -
// gradPhi.
func selfFactor(alpha float64) float64 {
	return 4 * alpha * alpha * alpha / (3 * math.Sqrt(math.Pi))
}

func recipSelfFactor(alpha float64) float64 {
	return alpha * alpha * alpha
}

// Result holds the SCF solver's outcome: the converged induced dipoles
// (already written into the caller's Induced buffer), the iteration
// count and final epsilon (DIRECT mode reports 0 for both),
// the per-iteration epsilon trace (for convergence diagnostics such as
// pmeplot.SCFConvergence), and whether the external termination flag
// cut the loop short.
type Result struct {
	Iterations int
	Epsilon    float64
	Trace      []float64
	Terminated bool
}

// DivergenceError reports that eps grew between SCF iterations, or that
// the iteration limit was exceeded. Either way the energy evaluation
// must be aborted rather than returning a partial result.
type DivergenceError struct {
	Err       mpole.Error
	Iteration int
	Epsilon   float64
	Previous  float64
}

// Error implements the error interface by forwarding to the wrapped
// mpole.Error (kept as a named field, rather than embedded, since its type
// name is itself "Error" and would otherwise collide with this method).
func (e *DivergenceError) Error() string { return e.Err.Error() }

// Solve seeds the induced dipoles from the direct field and, under
// MUTUAL polarization, iterates them to self-consistency.
// permField/permFieldCR are the already-accumulated real-space
// permanent fields (field.Permanent's output); permPhi is the
// reciprocal collaborator's permanent phi tensor per atom, already
// computed by the caller (the orchestrator runs that convolution
// concurrently with field.Permanent); nl is the optional neighbor list
// handed through to field.Induced. On return, induced holds the
// converged (or DIRECT-seeded) dipole pair for image 0; only image 0
// is solved, since induced dipoles are a property of the asymmetric
// unit and re-expanded into images by the caller like any other
// per-atom quantity.
func Solve(
	crystal *mpole.Crystal,
	atoms []*mpole.Atom,
	coords []*v3.Matrix,
	nl [][][]int,
	ff *mpole.ForceField,
	rs recip.ReciprocalSpace,
	reaction gk.GeneralizedKirkwood,
	permField, permFieldCR mpole.Fields,
	permPhi []recip.PhiTensor,
	induced mpole.InducedDipoles,
	terminate <-chan struct{},
) (Result, error) {
	n := len(atoms)
	alpha := ff.EwaldAlpha
	sf := selfFactor(alpha)
	rf := recipSelfFactor(alpha)

	direct := mpole.NewFields(n)
	for i, a := range atoms {
		d := a.Local.Dipole
		direct[i].E[0] = permField[i].E[0] + sf*d[0] + rf*d[0] - permPhi[i][recip.T100]
		direct[i].E[1] = permField[i].E[1] + sf*d[1] + rf*d[1] - permPhi[i][recip.T010]
		direct[i].E[2] = permField[i].E[2] + sf*d[2] + rf*d[2] - permPhi[i][recip.T001]
		direct[i].EP[0] = permFieldCR[i].E[0] + sf*d[0] + rf*d[0] - permPhi[i][recip.T100]
		direct[i].EP[1] = permFieldCR[i].E[1] + sf*d[1] + rf*d[1] - permPhi[i][recip.T010]
		direct[i].EP[2] = permFieldCR[i].E[2] + sf*d[2] + rf*d[2] - permPhi[i][recip.T001]
		if reaction != nil {
			if err := reaction.ComputePermanentGKField(); err != nil {
				return Result{}, mpole.NewError("scf: generalized Kirkwood permanent field: %v", err)
			}
			pf := reaction.PermanentField()[i]
			direct[i].E[0] += pf.X
			direct[i].E[1] += pf.Y
			direct[i].E[2] += pf.Z
			direct[i].EP[0] += pf.X
			direct[i].EP[1] += pf.Y
			direct[i].EP[2] += pf.Z
		}
	}

	seed := mpole.NewInducedDipoles(1, n)
	for i, a := range atoms {
		seed[0][i].Mu = [3]float64{
			a.Polarizability * direct[i].E[0],
			a.Polarizability * direct[i].E[1],
			a.Polarizability * direct[i].E[2],
		}
		seed[0][i].MuP = [3]float64{
			a.Polarizability * direct[i].EP[0],
			a.Polarizability * direct[i].EP[1],
			a.Polarizability * direct[i].EP[2],
		}
		induced[0][i] = seed[0][i]
	}

	if ff.Polarization == mpole.Direct {
		return Result{Iterations: 0, Epsilon: 0}, nil
	}

	prevEps := math.Inf(1)
	prev := mpole.NewInducedDipoles(1, n)
	copy(prev[0], induced[0])

	var trace []float64
	for iter := 1; iter <= ff.MaxSCFIter; iter++ {
		select {
		case <-terminate:
			return Result{Iterations: iter - 1, Epsilon: prevEps, Trace: trace, Terminated: true}, nil
		default:
		}

		mutual := mpole.NewFields(n)
		if err := field.Induced(crystal, atoms, coords, prev, nl, ff, mutual); err != nil {
			return Result{}, mpole.NewError("scf: real-space induced field: %v", err)
		}
		if rs != nil {
			if err := rs.SplineInducedDipoles(prev, prev, nil); err != nil {
				return Result{}, mpole.NewError("scf: spline induced dipoles: %v", err)
			}
			if err := rs.InducedDipoleConvolution(); err != nil {
				return Result{}, mpole.NewError("scf: induced convolution: %v", err)
			}
			phiD := make([]recip.PhiTensor, n)
			phiP := make([]recip.PhiTensor, n)
			if err := rs.ComputeInducedPhi(phiD, phiP); err != nil {
				return Result{}, mpole.NewError("scf: compute induced phi: %v", err)
			}
			for i := range atoms {
				mu, muP := prev[0][i].Mu, prev[0][i].MuP
				mutual[i].E[0] += sf*mu[0] + rf*mu[0] - phiD[i][recip.T100]
				mutual[i].E[1] += sf*mu[1] + rf*mu[1] - phiD[i][recip.T010]
				mutual[i].E[2] += sf*mu[2] + rf*mu[2] - phiD[i][recip.T001]
				mutual[i].EP[0] += sf*muP[0] + rf*muP[0] - phiP[i][recip.T100]
				mutual[i].EP[1] += sf*muP[1] + rf*muP[1] - phiP[i][recip.T010]
				mutual[i].EP[2] += sf*muP[2] + rf*muP[2] - phiP[i][recip.T001]
			}
		}
		if reaction != nil {
			if err := reaction.ComputeInducedGKField(); err != nil {
				return Result{}, mpole.NewError("scf: generalized Kirkwood induced field: %v", err)
			}
			inf := reaction.InducedField()
			for i := range atoms {
				mutual[i].E[0] += inf[i].X
				mutual[i].E[1] += inf[i].Y
				mutual[i].E[2] += inf[i].Z
				mutual[i].EP[0] += inf[i].X
				mutual[i].EP[1] += inf[i].Y
				mutual[i].EP[2] += inf[i].Z
			}
		}

		var sumSq float64
		next := mpole.NewInducedDipoles(1, n)
		for i, a := range atoms {
			newMu := [3]float64{
				seed[0][i].Mu[0] + a.Polarizability*mutual[i].E[0],
				seed[0][i].Mu[1] + a.Polarizability*mutual[i].E[1],
				seed[0][i].Mu[2] + a.Polarizability*mutual[i].E[2],
			}
			newMuP := [3]float64{
				seed[0][i].MuP[0] + a.Polarizability*mutual[i].EP[0],
				seed[0][i].MuP[1] + a.Polarizability*mutual[i].EP[1],
				seed[0][i].MuP[2] + a.Polarizability*mutual[i].EP[2],
			}
			var cur mpole.InducedPair
			for k := 0; k < 3; k++ {
				dMu := newMu[k] - prev[0][i].Mu[k]
				dMuP := newMuP[k] - prev[0][i].MuP[k]
				cur.Mu[k] = prev[0][i].Mu[k] + ff.SORFactor*dMu
				cur.MuP[k] = prev[0][i].MuP[k] + ff.SORFactor*dMuP
				sumSq += dMu * dMu
			}
			next[0][i] = cur
		}

		eps := math.Sqrt(sumSq/float64(n)) * debyeConv
		trace = append(trace, eps)
		copy(induced[0], next[0])
		if eps < ff.SCFTolerance {
			return Result{Iterations: iter, Epsilon: eps, Trace: trace}, nil
		}
		if iter > 1 && eps > prevEps {
			return Result{}, &DivergenceError{
				Err:       mpole.NewError("scf: induced dipoles diverging at iteration %d (eps %.6g > previous %.6g)", iter, eps, prevEps),
				Iteration: iter, Epsilon: eps, Previous: prevEps,
			}
		}
		prevEps = eps
		prev = next
	}
	return Result{}, &DivergenceError{
		Err:       mpole.NewError("scf: exceeded max_scf_iter (%d) without converging", ff.MaxSCFIter),
		Iteration: ff.MaxSCFIter, Epsilon: prevEps,
	}
}
