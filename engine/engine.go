/*
 * engine.go, part of gochem's PME engine.
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
	"log"
	"sync"

	"github.com/rmera/pme/energy"
	"github.com/rmera/pme/expand"
	"github.com/rmera/pme/field"
	"github.com/rmera/pme/gk"
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/recip"
	"github.com/rmera/pme/scf"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// Engine owns everything that lives for the duration of a simulation:
// the atom slice, the crystal, the force field, the reciprocal-space
// and (optional) generalized-Kirkwood collaborators, the caller-built
// neighbor lists, and the fixed worker pool. Atoms, parameters and the
// crystal are read-only across an energy call; only the coordinates
// passed to Energy change between calls.
type Engine struct {
	Atoms      []*mpole.Atom
	Crystal    *mpole.Crystal
	ForceField *mpole.ForceField
	Recip      recip.ReciprocalSpace
	GK         gk.GeneralizedKirkwood

	// NeighborLists, when non-nil, is indexed [image][atom] and holds
	// every neighbor of the atom within the real-space cutoff (plus
	// whatever skin the builder used; the kernels re-check the cutoff).
	// It is supplied by the caller, never built here. nil falls back to
	// an all-pairs screen.
	NeighborLists [][][]int

	Pool   *Pool
	Logger *log.Logger
}

// New validates and constructs an Engine. A nil force field, an empty
// atom slice, a malformed frame declaration or a mis-sized neighbor
// list is rejected here rather than surfacing mid-evaluation.
func New(atoms []*mpole.Atom, crystal *mpole.Crystal, ff *mpole.ForceField, rs recip.ReciprocalSpace, reaction gk.GeneralizedKirkwood, neighborLists [][][]int, pool *Pool, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(atoms) < 1 {
		return nil, mpole.NewError("engine: at least one atom is required, got %d", len(atoms))
	}
	if crystal == nil {
		return nil, mpole.NewError("engine: a crystal is required")
	}
	if ff == nil {
		return nil, mpole.NewError("engine: a force field is required")
	}
	clamped := ff.PermanentLambdaExponent < 1
	if err := ff.Validate(); err != nil {
		return nil, err
	}
	if clamped {
		logger.Printf("engine: permanent lambda exponent below 1, clamped to %v", ff.PermanentLambdaExponent)
	}
	for _, a := range atoms {
		if a == nil {
			return nil, mpole.NewError("engine: nil atom in atom list")
		}
		if a.Frame != mpole.AxisNone && len(a.Axis) < frameAxisCount(a.Frame) {
			return nil, mpole.NewError("engine: atom %d declares frame %s but only %d axis atoms", a.Index, a.Frame, len(a.Axis))
		}
	}
	if neighborLists != nil {
		if len(neighborLists) < crystal.NImages() {
			return nil, mpole.NewError("engine: neighbor lists cover %d images, crystal has %d", len(neighborLists), crystal.NImages())
		}
		for s := range neighborLists {
			if len(neighborLists[s]) != len(atoms) {
				return nil, mpole.NewError("engine: neighbor list image %d sized for %d atoms, have %d", s, len(neighborLists[s]), len(atoms))
			}
		}
	}
	if pool == nil {
		pool = NewPool(ff.NumThreads)
	}
	return &Engine{
		Atoms:         atoms,
		Crystal:       crystal,
		ForceField:    ff,
		Recip:         rs,
		GK:            reaction,
		NeighborLists: neighborLists,
		Pool:          pool,
		Logger:        logger,
	}, nil
}

// Result is the orchestrator's output: total permanent and polarization
// energy, the per-atom net force (the sign-flipped Cartesian gradient),
// the interaction count, the SCF diagnostics, and -- when lambda
// scaling is enabled -- the alchemical derivatives.
type Result struct {
	PermanentEnergy    float64
	PolarizationEnergy float64
	TotalEnergy        float64
	Gradient           []vec3.Vector
	Interactions       int

	SCFIterations int
	SCFEpsilon    float64
	SCFTrace      []float64
	Terminated    bool

	// DU, D2U are dU/dLambda and d2U/dLambda2, populated only when the
	// call's Config.DoLambda is true.
	DU, D2U float64
}

// activeCrystal returns the crystal the rest of the pipeline should
// use for this call: the engine's crystal unchanged when symmetry is
// honored, or a shallow copy whose symmetry-operator list is truncated
// to just the identity (image 0) otherwise. ForceField.EwaldAlpha is
// never touched here: a caller wanting the aperiodic degenerate case
// sets alpha to 0 itself.
func (e *Engine) activeCrystal(cfg Config) *mpole.Crystal {
	if cfg.UseSymmetry {
		return e.Crystal
	}
	c := *e.Crystal
	c.SymOps = c.SymOps[:1]
	return &c
}

// Energy runs one full evaluation for the asymmetric-unit coordinates
// in asu, per cfg. asu must have exactly len(e.Atoms) rows.
func (e *Engine) Energy(asu *v3.Matrix, cfg Config) (Result, error) {
	n := len(e.Atoms)
	if asu.NVecs() != n {
		return Result{}, mpole.NewError("engine: coordinates sized for %d atoms, got %d atoms", asu.NVecs(), n)
	}
	crystal := e.activeCrystal(cfg)
	images := crystal.NImages()

	coords := expand.Expand(crystal, asu)

	global := mpole.NewGlobalMultipoles(images, n)
	e.rotateAll(crystal, coords, global)

	permField := mpole.NewFields(n)
	permFieldCR := mpole.NewFields(n)
	permPhi := make([]recip.PhiTensor, n)

	var realErr, recipErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if cfg.DoPermanentReal {
			realErr = field.Permanent(crystal, e.Atoms, coords, global, e.NeighborLists, e.ForceField, permField, permFieldCR)
		}
	}()
	go func() {
		defer wg.Done()
		if cfg.DoPermanentRecip && e.Recip != nil {
			recipErr = e.runPermanentRecip(global, permPhi)
		}
	}()
	wg.Wait()
	if realErr != nil {
		return Result{}, mpole.NewError("engine: permanent real-space field: %v", realErr)
	}
	if recipErr != nil {
		return Result{}, mpole.NewError("engine: permanent reciprocal convolution: %v", recipErr)
	}

	induced := mpole.NewInducedDipoles(images, n)
	var scfRes scf.Result
	if cfg.DoPolarization {
		var err error
		scfRes, err = scf.Solve(crystal, e.Atoms, coords, e.NeighborLists, e.ForceField, e.Recip, e.GK, permField, permFieldCR, permPhi, induced, cfg.Terminate)
		if err != nil {
			return Result{}, err
		}
		e.expandInduced(crystal, induced)
	}

	indPhiD := make([]recip.PhiTensor, n)
	indPhiP := make([]recip.PhiTensor, n)
	if cfg.DoPolarization && e.Recip != nil {
		if err := e.runInducedRecip(induced, indPhiD, indPhiP); err != nil {
			return Result{}, mpole.NewError("engine: final induced reciprocal convolution: %v", err)
		}
	}

	asmRes := energy.Assemble(crystal, e.Atoms, coords, global, induced, e.NeighborLists, permPhi, indPhiD, indPhiP, e.ForceField, cfg.DoPermanentReal, cfg.DoPermanentRecip, cfg.DoPolarization)

	grad := make([]vec3.Vector, n)
	asuTorque := e.projectTorqueRegion(coords[0], asmRes.Torque)
	for i := range grad {
		grad[i] = asmRes.Gradient[i].Add(asuTorque[i])
	}
	// Reaction forces and torques on symmetry mates live in each mate's
	// own frame: project the mate torques against the image coordinates,
	// then bring the combined mate force back through the inverse
	// symmetry rotation before reducing it into the asymmetric unit.
	for s := 1; s < images; s++ {
		mateTorque := e.projectTorqueRegion(coords[s], asmRes.MateTorque[s])
		for i := range grad {
			f := asmRes.MateGradient[s][i].Add(mateTorque[i])
			grad[i] = grad[i].Add(crystal.ApplyInvSymRotation(s, f))
		}
	}

	res := Result{
		PermanentEnergy:    asmRes.PermanentEnergy,
		PolarizationEnergy: asmRes.PolarizationEnergy,
		Gradient:           grad,
		Interactions:       asmRes.Interactions,
		SCFIterations:      scfRes.Iterations,
		SCFEpsilon:         scfRes.Epsilon,
		SCFTrace:           scfRes.Trace,
		Terminated:         scfRes.Terminated,
	}

	if cfg.DoLambda {
		du, d2u, deltaP, deltaPol := e.lambdaCorrection(crystal, coords, global, induced, cfg)
		res.PermanentEnergy += deltaP
		res.PolarizationEnergy += deltaPol
		res.DU, res.D2U = du, d2u
	}

	res.TotalEnergy = res.PermanentEnergy + res.PolarizationEnergy
	return res, nil
}

// runPermanentRecip drives the reciprocal collaborator through its
// permanent-multipole pass.
func (e *Engine) runPermanentRecip(global mpole.GlobalMultipoles, out []recip.PhiTensor) error {
	if err := e.Recip.ComputeBSplines(); err != nil {
		return err
	}
	if err := e.Recip.SplinePermanentMultipoles(global, nil); err != nil {
		return err
	}
	if err := e.Recip.PermanentMultipoleConvolution(); err != nil {
		return err
	}
	return e.Recip.ComputePermanentPhi(out)
}

// runInducedRecip is runPermanentRecip's induced-dipole counterpart,
// run once more after SCF convergence so the assembler's phi tensors
// reflect the converged dipoles rather than the solver's last
// intermediate iterate.
func (e *Engine) runInducedRecip(induced mpole.InducedDipoles, outD, outP []recip.PhiTensor) error {
	if err := e.Recip.SplineInducedDipoles(induced, induced, nil); err != nil {
		return err
	}
	if err := e.Recip.InducedDipoleConvolution(); err != nil {
		return err
	}
	return e.Recip.ComputeInducedPhi(outD, outP)
}

// expandInduced rotates the converged asymmetric-unit induced dipoles
// into every symmetry image: induced dipoles transform as vectors, not
// as points, so only the rotational part of each operator applies.
func (e *Engine) expandInduced(crystal *mpole.Crystal, induced mpole.InducedDipoles) {
	for s := 1; s < crystal.NImages(); s++ {
		for i := range e.Atoms {
			mu := crystal.ApplySymRotation(s, vec3.FromArray(induced[0][i].Mu))
			muP := crystal.ApplySymRotation(s, vec3.FromArray(induced[0][i].MuP))
			induced[s][i] = mpole.InducedPair{Mu: mu.Array(), MuP: muP.Array()}
		}
	}
}
