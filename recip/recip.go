/*
 * recip.go, part of gochem's PME engine.
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

// Package recip declares the reciprocal-space collaborator contract:
// B-spline gridding of multipoles/induced dipoles, FFT-based
// convolution with the Ewald Green's function, and the resulting phi
// tensor at every atom. The real implementation -- grid allocation,
// the B-spline weights, and the FFT itself -- lives outside this
// module; this package only fixes the shape an implementation must
// have, plus a Null double for tests and the aperiodic (alpha=0)
// degenerate case.
package recip

import "github.com/rmera/pme/mpole"

// PhiTensor is the truncated Taylor expansion, at one atom, of the
// reciprocal-space electrostatic potential produced by every other
// source: potential, its first derivatives (field), second derivatives
// (field gradient, consumed by the dipole gradient and the quadrupole
// torque contractions) and third derivatives (consumed by the
// quadrupole gradient contractions). Indexed by
// the T* constants below, which extend mpole.Tensor10's convention to
// third order.
type PhiTensor [20]float64

const (
	T000 = 0
	T100 = 1
	T010 = 2
	T001 = 3
	T200 = 4
	T020 = 5
	T002 = 6
	T110 = 7
	T101 = 8
	T011 = 9
	T300 = 10
	T030 = 11
	T003 = 12
	T210 = 13
	T201 = 14
	T120 = 15
	T021 = 16
	T102 = 17
	T012 = 18
	T111 = 19
)

// ReciprocalSpace is the collaborator the orchestrator drives through
// one permanent and, under MUTUAL polarization, one or more induced
// passes per energy call. Implementations own the FFT grid and
// B-spline machinery; callers never reach into grid internals
// directly, only through this contract.
type ReciprocalSpace interface {
	// ComputeBSplines derives the B-spline coefficients for the current
	// asymmetric-unit coordinates; must be called once per energy call
	// before either spline step below.
	ComputeBSplines() error

	// SplinePermanentMultipoles grids the rotated global multipoles.
	// use, when non-nil, is a per-atom inclusion mask (e.g. the
	// lambda-scaled subset); nil means "all atoms".
	SplinePermanentMultipoles(global mpole.GlobalMultipoles, use []bool) error

	// PermanentMultipoleConvolution performs the forward FFT, multiplies
	// by the Ewald structure factor, and performs the inverse FFT.
	PermanentMultipoleConvolution() error

	// ComputePermanentPhi fills out[i] with atom i's permanent-source
	// phi tensor. len(out) must equal the atom count.
	ComputePermanentPhi(out []PhiTensor) error

	// SplineInducedDipoles grids the current induced dipole pair
	// (mu, the group-masked dipole; muP, the polarization-masked one).
	SplineInducedDipoles(mu, muP mpole.InducedDipoles, use []bool) error

	// InducedDipoleConvolution is PermanentMultipoleConvolution's
	// induced-dipole counterpart, run once per SCF iteration under
	// MUTUAL polarization.
	InducedDipoleConvolution() error

	// ComputeInducedPhi fills outD/outP with atom i's induced-source
	// phi tensors for the two masking conventions.
	ComputeInducedPhi(outD, outP []PhiTensor) error

	// FractionalMultipoles returns the gridded multipoles in fractional
	// coordinates, consumed by the reciprocal energy/gradient
	// contraction before the reciprocal-lattice transform to Cartesian.
	FractionalMultipoles() [][]float64

	// FractionalInducedDipoles is FractionalMultipoles' induced
	// counterpart.
	FractionalInducedDipoles() [][]float64

	// GridDimensions returns the FFT grid's (nx, ny, nz).
	GridDimensions() (nx, ny, nz int)
}
