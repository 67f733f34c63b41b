/*
 * null.go, part of gochem's PME engine.
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

package recip

import "github.com/rmera/pme/mpole"

// Null is a ReciprocalSpace that always reports a zero phi tensor and a
// 1x1x1 grid. It is not a production reciprocal-space implementation --
// it exists so the SCF and energy assembly are exercisable without an
// external FFT backend, and so the aperiodic (alpha=0) degenerate case
// has a collaborator to plug in that correctly contributes nothing.
type Null struct{}

func (Null) ComputeBSplines() error { return nil }

func (Null) SplinePermanentMultipoles(mpole.GlobalMultipoles, []bool) error { return nil }

func (Null) PermanentMultipoleConvolution() error { return nil }

func (Null) ComputePermanentPhi(out []PhiTensor) error {
	for i := range out {
		out[i] = PhiTensor{}
	}
	return nil
}

func (Null) SplineInducedDipoles(mpole.InducedDipoles, mpole.InducedDipoles, []bool) error {
	return nil
}

func (Null) InducedDipoleConvolution() error { return nil }

func (Null) ComputeInducedPhi(outD, outP []PhiTensor) error {
	for i := range outD {
		outD[i] = PhiTensor{}
	}
	for i := range outP {
		outP[i] = PhiTensor{}
	}
	return nil
}

func (Null) FractionalMultipoles() [][]float64 { return nil }

func (Null) FractionalInducedDipoles() [][]float64 { return nil }

func (Null) GridDimensions() (nx, ny, nz int) { return 1, 1, 1 }
