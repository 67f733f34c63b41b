/*
 * expander.go, part of gochem's PME engine.
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

// Package expand applies each symmetry operator to asymmetric-unit
// coordinates to produce coordinates in every crystal image, one
// *v3.Matrix per image, and bundles the per-energy-call scratch
// buffers that must be zeroed at the top of every evaluation.
package expand

import (
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// Expand builds, for every image s in [0, crystal.NImages()), the
// coordinate matrix coord[s] = symop(s)*coord[0]. coord[0] must already
// be populated (the asymmetric unit's coordinates) and have n rows.
func Expand(crystal *mpole.Crystal, asu *v3.Matrix) []*v3.Matrix {
	n := asu.NVecs()
	images := make([]*v3.Matrix, crystal.NImages())
	images[0] = asu
	for s := 1; s < crystal.NImages(); s++ {
		img := v3.Zeros(n)
		for i := 0; i < n; i++ {
			v := vec3.FromArray(asu.RowVec(i))
			img.SetRowVec(i, crystal.ApplySymOp(s, v).Array())
		}
		images[s] = img
	}
	return images
}

// Scratch bundles the per-energy-call buffers: permanent/induced
// fields, induced dipoles, gradients and torques, all scoped to the
// asymmetric unit since cross-image contributions are folded into it
// during accumulation.
type Scratch struct {
	PermField   mpole.Fields
	PermFieldCR mpole.Fields
	Induced     mpole.InducedDipoles
	Gradient    []vec3.Vector
	Torque      []vec3.Vector
}

// NewScratch allocates a zeroed Scratch for nAtoms atoms and nImages
// symmetry images (induced dipoles are tracked per image; everything
// else is accumulated directly into the asymmetric unit).
func NewScratch(nAtoms, nImages int) *Scratch {
	return &Scratch{
		PermField:   mpole.NewFields(nAtoms),
		PermFieldCR: mpole.NewFields(nAtoms),
		Induced:     mpole.NewInducedDipoles(nImages, nAtoms),
		Gradient:    make([]vec3.Vector, nAtoms),
		Torque:      make([]vec3.Vector, nAtoms),
	}
}

// Reset zeros every buffer in place, for reuse across energy calls.
func (s *Scratch) Reset() {
	s.PermField.Reset()
	s.PermFieldCR.Reset()
	for si := range s.Induced {
		for i := range s.Induced[si] {
			s.Induced[si][i] = mpole.InducedPair{}
		}
	}
	for i := range s.Gradient {
		s.Gradient[i] = vec3.Vector{}
		s.Torque[i] = vec3.Vector{}
	}
}
