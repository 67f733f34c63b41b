/*
 * gk.go, part of gochem's PME engine.
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

// Package gk declares the optional Generalized Kirkwood implicit
// solvent collaborator: Born radii from the current geometry, and the
// permanent/induced reaction field each atom feels from the continuum
// dielectric. No implementation ships here; the SCF solver treats a
// nil GeneralizedKirkwood as "no reaction field".
package gk

import "github.com/rmera/pme/vec3"

// GeneralizedKirkwood computes an implicit-solvent reaction field that
// the SCF solver optionally folds into the direct and mutual fields.
// Implementations own their own Born-radius and surface-integral
// machinery.
type GeneralizedKirkwood interface {
	// ComputeBornRadii derives each atom's effective Born radius from
	// the current asymmetric-unit geometry.
	ComputeBornRadii() error

	// ComputePermanentGKField derives the reaction field each atom
	// feels from every atom's permanent multipole.
	ComputePermanentGKField() error

	// ComputeInducedGKField is ComputePermanentGKField's induced-dipole
	// counterpart, run once per SCF iteration under MUTUAL polarization.
	ComputeInducedGKField() error

	// PermanentField returns the per-atom reaction field accumulated by
	// ComputePermanentGKField.
	PermanentField() []vec3.Vector

	// InducedField returns the per-atom reaction field accumulated by
	// ComputeInducedGKField.
	InducedField() []vec3.Vector

	// BornRadii returns the per-atom Born radii computed by
	// ComputeBornRadii.
	BornRadii() []float64
}
