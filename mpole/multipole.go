/*
 * multipole.go, part of gochem's PME engine.
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

package mpole

// Tensor10 is a global-frame multipole tuple: charge, dipole (3),
// quadrupole (6, symmetric+traceless), indexed by the T* constants
// below. The quadrupole diagonal occupies T200/T020/T002 and the
// off-diagonal T110/T101/T011.
type Tensor10 [10]float64

const (
	T000 = 0 // charge
	T100 = 1 // dx
	T010 = 2 // dy
	T001 = 3 // dz
	T200 = 4 // Qxx
	T020 = 5 // Qyy
	T002 = 6 // Qzz
	T110 = 7 // Qxy
	T101 = 8 // Qxz
	T011 = 9 // Qyz
)

// Charge returns the monopole component.
func (t Tensor10) Charge() float64 { return t[T000] }

// Dipole returns the dipole component as a [3]float64.
func (t Tensor10) Dipole() [3]float64 { return [3]float64{t[T100], t[T010], t[T001]} }

// Quad returns the quadrupole as a dense, symmetric 3x3 matrix
// reconstructed from the packed 6-component representation.
func (t Tensor10) Quad() [3][3]float64 {
	return [3][3]float64{
		{t[T200], t[T110], t[T101]},
		{t[T110], t[T020], t[T011]},
		{t[T101], t[T011], t[T002]},
	}
}

// Trace returns Qxx+Qyy+Qzz, which must be ~0 after a correct rotation
// of a traceless local quadrupole.
func (t Tensor10) Trace() float64 { return t[T200] + t[T020] + t[T002] }

// GlobalMultipoles holds, for every symmetry image and atom, the
// global-frame Tensor10 produced by the rotator. Indexed [image][atom].
type GlobalMultipoles [][]Tensor10

// NewGlobalMultipoles allocates a zeroed GlobalMultipoles for nImages
// images and nAtoms atoms per image.
func NewGlobalMultipoles(nImages, nAtoms int) GlobalMultipoles {
	g := make(GlobalMultipoles, nImages)
	for s := range g {
		g[s] = make([]Tensor10, nAtoms)
	}
	return g
}

// InducedPair holds the two masking conventions' induced dipoles (Mu,
// the group-masked dipole, and MuP, the polarization-masked one) for a
// single atom/image. Both are needed to take the gradient of a
// polarization energy that is not symmetric in its two masking
// conventions.
type InducedPair struct {
	Mu  [3]float64
	MuP [3]float64
}

// InducedDipoles holds, for every image and atom, the current induced
// dipole pair. Indexed [image][atom].
type InducedDipoles [][]InducedPair

// NewInducedDipoles allocates a zeroed InducedDipoles.
func NewInducedDipoles(nImages, nAtoms int) InducedDipoles {
	d := make(InducedDipoles, nImages)
	for s := range d {
		d[s] = make([]InducedPair, nAtoms)
	}
	return d
}

// Field holds the two masking conventions' accumulated field 3-vectors
// at a single atom: E is the group-masked field, EP the
// polarization-masked ("CR") one.
type Field struct {
	E  [3]float64
	EP [3]float64
}

// Fields holds, for every atom, the accumulated permanent or induced
// field. Fields are always scoped to the asymmetric unit (image 0):
// symmetry-image contributions are folded in during accumulation.
type Fields []Field

// NewFields allocates a zeroed Fields slice for nAtoms atoms.
func NewFields(nAtoms int) Fields { return make(Fields, nAtoms) }

// Reset zeros every entry in place, for reuse across energy calls.
func (f Fields) Reset() {
	for i := range f {
		f[i] = Field{}
	}
}
