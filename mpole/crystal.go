/*
 * crystal.go, part of gochem's PME engine.
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

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/pme/vec3"
)

// SymOp is a crystallographic symmetry operator: a 3x3 rotation plus a
// translation. Image 0 is always the identity operator (the asymmetric
// unit itself).
type SymOp struct {
	Rot   mat.Dense // 3x3 rotation
	Trans [3]float64
}

// Crystal owns the unit cell, its reciprocal lattice, and the space
// group.
type Crystal struct {
	Lattice    mat.Dense // 3x3, rows are the real-space lattice vectors A
	Reciprocal mat.Dense // 3x3, rows are the reciprocal lattice vectors
	SymOps     []SymOp
}

// NewCrystal builds a Crystal from lattice vectors (rows of a,b,c) and
// a (possibly single-identity) list of symmetry operators. The
// reciprocal lattice is derived as 2*pi*(A^-1)^T, the standard
// crystallographic convention.
func NewCrystal(lattice mat.Dense, symops []SymOp) (*Crystal, error) {
	if len(symops) == 0 {
		symops = []SymOp{IdentitySymOp()}
	}
	inv, err := inverse3x3(&lattice)
	if err != nil {
		return nil, NewError("mpole: singular lattice matrix: %v", err)
	}
	var recip mat.Dense
	recip.CloneFrom(inv.T())
	recip.Scale(2*math.Pi, &recip)
	return &Crystal{Lattice: lattice, Reciprocal: recip, SymOps: symops}, nil
}

// IdentitySymOp returns the no-op symmetry operator used for image 0
// and for aperiodic (single-image) systems.
func IdentitySymOp() SymOp {
	id := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	return SymOp{Rot: *id, Trans: [3]float64{}}
}

// NImages returns the number of symmetry images, i.e. len(SymOps).
func (c *Crystal) NImages() int { return len(c.SymOps) }

// GetReciprocal returns the 3x3 reciprocal lattice matrix.
func (c *Crystal) GetReciprocal() mat.Dense { return c.Reciprocal }

// ApplySymOp applies symmetry operator s to the cartesian vector v,
// returning symop(s)*v + translation. Image 0's operator is always the
// identity, so ApplySymOp(0, v) == v.
func (c *Crystal) ApplySymOp(s int, v vec3.Vector) vec3.Vector {
	op := c.SymOps[s]
	rotated := applyRot(&op.Rot, v)
	return rotated.Add(vec3.FromArray(op.Trans))
}

// ApplySymRotation applies only the rotational part of symmetry
// operator s (no translation); used to rotate multipole tensors,
// gradients and induced dipoles, which transform as vectors rather
// than as points.
func (c *Crystal) ApplySymRotation(s int, v vec3.Vector) vec3.Vector {
	return applyRot(&c.SymOps[s].Rot, v)
}

// ApplyInvSymRotation applies the inverse (transpose) of symmetry
// operator s's rotation: forces and torques accumulated on a symmetry
// mate live in that image's frame and must be brought back into the
// asymmetric unit's frame before reduction.
func (c *Crystal) ApplyInvSymRotation(s int, v vec3.Vector) vec3.Vector {
	r := &c.SymOps[s].Rot
	in := []float64{v.X, v.Y, v.Z}
	out := make([]float64, 3)
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += r.At(j, i) * in[j]
		}
		out[i] = sum
	}
	return vec3.New(out[0], out[1], out[2])
}

func applyRot(r *mat.Dense, v vec3.Vector) vec3.Vector {
	in := []float64{v.X, v.Y, v.Z}
	out := make([]float64, 3)
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += r.At(i, j) * in[j]
		}
		out[i] = sum
	}
	return vec3.New(out[0], out[1], out[2])
}

// Image maps displacement v into its minimum-image equivalent under the
// cell's periodic boundary conditions and returns the resulting vector
// together with its squared length. For an aperiodic cell (a single
// identity symop and a lattice of all zeros) Image is a no-op.
func (c *Crystal) Image(v vec3.Vector) (vec3.Vector, float64) {
	if aperiodic(&c.Lattice) {
		return v, v.NormSq()
	}
	inv, err := inverse3x3(&c.Lattice)
	if err != nil {
		return v, v.NormSq()
	}
	frac := applyRot(mat.DenseCopyOf(inv.T()), v)
	fx := frac.X - math.Round(frac.X)
	fy := frac.Y - math.Round(frac.Y)
	fz := frac.Z - math.Round(frac.Z)
	wrapped := applyRot(mat.DenseCopyOf(c.Lattice.T()), vec3.New(fx, fy, fz))
	return wrapped, wrapped.NormSq()
}

func aperiodic(lattice *mat.Dense) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if lattice.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

func inverse3x3(a *mat.Dense) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Volume returns the unit cell volume, |det(A)|.
func (c *Crystal) Volume() float64 {
	r, cl := c.Lattice.Dims()
	if r != 3 || cl != 3 {
		return 0
	}
	return math.Abs(det3(&c.Lattice))
}

func det3(a *mat.Dense) float64 {
	return a.At(0, 0)*(a.At(1, 1)*a.At(2, 2)-a.At(2, 1)*a.At(1, 2)) -
		a.At(1, 0)*(a.At(0, 1)*a.At(2, 2)-a.At(2, 1)*a.At(0, 2)) +
		a.At(2, 0)*(a.At(0, 1)*a.At(1, 2)-a.At(1, 1)*a.At(0, 2))
}
