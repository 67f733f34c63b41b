/*
 * matrix.go, part of gochem.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001

// Matrix is a set of vectors in 3D space, i.e. an Nx3 row-major matrix.
// Row i holds the cartesian coordinates of the ith vector (atom image,
// multipole site, whatever the caller's "N" indexes).
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with the given number of vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, make([]float64, vecs*3))}
}

// NewMatrix builds a Matrix from a flat, row-major slice of data whose
// length must be divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	if l%3 != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by 3", l), nil, true}
	}
	return &Matrix{mat.NewDense(l/3, 3, data)}, nil
}

// NVecs returns the number of vectors (rows) in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// VecView returns a view of the ith vector. Changes to the view are
// reflected on F and vice versa.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

// RowVec returns the ith vector as a [3]float64.
func (F *Matrix) RowVec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetRowVec sets the ith vector of F to v.
func (F *Matrix) SetRowVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

// SwapVecs exchanges vectors i and j in place.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	ri, rj := F.RowVec(i), F.RowVec(j)
	F.SetRowVec(i, rj)
	F.SetRowVec(j, ri)
}

// Sub sets F = A - B, row by row. A and B must have the same shape as F.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

// Add sets F = A + B, row by row.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

// ScaleBy sets F = A*c.
func (F *Matrix) ScaleBy(A *Matrix, c float64) {
	F.Dense.Scale(c, A.Dense)
}

// Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	r, c := F.Dims()
	d := mat.NewDense(r, c, nil)
	d.Copy(F.Dense)
	return &Matrix{d}
}

// det returns the determinant of a 3x3 matrix. Panics if A isn't 3x3.
func det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) -
		A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) +
		A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2))
}

// Det3x3 exposes det for 3x3 callers outside the package (lattice
// volumes, chirality triple products).
func Det3x3(A mat.Matrix) float64 { return det(A) }

// Inverse3x3 returns the inverse of a 3x3 matrix via gonum's
// Dense.Inverse, passing on its error for a singular matrix.
func Inverse3x3(A *mat.Dense) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(A); err != nil {
		return nil, err
	}
	return &inv, nil
}

func invSqrt(val float64) float64 {
	if val <= 0 {
		return 0
	}
	return 1.0 / math.Sqrt(val)
}
