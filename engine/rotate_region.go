/*
 * rotate_region.go, part of gochem's PME engine.
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
	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/rotate"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// frameAxisCount returns how many of an atom's Axis entries define its
// local frame (as opposed to serving only as a Z-THEN-X chirality
// reference).
func frameAxisCount(style mpole.AxisType) int {
	switch style {
	case mpole.AxisZThenX, mpole.AxisBisector:
		return 2
	case mpole.AxisZThenBisector, mpole.AxisThreefold:
		return 3
	default:
		return 0
	}
}

// rotateAll rotates every atom's local multipole into the global frame
// of every symmetry image. Each (image, atom) pair only ever writes
// global[s][i], so the region needs no per-worker merge buffer, just a
// flat partition of the combined image*atom index space across the
// pool.
func (e *Engine) rotateAll(crystal *mpole.Crystal, coords []*v3.Matrix, global mpole.GlobalMultipoles) {
	n := len(e.Atoms)
	images := crystal.NImages()
	total := images * n

	e.Pool.Run(total, ScheduleFixed, func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			s, i := idx/n, idx%n
			a := e.Atoms[i]
			self := vec3.FromArray(coords[s].RowVec(i))

			count := frameAxisCount(a.Frame)
			if count == 0 {
				global[s][i] = rotate.Rotate(a.Local, a.Frame, self, nil, nil)
				continue
			}

			axisPos := make([]vec3.Vector, count)
			for j := 0; j < count; j++ {
				axisPos[j] = vec3.FromArray(coords[s].RowVec(a.Axis[j]))
			}

			var chirality *vec3.Vector
			if a.Frame == mpole.AxisZThenX && len(a.Axis) >= 3 {
				c := vec3.FromArray(coords[s].RowVec(a.Axis[2]))
				chirality = &c
			}

			global[s][i] = rotate.Rotate(a.Local, a.Frame, self, axisPos, chirality)
		}
	})
}
