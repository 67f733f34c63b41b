/*
 * torque_region.go, part of gochem's PME engine.
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
	"sync"

	"github.com/rmera/pme/mpole"
	"github.com/rmera/pme/torque"
	"github.com/rmera/pme/v3"
	"github.com/rmera/pme/vec3"
)

// projectTorqueRegion converts per-atom torques into forces on each
// atom's frame-defining axis atoms, using the given image's
// coordinates, and returns the resulting per-atom force contribution.
// Torque projection scatters onto up to three axis atoms, which can
// collide across atoms that share a frame-defining neighbor, so --
// unlike the rotate region's disjoint writes -- this region uses one
// local buffer per worker, summed into the shared total under a single
// merge lock at the end of the region.
func (e *Engine) projectTorqueRegion(coords *v3.Matrix, torques []vec3.Vector) []vec3.Vector {
	n := len(e.Atoms)
	total := make([]vec3.Vector, n)
	var merge sync.Mutex

	e.Pool.Run(n, ScheduleFixed, func(lo, hi int) {
		local := make([]vec3.Vector, n)
		for i := lo; i < hi; i++ {
			a := e.Atoms[i]
			if a.Frame == mpole.AxisNone || len(a.Axis) < 2 {
				continue
			}
			count := frameAxisCount(a.Frame)
			self := vec3.FromArray(coords.RowVec(i))
			axisPos := make([]vec3.Vector, count)
			for j := 0; j < count; j++ {
				axisPos[j] = vec3.FromArray(coords.RowVec(a.Axis[j]))
			}

			proj := torque.Project(self, axisPos, a.Frame, torques[i])
			local[i] = local[i].Add(proj.SelfForce)
			for j, f := range proj.AxisForce {
				ax := a.Axis[j]
				local[ax] = local[ax].Add(f)
			}
		}

		merge.Lock()
		for i := range local {
			total[i] = total[i].Add(local[i])
		}
		merge.Unlock()
	})

	return total
}
