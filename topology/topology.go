/*
 * topology.go, part of gochem's PME engine.
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

// Package topology derives the covalent relation lists multipole sites
// need: 1-2 bonds inferred from interatomic distances and covalent
// radii (or accepted from the caller), then 1-3/1-4/1-5 partner lists
// from a breadth-first walk of the bond graph.
package topology

import (
	"fmt"
	"math"

	"github.com/rmera/pme/v3"
)

// Distance tolerances for bond assignment, DOI:10.1186/1758-2946-3-33.
const (
	tooClose = 0.63
	bondTol  = 0.45
)

// Covalent radii for common bio-elements (Cordero et al. 2008,
// DOI:10.1039/B801115J).
var covalentRadius = map[string]float64{
	"H": 0.4, "C": 0.76, "O": 0.66, "N": 0.71, "P": 1.07, "S": 1.05,
	"Se": 1.2, "K": 2.03, "Ca": 1.76, "Mg": 1.41, "Cl": 1.02, "Na": 1.66,
	"Cu": 1.32, "Zn": 1.22, "Co": 1.5, "Fe": 1.52, "Mn": 1.61, "Cr": 1.39,
	"Si": 1.11, "Be": 0.96, "F": 0.57, "Br": 1.2, "I": 1.39,
}

// Bond is a 1-2 covalent edge.
type Bond struct {
	I, J int
	Dist float64
}

// Covalent holds, for every atom, its 1-2/1-3/1-4/1-5 covalent partner
// lists, ready to be copied onto mpole.Atom.
type Covalent struct {
	Bonds []Bond
	C12   [][]int
	C13   [][]int
	C14   [][]int
	C15   [][]int
}

// BuildCovalent derives a Covalent topology for n atoms. If bonds is
// non-nil it is used as the 1-2 graph directly; otherwise bonds are
// assigned from coords and elements using the distance/covalent-radius
// criterion above.
func BuildCovalent(n int, coords *v3.Matrix, elements []string, bonds []Bond) (*Covalent, error) {
	if bonds == nil {
		var err error
		bonds, err = assignBonds(coords, elements)
		if err != nil {
			return nil, err
		}
	}
	adj := make([][]int, n)
	for _, b := range bonds {
		adj[b.I] = append(adj[b.I], b.J)
		adj[b.J] = append(adj[b.J], b.I)
	}
	c := &Covalent{
		Bonds: bonds,
		C12:   adj,
		C13:   make([][]int, n),
		C14:   make([][]int, n),
		C15:   make([][]int, n),
	}
	for i := 0; i < n; i++ {
		levels := bfsLevels(adj, i, 4)
		c.C13[i] = levels[2]
		c.C14[i] = levels[3]
		c.C15[i] = levels[4]
	}
	return c, nil
}

// bfsLevels walks the bond graph breadth-first from start and returns,
// for each depth 1..maxDepth (in bonds), the atoms at exactly that
// depth. Depth 1 is the 1-2 list (adj[start] itself), depth 2 the 1-3
// list, depth 3 the 1-4 list, depth 4 the 1-5 list.
func bfsLevels(adj [][]int, start, maxDepth int) map[int][]int {
	visited := map[int]int{start: 0}
	frontier := []int{start}
	levels := make(map[int][]int)
	for depth := 1; depth <= maxDepth; depth++ {
		var next []int
		for _, u := range frontier {
			for _, v := range adj[u] {
				if _, seen := visited[v]; seen {
					continue
				}
				visited[v] = depth
				next = append(next, v)
				levels[depth] = append(levels[depth], v)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return levels
}

func assignBonds(coords *v3.Matrix, elements []string) ([]Bond, error) {
	n := len(elements)
	var bonds []Bond
	for i := 0; i < n; i++ {
		ri := coords.RowVec(i)
		covi, ok := covalentRadius[elements[i]]
		if !ok {
			return nil, fmt.Errorf("topology: no covalent radius for element %q (atom %d)", elements[i], i)
		}
		for j := i + 1; j < n; j++ {
			rj := coords.RowVec(j)
			covj, ok := covalentRadius[elements[j]]
			if !ok {
				return nil, fmt.Errorf("topology: no covalent radius for element %q (atom %d)", elements[j], j)
			}
			dx, dy, dz := ri[0]-rj[0], ri[1]-rj[1], ri[2]-rj[2]
			d := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if d < covi+covj+bondTol && d > tooClose {
				bonds = append(bonds, Bond{I: i, J: j, Dist: d})
			}
		}
	}
	return bonds, nil
}
