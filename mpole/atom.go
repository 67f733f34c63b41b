/*
 * atom.go, part of gochem's PME engine.
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

// AxisType tags the local-frame construction rule for a multipole site.
// The rotator and the torque projector both switch on this tag; there
// is no dynamic dispatch.
type AxisType int

const (
	AxisNone AxisType = iota
	AxisZThenX
	AxisBisector
	AxisZThenBisector
	AxisThreefold
)

func (a AxisType) String() string {
	switch a {
	case AxisZThenX:
		return "Z-THEN-X"
	case AxisBisector:
		return "BISECTOR"
	case AxisZThenBisector:
		return "Z-THEN-BISECTOR"
	case AxisThreefold:
		return "THREEFOLD"
	default:
		return "NONE"
	}
}

// PolarizationMode selects whether induced dipoles are seeded once from
// the direct field (Direct) or iterated to self-consistency (Mutual).
type PolarizationMode int

const (
	Direct PolarizationMode = iota
	Mutual
)

// LocalMultipole holds the local-frame permanent multipole of an atom:
// charge, dipole (3), and the symmetric traceless quadrupole (3x3,
// stored in full so callers can build it however is convenient; the
// rotator only ever reads it as a 3x3).
type LocalMultipole struct {
	Charge     float64
	Dipole     [3]float64
	Quadrupole [3][3]float64
}

// Atom owns a site's static parameters: its local multipole, frame
// descriptor and axis atoms, polarization parameters, polarization-group
// membership, and covalent relation lists. All of this is read-only
// across an energy call.
type Atom struct {
	Index int

	Local LocalMultipole
	Frame AxisType
	Axis  []int // 0-3 atom indices defining the local frame, per Frame

	Polarizability float64 // alpha_i, cubic Angstrom
	Pdamp          float64 // Thole width
	Thole          float64 // Thole damping parameter pt_i
	Soft           bool    // alchemical softcore flag

	// Polarization-group membership.
	IP11 []int
	IP12 []int
	IP13 []int

	// Covalent relation lists. Populated by the topology package or
	// supplied directly by the caller.
	Covalent12 []int
	Covalent13 []int
	Covalent14 []int
	Covalent15 []int
}

// Copy returns a deep copy of the Atom.
func (a *Atom) Copy() *Atom {
	if a == nil {
		panic("mpole: attempted to copy a nil Atom")
	}
	n := *a
	n.Axis = append([]int(nil), a.Axis...)
	n.IP11 = append([]int(nil), a.IP11...)
	n.IP12 = append([]int(nil), a.IP12...)
	n.IP13 = append([]int(nil), a.IP13...)
	n.Covalent12 = append([]int(nil), a.Covalent12...)
	n.Covalent13 = append([]int(nil), a.Covalent13...)
	n.Covalent14 = append([]int(nil), a.Covalent14...)
	n.Covalent15 = append([]int(nil), a.Covalent15...)
	return &n
}

// In12/In13/In14/In15 report whether atom k is, respectively, a 1-2,
// 1-3, 1-4 or 1-5 covalent partner of the receiver.
func contains(list []int, k int) bool {
	for _, v := range list {
		if v == k {
			return true
		}
	}
	return false
}

func (a *Atom) In12(k int) bool   { return contains(a.Covalent12, k) }
func (a *Atom) In13(k int) bool   { return contains(a.Covalent13, k) }
func (a *Atom) In14(k int) bool   { return contains(a.Covalent14, k) }
func (a *Atom) In15(k int) bool   { return contains(a.Covalent15, k) }
func (a *Atom) InIP11(k int) bool { return contains(a.IP11, k) }
func (a *Atom) InIP12(k int) bool { return contains(a.IP12, k) }
func (a *Atom) InIP13(k int) bool { return contains(a.IP13, k) }
