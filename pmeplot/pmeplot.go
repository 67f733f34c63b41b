/*
 * pmeplot.go, part of gochem's PME engine.
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

// Package pmeplot renders diagnostic plots for the PME engine: the SCF
// convergence trace a solver run reports, and the total energy as a
// function of the Ewald coefficient (which should be flat for a
// correctly converged reciprocal grid).
package pmeplot

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/pme/mpole"
)

// SCFConvergence plots log10 of the per-iteration SCF epsilon trace
// (scf.Result.Trace / engine.Result.SCFTrace, in Debye) against the
// iteration number and saves it as a PNG. A healthy SOR run shows a
// straight, descending line; a flattening or rising tail is the
// divergence the solver aborts on.
func SCFConvergence(eps []float64, title, plotname string) error {
	if len(eps) == 0 {
		return mpole.NewError("pmeplot: empty SCF trace")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "log10(eps / Debye)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(eps))
	for i, e := range eps {
		pts[i].X = float64(i + 1)
		if e > 0 {
			pts[i].Y = math.Log10(e)
		}
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return mpole.NewError("pmeplot: %v", err)
	}
	p.Add(line, points)

	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, plotname+".png"); err != nil {
		return mpole.NewError("pmeplot: %v", err)
	}
	return nil
}

// EnergyVsAlpha plots total energies against the Ewald coefficients
// they were computed with and saves it as a PNG. With a reciprocal
// grid matched to each alpha the curve should be flat to well under
// the force-field's energy tolerance; visible structure means the
// real/reciprocal split is unbalanced.
func EnergyVsAlpha(alphas, energies []float64, title, plotname string) error {
	if len(alphas) == 0 || len(alphas) != len(energies) {
		return mpole.NewError("pmeplot: need matching alpha/energy slices, got %d and %d", len(alphas), len(energies))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Ewald alpha (1/Angstrom)"
	p.Y.Label.Text = "E total (kcal/mol)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(alphas))
	for i := range alphas {
		pts[i].X = alphas[i]
		pts[i].Y = energies[i]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return mpole.NewError("pmeplot: %v", err)
	}
	p.Add(line, points)

	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, plotname+".png"); err != nil {
		return mpole.NewError("pmeplot: %v", err)
	}
	return nil
}
