/*
 * forcefield.go, part of gochem's PME engine.
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
	"os"

	"github.com/pelletier/go-toml"
)

// ForceField carries the Ewald, SCF, masking and lambda parameters. It
// is read-only once constructed, shared across an engine's lifetime.
type ForceField struct {
	EwaldAlpha     float64 // Angstrom^-1; 0 disables reciprocal space
	Cutoff         float64 // real-space cutoff, Angstrom
	EwaldPrecision float64 // used to derive EwaldAlpha when it is unset

	Polarization PolarizationMode
	SCFTolerance float64 // poleps, Debye
	SORFactor    float64 // polsor, omega in (0,1]
	MaxSCFIter   int

	// Covalent and polarization-group masking constants.
	M12, M13, M14, M15 float64
	P12, P13           float64
	D11                float64

	// Alchemical lambda parameters.
	PermanentLambdaExponent    float64
	PolarizationLambdaExponent float64
	PermanentLambdaAlpha       float64

	// Concurrency tuning.
	NumThreads       int
	RealSpaceThreads int // loaded and stored only; the engine does not read it
}

// DefaultForceField returns the conventional defaults: m14=0.4,
// m15=0.8, polsor=0.70, poleps=1e-6, maxIter=1000, ewaldPrecision=1e-8,
// Mutual polarization.
func DefaultForceField() *ForceField {
	return &ForceField{
		EwaldAlpha:                 0, // 0 until derived from EwaldPrecision/Cutoff
		Cutoff:                     9.0,
		EwaldPrecision:             1e-8,
		Polarization:               Mutual,
		SCFTolerance:               1e-6,
		SORFactor:                  0.70,
		MaxSCFIter:                 1000,
		M12:                        0,
		M13:                        0,
		M14:                        0.4,
		M15:                        0.8,
		P12:                        0,
		P13:                        0,
		D11:                        0,
		PermanentLambdaExponent:    2.0,
		PolarizationLambdaExponent: 3.0,
		PermanentLambdaAlpha:       0.7,
	}
}

// DeriveEwaldAlpha sets EwaldAlpha to the smallest coefficient meeting
// EwaldPrecision at the configured Cutoff (see EwaldCoefficient) and
// returns it. Callers that want the aperiodic degenerate case keep
// EwaldAlpha at 0 and never call this.
func (ff *ForceField) DeriveEwaldAlpha() float64 {
	ff.EwaldAlpha = EwaldCoefficient(ff.Cutoff, ff.EwaldPrecision)
	return ff.EwaldAlpha
}

// tomlForceField is the on-disk shape decoded by LoadForceField; it
// mirrors ForceField but leaves zero-valued fields distinguishable from
// "not present" so defaults can be overlaid after decoding.
type tomlForceField struct {
	EwaldAlpha                 float64 `toml:"ewald_alpha"`
	Cutoff                     float64 `toml:"cutoff"`
	EwaldPrecision             float64 `toml:"ewald_precision"`
	Polarization               string  `toml:"polarization"`
	SCFTolerance               float64 `toml:"scf_tolerance"`
	SORFactor                  float64 `toml:"sor_factor"`
	MaxSCFIter                 int     `toml:"max_scf_iter"`
	M12                        float64 `toml:"m12"`
	M13                        float64 `toml:"m13"`
	M14                        float64 `toml:"m14"`
	M15                        float64 `toml:"m15"`
	P12                        float64 `toml:"p12"`
	P13                        float64 `toml:"p13"`
	D11                        float64 `toml:"d11"`
	PermanentLambdaExponent    float64 `toml:"permanent_lambda_exponent"`
	PolarizationLambdaExponent float64 `toml:"polarization_lambda_exponent"`
	PermanentLambdaAlpha       float64 `toml:"permanent_lambda_alpha"`
	NumThreads                 int     `toml:"num_threads"`
	RealSpaceThreads           int     `toml:"real_space_threads"`
}

// LoadForceField decodes a TOML configuration document, overlaying
// DefaultForceField for any field absent or zero in the file. Returns a
// Critical Error on a missing file or malformed document.
func LoadForceField(path string) (*ForceField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError("mpole: cannot open force field file %q: %v", path, err)
	}
	defer f.Close()

	var raw tomlForceField
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&raw); err != nil {
		return nil, NewError("mpole: cannot parse force field file %q: %v", path, err)
	}

	ff := DefaultForceField()
	if raw.EwaldAlpha != 0 {
		ff.EwaldAlpha = raw.EwaldAlpha
	}
	if raw.Cutoff != 0 {
		ff.Cutoff = raw.Cutoff
	}
	if raw.EwaldPrecision != 0 {
		ff.EwaldPrecision = raw.EwaldPrecision
	}
	switch raw.Polarization {
	case "direct", "DIRECT":
		ff.Polarization = Direct
	case "mutual", "MUTUAL", "":
		ff.Polarization = Mutual
	default:
		return nil, NewError("mpole: unknown polarization mode %q", raw.Polarization)
	}
	if raw.SCFTolerance != 0 {
		ff.SCFTolerance = raw.SCFTolerance
	}
	if raw.SORFactor != 0 {
		ff.SORFactor = raw.SORFactor
	}
	if raw.MaxSCFIter != 0 {
		ff.MaxSCFIter = raw.MaxSCFIter
	}
	// A configured 0 is indistinguishable from "absent" in TOML's zero
	// value, so masks whose default is already 0 (m12, m13, p12, p13,
	// d11) are fine either way; m14/m15 can't be overridden to exactly
	// 0 through the file, which is an accepted limitation.
	if raw.M12 != 0 {
		ff.M12 = raw.M12
	}
	if raw.M13 != 0 {
		ff.M13 = raw.M13
	}
	if raw.M14 != 0 {
		ff.M14 = raw.M14
	}
	if raw.M15 != 0 {
		ff.M15 = raw.M15
	}
	if raw.P12 != 0 {
		ff.P12 = raw.P12
	}
	if raw.P13 != 0 {
		ff.P13 = raw.P13
	}
	if raw.D11 != 0 {
		ff.D11 = raw.D11
	}
	if raw.PermanentLambdaExponent != 0 {
		ff.PermanentLambdaExponent = raw.PermanentLambdaExponent
	}
	if raw.PolarizationLambdaExponent != 0 {
		ff.PolarizationLambdaExponent = raw.PolarizationLambdaExponent
	}
	if raw.PermanentLambdaAlpha != 0 {
		ff.PermanentLambdaAlpha = raw.PermanentLambdaAlpha
	}
	if raw.NumThreads != 0 {
		ff.NumThreads = raw.NumThreads
	}
	if raw.RealSpaceThreads != 0 {
		ff.RealSpaceThreads = raw.RealSpaceThreads
	}

	if err := ff.Validate(); err != nil {
		return nil, err
	}
	return ff, nil
}

// Validate checks the parameter ranges that are fatal at construction:
// a bad SOR factor, tolerance, iteration limit or cutoff. A permanent
// lambda exponent below 1 is not an error: it is clamped back up to
// 2.0; callers that want to warn about the adjustment can compare the
// field before and after validating.
func (ff *ForceField) Validate() error {
	if ff.PermanentLambdaExponent < 1 {
		ff.PermanentLambdaExponent = 2.0
	}
	if ff.SORFactor <= 0 || ff.SORFactor > 1 {
		return NewError("mpole: sor_factor %v out of range (0,1]", ff.SORFactor)
	}
	if ff.SCFTolerance <= 0 {
		return NewError("mpole: scf_tolerance must be positive, got %v", ff.SCFTolerance)
	}
	if ff.MaxSCFIter < 1 {
		return NewError("mpole: max_scf_iter must be >= 1, got %v", ff.MaxSCFIter)
	}
	if ff.Cutoff <= 0 {
		return NewError("mpole: cutoff must be positive, got %v", ff.Cutoff)
	}
	return nil
}
