/*
 * errors.go, part of gochem's PME engine.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

import "fmt"

// Error is the shared error type across the PME packages, following the
// "Decorate" convention used across goChem: a caller up the stack can
// attach a breadcrumb without changing the error's type.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// NewError builds a critical Error with the given message.
func NewError(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, a...), critical: true}
}

// NewWarning builds a non-critical Error with the given message.
func NewWarning(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, a...), critical: false}
}

func (err Error) Error() string { return err.message }

// Decorate appends dec to the error's decoration trail and returns it.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical reports whether the error is fatal to the calling operation:
// configuration errors and SCF divergence are critical; masking clamps
// are not.
func (err Error) Critical() bool { return err.critical }
