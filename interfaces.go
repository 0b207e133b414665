/*
 * interfaces.go, part of govqe.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
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
 *
 */

package chem

import "strings"

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it just returns the current value.
	//The decorate slice contains a list of functions in the calling stack, plus, for each function any relevant information, or nothing. If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
}

//CError is the general structure for errors in the chem package. It fullfills Error.
type CError struct {
	message  string
	deco     []string
	critical bool
}

func (err CError) Error() string { return "chem: " + err.message }

//Decorate returns the decoration slice with deco added, if deco is not empty.
//As the receiver is a value, the decoration is only kept by the returned slice,
//use errDecorate to keep it in the error.
func (err CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns whether the error is critical.
func (err CError) Critical() bool { return err.critical }

//errDecorate adds the caller name to the decoration of err, if err
//is a CError. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if e, ok := err.(CError); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}

//Trace returns the decoration trail of err, innermost caller first, in a single
//line, or the empty string if err carries no trail.
func Trace(err error) string {
	if e, ok := err.(Error); ok {
		return strings.Join(e.Decorate(""), " < ")
	}
	return ""
}

//Error messages
const (
	NilAtoms         = "Given nil atoms or coordinates"
	MismatchedLen    = "Number of atoms and coordinates don't match"
	UnknownElement   = "Unknown element"
	BadMultiplicity  = "Multiplicity incompatible with the number of electrons"
	BadAtomString    = "Malformed atom specification"
	BadUnit          = "Unknown unit"
	UnableToOpen     = "Unable to open file"
	OverlappingAtoms = "Atoms too close to each other"
)
