/*
 * errors.go, part of govqe.
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

package circuit

//errDecorate adds the caller name to the decoration of err, if err is a circuit Error.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return err
}

//Error is the general structure for errors in the circuit package. It fullfills chem.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return "circuit: " + err.message }

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnknownGate    = "Unsupported gate"
	UnknownPattern = "Unknown entanglement pattern"
	WrongParams    = "Wrong number of parameter values"
	Unbound        = "Circuit has unbound parameters"
	BadQubits      = "Invalid number of qubits"
	BadReps        = "Invalid number of repetitions"
)
