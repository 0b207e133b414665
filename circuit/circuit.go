/*
 * circuit.go, part of govqe.
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

//Package circuit contains the quantum circuits used as ansatz,
//with symbolic parameters that are bound before execution, and their
//OpenQASM 3 export.
package circuit

import (
	"fmt"
	"strings"
)

//Gate is a gate on one or two qubits. If Param is not negative, the
//angle of the rotation is the parameter with that index, and Angle is
//ignored until the circuit is bound.
type Gate struct {
	Name   string
	Qubits []int
	Param  int
	Angle  float64
}

//Parametrized returns true if the gate has an unbound parameter.
func (G Gate) Parametrized() bool {
	return G.Param >= 0
}

var oneQubit = map[string]bool{"x": true, "h": true, "s": true, "sdg": true}
var rotations = map[string]bool{"rx": true, "ry": true, "rz": true}
var twoQubit = map[string]bool{"cx": true, "cz": true}

//Known returns true if name is a supported gate.
func Known(name string) bool {
	return oneQubit[name] || rotations[name] || twoQubit[name]
}

//IsRotation returns true for the gates that take an angle.
func IsRotation(name string) bool {
	return rotations[name]
}

//Circuit is a sequence of gates on NumQubits qubits. Qubit k corresponds to bit k
//of the index of a basis state.
type Circuit struct {
	numQubits int
	Gates     []Gate
	numParams int
}

//New returns an empty circuit on n qubits.
func New(n int) *Circuit {
	return &Circuit{numQubits: n}
}

//NumQubits returns the number of qubits.
func (C *Circuit) NumQubits() int { return C.numQubits }

//NumParameters returns the number of free parameters in the circuit.
func (C *Circuit) NumParameters() int { return C.numParams }

func (C *Circuit) checkQubits(qs ...int) {
	for _, q := range qs {
		if q < 0 || q >= C.numQubits {
			panic(fmt.Sprintf("circuit: qubit %d out of range for %d qubits", q, C.numQubits))
		}
	}
	if len(qs) == 2 && qs[0] == qs[1] {
		panic("circuit: two-qubit gate on a single qubit")
	}
}

//Append adds a gate without parameters. It returns error if the name or the
//number of qubits don't correspond to a supported gate.
func (C *Circuit) Append(name string, qubits ...int) error {
	switch {
	case oneQubit[name] && len(qubits) == 1, twoQubit[name] && len(qubits) == 2:
	default:
		return Error{fmt.Sprintf("%s: %s on %d qubits", UnknownGate, name, len(qubits)), []string{"Append"}, true}
	}
	C.checkQubits(qubits...)
	C.Gates = append(C.Gates, Gate{Name: name, Qubits: append([]int(nil), qubits...), Param: -1})
	return nil
}

//Rotate adds a rotation by a fixed angle.
func (C *Circuit) Rotate(name string, qubit int, angle float64) error {
	if !rotations[name] {
		return Error{UnknownGate + ": " + name, []string{"Rotate"}, true}
	}
	C.checkQubits(qubit)
	C.Gates = append(C.Gates, Gate{Name: name, Qubits: []int{qubit}, Param: -1, Angle: angle})
	return nil
}

//RotateParam adds a rotation whose angle is a new parameter, and returns
//the index of the parameter.
func (C *Circuit) RotateParam(name string, qubit int) (int, error) {
	if !rotations[name] {
		return -1, Error{UnknownGate + ": " + name, []string{"RotateParam"}, true}
	}
	C.checkQubits(qubit)
	p := C.numParams
	C.Gates = append(C.Gates, Gate{Name: name, Qubits: []int{qubit}, Param: p})
	C.numParams++
	return p, nil
}

//Copy returns a deep copy of the circuit.
func (C *Circuit) Copy() *Circuit {
	r := &Circuit{numQubits: C.numQubits, numParams: C.numParams, Gates: make([]Gate, len(C.Gates))}
	for i, g := range C.Gates {
		g.Qubits = append([]int(nil), g.Qubits...)
		r.Gates[i] = g
	}
	return r
}

//Bind returns a copy of the circuit with the parameters set to values.
func (C *Circuit) Bind(values []float64) (*Circuit, error) {
	if len(values) != C.numParams {
		return nil, Error{fmt.Sprintf("%s: %d values for %d parameters", WrongParams, len(values), C.numParams), []string{"Bind"}, true}
	}
	r := C.Copy()
	for i, g := range r.Gates {
		if g.Parametrized() {
			r.Gates[i].Angle = values[g.Param]
			r.Gates[i].Param = -1
		}
	}
	r.numParams = 0
	return r, nil
}

//Compose appends the gates of B after those of C. B's parameters are
//renumbered after C's.
func (C *Circuit) Compose(B *Circuit) *Circuit {
	if B.numQubits != C.numQubits {
		panic("circuit: composing circuits with different number of qubits")
	}
	r := C.Copy()
	for _, g := range B.Copy().Gates {
		if g.Parametrized() {
			g.Param += C.numParams
		}
		r.Gates = append(r.Gates, g)
	}
	r.numParams += B.numParams
	return r
}

//Depth returns the number of layers of the circuit when gates on disjoint qubits are
//run in parallel.
func (C *Circuit) Depth() int {
	level := make([]int, C.numQubits)
	depth := 0
	for _, g := range C.Gates {
		l := 0
		for _, q := range g.Qubits {
			if level[q] > l {
				l = level[q]
			}
		}
		l++
		for _, q := range g.Qubits {
			level[q] = l
		}
		if l > depth {
			depth = l
		}
	}
	return depth
}

//QASM returns the circuit in OpenQASM 3. The circuit must be bound. If measure is
//true, all qubits are measured at the end into a classical register c.
func (C *Circuit) QASM(measure bool) (string, error) {
	if C.numParams != 0 {
		return "", Error{Unbound, []string{"QASM"}, true}
	}
	var b strings.Builder
	b.WriteString("OPENQASM 3.0;\ninclude \"stdgates.inc\";\n")
	fmt.Fprintf(&b, "qubit[%d] q;\n", C.numQubits)
	if measure {
		fmt.Fprintf(&b, "bit[%d] c;\n", C.numQubits)
	}
	for _, g := range C.Gates {
		qs := make([]string, len(g.Qubits))
		for i, q := range g.Qubits {
			qs[i] = fmt.Sprintf("q[%d]", q)
		}
		if rotations[g.Name] {
			fmt.Fprintf(&b, "%s(%.17g) %s;\n", g.Name, g.Angle, strings.Join(qs, ", "))
		} else {
			fmt.Fprintf(&b, "%s %s;\n", g.Name, strings.Join(qs, ", "))
		}
	}
	if measure {
		b.WriteString("c = measure q;\n")
	}
	return b.String(), nil
}
