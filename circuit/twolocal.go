/*
 * twolocal.go, part of govqe.
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

import (
	"fmt"
	"strings"
)

//Entanglement patterns for TwoLocal.
const (
	Full          = "full"
	Linear        = "linear"
	ReverseLinear = "reverse_linear"
	Circular      = "circular"
)

//Pairs returns the qubit pairs entangled by the pattern on n qubits, in order.
func Pairs(pattern string, n int) ([][2]int, error) {
	var pairs [][2]int
	switch strings.ToLower(pattern) {
	case Full:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	case Linear:
		for i := 0; i < n-1; i++ {
			pairs = append(pairs, [2]int{i, i + 1})
		}
	case ReverseLinear:
		for i := n - 2; i >= 0; i-- {
			pairs = append(pairs, [2]int{i, i + 1})
		}
	case Circular:
		if n > 2 {
			pairs = append(pairs, [2]int{n - 1, 0})
		}
		for i := 0; i < n-1; i++ {
			pairs = append(pairs, [2]int{i, i + 1})
		}
	default:
		return nil, Error{UnknownPattern + ": " + pattern, []string{"Pairs"}, true}
	}
	return pairs, nil
}

//TwoLocalOptions define a TwoLocal ansatz.
type TwoLocalOptions struct {
	Rotation     []string //single-qubit blocks, rotations get one parameter per qubit.
	Entanglement []string //two-qubit blocks, cz or cx
	Pattern      string   //Full, Linear, ReverseLinear or Circular
	Reps         int
	//InitialState is the basis state prepared (with x gates) before the ansatz.
	InitialState uint64
}

//TwoLocal returns the alternating rotation and entanglement layers ansatz on n qubits:
//reps times a rotation layer followed by an entanglement layer, and a final rotation
//layer. The parameters are numbered in the order the gates are applied.
func TwoLocal(n int, opts TwoLocalOptions) (*Circuit, error) {
	if n < 1 || n > 64 {
		return nil, Error{fmt.Sprintf("%s: %d", BadQubits, n), []string{"TwoLocal"}, true}
	}
	if opts.Reps < 0 {
		return nil, Error{fmt.Sprintf("%s: %d repetitions", BadReps, opts.Reps), []string{"TwoLocal"}, true}
	}
	if len(opts.Rotation) == 0 {
		return nil, Error{UnknownGate + ": no rotation blocks", []string{"TwoLocal"}, true}
	}
	for _, r := range opts.Rotation {
		if !oneQubit[r] && !rotations[r] {
			return nil, Error{UnknownGate + ": rotation block " + r, []string{"TwoLocal"}, true}
		}
	}
	for _, e := range opts.Entanglement {
		if !twoQubit[e] {
			return nil, Error{UnknownGate + ": entanglement block " + e, []string{"TwoLocal"}, true}
		}
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = Full
	}
	pairs, err := Pairs(pattern, n)
	if err != nil {
		return nil, errDecorate(err, "TwoLocal")
	}
	C := New(n)
	for q := 0; q < n; q++ {
		if opts.InitialState>>uint(q)&1 == 1 {
			C.Append("x", q)
		}
	}
	rotationLayer := func() {
		for _, r := range opts.Rotation {
			for q := 0; q < n; q++ {
				if rotations[r] {
					C.RotateParam(r, q)
				} else {
					C.Append(r, q)
				}
			}
		}
	}
	for rep := 0; rep < opts.Reps; rep++ {
		rotationLayer()
		for _, e := range opts.Entanglement {
			for _, p := range pairs {
				C.Append(e, p[0], p[1])
			}
		}
	}
	rotationLayer()
	return C, nil
}
