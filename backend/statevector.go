/*
 * statevector.go, part of govqe.
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

//Package backend executes circuits: it estimates expectation values of
//qubit operators on the states they prepare, either exactly, on a
//state-vector simulator, or from measurement counts obtained from a sampler,
//which can be a local shot simulator or a remote quantum device.
package backend

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rmera/govqe/circuit"
	"github.com/rmera/govqe/qubit"
)

//Estimator obtains expectation values of operators on the state
//prepared by a bound circuit.
type Estimator interface {
	Name() string
	Estimate(ctx context.Context, c *circuit.Circuit, ops ...*qubit.Operator) ([]float64, error)
}

//Statevector is an exact state-vector simulator. It fullfills Estimator.
type Statevector struct{}

//Name returns the backend name.
func (S Statevector) Name() string { return "statevector_simulator" }

//Estimate returns the exact expectation values of ops on the state prepared by c from |0...0>.
func (S Statevector) Estimate(ctx context.Context, c *circuit.Circuit, ops ...*qubit.Operator) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, Error{Cancelled + ": " + err.Error(), []string{"Statevector.Estimate"}, true}
	}
	psi, err := Simulate(c)
	if err != nil {
		return nil, errDecorate(err, "Statevector.Estimate")
	}
	ret := make([]float64, len(ops))
	for i, op := range ops {
		if op.NumQubits() != c.NumQubits() {
			return nil, Error{fmt.Sprintf("%s: operator on %d qubits, circuit on %d", QubitMismatch, op.NumQubits(), c.NumQubits()), []string{"Statevector.Estimate"}, true}
		}
		ret[i] = real(op.Expectation(psi))
	}
	return ret, nil
}

//Simulate returns the state prepared by the bound circuit c from |0...0>.
func Simulate(c *circuit.Circuit) ([]complex128, error) {
	if c.NumParameters() != 0 {
		return nil, Error{circuit.Unbound, []string{"Simulate"}, true}
	}
	if c.NumQubits() > 30 {
		return nil, Error{fmt.Sprintf("%s: %d qubits", TooLarge, c.NumQubits()), []string{"Simulate"}, true}
	}
	psi := make([]complex128, 1<<uint(c.NumQubits()))
	psi[0] = 1
	for _, g := range c.Gates {
		if err := applyGate(psi, g); err != nil {
			return nil, errDecorate(err, "Simulate")
		}
	}
	return psi, nil
}

//matrix returns the 2x2 matrix of a single-qubit gate as [u00 u01 u10 u11].
func matrix(g circuit.Gate) ([4]complex128, bool) {
	c := math.Cos(g.Angle / 2)
	s := math.Sin(g.Angle / 2)
	r := 1 / math.Sqrt2
	switch g.Name {
	case "x":
		return [4]complex128{0, 1, 1, 0}, true
	case "h":
		return [4]complex128{complex(r, 0), complex(r, 0), complex(r, 0), complex(-r, 0)}, true
	case "s":
		return [4]complex128{1, 0, 0, 1i}, true
	case "sdg":
		return [4]complex128{1, 0, 0, -1i}, true
	case "rx":
		return [4]complex128{complex(c, 0), complex(0, -s), complex(0, -s), complex(c, 0)}, true
	case "ry":
		return [4]complex128{complex(c, 0), complex(-s, 0), complex(s, 0), complex(c, 0)}, true
	case "rz":
		return [4]complex128{cmplx.Exp(complex(0, -g.Angle/2)), 0, 0, cmplx.Exp(complex(0, g.Angle/2))}, true
	}
	return [4]complex128{}, false
}

func applyGate(psi []complex128, g circuit.Gate) error {
	switch g.Name {
	case "cz":
		m := uint64(1)<<uint(g.Qubits[0]) | uint64(1)<<uint(g.Qubits[1])
		for k := range psi {
			if uint64(k)&m == m {
				psi[k] = -psi[k]
			}
		}
		return nil
	case "cx":
		cb := uint64(1) << uint(g.Qubits[0])
		tb := uint64(1) << uint(g.Qubits[1])
		for k := range psi {
			//each pair is swapped once, from the element with the target bit unset.
			if uint64(k)&cb != 0 && uint64(k)&tb == 0 {
				j := uint64(k) | tb
				psi[k], psi[j] = psi[j], psi[k]
			}
		}
		return nil
	}
	u, ok := matrix(g)
	if !ok {
		return Error{circuit.UnknownGate + ": " + g.Name, []string{"applyGate"}, true}
	}
	b := uint64(1) << uint(g.Qubits[0])
	for k := range psi {
		if uint64(k)&b != 0 {
			continue
		}
		j := uint64(k) | b
		a0, a1 := psi[k], psi[j]
		psi[k] = u[0]*a0 + u[1]*a1
		psi[j] = u[2]*a0 + u[3]*a1
	}
	return nil
}
