/*
 * circuit_test.go, part of govqe.
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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoLocal(Te *testing.T) {
	C, err := TwoLocal(4, TwoLocalOptions{Rotation: []string{"ry"}, Entanglement: []string{"cz"}, Pattern: Full, Reps: 3})
	require.NoError(Te, err)
	assert.Equal(Te, 16, C.NumParameters())
	assert.Equal(Te, 16+3*6, len(C.Gates))
	//the parameters are numbered in order of appearance
	next := 0
	for _, g := range C.Gates {
		if g.Parametrized() {
			assert.Equal(Te, next, g.Param)
			next++
		}
	}
	_, err = C.QASM(false)
	assert.Error(Te, err)
	_, err = C.Bind(make([]float64, 3))
	assert.Error(Te, err)
	vals := make([]float64, 16)
	vals[5] = 0.25
	B, err := C.Bind(vals)
	require.NoError(Te, err)
	assert.Equal(Te, 0, B.NumParameters())
	assert.Equal(Te, 16, C.NumParameters())
	q, err := B.QASM(true)
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(q, "OPENQASM 3.0;"))
	assert.Contains(Te, q, "qubit[4] q;")
	assert.Contains(Te, q, "ry(0.25) q[1];")
	assert.Contains(Te, q, "cz q[2], q[3];")
	assert.Contains(Te, q, "c = measure q;")
}

func TestTwoLocalInitialState(Te *testing.T) {
	C, err := TwoLocal(2, TwoLocalOptions{Rotation: []string{"ry", "rz"}, Entanglement: []string{"cx"}, Pattern: Linear, Reps: 1, InitialState: 0b10})
	require.NoError(Te, err)
	assert.Equal(Te, 8, C.NumParameters())
	assert.Equal(Te, "x", C.Gates[0].Name)
	assert.Equal(Te, []int{1}, C.Gates[0].Qubits)
	_, err = TwoLocal(2, TwoLocalOptions{Rotation: []string{"u3"}})
	assert.Error(Te, err)
	_, err = TwoLocal(2, TwoLocalOptions{Rotation: []string{"ry"}, Entanglement: []string{"swap"}})
	assert.Error(Te, err)
}

func TestPairs(Te *testing.T) {
	p, err := Pairs(ReverseLinear, 3)
	require.NoError(Te, err)
	assert.Equal(Te, [][2]int{{1, 2}, {0, 1}}, p)
	p, err = Pairs(Circular, 3)
	require.NoError(Te, err)
	assert.Equal(Te, [][2]int{{2, 0}, {0, 1}, {1, 2}}, p)
	p, err = Pairs(Full, 3)
	require.NoError(Te, err)
	assert.Len(Te, p, 3)
	_, err = Pairs("sca", 3)
	assert.Error(Te, err)
}

func TestCompose(Te *testing.T) {
	A := New(2)
	A.RotateParam("ry", 0)
	B := New(2)
	B.RotateParam("rx", 1)
	require.NoError(Te, B.Append("cz", 0, 1))
	C := A.Compose(B)
	assert.Equal(Te, 2, C.NumParameters())
	assert.Equal(Te, 1, C.Gates[1].Param)
	assert.Equal(Te, 2, C.Depth())
	assert.Error(Te, A.Append("cz", 0))
	assert.Panics(Te, func() { A.Append("x", 3) })
}
