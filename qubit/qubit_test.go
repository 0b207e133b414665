/*
 * qubit_test.go, part of govqe.
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

package qubit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	chem "github.com/rmera/govqe"
	"github.com/rmera/govqe/fermion"
	"github.com/rmera/govqe/problem"
	"github.com/rmera/govqe/qm"
)

func TestPauliProducts(Te *testing.T) {
	X, _ := ParsePauli("X")
	Y, _ := ParsePauli("Y")
	Z, _ := ParsePauli("Z")
	ph, p := X.Mul(Y)
	assert.Equal(Te, 1i, ph)
	assert.Equal(Te, Z, p)
	ph, p = Y.Mul(X)
	assert.Equal(Te, -1i, ph)
	assert.Equal(Te, Z, p)
	ph, p = Z.Mul(X)
	assert.Equal(Te, 1i, ph)
	assert.Equal(Te, Y, p)
	ph, p = Y.Mul(Y)
	assert.Equal(Te, complex(1, 0), ph)
	assert.True(Te, p.IsIdentity())
	XZ, err := ParsePauli("XZ")
	require.NoError(Te, err)
	ZX, _ := ParsePauli("ZX")
	ph, p = XZ.Mul(ZX)
	assert.Equal(Te, complex(1, 0), ph) //(-i)(i)
	assert.Equal(Te, "YY", p.Label(2))
	_, err = ParsePauli("XQ")
	assert.Error(Te, err)
}

func TestPauliApply(Te *testing.T) {
	Y, _ := ParsePauli("Y")
	k, ph := Y.Apply(0)
	assert.Equal(Te, uint64(1), k)
	assert.Equal(Te, 1i, ph) //Y|0> = i|1>
	k, ph = Y.Apply(1)
	assert.Equal(Te, uint64(0), k)
	assert.Equal(Te, -1i, ph)
	O, err := FromLabels(map[string]complex128{"ZI": 0.5, "IZ": 0.25, "XX": 1})
	require.NoError(Te, err)
	psi := []complex128{1, 0, 0, 0}
	assert.InDelta(Te, 0.75, real(O.Expectation(psi)), 1e-12)
	M, err := O.Matrix()
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, M.At(3, 0))
	assert.Equal(Te, -0.75, M.At(3, 3))
}

func TestNumberOperator(Te *testing.T) {
	for _, m := range []Mapper{JordanWigner{}, Parity{}} {
		for j := 0; j < 4; j++ {
			N := Map(m, fermion.Number(4, j))
			for k := 0; k < 16; k++ {
				occ := make([]bool, 4)
				occ[j] = k&1 == 1
				occ[(j+1)%4] = k&2 == 2
				state := make([]complex128, 16)
				state[m.occupation(occ)] = 1
				want := 0.0
				if occ[j] {
					want = 1
				}
				assert.InDelta(Te, want, real(N.Expectation(state)), 1e-12, m.Name())
			}
		}
	}
}

func h2Problem(Te *testing.T) *problem.ElectronicStructureProblem {
	mol, err := chem.ParseAtomString("H .0 .0 .0; H .0 .0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	h := qm.NewSCFHandle()
	require.NoError(Te, h.BuildInput(mol, &qm.Calc{}))
	require.NoError(Te, h.Run(context.Background()))
	ints, err := h.Integrals()
	require.NoError(Te, err)
	P, err := problem.NewElectronicStructureProblem(ints)
	require.NoError(Te, err)
	return P
}

func eigenvalues(Te *testing.T, O *Operator) []float64 {
	M, err := O.Matrix()
	require.NoError(Te, err)
	var es mat.EigenSym
	require.True(Te, es.Factorize(M, false))
	return es.Values(nil)
}

func TestMappersSpectrum(Te *testing.T) {
	P := h2Problem(Te)
	H, aux := P.SecondQOps()
	jw, err := Converter{Mapper: JordanWigner{}}.Convert(H, 1, 1)
	require.NoError(Te, err)
	par, err := Converter{Mapper: Parity{}}.Convert(H, 1, 1)
	require.NoError(Te, err)
	assert.True(Te, jw.IsHermitian(1e-10))
	assert.Equal(Te, 4, par.NumQubits())
	ejw := eigenvalues(Te, jw)
	epar := eigenvalues(Te, par)
	assert.InDeltaSlice(Te, ejw, epar, 1e-8)
	assert.InDelta(Te, -1.857275, ejw[0], 1e-5)

	conv := Converter{Mapper: Parity{}, TwoQubitReduction: true}
	red, err := conv.Convert(H, 1, 1)
	require.NoError(Te, err)
	assert.Equal(Te, 2, red.NumQubits())
	assert.Equal(Te, 2, conv.NumQubits(4))
	ered := eigenvalues(Te, red)
	assert.InDelta(Te, ejw[0], ered[0], 1e-8)

	//the Hartree-Fock state gives the HF energy, with both mappings, reduced or not.
	for _, c := range []Converter{{Mapper: JordanWigner{}}, {Mapper: Parity{}}, conv} {
		q, err := c.Convert(H, 1, 1)
		require.NoError(Te, err)
		k, n := c.HartreeFockState(2, 1, 1)
		state := make([]complex128, 1<<uint(n))
		state[k] = 1
		assert.InDelta(Te, P.ReferenceEnergy-P.NuclearRepulsion, real(q.Expectation(state)), 1e-8)
		N, err := c.Convert(aux[problem.ParticleNumber], 1, 1)
		require.NoError(Te, err)
		assert.InDelta(Te, 2.0, real(N.Expectation(state)), 1e-10)
	}
	//S+ changes the alpha parity, so it can't be tapered.
	Sp := fermion.New(4)
	Sp.AddTerm(1, fermion.Create(0), fermion.Annihilate(2))
	_, err = conv.Convert(Sp, 1, 1)
	assert.Error(Te, err)
}

func TestNewMapper(Te *testing.T) {
	m, err := NewMapper("Parity")
	require.NoError(Te, err)
	assert.Equal(Te, "parity", m.Name())
	m, err = NewMapper("jw")
	require.NoError(Te, err)
	assert.Equal(Te, "jordan_wigner", m.Name())
	_, err = NewMapper("bravyi_kitaev")
	assert.Error(Te, err)
}

func TestRemoveBits(Te *testing.T) {
	assert.Equal(Te, uint64(0b101), removeBits(0b10011, 1, 3))
	assert.Equal(Te, uint64(0), removeBits(0b11, 0, 1))
}

func TestTooManyQubits(Te *testing.T) {
	op := fermion.New(66)
	op.AddTerm(1, fermion.Create(65), fermion.Annihilate(65))
	for _, conv := range []Converter{{Mapper: JordanWigner{}}, {Mapper: Parity{}, TwoQubitReduction: true}} {
		var err error
		assert.NotPanics(Te, func() { _, err = conv.Convert(op, 1, 1) })
		assert.Error(Te, err)
	}
	_, err := FromLabels(map[string]complex128{strings.Repeat("Z", 65): 1})
	assert.Error(Te, err)
}
