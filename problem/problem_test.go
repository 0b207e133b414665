/*
 * problem_test.go, part of govqe.
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

package problem

import (
	"context"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/govqe"
	"github.com/rmera/govqe/fermion"
	"github.com/rmera/govqe/qm"
)

func integrals(Te *testing.T, atoms string) *qm.Integrals {
	mol, err := chem.ParseAtomString(atoms, chem.Angstrom)
	require.NoError(Te, err)
	h := qm.NewSCFHandle()
	require.NoError(Te, h.BuildInput(mol, &qm.Calc{Basis: "sto3g"}))
	require.NoError(Te, h.Run(context.Background()))
	ints, err := h.Integrals()
	require.NoError(Te, err)
	return ints
}

//determinantExpectation returns <D|O|D> for the determinant with the
//modes set in occ occupied.
func determinantExpectation(O *fermion.Op, occ uint64) float64 {
	var e float64
	for _, t := range O.Terms() {
		state := occ
		sign := 1.0
		ok := true
		for i := len(t.Ops) - 1; i >= 0 && ok; i-- {
			m := t.Ops[i].Mode
			set := state&(1<<m) != 0
			if t.Ops[i].Dagger == set {
				ok = false
				break
			}
			if bits.OnesCount64(state&((1<<m)-1))%2 == 1 {
				sign = -sign
			}
			state ^= 1 << m
		}
		if ok && state == occ {
			e += sign * real(t.Coeff)
		}
	}
	return e
}

func hfDeterminant(P *ElectronicStructureProblem) uint64 {
	var occ uint64
	n := P.NumSpatialOrbitals
	for i := 0; i < P.NumAlpha; i++ {
		occ |= 1 << i
	}
	for i := 0; i < P.NumBeta; i++ {
		occ |= 1 << (i + n)
	}
	return occ
}

func TestH2FreezeCore(Te *testing.T) {
	ints := integrals(Te, "H .0 .0 .0; H .0 .0 0.735")
	P, err := NewElectronicStructureProblem(ints)
	require.NoError(Te, err)
	R, err := P.Transform(FreezeCore{Freeze: true})
	require.NoError(Te, err)
	assert.Equal(Te, 2, R.NumSpatialOrbitals)
	assert.Equal(Te, 4, R.NumSpinOrbitals())
	assert.Equal(Te, 0.0, R.ExtractedEnergies["FreezeCoreTransformer"])
	assert.Equal(Te, []string{"FreezeCoreTransformer"}, R.Transformers())
	H, aux := R.SecondQOps()
	assert.Equal(Te, 4, H.NumModes())
	occ := hfDeterminant(R)
	assert.InDelta(Te, ints.HFEnergy-ints.NuclearRepulsion, determinantExpectation(H, occ), 1e-8)
	assert.InDelta(Te, 2.0, determinantExpectation(aux[ParticleNumber], occ), 1e-12)
	assert.InDelta(Te, 0.0, determinantExpectation(aux[Magnetization], occ), 1e-12)
	assert.InDelta(Te, 0.0, determinantExpectation(aux[AngularMomentum], occ), 1e-12)
	//a triplet-like determinant, both electrons alpha.
	assert.InDelta(Te, 2.0, determinantExpectation(aux[AngularMomentum], 0b0011), 1e-12)
	assert.InDelta(Te, 1.0, determinantExpectation(aux[Magnetization], 0b0011), 1e-12)
}

func TestLiHFreezeCore(Te *testing.T) {
	ints := integrals(Te, "Li 0 0 0; H 0 0 1.6")
	P, err := NewElectronicStructureProblem(ints)
	require.NoError(Te, err)
	R, err := P.Transform(FreezeCore{Freeze: true, RemoveOrbitals: []int{3, 4}})
	require.NoError(Te, err)
	assert.Equal(Te, 3, R.NumSpatialOrbitals)
	a, b := R.NumParticles()
	assert.Equal(Te, 1, a)
	assert.Equal(Te, 1, b)
	ecore := R.ExtractedEnergies["FreezeCoreTransformer"]
	assert.Less(Te, ecore, -7.0)
	H, _ := R.SecondQOps()
	e := determinantExpectation(H, hfDeterminant(R)) + ecore + R.NuclearRepulsion
	assert.InDelta(Te, ints.HFEnergy, e, 1e-8)
	//the original is untouched
	assert.Equal(Te, 6, P.NumSpatialOrbitals)
	assert.Empty(Te, P.ExtractedEnergies)

	_, err = P.Transform(FreezeCore{RemoveOrbitals: []int{7}})
	assert.Error(Te, err)
}

func TestActiveSpace(Te *testing.T) {
	ints := integrals(Te, "Li 0 0 0; H 0 0 1.6")
	P, err := NewElectronicStructureProblem(ints)
	require.NoError(Te, err)
	R, err := P.Transform(ActiveSpace{NumElectrons: 2, NumSpatialOrbitals: 2})
	require.NoError(Te, err)
	assert.Equal(Te, 2, R.NumSpatialOrbitals)
	H, _ := R.SecondQOps()
	e := determinantExpectation(H, hfDeterminant(R)) + R.ExtractedEnergies["ActiveSpaceTransformer"] + R.NuclearRepulsion
	assert.InDelta(Te, ints.HFEnergy, e, 1e-8)
	_, err = P.Transform(ActiveSpace{NumElectrons: 3, NumSpatialOrbitals: 2})
	assert.Error(Te, err)
	_, err = P.Transform(ActiveSpace{NumElectrons: 2, NumSpatialOrbitals: 9})
	assert.Error(Te, err)
}

func TestResult(Te *testing.T) {
	P := &ElectronicStructureProblem{NuclearRepulsion: 0.7, ExtractedEnergies: map[string]float64{"FreezeCoreTransformer": -1}}
	r := P.Interpret(complex(-2, 0), map[string]float64{AngularMomentum: 2, ParticleNumber: 2})
	assert.InDelta(Te, -3.0, r.ElectronicEnergy(), 1e-12)
	assert.InDelta(Te, -2.3, r.TotalEnergy(), 1e-12)
	s, ok := r.Spin()
	assert.True(Te, ok)
	assert.InDelta(Te, 1.0, s, 1e-12)
	assert.Contains(Te, r.String(), "Total ground state energy (Hartree): -2.3")
}
