/*
 * qm_test.go, part of govqe.
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

package qm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/govqe"
)

func runRHF(Te *testing.T, atoms string) *SCFHandle {
	mol, err := chem.ParseAtomString(atoms, chem.Angstrom)
	require.NoError(Te, err)
	calc := &Calc{Basis: "sto3g"}
	h := NewSCFHandle()
	h.SetName("test")
	require.NoError(Te, h.BuildInput(mol, calc))
	require.NoError(Te, h.Run(context.Background()))
	return h
}

func TestRHFH2(Te *testing.T) {
	h := runRHF(Te, "H .0 .0 .0; H .0 .0 0.735")
	e, err := h.Energy()
	require.NoError(Te, err)
	assert.InDelta(Te, -1.11700, e, 1e-4)
	ints, err := h.Integrals()
	require.NoError(Te, err)
	assert.Equal(Te, 2, ints.NumOrbitals)
	assert.Equal(Te, 0, ints.CoreOrbitals)
	assert.InDelta(Te, 0.71997, ints.NuclearRepulsion, 1e-5)
	a, b := ints.NumParticles()
	assert.Equal(Te, 1, a)
	assert.Equal(Te, 1, b)
	assert.Less(Te, ints.OrbitalEnergies[0], ints.OrbitalEnergies[1])
}

//The HF energy must be recovered from the MO integrals.
func TestMOIntegrals(Te *testing.T) {
	h := runRHF(Te, "Li 0 0 0; H 0 0 1.6")
	ints, err := h.Integrals()
	require.NoError(Te, err)
	assert.Equal(Te, 6, ints.NumOrbitals)
	assert.Equal(Te, 1, ints.CoreOrbitals)
	e := ints.NuclearRepulsion
	for i := 0; i < ints.NumAlpha; i++ {
		e += 2 * ints.H1.At(i, i)
		for j := 0; j < ints.NumAlpha; j++ {
			e += 2*ints.H2.At(i, i, j, j) - ints.H2.At(i, j, j, i)
		}
	}
	assert.InDelta(Te, ints.HFEnergy, e, 1e-7)
	//the Fock matrix is diagonal in the MO basis, with the orbital energies in the diagonal.
	for p := 0; p < ints.NumOrbitals; p++ {
		f := ints.H1.At(p, p)
		for i := 0; i < ints.NumAlpha; i++ {
			f += 2*ints.H2.At(p, p, i, i) - ints.H2.At(p, i, i, p)
		}
		assert.InDelta(Te, ints.OrbitalEnergies[p], f, 1e-5)
	}
}

func TestWater(Te *testing.T) {
	h := runRHF(Te, "O 0 0 0.1173; H 0 0.7572 -0.4692; H 0 -0.7572 -0.4692")
	e, err := h.Energy()
	require.NoError(Te, err)
	assert.Less(Te, e, -74.9)
	assert.Greater(Te, e, -75.0)
}

func TestOpenShell(Te *testing.T) {
	mol, err := chem.ParseAtomString("H 0 0 0; H 0 0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	mol.SetMulti(3)
	h := NewSCFHandle()
	assert.Error(Te, h.BuildInput(mol, &Calc{}))
	_, err = h.Energy()
	assert.Error(Te, err)
	mol.SetMulti(2)
	assert.Error(Te, h.BuildInput(mol, &Calc{}))
}

func TestBadInput(Te *testing.T) {
	mol, err := chem.ParseAtomString("H 0 0 0; H 0 0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	h := NewSCFHandle()
	assert.Error(Te, h.BuildInput(mol, &Calc{Basis: "cc-pvqz"}))
	assert.Error(Te, h.BuildInput(mol, &Calc{Method: "CCSD"}))
	assert.Error(Te, h.Run(context.Background()))
	//atoms moved onto each other after the molecule was built.
	mol.Coords.Set(1, 2, 0)
	assert.Error(Te, h.BuildInput(mol, &Calc{}))
}

func TestNoElectrons(Te *testing.T) {
	mol, err := chem.ParseAtomString("H 0 0 0; H 0 0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	mol.SetCharge(2)
	h := NewSCFHandle()
	require.NoError(Te, h.BuildInput(mol, &Calc{}))
	require.NoError(Te, h.Run(context.Background()))
	e, err := h.Energy()
	require.NoError(Te, err)
	assert.InDelta(Te, 0.71997, e, 1e-5)
	ints, err := h.Integrals()
	require.NoError(Te, err)
	a, b := ints.NumParticles()
	assert.Equal(Te, 0, a+b)
}

func TestCancel(Te *testing.T) {
	mol, err := chem.ParseAtomString("H 0 0 0; H 0 0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	h := NewSCFHandle()
	require.NoError(Te, h.BuildInput(mol, &Calc{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(Te, h.Run(ctx))
}
