/*
 * gto_test.go, part of govqe.
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

package gto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/govqe"
)

func h2(Te *testing.T) *chem.Molecule {
	mol, err := chem.ParseAtomString("H .0 .0 .0; H .0 .0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	return mol
}

func TestBasisNames(Te *testing.T) {
	for _, name := range []string{"sto3g", "STO-3G", "sto-3g", "Sto_3G"} {
		assert.True(Te, Supported(name), name)
	}
	assert.False(Te, Supported("6-31g"))
	_, err := NewBasisSet("not-a-basis", h2(Te))
	assert.Error(Te, err)
}

func TestMissingElement(Te *testing.T) {
	mol, err := chem.ParseAtomString("Na 0 0 0; H 0 0 1.9", chem.Angstrom)
	require.NoError(Te, err)
	_, err = NewBasisSet("sto3g", mol)
	assert.Error(Te, err)
}

func TestNormalization(Te *testing.T) {
	mol, err := chem.ParseAtomString("O 0 0 0.1173; H 0 0.7572 -0.4692; H 0 -0.7572 -0.4692", chem.Angstrom)
	require.NoError(Te, err)
	bs, err := NewBasisSet("sto3g", mol)
	require.NoError(Te, err)
	assert.Equal(Te, 7, bs.Len())
	S := bs.Overlap()
	for i := 0; i < bs.Len(); i++ {
		assert.InDelta(Te, 1.0, S.At(i, i), 1e-10)
	}
	//1s and 2px in the same atom are orthogonal by symmetry.
	assert.InDelta(Te, 0.0, S.At(0, 2), 1e-12)
}

func TestBoys(Te *testing.T) {
	assert.InDelta(Te, 1.0, Boys(0, 0), 1e-14)
	assert.InDelta(Te, 1.0/3, Boys(1, 0), 1e-14)
	//F0(x) = sqrt(pi/x)/2 erf(sqrt(x))
	for _, x := range []float64{0.1, 1, 5, 30} {
		assert.InDelta(Te, 0.5*math.Sqrt(math.Pi/x)*math.Erf(math.Sqrt(x)), Boys(0, x), 1e-12)
	}
}

//Reference values from Szabo and Ostlund, table 3.5, for H2 at R=1.4 bohr.
func TestH2Integrals(Te *testing.T) {
	mol, err := chem.ParseAtomString("H 0 0 0; H 0 0 1.4", chem.Bohr)
	require.NoError(Te, err)
	bs, err := NewBasisSet("sto-3g", mol)
	require.NoError(Te, err)
	S := bs.Overlap()
	assert.InDelta(Te, 0.6593, S.At(0, 1), 2e-4)
	T := bs.Kinetic()
	assert.InDelta(Te, 0.7600, T.At(0, 0), 2e-4)
	assert.InDelta(Te, 0.2365, T.At(0, 1), 2e-4)
	H := bs.CoreHamiltonian(mol)
	assert.InDelta(Te, -1.1204, H.At(0, 0), 2e-4)
	assert.InDelta(Te, -0.9584, H.At(0, 1), 2e-4)
	E := bs.Repulsion()
	assert.InDelta(Te, 0.7746, E.At(0, 0, 0, 0), 2e-4)
	assert.InDelta(Te, 0.5697, E.At(0, 0, 1, 1), 2e-4)
	assert.InDelta(Te, 0.4441, E.At(1, 0, 0, 0), 2e-4)
	assert.InDelta(Te, 0.2970, E.At(1, 0, 1, 0), 2e-4)
	assert.Equal(Te, E.At(0, 1, 0, 0), E.At(0, 0, 1, 0))
}
