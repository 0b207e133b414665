/*
 * chem_test.go, part of govqe.
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

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const h2 = "H .0 .0 .0; H .0 .0 0.735"

const waterXYZ = `3
charge=0 multi=1
O   0.000000   0.000000   0.117300
H   0.000000   0.757200  -0.469200
H   0.000000  -0.757200  -0.469200
`

func TestParseAtomString(Te *testing.T) {
	mol, err := ParseAtomString(h2, Angstrom)
	require.NoError(Te, err)
	assert.Equal(Te, 2, mol.Len())
	assert.Equal(Te, "H", mol.Atom(1).Symbol)
	assert.Equal(Te, 2, mol.Atom(1).Id)
	assert.InDelta(Te, 0.735, mol.Coords.At(1, 2), 1e-12)
	assert.InDelta(Te, 0.71997, mol.NuclearRepulsion(), 1e-5)
	assert.InDelta(Te, 0.735, mol.MinDistance(), 1e-12)

	//lower case symbols, newlines and Bohr
	mol, err = ParseAtomString("li 0 0 0\nh 0 0 3.0", Bohr)
	require.NoError(Te, err)
	assert.Equal(Te, "Li", mol.Atom(0).Symbol)
	assert.Equal(Te, 3, mol.Atom(0).Z)
	assert.InDelta(Te, 3.0*Bohr2A, mol.Coords.At(1, 2), 1e-12)
	assert.InDelta(Te, 1.0, mol.NuclearRepulsion(), 1e-10)
}

func TestParseAtomStringErrors(Te *testing.T) {
	for _, s := range []string{"", " ; ", "H 0 0", "H 0 0 x", "Q 0 0 0", "H 0 0 0 0"} {
		_, err := ParseAtomString(s, Angstrom)
		assert.Error(Te, err, s)
	}
	_, err := ParseAtomString(h2, "parsec")
	assert.Error(Te, err)
	_, err = ParseAtomString("H 0 0 0; Xe 0 0 1", Angstrom)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), UnknownElement)
	assert.Contains(Te, Trace(err), "ParseAtomString")
}

func TestElectrons(Te *testing.T) {
	mol, err := ParseAtomString(h2, Angstrom)
	require.NoError(Te, err)
	total, alpha, beta, err := mol.Electrons()
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 1, 1}, []int{total, alpha, beta})
	mol.SetMulti(3)
	_, alpha, beta, err = mol.Electrons()
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 0}, []int{alpha, beta})
	mol.SetMulti(2)
	_, _, _, err = mol.Electrons()
	assert.Error(Te, err)
	mol.SetMulti(2)
	mol.SetCharge(1)
	total, alpha, beta, err = mol.Electrons()
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 1, 0}, []int{total, alpha, beta})
	mol.SetCharge(3)
	_, _, _, err = mol.Electrons()
	assert.Error(Te, err)
}

func TestXYZ(Te *testing.T) {
	mol, err := XYZRead(strings.NewReader(waterXYZ))
	require.NoError(Te, err)
	assert.Equal(Te, 3, mol.Len())
	assert.Equal(Te, "O", mol.Atom(0).Symbol)
	var buf bytes.Buffer
	require.NoError(Te, XYZWrite(&buf, mol))
	mol2, err := XYZRead(&buf)
	require.NoError(Te, err)
	assert.InDelta(Te, mol.NuclearRepulsion(), mol2.NuclearRepulsion(), 1e-5)

	charged := strings.Replace(waterXYZ, "charge=0 multi=1", "charge=1 multi=2", 1)
	mol, err = XYZRead(strings.NewReader(charged))
	require.NoError(Te, err)
	assert.Equal(Te, 1, mol.Charge())
	assert.Equal(Te, 2, mol.Multi())

	for _, bad := range []string{"", "two\n\n", "3\n\nO 0 0 0\n", "1\n\nO 0 0\n"} {
		_, err := XYZRead(strings.NewReader(bad))
		assert.Error(Te, err, bad)
	}
}

func TestXYZFileRead(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "water.xyz")
	require.NoError(Te, os.WriteFile(plain, []byte(waterXYZ), 0o644))

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(waterXYZ))
	require.NoError(Te, err)
	require.NoError(Te, gw.Close())
	gzName := filepath.Join(dir, "water.xyz.gz")
	require.NoError(Te, os.WriteFile(gzName, gz.Bytes(), 0o644))

	zw, err := zstd.NewWriter(nil)
	require.NoError(Te, err)
	zstName := filepath.Join(dir, "water.xyz.zst")
	require.NoError(Te, os.WriteFile(zstName, zw.EncodeAll([]byte(waterXYZ), nil), 0o644))
	require.NoError(Te, zw.Close())

	for _, name := range []string{plain, gzName, zstName} {
		mol, err := XYZFileRead(name)
		require.NoError(Te, err, name)
		assert.Equal(Te, 3, mol.Len(), name)
		assert.Equal(Te, 1, mol.Multi(), name)
	}
	_, err = XYZFileRead(filepath.Join(dir, "missing.xyz"))
	assert.Error(Te, err)
}

func TestAtomicData(Te *testing.T) {
	z, ok := AtomicNumber("HE")
	assert.True(Te, ok)
	assert.Equal(Te, 2, z)
	_, ok = AtomicNumber("Uuo")
	assert.False(Te, ok)
	assert.Equal(Te, 0, CoreOrbitals(1))
	assert.Equal(Te, 1, CoreOrbitals(8))
	assert.Equal(Te, 5, CoreOrbitals(17))
	at, err := NewAtom("cl")
	require.NoError(Te, err)
	assert.Equal(Te, "Cl", at.Symbol)
	assert.Equal(Te, 17, at.Z)
}

func TestNewMoleculeErrors(Te *testing.T) {
	_, err := NewTopology(nil, 0, 1)
	assert.Error(Te, err)
	at, _ := NewAtom("H")
	top, err := NewTopology([]*Atom{at}, 0, 2)
	require.NoError(Te, err)
	_, err = NewMolecule(top, nil)
	assert.Error(Te, err)
}

func TestOverlappingAtoms(Te *testing.T) {
	_, err := ParseAtomString("H 0 0 0; H 0 0 0", Angstrom)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), OverlappingAtoms)
	assert.Contains(Te, Trace(err), "ParseAtomString")
	_, err = XYZRead(strings.NewReader("2\n\nH 0 0 1\nH 0 0 1.00001\n"))
	assert.Error(Te, err)
	mol, err := ParseAtomString(h2, Angstrom)
	require.NoError(Te, err)
	mol.Coords.Set(1, 2, 0)
	assert.Error(Te, mol.Corrupted())
}
