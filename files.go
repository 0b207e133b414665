/*
 * files.go, part of govqe.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	v3 "github.com/rmera/govqe/v3"
)

//ParseAtomString reads a geometry in the format used by PySCF,
//"Sym x y z; Sym x y z", where the atoms can also be separated by
//newlines. unit is Angstrom or Bohr. The returned molecule has its
//coordinates in Angstrom, charge 0 and multiplicity 1.
func ParseAtomString(geometry, unit string) (*Molecule, error) {
	scale, err := unitScale(unit)
	if err != nil {
		return nil, errDecorate(err, "ParseAtomString")
	}
	fields := strings.FieldsFunc(geometry, func(r rune) bool { return r == ';' || r == '\n' })
	var atoms []*Atom
	var coords []float64
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		at, c, err := parseAtomLine(f)
		if err != nil {
			return nil, CError{fmt.Sprintf("%s: atom %d (%q): %s", BadAtomString, i+1, f, err.Error()), []string{"ParseAtomString"}, true}
		}
		at.Id = len(atoms) + 1
		atoms = append(atoms, at)
		for _, v := range c {
			coords = append(coords, v*scale)
		}
	}
	if len(atoms) == 0 {
		return nil, CError{BadAtomString + ": no atoms in " + strconv.Quote(geometry), []string{"ParseAtomString"}, true}
	}
	return buildMolecule(atoms, coords, "ParseAtomString")
}

//parseAtomLine parses "Sym x y z".
func parseAtomLine(line string) (*Atom, [3]float64, error) {
	var c [3]float64
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, c, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	at, err := NewAtom(fields[0])
	if err != nil {
		return nil, c, err
	}
	for j := 0; j < 3; j++ {
		c[j], err = strconv.ParseFloat(fields[j+1], 64)
		if err != nil {
			return nil, c, err
		}
	}
	return at, c, nil
}

func unitScale(unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case Angstrom, "", "a", "ang":
		return 1, nil
	case Bohr, "b", "au":
		return Bohr2A, nil
	default:
		return 0, CError{BadUnit + ": " + unit, []string{"unitScale"}, true}
	}
}

func buildMolecule(atoms []*Atom, coords []float64, caller string) (*Molecule, error) {
	top, err := NewTopology(atoms, 0, 1)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, CError{err.Error(), []string{"v3.NewMatrix", caller}, true}
	}
	mol, err := NewMolecule(top, c)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	return mol, nil
}

//XYZFileRead reads a molecule from an xyz file. Files ending in .gz
//or .zst are decompressed on the fly. Only the first frame is read.
func XYZFileRead(xyzname string) (*Molecule, error) {
	f, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{UnableToOpen + ": " + err.Error(), []string{"os.Open", "XYZFileRead"}, true}
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(xyzname, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, CError{UnableToOpen + ": " + err.Error(), []string{"gzip.NewReader", "XYZFileRead"}, true}
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(xyzname, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, CError{UnableToOpen + ": " + err.Error(), []string{"zstd.NewReader", "XYZFileRead"}, true}
		}
		defer zr.Close()
		r = zr
	}
	mol, err := XYZRead(r)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+xyzname)
	}
	return mol, nil
}

//XYZRead reads the first frame of an xyz stream. The comment line
//is ignored, unless it contains "charge=" and/or "multi=" fields, which
//are then used to set the charge and multiplicity of the molecule.
func XYZRead(r io.Reader) (*Molecule, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return nil, CError{BadAtomString + ": empty xyz", []string{"XYZRead"}, true}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, CError{BadAtomString + ": bad atom count " + strconv.Quote(strings.TrimSpace(line)), []string{"XYZRead"}, true}
	}
	comment, _ := br.ReadString('\n')
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, err = br.ReadString('\n')
		if strings.TrimSpace(line) == "" && err != nil {
			return nil, CError{fmt.Sprintf("%s: expected %d atoms, got %d", BadAtomString, natoms, i), []string{"XYZRead"}, true}
		}
		at, c, perr := parseAtomLine(line)
		if perr != nil {
			return nil, CError{fmt.Sprintf("%s: line %d: %s", BadAtomString, i+3, perr.Error()), []string{"XYZRead"}, true}
		}
		at.Id = i + 1
		atoms = append(atoms, at)
		coords = append(coords, c[:]...)
	}
	mol, err := buildMolecule(atoms, coords, "XYZRead")
	if err != nil {
		return nil, err
	}
	readCommentSettings(comment, mol)
	return mol, nil
}

//readCommentSettings looks for charge= and multi= in the comment line of an xyz file.
func readCommentSettings(comment string, mol *Molecule) {
	for _, f := range strings.Fields(comment) {
		kv := strings.SplitN(f, "=", 2)
		if len(kv) != 2 {
			continue
		}
		v, err := strconv.Atoi(kv[1])
		if err != nil {
			log.Warnf("Ignoring xyz comment field %q", f)
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "charge":
			mol.SetCharge(v)
		case "multi", "multiplicity":
			mol.SetMulti(v)
		}
	}
}

//XYZWrite writes the molecule in xyz format to w.
func XYZWrite(w io.Writer, mol *Molecule) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	if _, err := fmt.Fprintf(w, "%d\ncharge=%d multi=%d\n", mol.Len(), mol.Charge(), mol.Multi()); err != nil {
		return CError{err.Error(), []string{"XYZWrite"}, true}
	}
	for i := 0; i < mol.Len(); i++ {
		c := mol.Coords.Vec(i)
		if _, err := fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", mol.Atom(i).Symbol, c[0], c[1], c[2]); err != nil {
			return CError{err.Error(), []string{"XYZWrite"}, true}
		}
	}
	return nil
}
