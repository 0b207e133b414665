/*
 * chem.go, part of govqe.
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
	"fmt"
	"math"

	v3 "github.com/rmera/govqe/v3"
)

//Atom contains the information of one atom except for its coordinates,
//which live in the Coords matrix of the Molecule.
type Atom struct {
	Symbol string
	Z      int //atomic number, also the nuclear charge.
	Id     int
}

/*****Topology type***/

//Topology contains the information about a molecule which is not expected to change
//during a calculation, i.e. everything except for coordinates.
type Topology struct {
	Atoms  []*Atom
	charge int
	multi  int
}

//NewTopology returns a topology with the given atoms, charge and multiplicity.
//It returns error if ats is nil. It doesn't check that the charge and
//multiplicity are consistent with the atoms. Use Electrons for that.
func NewTopology(ats []*Atom, charge, multi int) (*Topology, error) {
	if ats == nil {
		return nil, CError{NilAtoms, []string{"NewTopology"}, true}
	}
	return &Topology{Atoms: ats, charge: charge, multi: multi}, nil
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Multi returns the multiplicity of the topology
func (T *Topology) Multi() int {
	return T.multi
}

//SetCharge sets the total charge of the topology to i
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

//SetMulti sets the multiplicity of the topology to i
func (T *Topology) SetMulti(i int) {
	T.multi = i
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Electrons returns the total number of electrons and the number of
//alpha and beta electrons, given the charge and multiplicity of
//the topology. It returns error if the multiplicity is not compatible
//with the number of electrons.
func (T *Topology) Electrons() (total, alpha, beta int, err error) {
	for _, at := range T.Atoms {
		total += at.Z
	}
	total -= T.charge
	unpaired := T.multi - 1
	if total < 0 || unpaired < 0 || unpaired > total || (total-unpaired)%2 != 0 {
		return 0, 0, 0, CError{fmt.Sprintf("%s: %d electrons, multiplicity %d", BadMultiplicity, total, T.multi), []string{"Electrons"}, true}
	}
	beta = (total - unpaired) / 2
	alpha = beta + unpaired
	return total, alpha, beta, nil
}

/**Molecule type**/

//Molecule contains a topology and one set of coordinates, in Angstrom.
type Molecule struct {
	*Topology
	Coords *v3.Matrix
}

//NewMolecule makes a molecule with the given topology and coordinates.
func NewMolecule(top *Topology, coords *v3.Matrix) (*Molecule, error) {
	if top == nil || coords == nil {
		return nil, CError{NilAtoms, []string{"NewMolecule"}, true}
	}
	if coords.NVecs() != top.Len() {
		return nil, CError{fmt.Sprintf("%s: %d atoms, %d coordinates", MismatchedLen, top.Len(), coords.NVecs()), []string{"NewMolecule"}, true}
	}
	mol := &Molecule{Topology: top, Coords: coords}
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//MinAtomDistance is the shortest distance, in Angstrom, allowed between two atoms.
const MinAtomDistance = 1e-4

//Corrupted returns an error if the molecule is not consistent, or if two of its
//atoms are closer than MinAtomDistance.
func (M *Molecule) Corrupted() error {
	if M.Topology == nil || M.Coords == nil {
		return CError{NilAtoms, []string{"Corrupted"}, true}
	}
	if M.Coords.NVecs() != M.Len() {
		return CError{MismatchedLen, []string{"Corrupted"}, true}
	}
	if d := M.MinDistance(); d < MinAtomDistance {
		return CError{fmt.Sprintf("%s: %g A", OverlappingAtoms, d), []string{"Corrupted"}, true}
	}
	return nil
}

//BohrCoords returns a copy of the coordinates of the molecule in Bohr.
func (M *Molecule) BohrCoords() *v3.Matrix {
	b := v3.Zeros(M.Coords.NVecs())
	b.Scale(A2Bohr, M.Coords)
	return b
}

//NuclearRepulsion returns the nuclear repulsion energy of the molecule, in Hartree.
//It panics if two atoms occupy the same position, which Corrupted reports as an error.
func (M *Molecule) NuclearRepulsion() float64 {
	coords := M.BohrCoords()
	var e float64
	for i := 0; i < M.Len(); i++ {
		for j := 0; j < i; j++ {
			r := v3.Distance(coords.VecView(i), coords.VecView(j))
			if r == 0 {
				panic(fmt.Sprintf("Atoms %d and %d overlap", i, j))
			}
			e += float64(M.Atom(i).Z*M.Atom(j).Z) / r
		}
	}
	return e
}

//MinDistance returns the shortest interatomic distance in Angstrom, or +Inf
//for one-atom molecules.
func (M *Molecule) MinDistance() float64 {
	min := math.Inf(1)
	for i := 0; i < M.Len(); i++ {
		for j := 0; j < i; j++ {
			if d := v3.Distance(M.Coords.VecView(i), M.Coords.VecView(j)); d < min {
				min = d
			}
		}
	}
	return min
}
