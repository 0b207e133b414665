/*
 * mappers.go, part of govqe.
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
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rmera/govqe/fermion"
)

//coefficients under this are dropped after mapping.
const atol = 1e-10

//Mapper maps fermionic operators to qubit operators, one qubit per mode.
type Mapper interface {
	Name() string
	//ladder returns the Pauli strings A and B so that the creation operator
	//for mode j among n is (A-iB)/2 and the annihilation one (A+iB)/2.
	ladder(j, n int) (Pauli, Pauli)
	//occupation returns the qubit basis state for the occupied modes in occ.
	occupation(occ []bool) uint64
}

//JordanWigner is the Jordan-Wigner mapping: qubit j holds the occupation of mode j.
type JordanWigner struct{}

//Name returns the mapper's name.
func (J JordanWigner) Name() string { return "jordan_wigner" }

func (J JordanWigner) ladder(j, n int) (Pauli, Pauli) {
	zs := uint64(1)<<uint(j) - 1
	x := uint64(1) << uint(j)
	return Pauli{X: x, Z: zs}, Pauli{X: x, Z: zs | x}
}

func (J JordanWigner) occupation(occ []bool) uint64 {
	var k uint64
	for i, o := range occ {
		if o {
			k |= 1 << uint(i)
		}
	}
	return k
}

//Parity is the parity mapping: qubit j holds the parity of modes 0 to j.
type Parity struct{}

//Name returns the mapper's name.
func (P Parity) Name() string { return "parity" }

func (P Parity) ladder(j, n int) (Pauli, Pauli) {
	upper := (uint64(1)<<uint(n) - 1) &^ (uint64(1)<<uint(j) - 1) //X on j..n-1
	a := Pauli{X: upper}
	if j > 0 {
		a.Z = 1 << uint(j-1)
	}
	b := Pauli{X: upper, Z: 1 << uint(j)}
	return a, b
}

func (P Parity) occupation(occ []bool) uint64 {
	var k uint64
	par := false
	for i, o := range occ {
		par = par != o
		if par {
			k |= 1 << uint(i)
		}
	}
	return k
}

//NewMapper returns the mapper with the given name: "parity" or "jordan_wigner"
//(also "jordan-wigner" and "jw").
func NewMapper(name string) (Mapper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "parity":
		return Parity{}, nil
	case "jordan_wigner", "jordan-wigner", "jordanwigner", "jw":
		return JordanWigner{}, nil
	default:
		return nil, Error{UnknownMapper + ": " + name, []string{"NewMapper"}, true}
	}
}

//Map maps op to a qubit operator on op.NumModes() qubits. It panics if op
//acts on more than 64 modes, Converter.Convert returns an error instead.
func Map(M Mapper, op *fermion.Op) *Operator {
	n := op.NumModes()
	cache := make(map[fermion.Ladder]*Operator)
	ladderOp := func(l fermion.Ladder) *Operator {
		if o, ok := cache[l]; ok {
			return o
		}
		a, b := M.ladder(l.Mode, n)
		o := NewOperator(n)
		o.terms[a] += 0.5
		if l.Dagger {
			o.terms[b] += -0.5i
		} else {
			o.terms[b] += 0.5i
		}
		cache[l] = o
		return o
	}
	result := NewOperator(n)
	for _, t := range op.Terms() {
		term := Identity(n, t.Coeff)
		for _, l := range t.Ops {
			term = term.Compose(ladderOp(l))
		}
		for p, c := range term.terms {
			result.terms[p] += c
		}
	}
	return result.Simplify(atol)
}

//Converter maps fermionic operators to qubits, optionally removing the two qubits
//that, in the parity mapping, only hold the alpha and total electron number parities.
type Converter struct {
	Mapper            Mapper
	TwoQubitReduction bool
}

//reduces returns true if the two-qubit reduction will be applied.
func (C Converter) reduces() bool {
	_, ok := C.Mapper.(Parity)
	return C.TwoQubitReduction && ok
}

//NumQubits returns the number of qubits for an operator on modes modes.
func (C Converter) NumQubits(modes int) int {
	if C.reduces() {
		return modes - 2
	}
	return modes
}

//Convert maps op, acting on 2n spin orbitals in blocked order (alpha first), to a qubit operator.
//numAlpha and numBeta select the symmetry sector for the two-qubit reduction. It returns
//error if the reduction is requested and op doesn't conserve the electron number parities.
func (C Converter) Convert(op *fermion.Op, numAlpha, numBeta int) (*Operator, error) {
	if C.Mapper == nil {
		return nil, Error{UnknownMapper + ": nil", []string{"Convert"}, true}
	}
	if op.NumModes() > 64 {
		return nil, Error{fmt.Sprintf("%s: %d modes", TooManyQubits, op.NumModes()), []string{"Convert"}, true}
	}
	q := Map(C.Mapper, op)
	if !C.TwoQubitReduction {
		return q, nil
	}
	if !C.reduces() {
		log.Warnf("Two-qubit reduction is only available with the parity mapping, ignored for %s", C.Mapper.Name())
		return q, nil
	}
	r, err := taper(q, numAlpha, numBeta)
	if err != nil {
		return nil, errDecorate(err, "Convert")
	}
	return r, nil
}

//taper removes qubits n/2-1 and n-1 of a parity-mapped operator on n qubits, replacing
//the Z on them by (-1)^numAlpha and (-1)^(numAlpha+numBeta), respectively.
func taper(O *Operator, numAlpha, numBeta int) (*Operator, error) {
	n := O.numQubits
	if n < 2 || n%2 != 0 {
		return nil, Error{CantTaper + ": odd number of qubits", []string{"taper"}, true}
	}
	qa := uint(n/2 - 1)
	qt := uint(n - 1)
	sa := complex(1, 0)
	if numAlpha%2 == 1 {
		sa = -1
	}
	st := complex(1, 0)
	if (numAlpha+numBeta)%2 == 1 {
		st = -1
	}
	r := NewOperator(n - 2)
	for _, t := range O.Terms() {
		p, c := t.Pauli, t.Coeff
		if p.X>>qa&1 == 1 || p.X>>qt&1 == 1 {
			return nil, Error{CantTaper + ": operator doesn't conserve the electron number parity", []string{"taper"}, true}
		}
		if p.Z>>qa&1 == 1 {
			c *= sa
		}
		if p.Z>>qt&1 == 1 {
			c *= st
		}
		r.terms[Pauli{removeBits(p.X, qa, qt), removeBits(p.Z, qa, qt)}] += c
	}
	return r.Simplify(atol), nil
}

//removeBits drops bits i<j from k, shifting the higher bits down.
func removeBits(k uint64, i, j uint) uint64 {
	low := k & (1<<i - 1)
	mid := (k >> (i + 1)) & (1<<(j-i-1) - 1)
	high := k >> (j + 1)
	return low | mid<<i | high<<(j-1)
}

//HartreeFockState returns the qubit basis state of the Hartree-Fock determinant for
//numSpatial orbitals with the lowest numAlpha and numBeta ones occupied, as
//mapped by C, and the number of qubits.
func (C Converter) HartreeFockState(numSpatial, numAlpha, numBeta int) (uint64, int) {
	n := 2 * numSpatial
	occ := make([]bool, n)
	for i := 0; i < numAlpha; i++ {
		occ[i] = true
	}
	for i := 0; i < numBeta; i++ {
		occ[numSpatial+i] = true
	}
	k := C.Mapper.occupation(occ)
	if C.reduces() {
		return removeBits(k, uint(numSpatial-1), uint(n-1)), n - 2
	}
	return k, n
}
