/*
 * fermion.go, part of govqe.
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

//Package fermion implements second-quantized fermionic operators: weighted
//sums of products of creation and annihilation operators over a finite
//number of modes (spin orbitals).
package fermion

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strings"
)

//Ladder is a creation (Dagger true) or annihilation operator on a mode.
type Ladder struct {
	Mode   int
	Dagger bool
}

//Create returns the creation operator for mode i.
func Create(i int) Ladder { return Ladder{i, true} }

//Annihilate returns the annihilation operator for mode i.
func Annihilate(i int) Ladder { return Ladder{i, false} }

func (L Ladder) String() string {
	if L.Dagger {
		return fmt.Sprintf("+_%d", L.Mode)
	}
	return fmt.Sprintf("-_%d", L.Mode)
}

//Term is a product of ladder operators, applied right to left, with a coefficient.
type Term struct {
	Ops   []Ladder
	Coeff complex128
}

//Label returns the operator string of the term, as "+_0 -_1".
func (T Term) Label() string {
	s := make([]string, len(T.Ops))
	for i, o := range T.Ops {
		s[i] = o.String()
	}
	return strings.Join(s, " ")
}

//Op is a sum of Terms acting on NumModes fermionic modes.
type Op struct {
	numModes int
	terms    []Term
}

//New returns an empty (zero) operator over n modes.
func New(n int) *Op {
	return &Op{numModes: n}
}

//NumModes returns the number of modes the operator acts on.
func (O *Op) NumModes() int { return O.numModes }

//Len returns the number of terms.
func (O *Op) Len() int { return len(O.terms) }

//Terms returns the terms of the operator. The slice should not be modified.
func (O *Op) Terms() []Term { return O.terms }

//AddTerm adds c*ops to the operator, in place. It panics if a mode is out of range.
func (O *Op) AddTerm(c complex128, ops ...Ladder) {
	for _, o := range ops {
		if o.Mode < 0 || o.Mode >= O.numModes {
			panic(fmt.Sprintf("fermion: mode %d out of range for %d modes", o.Mode, O.numModes))
		}
	}
	O.terms = append(O.terms, Term{append([]Ladder(nil), ops...), c})
}

//Copy returns a deep copy of the operator.
func (O *Op) Copy() *Op {
	r := New(O.numModes)
	for _, t := range O.terms {
		r.AddTerm(t.Coeff, t.Ops...)
	}
	return r
}

func maxModes(a, b int) int {
	if a > b {
		return a
	}
	return b
}

//Add returns O+B.
func (O *Op) Add(B *Op) *Op {
	r := O.Copy()
	r.numModes = maxModes(O.numModes, B.numModes)
	for _, t := range B.terms {
		r.AddTerm(t.Coeff, t.Ops...)
	}
	return r
}

//Scale returns c*O.
func (O *Op) Scale(c complex128) *Op {
	r := New(O.numModes)
	for _, t := range O.terms {
		r.AddTerm(c*t.Coeff, t.Ops...)
	}
	return r
}

//Compose returns the product O·B (B acts first).
func (O *Op) Compose(B *Op) *Op {
	r := New(maxModes(O.numModes, B.numModes))
	for _, t := range O.terms {
		for _, u := range B.terms {
			ops := make([]Ladder, 0, len(t.Ops)+len(u.Ops))
			ops = append(ops, t.Ops...)
			ops = append(ops, u.Ops...)
			r.AddTerm(t.Coeff*u.Coeff, ops...)
		}
	}
	return r
}

//vanishes returns true if the product contains the same ladder operator twice
//in a row, which makes it zero.
func vanishes(ops []Ladder) bool {
	for i := 1; i < len(ops); i++ {
		if ops[i] == ops[i-1] {
			return true
		}
	}
	return false
}

//Simplify merges terms with the same operator string and drops those
//with coefficients smaller than atol in absolute value, and those that are
//trivially zero. The terms are returned sorted by label.
func (O *Op) Simplify(atol float64) *Op {
	sum := make(map[string]complex128)
	ops := make(map[string][]Ladder)
	for _, t := range O.terms {
		if vanishes(t.Ops) {
			continue
		}
		l := t.Label()
		sum[l] += t.Coeff
		ops[l] = t.Ops
	}
	labels := make([]string, 0, len(sum))
	for l, c := range sum {
		if cmplx.Abs(c) > atol {
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)
	r := New(O.numModes)
	for _, l := range labels {
		r.AddTerm(sum[l], ops[l]...)
	}
	return r
}

//Number returns the number operator a†_i a_i for mode i over n modes.
func Number(n, i int) *Op {
	r := New(n)
	r.AddTerm(1, Create(i), Annihilate(i))
	return r
}

func (O *Op) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fermionic Operator\nnumber spin orbitals=%d, number terms=%d\n", O.numModes, len(O.terms))
	for _, t := range O.terms {
		fmt.Fprintf(&b, "  %v * ( %s )\n", t.Coeff, t.Label())
	}
	return b.String()
}
