/*
 * pauli.go, part of govqe.
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

//Package qubit implements Pauli operators and the mappings from fermionic
//to qubit operators.
//Qubit k corresponds to bit k of a basis state index, and to the k-th
//character from the right in a Pauli label ("XIZ" has a Z on qubit 0).
package qubit

import (
	"fmt"
	"math/bits"
	"math/cmplx"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Pauli is a tensor product of single-qubit Pauli matrices, without phase.
//A set bit k in X (Z) means X (Z) on qubit k, bits set in both mean Y.
type Pauli struct {
	X uint64
	Z uint64
}

//single returns 0 for I, 1 for X, 2 for Y and 3 for Z on qubit q.
func (P Pauli) single(q int) int {
	x := P.X >> uint(q) & 1
	z := P.Z >> uint(q) & 1
	switch {
	case x == 1 && z == 1:
		return 2
	case x == 1:
		return 1
	case z == 1:
		return 3
	default:
		return 0
	}
}

var ipow = [4]complex128{1, 1i, -1, -1i}

//Mul returns the product P·Q as a phase and a Pauli.
func (P Pauli) Mul(Q Pauli) (complex128, Pauli) {
	ph := 0
	for both := (P.X | P.Z) & (Q.X | Q.Z); both != 0; both &= both - 1 {
		q := bits.TrailingZeros64(both)
		a, b := P.single(q), Q.single(q)
		if a == b {
			continue
		}
		if (b-a+3)%3 == 1 {
			ph++
		} else {
			ph += 3
		}
	}
	return ipow[ph%4], Pauli{P.X ^ Q.X, P.Z ^ Q.Z}
}

//IsIdentity returns true if P is the identity.
func (P Pauli) IsIdentity() bool {
	return P.X == 0 && P.Z == 0
}

//Apply returns the basis state and the phase c so that P|k> = c|k'>.
func (P Pauli) Apply(k uint64) (uint64, complex128) {
	ph := bits.OnesCount64(P.X & P.Z)
	if bits.OnesCount64(k&P.Z)%2 == 1 {
		ph += 2
	}
	return k ^ P.X, ipow[ph%4]
}

//Label returns the Pauli string for n qubits, qubit 0 rightmost.
func (P Pauli) Label(n int) string {
	b := make([]byte, n)
	for q := 0; q < n; q++ {
		b[n-1-q] = "IXYZ"[P.single(q)]
	}
	return string(b)
}

//ParsePauli reads a label such as "IXYZ", qubit 0 rightmost.
func ParsePauli(label string) (Pauli, error) {
	var P Pauli
	n := len(label)
	if n > 64 {
		return P, Error{fmt.Sprintf("%s: %d qubits", TooManyQubits, n), []string{"ParsePauli"}, true}
	}
	for i := 0; i < n; i++ {
		q := uint(n - 1 - i)
		switch label[i] {
		case 'I':
		case 'X':
			P.X |= 1 << q
		case 'Y':
			P.X |= 1 << q
			P.Z |= 1 << q
		case 'Z':
			P.Z |= 1 << q
		default:
			return P, Error{fmt.Sprintf("%s: %q", BadLabel, label), []string{"ParsePauli"}, true}
		}
	}
	return P, nil
}

//Operator is a weighted sum of Pauli strings on NumQubits qubits.
type Operator struct {
	numQubits int
	terms     map[Pauli]complex128
}

//NewOperator returns the zero operator on n qubits. It panics if n is larger than 64.
func NewOperator(n int) *Operator {
	if n > 64 {
		panic(TooManyQubits)
	}
	return &Operator{numQubits: n, terms: make(map[Pauli]complex128)}
}

//Identity returns c times the identity on n qubits.
func Identity(n int, c complex128) *Operator {
	O := NewOperator(n)
	O.terms[Pauli{}] = c
	return O
}

//FromLabels builds an operator from Pauli labels and their coefficients.
//All labels must have the same length.
func FromLabels(terms map[string]complex128) (*Operator, error) {
	var O *Operator
	for l, c := range terms {
		if O == nil {
			if len(l) > 64 {
				return nil, Error{fmt.Sprintf("%s: %d qubits", TooManyQubits, len(l)), []string{"FromLabels"}, true}
			}
			O = NewOperator(len(l))
		}
		if len(l) != O.numQubits {
			return nil, Error{fmt.Sprintf("%s: %q", BadLabel, l), []string{"FromLabels"}, true}
		}
		p, err := ParsePauli(l)
		if err != nil {
			return nil, errDecorate(err, "FromLabels")
		}
		O.terms[p] += c
	}
	if O == nil {
		return nil, Error{BadLabel + ": empty operator", []string{"FromLabels"}, true}
	}
	return O, nil
}

//NumQubits returns the number of qubits of the operator.
func (O *Operator) NumQubits() int { return O.numQubits }

//Len returns the number of Pauli terms.
func (O *Operator) Len() int { return len(O.terms) }

//Coeff returns the coefficient of P in the operator.
func (O *Operator) Coeff(P Pauli) complex128 { return O.terms[P] }

//Term is a Pauli with its coefficient.
type Term struct {
	Pauli Pauli
	Coeff complex128
}

//Terms returns the terms of the operator in a deterministic order. Sums over
//the terms follow this order, so that results are reproducible to the last bit.
func (O *Operator) Terms() []Term {
	ts := make([]Term, 0, len(O.terms))
	for p, c := range O.terms {
		ts = append(ts, Term{p, c})
	}
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Pauli.Z != ts[j].Pauli.Z {
			return ts[i].Pauli.Z < ts[j].Pauli.Z
		}
		return ts[i].Pauli.X < ts[j].Pauli.X
	})
	return ts
}

//Copy returns a copy of O.
func (O *Operator) Copy() *Operator {
	r := NewOperator(O.numQubits)
	for p, c := range O.terms {
		r.terms[p] = c
	}
	return r
}

//Add returns O+B.
func (O *Operator) Add(B *Operator) *Operator {
	r := O.Copy()
	if B.numQubits > r.numQubits {
		r.numQubits = B.numQubits
	}
	for p, c := range B.terms {
		r.terms[p] += c
	}
	return r
}

//Scale returns c*O.
func (O *Operator) Scale(c complex128) *Operator {
	r := NewOperator(O.numQubits)
	for p, v := range O.terms {
		r.terms[p] = c * v
	}
	return r
}

//Compose returns the product O·B.
func (O *Operator) Compose(B *Operator) *Operator {
	n := O.numQubits
	if B.numQubits > n {
		n = B.numQubits
	}
	r := NewOperator(n)
	bt := B.Terms()
	for _, t := range O.Terms() {
		for _, u := range bt {
			ph, pq := t.Pauli.Mul(u.Pauli)
			r.terms[pq] += ph * t.Coeff * u.Coeff
		}
	}
	return r
}

//Simplify returns O without the terms with coefficients smaller than atol in absolute value.
func (O *Operator) Simplify(atol float64) *Operator {
	r := NewOperator(O.numQubits)
	for p, c := range O.terms {
		if cmplx.Abs(c) > atol {
			r.terms[p] = c
		}
	}
	return r
}

//IsHermitian returns true if all the coefficients are real within atol.
func (O *Operator) IsHermitian(atol float64) bool {
	for _, c := range O.Simplify(atol).terms {
		if abs(imag(c)) > atol {
			return false
		}
	}
	return true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

//Apply returns O|psi>. psi must have 2^NumQubits elements.
func (O *Operator) Apply(psi []complex128) []complex128 {
	out := make([]complex128, len(psi))
	for _, t := range O.Terms() {
		for k, a := range psi {
			if a == 0 {
				continue
			}
			k2, ph := t.Pauli.Apply(uint64(k))
			out[k2] += t.Coeff * ph * a
		}
	}
	return out
}

//Expectation returns <psi|O|psi>. psi must have 2^NumQubits elements.
func (O *Operator) Expectation(psi []complex128) complex128 {
	var e complex128
	for _, t := range O.Terms() {
		var pe complex128
		for k, a := range psi {
			if a == 0 {
				continue
			}
			k2, ph := t.Pauli.Apply(uint64(k))
			pe += cmplx.Conj(psi[k2]) * ph * a
		}
		e += t.Coeff * pe
	}
	return e
}

//Matrix returns the dense matrix of the operator, which must be Hermitian with
//real matrix elements, as is the case for the electronic Hamiltonian.
func (O *Operator) Matrix() (*mat.SymDense, error) {
	dim := 1 << uint(O.numQubits)
	full := make([]complex128, dim*dim)
	for _, t := range O.Terms() {
		for k := 0; k < dim; k++ {
			k2, ph := t.Pauli.Apply(uint64(k))
			full[int(k2)*dim+k] += t.Coeff * ph
		}
	}
	M := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			v, w := full[i*dim+j], full[j*dim+i]
			if abs(imag(v)) > 1e-9 || abs(real(v)-real(w)) > 1e-9 {
				return nil, Error{NotRealSymmetric, []string{"Matrix"}, true}
			}
			M.SetSym(i, j, real(v))
		}
	}
	return M, nil
}

func (O *Operator) String() string {
	var b strings.Builder
	for _, t := range O.Terms() {
		fmt.Fprintf(&b, "%+.10f * %s\n", real(t.Coeff), t.Pauli.Label(O.numQubits))
	}
	return b.String()
}
