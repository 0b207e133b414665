/*
 * matrices.go, part of govqe.
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
	"gonum.org/v1/gonum/mat"

	chem "github.com/rmera/govqe"
)

//Overlap returns the overlap matrix S.
func (B *BasisSet) Overlap() *mat.SymDense {
	return B.oneElectron(Overlap)
}

//Kinetic returns the kinetic energy matrix T.
func (B *BasisSet) Kinetic() *mat.SymDense {
	return B.oneElectron(Kinetic)
}

//NuclearAttraction returns the matrix of the attraction between the electrons and all the
//nuclei in mol, which must be the molecule used to build the basis set.
func (B *BasisSet) NuclearAttraction(mol *chem.Molecule) *mat.SymDense {
	coords := mol.BohrCoords()
	V := mat.NewSymDense(B.Len(), nil)
	for i := 0; i < mol.Len(); i++ {
		c := coords.Vec(i)
		z := float64(mol.Atom(i).Z)
		Vi := B.oneElectron(func(a, b *BasisFunction) float64 { return NuclearAttraction(a, b, c, z) })
		V.AddSym(V, Vi)
	}
	return V
}

//CoreHamiltonian returns T+V.
func (B *BasisSet) CoreHamiltonian(mol *chem.Molecule) *mat.SymDense {
	H := mat.NewSymDense(B.Len(), nil)
	H.AddSym(B.Kinetic(), B.NuclearAttraction(mol))
	return H
}

func (B *BasisSet) oneElectron(f func(a, b *BasisFunction) float64) *mat.SymDense {
	n := B.Len()
	M := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			M.SetSym(i, j, f(B.Functions[i], B.Functions[j]))
		}
	}
	return M
}

//ERI holds the electron repulsion integrals (ij|kl) over n functions,
//in chemists' notation, as a dense n^4 slice.
type ERI struct {
	N    int
	Data []float64
}

//NewERI returns a zero-filled ERI for n functions.
func NewERI(n int) *ERI {
	return &ERI{N: n, Data: make([]float64, n*n*n*n)}
}

func (E *ERI) index(i, j, k, l int) int {
	return ((i*E.N+j)*E.N+k)*E.N + l
}

//At returns (ij|kl).
func (E *ERI) At(i, j, k, l int) float64 {
	return E.Data[E.index(i, j, k, l)]
}

//Set sets (ij|kl) to v. It sets only that element, not the symmetry-related ones.
func (E *ERI) Set(i, j, k, l int, v float64) {
	E.Data[E.index(i, j, k, l)] = v
}

//setSym sets (ij|kl) and the 7 symmetry-equivalent elements of real orbitals.
func (E *ERI) setSym(i, j, k, l int, v float64) {
	for _, q := range [][4]int{{i, j, k, l}, {j, i, k, l}, {i, j, l, k}, {j, i, l, k},
		{k, l, i, j}, {l, k, i, j}, {k, l, j, i}, {l, k, j, i}} {
		E.Set(q[0], q[1], q[2], q[3], v)
	}
}

//Repulsion returns all the electron repulsion integrals of the basis set. Only the
//symmetry-unique integrals are computed.
func (B *BasisSet) Repulsion() *ERI {
	n := B.Len()
	E := NewERI(n)
	f := B.Functions
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			ij := i*(i+1)/2 + j
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					kl := k*(k+1)/2 + l
					if kl > ij {
						continue
					}
					E.setSym(i, j, k, l, Repulsion(f[i], f[j], f[k], f[l]))
				}
			}
		}
	}
	return E
}
