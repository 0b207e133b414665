/*
 * problem.go, part of govqe.
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

//Package problem builds the second-quantized electronic structure problem
//from the integrals in the molecular orbital basis, applies the transformers
//that reduce it (frozen core, active space) and interprets the eigenvalues
//obtained for it.
package problem

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/rmera/govqe/fermion"
	"github.com/rmera/govqe/gto"
	"github.com/rmera/govqe/qm"
)

//Names of the auxiliary operators.
const (
	ParticleNumber  = "ParticleNumber"
	Magnetization   = "Magnetization"
	AngularMomentum = "AngularMomentum"
)

//ElectronicStructureProblem contains the electronic Hamiltonian in a spatial
//orbital basis, the electrons it holds and the energies removed from it by
//transformers.
type ElectronicStructureProblem struct {
	NumSpatialOrbitals int
	NumAlpha           int
	NumBeta            int
	H1                 *mat.Dense
	H2                 *gto.ERI
	NuclearRepulsion   float64
	ReferenceEnergy    float64 //Hartree-Fock
	OrbitalEnergies    []float64
	CoreOrbitals       int //core orbitals left in the problem
	//ExtractedEnergies holds the energy moved out of the Hamiltonian by each transformer.
	ExtractedEnergies map[string]float64
	transformers      []string
}

//NewElectronicStructureProblem returns the problem defined by the integrals ints.
func NewElectronicStructureProblem(ints *qm.Integrals) (*ElectronicStructureProblem, error) {
	if ints == nil || ints.H1 == nil || ints.H2 == nil {
		return nil, Error{"Missing integrals", []string{"NewElectronicStructureProblem"}, true}
	}
	return &ElectronicStructureProblem{
		NumSpatialOrbitals: ints.NumOrbitals,
		NumAlpha:           ints.NumAlpha,
		NumBeta:            ints.NumBeta,
		H1:                 mat.DenseCopyOf(ints.H1),
		H2:                 &gto.ERI{N: ints.H2.N, Data: append([]float64(nil), ints.H2.Data...)},
		NuclearRepulsion:   ints.NuclearRepulsion,
		ReferenceEnergy:    ints.HFEnergy,
		OrbitalEnergies:    append([]float64(nil), ints.OrbitalEnergies...),
		CoreOrbitals:       ints.CoreOrbitals,
		ExtractedEnergies:  make(map[string]float64),
	}, nil
}

//NumSpinOrbitals returns twice the number of spatial orbitals.
func (P *ElectronicStructureProblem) NumSpinOrbitals() int {
	return 2 * P.NumSpatialOrbitals
}

//NumParticles returns the number of alpha and beta electrons.
func (P *ElectronicStructureProblem) NumParticles() (int, int) {
	return P.NumAlpha, P.NumBeta
}

//Transformers returns the names of the transformers applied to the problem, in order.
func (P *ElectronicStructureProblem) Transformers() []string {
	return append([]string(nil), P.transformers...)
}

//Transform applies the transformers in order and returns the resulting problem.
func (P *ElectronicStructureProblem) Transform(ts ...Transformer) (*ElectronicStructureProblem, error) {
	cur := P
	var err error
	for _, t := range ts {
		cur, err = t.Transform(cur)
		if err != nil {
			return nil, errDecorate(err, "Transform")
		}
	}
	return cur, nil
}

//SecondQOps returns the electronic Hamiltonian and the auxiliary operators
//as fermionic operators. The spin orbitals are in blocked order: the
//alpha orbitals first, then the beta ones.
func (P *ElectronicStructureProblem) SecondQOps() (*fermion.Op, map[string]*fermion.Op) {
	n := P.NumSpatialOrbitals
	H := fermion.New(2 * n)
	const cutoff = 1e-12
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			h := P.H1.At(p, q)
			if math.Abs(h) < cutoff {
				continue
			}
			for s := 0; s < 2; s++ {
				H.AddTerm(complex(h, 0), fermion.Create(p+s*n), fermion.Annihilate(q+s*n))
			}
		}
	}
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					v := 0.5 * P.H2.At(p, q, r, s)
					if math.Abs(v) < cutoff {
						continue
					}
					for sig := 0; sig < 2; sig++ {
						for tau := 0; tau < 2; tau++ {
							ps, qs := p+sig*n, q+sig*n
							rt, st := r+tau*n, s+tau*n
							if ps == rt || qs == st {
								continue
							}
							H.AddTerm(complex(v, 0), fermion.Create(ps), fermion.Create(rt), fermion.Annihilate(st), fermion.Annihilate(qs))
						}
					}
				}
			}
		}
	}
	aux := map[string]*fermion.Op{
		ParticleNumber:  particleNumber(n),
		Magnetization:   magnetization(n),
		AngularMomentum: angularMomentum(n),
	}
	return H.Simplify(cutoff), aux
}

func particleNumber(n int) *fermion.Op {
	N := fermion.New(2 * n)
	for i := 0; i < 2*n; i++ {
		N.AddTerm(1, fermion.Create(i), fermion.Annihilate(i))
	}
	return N
}

//magnetization returns Sz.
func magnetization(n int) *fermion.Op {
	M := fermion.New(2 * n)
	for p := 0; p < n; p++ {
		M.AddTerm(0.5, fermion.Create(p), fermion.Annihilate(p))
		M.AddTerm(-0.5, fermion.Create(p+n), fermion.Annihilate(p+n))
	}
	return M
}

//angularMomentum returns S^2 = S-S+ + Sz(Sz+1).
func angularMomentum(n int) *fermion.Op {
	plus := fermion.New(2 * n)
	minus := fermion.New(2 * n)
	for p := 0; p < n; p++ {
		plus.AddTerm(1, fermion.Create(p), fermion.Annihilate(p+n))
		minus.AddTerm(1, fermion.Create(p+n), fermion.Annihilate(p))
	}
	sz := magnetization(n)
	S2 := minus.Compose(plus).Add(sz.Compose(sz)).Add(sz)
	return S2.Simplify(1e-12)
}

//ElectronicStructureResult contains the energies of the ground state of a problem
//and the values of the auxiliary operators in it.
type ElectronicStructureResult struct {
	ComputedEnergy    float64 //eigenvalue of the qubit Hamiltonian
	ExtractedEnergies map[string]float64
	NuclearRepulsion  float64
	HartreeFockEnergy float64
	AuxValues         map[string]float64
}

//Interpret builds the result for the problem from the eigenvalue found for its
//Hamiltonian and the expectation values of the auxiliary operators.
func (P *ElectronicStructureProblem) Interpret(eigenvalue complex128, aux map[string]float64) *ElectronicStructureResult {
	r := &ElectronicStructureResult{
		ComputedEnergy:    real(eigenvalue),
		ExtractedEnergies: make(map[string]float64, len(P.ExtractedEnergies)),
		NuclearRepulsion:  P.NuclearRepulsion,
		HartreeFockEnergy: P.ReferenceEnergy,
		AuxValues:         make(map[string]float64, len(aux)),
	}
	for k, v := range P.ExtractedEnergies {
		r.ExtractedEnergies[k] = v
	}
	for k, v := range aux {
		r.AuxValues[k] = v
	}
	return r
}

//ElectronicEnergy returns the computed energy plus the energies extracted by transformers.
func (R *ElectronicStructureResult) ElectronicEnergy() float64 {
	e := R.ComputedEnergy
	for _, v := range R.ExtractedEnergies {
		e += v
	}
	return e
}

//TotalEnergy returns the electronic energy plus the nuclear repulsion.
func (R *ElectronicStructureResult) TotalEnergy() float64 {
	return R.ElectronicEnergy() + R.NuclearRepulsion
}

//Spin returns S computed from the expectation value of S^2, and false if S^2 was not measured.
func (R *ElectronicStructureResult) Spin() (float64, bool) {
	s2, ok := R.AuxValues[AngularMomentum]
	if !ok {
		return 0, false
	}
	return (-1 + math.Sqrt(1+4*math.Max(s2, 0))) / 2, true
}

func (R *ElectronicStructureResult) String() string {
	names := make([]string, 0, len(R.ExtractedEnergies))
	for k := range R.ExtractedEnergies {
		names = append(names, k)
	}
	sort.Strings(names)
	s := "=== GROUND STATE ENERGY ===\n\n"
	s += fmt.Sprintf("* Electronic ground state energy (Hartree): %.12f\n", R.ElectronicEnergy())
	s += fmt.Sprintf("  - computed part:      %.12f\n", R.ComputedEnergy)
	for _, k := range names {
		s += fmt.Sprintf("  - %s extracted energy part: %.12f\n", k, R.ExtractedEnergies[k])
	}
	s += fmt.Sprintf("~ Nuclear repulsion energy (Hartree): %.12f\n", R.NuclearRepulsion)
	s += fmt.Sprintf("> Total ground state energy (Hartree): %.12f\n", R.TotalEnergy())
	if len(R.AuxValues) == 0 {
		return s
	}
	s += "\n=== MEASURED OBSERVABLES ===\n\n "
	if v, ok := R.AuxValues[ParticleNumber]; ok {
		s += fmt.Sprintf(" # Particles: %.3f", v)
	}
	if v, ok := R.Spin(); ok {
		s += fmt.Sprintf(" S: %.3f S^2: %.3f", v, R.AuxValues[AngularMomentum])
	}
	if v, ok := R.AuxValues[Magnetization]; ok {
		s += fmt.Sprintf(" M: %.3f", v)
	}
	return s + "\n"
}
