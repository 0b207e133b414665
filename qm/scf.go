/*
 * scf.go, part of govqe.
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
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	chem "github.com/rmera/govqe"
	"github.com/rmera/govqe/gto"
)

//SCFHandle performs restricted Hartree-Fock calculations in-process. It fullfills Handle.
type SCFHandle struct {
	name   string
	mol    *chem.Molecule
	calc   Calc
	basis  *gto.BasisSet
	nocc   int
	ints   *Integrals
	energy float64
}

//NewSCFHandle initializes and returns a SCFHandle
func NewSCFHandle() *SCFHandle {
	return &SCFHandle{name: "gorhf"}
}

//SetName sets the name of the job.
func (O *SCFHandle) SetName(name string) {
	O.name = name
}

//BuildInput checks that the calculation described by mol and Q can be performed, and
//builds the basis set for it. Only closed-shell molecules are accepted.
func (O *SCFHandle) BuildInput(mol *chem.Molecule, Q *Calc) error {
	if mol == nil || Q == nil {
		return Error{"Missing molecule or calculation settings", []string{"BuildInput"}, true}
	}
	if err := mol.Corrupted(); err != nil {
		return Error{err.Error(), []string{"chem.Corrupted", "BuildInput"}, true}
	}
	O.calc = *Q
	O.calc.SetDefaults()
	if !methodSupported(O.calc.Method) {
		return Error{UnsupportedMeth + ": " + O.calc.Method, []string{"BuildInput"}, true}
	}
	total, alpha, beta, err := mol.Electrons()
	if err != nil {
		return Error{err.Error(), []string{"chem.Electrons", "BuildInput"}, true}
	}
	if alpha != beta {
		return Error{fmt.Sprintf("%s: %d alpha, %d beta electrons", OpenShell, alpha, beta), []string{"BuildInput"}, true}
	}
	basis, err := gto.NewBasisSet(O.calc.Basis, mol)
	if err != nil {
		return Error{err.Error(), []string{"gto.NewBasisSet", "BuildInput"}, true}
	}
	if total/2 > basis.Len() {
		return Error{fmt.Sprintf("%s: %d electrons, %d basis functions", NotEnoughOrbital, total, basis.Len()), []string{"BuildInput"}, true}
	}
	O.mol = mol
	O.basis = basis
	O.nocc = total / 2
	O.ints = nil
	log.Debug("RHF input built", "job", O.name, "basis", basis.Name, "functions", basis.Len(), "electrons", total)
	return nil
}

//Run performs the SCF procedure and transforms the integrals to the molecular orbital basis.
func (O *SCFHandle) Run(ctx context.Context) error {
	if O.basis == nil {
		return Error{NotBuilt, []string{"Run"}, true}
	}
	S := O.basis.Overlap()
	H := O.basis.CoreHamiltonian(O.mol)
	eri := O.basis.Repulsion()
	enuc := O.mol.NuclearRepulsion()
	X, err := orthogonalizer(S)
	if err != nil {
		return errDecorate(err, "Run")
	}
	n := O.basis.Len()
	conv := O.calc.energyConv()
	var eps []float64
	var C *mat.Dense
	P := mat.NewDense(n, n, nil)
	F := mat.NewDense(n, n, nil)
	F.Copy(H)
	var eold, e float64
	converged := false
	for iter := 1; iter <= O.calc.MaxSCFIter; iter++ {
		if ctx.Err() != nil {
			return Error{Cancelled + ": " + ctx.Err().Error(), []string{"Run"}, true}
		}
		eps, C, err = diagonalize(F, X)
		if err != nil {
			return errDecorate(err, "Run")
		}
		Pnew := density(C, O.nocc)
		if O.calc.SCFConvHelp > 0 && iter > 1 && iter <= 5*O.calc.SCFConvHelp {
			Pnew.Scale(0.5, Pnew)
			Pnew.Add(Pnew, scaled(0.5, P))
		}
		F = fock(H, Pnew, eri)
		e = electronicEnergy(Pnew, H, F)
		drms := floats.Distance(Pnew.RawMatrix().Data, P.RawMatrix().Data, 2) / float64(n)
		log.Debug("SCF iteration", "iter", iter, "energy", e+enuc, "delta", e-eold, "rms_density", drms)
		P = Pnew
		if iter > 1 && math.Abs(e-eold) < conv && drms < 100*conv {
			converged = true
			break
		}
		eold = e
	}
	if !converged {
		return Error{fmt.Sprintf("%s in %d iterations", NoConvergence, O.calc.MaxSCFIter), []string{"Run"}, true}
	}
	//orbitals consistent with the final Fock matrix.
	eps, C, err = diagonalize(F, X)
	if err != nil {
		return errDecorate(err, "Run")
	}
	O.energy = e + enuc
	log.Info("RHF converged", "job", O.name, "energy", O.energy)
	core := 0
	for _, at := range O.mol.Atoms {
		core += chem.CoreOrbitals(at.Z)
	}
	h1 := mat.NewDense(n, n, nil)
	h1.Product(C.T(), H, C)
	O.ints = &Integrals{
		Basis:            O.basis.Name,
		NumOrbitals:      n,
		H1:               h1,
		H2:               transformERI(eri, C),
		OrbitalEnergies:  eps,
		MOCoeffs:         C,
		NuclearRepulsion: enuc,
		NumAlpha:         O.nocc,
		NumBeta:          O.nocc,
		HFEnergy:         O.energy,
		CoreOrbitals:     core,
		Molecule:         O.mol,
	}
	return nil
}

//Energy returns the RHF energy, including the nuclear repulsion.
func (O *SCFHandle) Energy() (float64, error) {
	if O.ints == nil {
		return 0, Error{NotRun, []string{"Energy"}, true}
	}
	return O.energy, nil
}

//Integrals returns the integrals in the MO basis obtained by the last Run.
func (O *SCFHandle) Integrals() (*Integrals, error) {
	if O.ints == nil {
		return nil, Error{NotRun, []string{"Integrals"}, true}
	}
	return O.ints, nil
}

//orthogonalizer returns the symmetric orthogonalization matrix S^-1/2
func orthogonalizer(S *mat.SymDense) (*mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(S, true); !ok {
		return nil, Error{"Overlap matrix diagonalization failed", []string{"orthogonalizer"}, true}
	}
	vals := es.Values(nil)
	var U mat.Dense
	es.VectorsTo(&U)
	n := len(vals)
	d := make([]float64, n)
	for i, v := range vals {
		if v < 1e-10 {
			return nil, Error{"Linearly dependent basis set", []string{"orthogonalizer"}, true}
		}
		d[i] = 1 / math.Sqrt(v)
	}
	X := mat.NewDense(n, n, nil)
	X.Product(&U, mat.NewDiagDense(n, d), U.T())
	return X, nil
}

//diagonalize solves FC=SCe using the orthogonalizer X. The orbitals are
//returned in ascending order of energy.
func diagonalize(F mat.Matrix, X *mat.Dense) ([]float64, *mat.Dense, error) {
	n, _ := X.Dims()
	var Fp mat.Dense
	Fp.Product(X.T(), F, X)
	Fs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			Fs.SetSym(i, j, 0.5*(Fp.At(i, j)+Fp.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(Fs, true); !ok {
		return nil, nil, Error{"Fock matrix diagonalization failed", []string{"diagonalize"}, true}
	}
	var Cp mat.Dense
	es.VectorsTo(&Cp)
	C := mat.NewDense(n, n, nil)
	C.Mul(X, &Cp)
	return es.Values(nil), C, nil
}

//density returns the closed-shell density matrix P=2 C_occ C_occ^T
func density(C *mat.Dense, nocc int) *mat.Dense {
	n, _ := C.Dims()
	P := mat.NewDense(n, n, nil)
	if nocc == 0 {
		return P
	}
	occ := C.Slice(0, n, 0, nocc)
	P.Mul(occ, occ.T())
	P.Scale(2, P)
	return P
}

func scaled(f float64, A *mat.Dense) *mat.Dense {
	var B mat.Dense
	B.Scale(f, A)
	return &B
}

//fock returns F=H+G(P)
func fock(H mat.Matrix, P *mat.Dense, eri *gto.ERI) *mat.Dense {
	n := eri.N
	F := mat.NewDense(n, n, nil)
	for m := 0; m < n; m++ {
		for v := 0; v < n; v++ {
			g := H.At(m, v)
			for l := 0; l < n; l++ {
				for s := 0; s < n; s++ {
					g += P.At(l, s) * (eri.At(m, v, l, s) - 0.5*eri.At(m, l, v, s))
				}
			}
			F.Set(m, v, g)
		}
	}
	return F
}

func electronicEnergy(P *mat.Dense, H mat.Matrix, F *mat.Dense) float64 {
	n, _ := P.Dims()
	var e float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			e += P.At(i, j) * (H.At(i, j) + F.At(i, j))
		}
	}
	return 0.5 * e
}

//transformERI takes the AO integrals to the MO basis given by the columns of C,
//one index at a time.
func transformERI(ao *gto.ERI, C *mat.Dense) *gto.ERI {
	n := ao.N
	cur := ao
	for pos := 0; pos < 4; pos++ {
		next := gto.NewERI(n)
		var idx [4]int
		for idx[0] = 0; idx[0] < n; idx[0]++ {
			for idx[1] = 0; idx[1] < n; idx[1]++ {
				for idx[2] = 0; idx[2] < n; idx[2]++ {
					for idx[3] = 0; idx[3] < n; idx[3]++ {
						p := idx[pos]
						src := idx
						var v float64
						for mu := 0; mu < n; mu++ {
							src[pos] = mu
							v += C.At(mu, p) * cur.At(src[0], src[1], src[2], src[3])
						}
						next.Set(idx[0], idx[1], idx[2], idx[3], v)
					}
				}
			}
		}
		cur = next
	}
	return cur
}
