/*
 * qm.go, part of govqe.
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
	"strings"

	"gonum.org/v1/gonum/mat"

	chem "github.com/rmera/govqe"
	"github.com/rmera/govqe/gto"
)

//Handle allows to set and run the electronic structure calculations that provide the
//integrals for the rest of the pipeline.
type Handle interface {

	//Sets the name for the job, used in logs.
	SetName(name string)

	//BuildInput prepares the calculation for the molecule mol with the
	//settings in Q. Returns only error.
	BuildInput(mol *chem.Molecule, Q *Calc) error

	//Run runs the calculation previously set. It blocks until the calculation
	//is done or ctx is cancelled.
	Run(ctx context.Context) error

	//Energy returns the total energy of the last calculation. Returns error
	//if no calculation has been run.
	Energy() (float64, error)

	//Integrals returns the one and two electron integrals in the basis of the molecular
	//orbitals obtained in the last calculation.
	Integrals() (*Integrals, error)
}

//Calc contains the settings for a calculation, independent of the program
//that will perform it.
type Calc struct {
	Method       string //only "HF" (restricted) is supported.
	Basis        string
	Guess        string //initial guess, only "core" is supported
	SCFTightness int    //0: 1e-8 Hartree, 1: 1e-10, 2 or more: 1e-12.
	SCFConvHelp  int    //if >0, the density is damped during the first SCF iterations.
	MaxSCFIter   int
}

//SetDefaults sets reasonable values for the unset fields of Q.
func (Q *Calc) SetDefaults() {
	if Q.Method == "" {
		Q.Method = "HF"
	}
	if Q.Basis == "" {
		Q.Basis = "sto3g"
	}
	if Q.Guess == "" {
		Q.Guess = "core"
	}
	if Q.MaxSCFIter <= 0 {
		Q.MaxSCFIter = 200
	}
}

//energyConv returns the energy convergence threshold, the density one is 100 times larger.
func (Q *Calc) energyConv() float64 {
	switch {
	case Q.SCFTightness <= 0:
		return 1e-8
	case Q.SCFTightness == 1:
		return 1e-10
	default:
		return 1e-12
	}
}

//Integrals contains the output of the driver: the electronic Hamiltonian
//in the basis of the molecular orbitals, plus the data needed to interpret it.
type Integrals struct {
	Basis            string
	NumOrbitals      int        //number of spatial molecular orbitals
	H1               *mat.Dense //one-electron integrals h_pq
	H2               *gto.ERI   //two-electron integrals (pq|rs), chemists' notation
	OrbitalEnergies  []float64
	MOCoeffs         *mat.Dense
	NuclearRepulsion float64
	NumAlpha         int
	NumBeta          int
	HFEnergy         float64 //total, including nuclear repulsion
	CoreOrbitals     int     //number of core spatial orbitals in the molecule, see chem.CoreOrbitals
	Molecule         *chem.Molecule
}

//NumParticles returns the number of alpha and beta electrons.
func (I *Integrals) NumParticles() (int, int) {
	return I.NumAlpha, I.NumBeta
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

var supportedMethods = []string{"HF", "RHF"}

func methodSupported(method string) bool {
	return isInString(supportedMethods, strings.ToUpper(method))
}
