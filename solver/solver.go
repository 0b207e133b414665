/*
 * solver.go, part of govqe.
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

//Package solver finds the ground state of qubit Hamiltonians, variationally (VQE)
//or by exact diagonalization, and of electronic structure problems, by mapping
//them to qubits and handing them to one of the former.
package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/govqe/backend"
	"github.com/rmera/govqe/circuit"
	"github.com/rmera/govqe/optimizer"
	"github.com/rmera/govqe/problem"
	"github.com/rmera/govqe/qubit"
)

//MinimumEigensolverResult contains the lowest eigenvalue found for an operator
//and the values of auxiliary operators in the corresponding state.
type MinimumEigensolverResult struct {
	Eigenvalue   complex128
	AuxValues    map[string]float64
	OptimalPoint []float64 //variational parameters, nil for exact solvers
	Evaluations  int
	History      *optimizer.History //nil for exact solvers
	Eigenstate   []complex128       //nil for variational solvers
}

//MinimumEigensolver finds the lowest eigenvalue of a Hermitian qubit operator.
type MinimumEigensolver interface {
	Name() string
	ComputeMinimumEigenvalue(ctx context.Context, op *qubit.Operator, aux map[string]*qubit.Operator) (*MinimumEigensolverResult, error)
}

//sortedNames returns the keys of aux in order, so evaluations are reproducible.
func sortedNames(aux map[string]*qubit.Operator) []string {
	names := make([]string, 0, len(aux))
	for k := range aux {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//VQE is the variational quantum eigensolver: it minimizes the expectation value of
//the operator on the state prepared by a parametrized circuit.
type VQE struct {
	Ansatz    *circuit.Circuit
	Optimizer optimizer.Optimizer
	Estimator backend.Estimator
	//InitialPoint is the starting set of parameters. If nil, it is drawn uniformly from
	//[-2π,2π] with a random generator seeded with Seed.
	InitialPoint []float64
	Seed         int64
}

//Name returns "vqe"
func (V *VQE) Name() string { return "vqe" }

//RandomPoint returns n numbers drawn uniformly from [-2π,2π].
func RandomPoint(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	for i := range x {
		x[i] = (2*rng.Float64() - 1) * 2 * math.Pi
	}
	return x
}

//ComputeMinimumEigenvalue runs the VQE for op and evaluates aux at the optimal parameters.
func (V *VQE) ComputeMinimumEigenvalue(ctx context.Context, op *qubit.Operator, aux map[string]*qubit.Operator) (*MinimumEigensolverResult, error) {
	if V.Ansatz == nil || V.Optimizer == nil || V.Estimator == nil {
		return nil, Error{Incomplete + ": VQE needs an ansatz, an optimizer and an estimator", []string{"VQE.ComputeMinimumEigenvalue"}, true}
	}
	if op.NumQubits() != V.Ansatz.NumQubits() {
		return nil, Error{fmt.Sprintf("%s: operator on %d qubits, ansatz on %d", QubitMismatch, op.NumQubits(), V.Ansatz.NumQubits()), []string{"VQE.ComputeMinimumEigenvalue"}, true}
	}
	np := V.Ansatz.NumParameters()
	x0 := V.InitialPoint
	if x0 == nil {
		x0 = RandomPoint(np, V.Seed)
	}
	if len(x0) != np {
		return nil, Error{fmt.Sprintf("%s: %d values for %d parameters", BadInitialPoint, len(x0), np), []string{"VQE.ComputeMinimumEigenvalue"}, true}
	}
	energy := func(x []float64) (float64, error) {
		bound, err := V.Ansatz.Bind(x)
		if err != nil {
			return 0, err
		}
		e, err := V.Estimator.Estimate(ctx, bound, op)
		if err != nil {
			return 0, err
		}
		return e[0], nil
	}
	log.Info("Starting VQE", "qubits", op.NumQubits(), "parameters", np, "optimizer", V.Optimizer.Name(), "backend", V.Estimator.Name())
	res, err := V.Optimizer.Minimize(ctx, energy, optimizer.ParameterShift(energy), x0)
	if err != nil {
		return nil, errDecorate(err, "VQE.ComputeMinimumEigenvalue")
	}
	log.Info("VQE finished", "evaluations", res.Evaluations, "eigenvalue", res.F)
	out := &MinimumEigensolverResult{
		Eigenvalue:   complex(res.F, 0),
		AuxValues:    make(map[string]float64),
		OptimalPoint: res.X,
		Evaluations:  res.Evaluations,
		History:      res.History,
	}
	if len(aux) == 0 {
		return out, nil
	}
	bound, err := V.Ansatz.Bind(res.X)
	if err != nil {
		return nil, Error{err.Error(), []string{"circuit.Bind", "VQE.ComputeMinimumEigenvalue"}, true}
	}
	names := sortedNames(aux)
	ops := make([]*qubit.Operator, len(names))
	for i, n := range names {
		ops[i] = aux[n]
	}
	vals, err := V.Estimator.Estimate(ctx, bound, ops...)
	if err != nil {
		return nil, errDecorate(err, "VQE.ComputeMinimumEigenvalue")
	}
	for i, n := range names {
		out.AuxValues[n] = vals[i]
	}
	return out, nil
}

//Exact finds the lowest eigenvalue by dense diagonalization. If Filter is set,
//only eigenstates where the auxiliary operator problem.ParticleNumber has the
//value Particles (which can be 0) are considered.
type Exact struct {
	Particles int
	Filter    bool
}

//Name returns "exact"
func (E *Exact) Name() string { return "exact" }

//ComputeMinimumEigenvalue diagonalizes op and evaluates aux in its lowest eigenstate.
func (E *Exact) ComputeMinimumEigenvalue(ctx context.Context, op *qubit.Operator, aux map[string]*qubit.Operator) (*MinimumEigensolverResult, error) {
	if op.NumQubits() > 14 {
		return nil, Error{fmt.Sprintf("%s: %d qubits", TooLarge, op.NumQubits()), []string{"Exact.ComputeMinimumEigenvalue"}, true}
	}
	M, err := op.Matrix()
	if err != nil {
		return nil, Error{err.Error(), []string{"qubit.Matrix", "Exact.ComputeMinimumEigenvalue"}, true}
	}
	var es mat.EigenSym
	if ok := es.Factorize(M, true); !ok {
		return nil, Error{"Diagonalization failed", []string{"Exact.ComputeMinimumEigenvalue"}, true}
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	var number *qubit.Operator
	if E.Filter {
		if E.Particles < 0 {
			return nil, Error{fmt.Sprintf("%s: %d particles", NoEigenstate, E.Particles), []string{"Exact.ComputeMinimumEigenvalue"}, true}
		}
		number = aux[problem.ParticleNumber]
		if number == nil {
			return nil, Error{NoParticleNumber, []string{"Exact.ComputeMinimumEigenvalue"}, true}
		}
	}
	dim := len(vals)
	for i := 0; i < dim; i++ {
		if ctx.Err() != nil {
			return nil, Error{Cancelled, []string{"Exact.ComputeMinimumEigenvalue"}, true}
		}
		psi := make([]complex128, dim)
		for k := 0; k < dim; k++ {
			psi[k] = complex(vecs.At(k, i), 0)
		}
		if number != nil && math.Abs(real(number.Expectation(psi))-float64(E.Particles)) > 1e-6 {
			continue
		}
		out := &MinimumEigensolverResult{Eigenvalue: complex(vals[i], 0), AuxValues: make(map[string]float64), Eigenstate: psi}
		for _, n := range sortedNames(aux) {
			out.AuxValues[n] = real(aux[n].Expectation(psi))
		}
		return out, nil
	}
	return nil, Error{fmt.Sprintf("%s with %d particles", NoEigenstate, E.Particles), []string{"Exact.ComputeMinimumEigenvalue"}, true}
}

//ElectronicStructureResult is the result of a ground state calculation for an
//electronic structure problem.
type ElectronicStructureResult struct {
	*problem.ElectronicStructureResult
	Raw       *MinimumEigensolverResult
	NumQubits int
}

//GroundStateEigensolver maps an electronic structure problem to qubits and finds its ground state.
type GroundStateEigensolver struct {
	Converter qubit.Converter
	Solver    MinimumEigensolver
}

//Solve returns the ground state energy of P and the values of its auxiliary operators. Auxiliary
//operators that can't be mapped (those that change the electron number parities, when
//the two-qubit reduction is used) are not evaluated.
func (G *GroundStateEigensolver) Solve(ctx context.Context, P *problem.ElectronicStructureProblem) (*ElectronicStructureResult, error) {
	if G.Solver == nil {
		return nil, Error{Incomplete + ": no minimum eigensolver", []string{"Solve"}, true}
	}
	H, aux := P.SecondQOps()
	na, nb := P.NumParticles()
	qH, err := G.Converter.Convert(H, na, nb)
	if err != nil {
		return nil, Error{err.Error(), []string{"qubit.Convert", "Solve"}, true}
	}
	qaux := make(map[string]*qubit.Operator, len(aux))
	for name, op := range aux {
		q, err := G.Converter.Convert(op, na, nb)
		if err != nil {
			log.Debug("Auxiliary operator not evaluated", "operator", name, "reason", err)
			continue
		}
		qaux[name] = q
	}
	log.Info("Hamiltonian mapped", "mapper", G.Converter.Mapper.Name(), "qubits", qH.NumQubits(), "terms", qH.Len(), "solver", G.Solver.Name())
	raw, err := G.Solver.ComputeMinimumEigenvalue(ctx, qH, qaux)
	if err != nil {
		return nil, errDecorate(err, "Solve")
	}
	return &ElectronicStructureResult{
		ElectronicStructureResult: P.Interpret(raw.Eigenvalue, raw.AuxValues),
		Raw:                       raw,
		NumQubits:                 qH.NumQubits(),
	}, nil
}

//AnsatzOptions define the TwoLocal ansatz built by Ansatz.
type AnsatzOptions struct {
	circuit.TwoLocalOptions
	InitialState string //"zero" or "hartree_fock"
}

//Ansatz builds the TwoLocal ansatz for P as mapped by conv.
func Ansatz(conv qubit.Converter, P *problem.ElectronicStructureProblem, opts AnsatzOptions) (*circuit.Circuit, error) {
	nq := conv.NumQubits(P.NumSpinOrbitals())
	to := opts.TwoLocalOptions
	switch strings.ToLower(opts.InitialState) {
	case "", "zero":
		to.InitialState = 0
	case "hartree_fock", "hartree-fock", "hf":
		na, nb := P.NumParticles()
		to.InitialState, _ = conv.HartreeFockState(P.NumSpatialOrbitals, na, nb)
	default:
		return nil, Error{UnknownInitialState + ": " + opts.InitialState, []string{"Ansatz"}, true}
	}
	c, err := circuit.TwoLocal(nq, to)
	if err != nil {
		return nil, Error{err.Error(), []string{"circuit.TwoLocal", "Ansatz"}, true}
	}
	return c, nil
}
