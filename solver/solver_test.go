/*
 * solver_test.go, part of govqe.
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

package solver

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/govqe"
	"github.com/rmera/govqe/backend"
	"github.com/rmera/govqe/circuit"
	"github.com/rmera/govqe/optimizer"
	"github.com/rmera/govqe/problem"
	"github.com/rmera/govqe/qm"
	"github.com/rmera/govqe/qubit"
)

const h2FCI = -1.137306

func h2Problem(Te *testing.T) *problem.ElectronicStructureProblem {
	return chargedH2(Te, 0)
}

func chargedH2(Te *testing.T, charge int) *problem.ElectronicStructureProblem {
	mol, err := chem.ParseAtomString("H .0 .0 .0; H .0 .0 0.735", chem.Angstrom)
	require.NoError(Te, err)
	mol.SetCharge(charge)
	h := qm.NewSCFHandle()
	require.NoError(Te, h.BuildInput(mol, &qm.Calc{Basis: "sto3g"}))
	require.NoError(Te, h.Run(context.Background()))
	ints, err := h.Integrals()
	require.NoError(Te, err)
	P, err := problem.NewElectronicStructureProblem(ints)
	require.NoError(Te, err)
	P, err = P.Transform(problem.FreezeCore{Freeze: true})
	require.NoError(Te, err)
	return P
}

func defaultAnsatz() AnsatzOptions {
	return AnsatzOptions{TwoLocalOptions: circuit.TwoLocalOptions{Rotation: []string{"ry"}, Entanglement: []string{"cz"}, Pattern: circuit.Full, Reps: 3}, InitialState: "zero"}
}

func TestExactH2(Te *testing.T) {
	P := h2Problem(Te)
	for _, mapper := range []qubit.Mapper{qubit.JordanWigner{}, qubit.Parity{}} {
		gs := &GroundStateEigensolver{Converter: qubit.Converter{Mapper: mapper}, Solver: &Exact{Particles: 2, Filter: true}}
		res, err := gs.Solve(context.Background(), P)
		require.NoError(Te, err)
		assert.InDelta(Te, h2FCI, res.TotalEnergy(), 1e-4, mapper.Name())
		assert.Equal(Te, 4, res.NumQubits)
		assert.InDelta(Te, 2, res.AuxValues[problem.ParticleNumber], 1e-8)
		assert.InDelta(Te, 0, res.AuxValues[problem.AngularMomentum], 1e-8)
		assert.Contains(Te, res.String(), "Total ground state energy")
	}
}

func TestExactReduced(Te *testing.T) {
	P := h2Problem(Te)
	gs := &GroundStateEigensolver{Converter: qubit.Converter{Mapper: qubit.Parity{}, TwoQubitReduction: true}, Solver: &Exact{}}
	res, err := gs.Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.Equal(Te, 2, res.NumQubits)
	assert.InDelta(Te, h2FCI, res.TotalEnergy(), 1e-4)
	//N, Sz and S^2 keep both electron number parities, so all of them are tapered.
	assert.InDelta(Te, 2, res.AuxValues[problem.ParticleNumber], 1e-8)
	assert.InDelta(Te, 0, res.AuxValues[problem.AngularMomentum], 1e-8)
	assert.InDelta(Te, 0, res.AuxValues[problem.Magnetization], 1e-8)
}

func TestVQEReduced(Te *testing.T) {
	P := h2Problem(Te)
	conv := qubit.Converter{Mapper: qubit.Parity{}, TwoQubitReduction: true}
	ansatz, err := Ansatz(conv, P, defaultAnsatz())
	require.NoError(Te, err)
	assert.Equal(Te, 8, ansatz.NumParameters())
	vqe := &VQE{Ansatz: ansatz, Optimizer: &optimizer.NFT{MaxIter: 1000}, Estimator: backend.Statevector{}, Seed: 42}
	gs := &GroundStateEigensolver{Converter: conv, Solver: vqe}
	res, err := gs.Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.InDelta(Te, h2FCI, res.TotalEnergy(), 2e-3)
	assert.GreaterOrEqual(Te, res.TotalEnergy(), h2FCI-1e-5)
	assert.LessOrEqual(Te, res.Raw.Evaluations, 1000)
	assert.Len(Te, res.Raw.OptimalPoint, 8)
	assert.Equal(Te, res.Raw.Evaluations, res.Raw.History.Len())
}

func TestVQEFull(Te *testing.T) {
	P := h2Problem(Te)
	conv := qubit.Converter{Mapper: qubit.Parity{}}
	ansatz, err := Ansatz(conv, P, defaultAnsatz())
	require.NoError(Te, err)
	assert.Equal(Te, 16, ansatz.NumParameters())
	vqe := &VQE{Ansatz: ansatz, Optimizer: &optimizer.NFT{MaxIter: 1000}, Estimator: backend.Statevector{}, Seed: 42}
	res, err := (&GroundStateEigensolver{Converter: conv, Solver: vqe}).Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.GreaterOrEqual(Te, res.TotalEnergy(), h2FCI-1e-5)
	assert.InDelta(Te, h2FCI, res.TotalEnergy(), 1e-4)
	assert.InDelta(Te, 2, res.AuxValues[problem.ParticleNumber], 1e-2)
	_, ok := res.AuxValues[problem.Magnetization]
	assert.True(Te, ok)
	again, err := (&GroundStateEigensolver{Converter: conv, Solver: vqe}).Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.Equal(Te, res.TotalEnergy(), again.TotalEnergy())
	assert.Equal(Te, res.Raw.OptimalPoint, again.Raw.OptimalPoint)
}

func TestExactNoElectrons(Te *testing.T) {
	P := chargedH2(Te, 2)
	conv := qubit.Converter{Mapper: qubit.Parity{}}
	res, err := (&GroundStateEigensolver{Converter: conv, Solver: &Exact{Particles: 0, Filter: true}}).Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.InDelta(Te, 0.71997, res.TotalEnergy(), 1e-5)
	assert.InDelta(Te, 0, res.AuxValues[problem.ParticleNumber], 1e-8)
	//without the filter, the lowest state has 2 electrons.
	res, err = (&GroundStateEigensolver{Converter: conv, Solver: &Exact{}}).Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.InDelta(Te, 2, res.AuxValues[problem.ParticleNumber], 1e-8)
	_, err = (&GroundStateEigensolver{Converter: conv, Solver: &Exact{Particles: -1, Filter: true}}).Solve(context.Background(), P)
	assert.Error(Te, err)
}

func TestVQEOneIteration(Te *testing.T) {
	P := h2Problem(Te)
	conv := qubit.Converter{Mapper: qubit.Parity{}}
	ansatz, err := Ansatz(conv, P, defaultAnsatz())
	require.NoError(Te, err)
	vqe := &VQE{Ansatz: ansatz, Optimizer: &optimizer.NFT{MaxIter: 1}, Estimator: backend.Statevector{}, Seed: 7}
	res, err := (&GroundStateEigensolver{Converter: conv, Solver: vqe}).Solve(context.Background(), P)
	require.NoError(Te, err)
	assert.Equal(Te, 1, res.Raw.Evaluations)
	assert.False(Te, math.IsNaN(res.TotalEnergy()))
	assert.GreaterOrEqual(Te, res.TotalEnergy(), h2FCI-1e-5)
}

func TestVQEErrors(Te *testing.T) {
	op := qubit.Identity(2, 1)
	_, err := (&VQE{}).ComputeMinimumEigenvalue(context.Background(), op, nil)
	assert.Error(Te, err)
	c, err := circuit.TwoLocal(3, circuit.TwoLocalOptions{Rotation: []string{"ry"}, Entanglement: []string{"cz"}, Pattern: circuit.Linear, Reps: 1})
	require.NoError(Te, err)
	vqe := &VQE{Ansatz: c, Optimizer: &optimizer.NFT{MaxIter: 10}, Estimator: backend.Statevector{}}
	_, err = vqe.ComputeMinimumEigenvalue(context.Background(), op, nil)
	assert.Error(Te, err)
	vqe.InitialPoint = []float64{1, 2}
	_, err = vqe.ComputeMinimumEigenvalue(context.Background(), qubit.Identity(3, 1), nil)
	assert.Error(Te, err)
}

func TestAnsatzInitialState(Te *testing.T) {
	P := h2Problem(Te)
	opts := defaultAnsatz()
	opts.InitialState = "hartree_fock"
	c, err := Ansatz(qubit.Converter{Mapper: qubit.Parity{}, TwoQubitReduction: true}, P, opts)
	require.NoError(Te, err)
	assert.Equal(Te, "x", c.Gates[0].Name)
	assert.Equal(Te, []int{0}, c.Gates[0].Qubits)
	opts.InitialState = "neel"
	_, err = Ansatz(qubit.Converter{Mapper: qubit.Parity{}}, P, opts)
	assert.Error(Te, err)
}

func TestRandomPoint(Te *testing.T) {
	a := RandomPoint(16, 42)
	b := RandomPoint(16, 42)
	assert.Equal(Te, a, b)
	for _, v := range a {
		assert.LessOrEqual(Te, math.Abs(v), 2*math.Pi)
	}
}
