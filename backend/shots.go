/*
 * shots.go, part of govqe.
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

package backend

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/rmera/govqe/circuit"
	"github.com/rmera/govqe/qubit"
)

//Sampler runs a bound circuit, measuring all the qubits, and returns the counts of
//each basis state.
type Sampler interface {
	Name() string
	Sample(ctx context.Context, c *circuit.Circuit, shots int) (map[uint64]int, error)
}

//ShotSimulator samples measurement outcomes from the simulated state vector. It fullfills Sampler.
type ShotSimulator struct {
	rng *rand.Rand
}

//NewShotSimulator returns a shot simulator with its random generator seeded with seed.
func NewShotSimulator(seed int64) *ShotSimulator {
	return &ShotSimulator{rng: rand.New(rand.NewSource(seed))}
}

//Name returns the backend name.
func (S *ShotSimulator) Name() string { return "qasm_simulator" }

//Sample returns the counts of shots measurements of the state prepared by c.
func (S *ShotSimulator) Sample(ctx context.Context, c *circuit.Circuit, shots int) (map[uint64]int, error) {
	if shots <= 0 {
		return nil, Error{BadShots, []string{"ShotSimulator.Sample"}, true}
	}
	if err := ctx.Err(); err != nil {
		return nil, Error{Cancelled + ": " + err.Error(), []string{"ShotSimulator.Sample"}, true}
	}
	psi, err := Simulate(c)
	if err != nil {
		return nil, errDecorate(err, "ShotSimulator.Sample")
	}
	cum := make([]float64, len(psi))
	var acc float64
	for i, a := range psi {
		acc += real(a)*real(a) + imag(a)*imag(a)
		cum[i] = acc
	}
	counts := make(map[uint64]int)
	for i := 0; i < shots; i++ {
		k := sort.SearchFloat64s(cum, S.rng.Float64()*acc)
		if k >= len(cum) {
			k = len(cum) - 1
		}
		counts[uint64(k)]++
	}
	return counts, nil
}

//ShotEstimator estimates expectation values from measurement counts. The Pauli terms are
//grouped in qubit-wise commuting sets, each measured with one circuit. It fullfills Estimator.
type ShotEstimator struct {
	Sampler Sampler
	Shots   int
	//StdErr contains the estimated standard error of each value returned by the
	//last call to Estimate.
	StdErr []float64
}

//Name returns the name of the underlying sampler.
func (S *ShotEstimator) Name() string { return S.Sampler.Name() }

//group is a set of qubit-wise commuting Paulis and the basis they are measured in.
type group struct {
	basis qubit.Pauli //X bit: measure in X or Y basis (Y if the Z bit is also set). Z bit alone: Z basis.
	terms []qubit.Pauli
}

//compatible returns true if p can be measured in basis b, and the basis extended to include p.
func compatible(b, p qubit.Pauli) (bool, qubit.Pauli) {
	bsup := b.X | b.Z
	psup := p.X | p.Z
	common := bsup & psup
	if (b.X^p.X)&common != 0 || (b.Z^p.Z)&common != 0 {
		return false, b
	}
	return true, qubit.Pauli{X: b.X | p.X, Z: b.Z | p.Z}
}

func groupTerms(ops []*qubit.Operator) []*group {
	seen := make(map[qubit.Pauli]bool)
	var groups []*group
	for _, op := range ops {
		for _, t := range op.Terms() {
			if t.Pauli.IsIdentity() || seen[t.Pauli] {
				continue
			}
			seen[t.Pauli] = true
			placed := false
			for _, g := range groups {
				if ok, nb := compatible(g.basis, t.Pauli); ok {
					g.basis = nb
					g.terms = append(g.terms, t.Pauli)
					placed = true
					break
				}
			}
			if !placed {
				groups = append(groups, &group{basis: t.Pauli, terms: []qubit.Pauli{t.Pauli}})
			}
		}
	}
	return groups
}

//measurementCircuit appends to c the rotations to measure in the basis b.
func measurementCircuit(c *circuit.Circuit, b qubit.Pauli) *circuit.Circuit {
	m := c.Copy()
	for q := 0; q < c.NumQubits(); q++ {
		x := b.X>>uint(q)&1 == 1
		z := b.Z>>uint(q)&1 == 1
		switch {
		case x && z:
			m.Append("sdg", q)
			m.Append("h", q)
		case x:
			m.Append("h", q)
		}
	}
	return m
}

//Estimate returns the expectation values of ops on the state prepared by c, estimated
//from S.Shots measurements per group of commuting terms.
func (S *ShotEstimator) Estimate(ctx context.Context, c *circuit.Circuit, ops ...*qubit.Operator) ([]float64, error) {
	if S.Shots <= 0 {
		return nil, Error{BadShots, []string{"ShotEstimator.Estimate"}, true}
	}
	for _, op := range ops {
		if op.NumQubits() != c.NumQubits() {
			return nil, Error{fmt.Sprintf("%s: operator on %d qubits, circuit on %d", QubitMismatch, op.NumQubits(), c.NumQubits()), []string{"ShotEstimator.Estimate"}, true}
		}
	}
	groups := groupTerms(ops)
	log.Debug("Measurement groups", "groups", len(groups), "backend", S.Sampler.Name())
	mean := make(map[qubit.Pauli]float64)
	variance := make(map[qubit.Pauli]float64)
	for _, g := range groups {
		counts, err := S.Sampler.Sample(ctx, measurementCircuit(c, g.basis), S.Shots)
		if err != nil {
			return nil, errDecorate(err, "ShotEstimator.Estimate")
		}
		states := make([]uint64, 0, len(counts))
		for k := range counts {
			states = append(states, k)
		}
		sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
		x := make([]float64, 0, len(counts))
		w := make([]float64, 0, len(counts))
		for _, p := range g.terms {
			x, w = x[:0], w[:0]
			for _, k := range states {
				v := 1.0
				if bits.OnesCount64(k&(p.X|p.Z))%2 == 1 {
					v = -1
				}
				x = append(x, v)
				w = append(w, float64(counts[k]))
			}
			m, v := stat.MeanVariance(x, w)
			if math.IsNaN(v) {
				v = 0
			}
			mean[p] = m
			variance[p] = v
		}
	}
	ret := make([]float64, len(ops))
	S.StdErr = make([]float64, len(ops))
	for i, op := range ops {
		var e, v float64
		for _, t := range op.Terms() {
			if t.Pauli.IsIdentity() {
				e += real(t.Coeff)
				continue
			}
			e += real(t.Coeff) * mean[t.Pauli]
			v += real(t.Coeff) * real(t.Coeff) * variance[t.Pauli] / float64(S.Shots)
		}
		ret[i] = e
		S.StdErr[i] = math.Sqrt(v)
	}
	return ret, nil
}
