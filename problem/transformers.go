/*
 * transformers.go, part of govqe.
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

package problem

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/govqe/gto"
)

//Transformer reduces an electronic structure problem, returning a new one.
//The original problem is not modified.
type Transformer interface {
	Name() string
	Transform(*ElectronicStructureProblem) (*ElectronicStructureProblem, error)
}

//FreezeCore removes the core orbitals of the atoms in the molecule
//(none for H and He, the 1s for Li to Ne, 1s 2s and 2p for Na to Ar) from the
//problem. Their energy, and their interaction with the remaining electrons,
//is moved to an extracted energy term. RemoveOrbitals lists further orbitals
//(0-based, in the numbering of the untransformed problem) to take out.
//Occupied orbitals in that list are frozen, virtual ones are simply removed.
type FreezeCore struct {
	Freeze         bool
	RemoveOrbitals []int
}

//Name returns the transformer's name, used as key in the extracted energies.
func (F FreezeCore) Name() string { return "FreezeCoreTransformer" }

//Transform freezes the core of P.
func (F FreezeCore) Transform(P *ElectronicStructureProblem) (*ElectronicStructureProblem, error) {
	n := P.NumSpatialOrbitals
	inactive := make(map[int]bool)
	if F.Freeze {
		for i := 0; i < P.CoreOrbitals; i++ {
			inactive[i] = true
		}
	}
	for _, r := range F.RemoveOrbitals {
		if r < 0 || r >= n {
			return nil, Error{fmt.Sprintf("%s: %d, problem has %d orbitals", BadOrbital, r, n), []string{F.Name() + ".Transform"}, true}
		}
		inactive[r] = true
	}
	occ := P.NumBeta
	if P.NumAlpha != P.NumBeta {
		return nil, Error{OpenShell, []string{F.Name() + ".Transform"}, true}
	}
	var frozen, active []int
	for i := 0; i < n; i++ {
		switch {
		case !inactive[i]:
			active = append(active, i)
		case i < occ:
			frozen = append(frozen, i)
		}
	}
	if len(active) == 0 {
		return nil, Error{NoActiveOrbitals, []string{F.Name() + ".Transform"}, true}
	}
	R := reduce(P, F.Name(), frozen, active)
	R.CoreOrbitals = 0
	log.Debug("Core frozen", "frozen", len(frozen), "removed", n-len(frozen)-len(active), "active", len(active), "energy", R.ExtractedEnergies[F.Name()])
	return R, nil
}

//ActiveSpace restricts the problem to NumElectrons electrons in NumSpatialOrbitals
//orbitals. If ActiveOrbitals is nil, the active orbitals are those around
//the Fermi level: the lowest orbitals are frozen until only NumElectrons
//remain, and the next NumSpatialOrbitals are active. Otherwise, ActiveOrbitals must
//have NumSpatialOrbitals elements, and all the occupied orbitals not in it
//are frozen.
type ActiveSpace struct {
	NumElectrons       int
	NumSpatialOrbitals int
	ActiveOrbitals     []int
}

//Name returns the transformer's name, used as key in the extracted energies.
func (A ActiveSpace) Name() string { return "ActiveSpaceTransformer" }

//Transform restricts P to the active space.
func (A ActiveSpace) Transform(P *ElectronicStructureProblem) (*ElectronicStructureProblem, error) {
	name := A.Name() + ".Transform"
	n := P.NumSpatialOrbitals
	total := P.NumAlpha + P.NumBeta
	if P.NumAlpha != P.NumBeta {
		return nil, Error{OpenShell, []string{name}, true}
	}
	inactiveElectrons := total - A.NumElectrons
	if A.NumElectrons <= 0 || inactiveElectrons < 0 || inactiveElectrons%2 != 0 {
		return nil, Error{fmt.Sprintf("%s: %d active electrons out of %d", BadActiveSpace, A.NumElectrons, total), []string{name}, true}
	}
	if A.NumSpatialOrbitals <= 0 || A.NumSpatialOrbitals > n || 2*A.NumSpatialOrbitals < A.NumElectrons {
		return nil, Error{fmt.Sprintf("%s: %d active orbitals out of %d", BadActiveSpace, A.NumSpatialOrbitals, n), []string{name}, true}
	}
	nfrozen := inactiveElectrons / 2
	active := A.ActiveOrbitals
	if active == nil {
		if nfrozen+A.NumSpatialOrbitals > n {
			return nil, Error{fmt.Sprintf("%s: %d frozen and %d active orbitals out of %d", BadActiveSpace, nfrozen, A.NumSpatialOrbitals, n), []string{name}, true}
		}
		for i := nfrozen; i < nfrozen+A.NumSpatialOrbitals; i++ {
			active = append(active, i)
		}
	}
	if len(active) != A.NumSpatialOrbitals {
		return nil, Error{fmt.Sprintf("%s: %d active orbitals given, %d requested", BadActiveSpace, len(active), A.NumSpatialOrbitals), []string{name}, true}
	}
	active = append([]int(nil), active...)
	sort.Ints(active)
	isActive := make(map[int]bool)
	for _, a := range active {
		if a < 0 || a >= n {
			return nil, Error{fmt.Sprintf("%s: %d", BadOrbital, a), []string{name}, true}
		}
		isActive[a] = true
	}
	var frozen []int
	for i := 0; i < P.NumBeta; i++ {
		if !isActive[i] {
			frozen = append(frozen, i)
		}
	}
	if len(frozen) != nfrozen {
		return nil, Error{fmt.Sprintf("%s: active orbitals leave %d electrons inactive, expected %d", BadActiveSpace, 2*len(frozen), inactiveElectrons), []string{name}, true}
	}
	R := reduce(P, A.Name(), frozen, active)
	R.CoreOrbitals = 0
	return R, nil
}

//reduce returns a problem restricted to the active orbitals, with the doubly
//occupied orbitals in frozen folded into an effective one-electron operator
//and a constant energy, stored under name in the extracted energies.
func reduce(P *ElectronicStructureProblem, name string, frozen, active []int) *ElectronicStructureProblem {
	h := P.H1
	g := P.H2
	var ecore float64
	for _, c := range frozen {
		ecore += 2 * h.At(c, c)
		for _, d := range frozen {
			ecore += 2*g.At(c, c, d, d) - g.At(c, d, d, c)
		}
	}
	na := len(active)
	h1 := mat.NewDense(na, na, nil)
	for i, p := range active {
		for j, q := range active {
			v := h.At(p, q)
			for _, c := range frozen {
				v += 2*g.At(p, q, c, c) - g.At(p, c, c, q)
			}
			h1.Set(i, j, v)
		}
	}
	h2 := gto.NewERI(na)
	for i, p := range active {
		for j, q := range active {
			for k, r := range active {
				for l, s := range active {
					h2.Set(i, j, k, l, g.At(p, q, r, s))
				}
			}
		}
	}
	oe := make([]float64, na)
	for i, p := range active {
		oe[i] = P.OrbitalEnergies[p]
	}
	ext := make(map[string]float64, len(P.ExtractedEnergies)+1)
	for k, v := range P.ExtractedEnergies {
		ext[k] = v
	}
	ext[name] += ecore
	return &ElectronicStructureProblem{
		NumSpatialOrbitals: na,
		NumAlpha:           P.NumAlpha - len(frozen),
		NumBeta:            P.NumBeta - len(frozen),
		H1:                 h1,
		H2:                 h2,
		NuclearRepulsion:   P.NuclearRepulsion,
		ReferenceEnergy:    P.ReferenceEnergy,
		OrbitalEnergies:    oe,
		CoreOrbitals:       P.CoreOrbitals,
		ExtractedEnergies:  ext,
		transformers:       append(P.Transformers(), name),
	}
}
