/*
 * basis.go, part of govqe.
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
	"fmt"
	"math"
	"strings"

	chem "github.com/rmera/govqe"
)

//shellData is one contracted shell as found in a basis set file.
//L is the angular momentum (0 for s, 1 for p). An "SP" shell is
//stored as two shellData sharing the exponents.
type shellData struct {
	L      int
	Exps   []float64
	Coeffs []float64
}

var sto3gCore = []float64{0.15432897, 0.53532814, 0.44463454}
var sto3gValS = []float64{-0.09996723, 0.39951283, 0.70011547}
var sto3gValP = []float64{0.15591627, 0.60768372, 0.39195739}

func sto3gSP(core, val []float64) []shellData {
	return []shellData{
		{0, core, sto3gCore},
		{0, val, sto3gValS},
		{1, val, sto3gValP},
	}
}

//STO-3G, first and second period. Same values used by PySCF and the EMSL basis set exchange.
var sto3g = map[string][]shellData{
	"H":  {{0, []float64{3.42525091, 0.62391373, 0.16885540}, sto3gCore}},
	"He": {{0, []float64{6.36242139, 1.15892300, 0.31364979}, sto3gCore}},
	"Li": sto3gSP([]float64{16.1195750, 2.9362007, 0.7946505}, []float64{0.6362897, 0.1478601, 0.0480887}),
	"Be": sto3gSP([]float64{30.1678710, 5.4951153, 1.4871927}, []float64{1.3148331, 0.3055389, 0.0993707}),
	"B":  sto3gSP([]float64{48.7911130, 8.8873622, 2.4052670}, []float64{2.2369561, 0.5198205, 0.1690618}),
	"C":  sto3gSP([]float64{71.6168370, 13.0450960, 3.5305122}, []float64{2.9412494, 0.6834831, 0.2222899}),
	"N":  sto3gSP([]float64{99.1061690, 18.0523120, 4.8856602}, []float64{3.7804559, 0.8784966, 0.2857144}),
	"O":  sto3gSP([]float64{130.7093200, 23.8088610, 6.4436083}, []float64{5.0331513, 1.1695961, 0.3803890}),
	"F":  sto3gSP([]float64{166.6791300, 30.3608120, 8.2168207}, []float64{6.4648032, 1.5022812, 0.4885885}),
	"Ne": sto3gSP([]float64{207.0156100, 37.7081510, 10.2052970}, []float64{8.2463151, 1.9162662, 0.6232293}),
}

//the basis sets we know, by normalized name.
var basisSets = map[string]map[string][]shellData{
	"sto3g": sto3g,
}

//NormalizeBasisName lower-cases the name and removes dashes and underscores,
//so "STO-3G", "sto_3g" and "sto3g" are the same basis.
func NormalizeBasisName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "")
	return strings.ReplaceAll(n, "_", "")
}

//Supported returns true if the basis set name is known.
func Supported(basis string) bool {
	_, ok := basisSets[NormalizeBasisName(basis)]
	return ok
}

//BasisFunction is a contracted Cartesian Gaussian function
//x^l y^m z^n sum_i c_i exp(-a_i r^2), centered in Center (in Bohr).
//The Coeffs already include the normalization of the primitives and
//of the contraction.
type BasisFunction struct {
	Center [3]float64
	LMN    [3]int
	Exps   []float64
	Coeffs []float64
	Atom   int //index of the atom in the molecule.
}

//L returns the total angular momentum of the function.
func (B *BasisFunction) L() int {
	return B.LMN[0] + B.LMN[1] + B.LMN[2]
}

//BasisSet is the set of basis functions for a molecule.
type BasisSet struct {
	Name      string
	Functions []*BasisFunction
}

//Len returns the number of basis functions.
func (B *BasisSet) Len() int {
	return len(B.Functions)
}

//cartesians returns the Cartesian components for angular momentum l,
//in the px, py, pz order.
func cartesians(l int) [][3]int {
	switch l {
	case 0:
		return [][3]int{{0, 0, 0}}
	case 1:
		return [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	default:
		panic(fmt.Sprintf("angular momentum %d not supported", l))
	}
}

//NewBasisSet builds the basis set basis for the molecule mol. It returns error if
//the basis is not known, or if it has no data for one of the elements in mol.
func NewBasisSet(basis string, mol *chem.Molecule) (*BasisSet, error) {
	data, ok := basisSets[NormalizeBasisName(basis)]
	if !ok {
		return nil, Error{fmt.Sprintf("%s: %q", UnknownBasis, basis), []string{"NewBasisSet"}, true}
	}
	if err := mol.Corrupted(); err != nil {
		return nil, Error{err.Error(), []string{"Corrupted", "NewBasisSet"}, true}
	}
	coords := mol.BohrCoords()
	bs := &BasisSet{Name: NormalizeBasisName(basis)}
	for i := 0; i < mol.Len(); i++ {
		sym := mol.Atom(i).Symbol
		shells, ok := data[sym]
		if !ok {
			return nil, Error{fmt.Sprintf("%s: basis %s has no data for %s", NoElementData, basis, sym), []string{"NewBasisSet"}, true}
		}
		for _, sh := range shells {
			for _, lmn := range cartesians(sh.L) {
				bs.Functions = append(bs.Functions, newBasisFunction(coords.Vec(i), lmn, sh.Exps, sh.Coeffs, i))
			}
		}
	}
	return bs, nil
}

func newBasisFunction(center [3]float64, lmn [3]int, exps, coeffs []float64, atom int) *BasisFunction {
	b := &BasisFunction{
		Center: center,
		LMN:    lmn,
		Exps:   append([]float64(nil), exps...),
		Coeffs: make([]float64, len(coeffs)),
		Atom:   atom,
	}
	for i := range coeffs {
		b.Coeffs[i] = coeffs[i] * primitiveNorm(exps[i], lmn)
	}
	b.normalize()
	return b
}

//primitiveNorm is the normalization constant of a Cartesian Gaussian primitive.
func primitiveNorm(a float64, lmn [3]int) float64 {
	l, m, n := lmn[0], lmn[1], lmn[2]
	L := float64(l + m + n)
	num := math.Pow(2, 2*L+1.5) * math.Pow(a, L+1.5)
	den := fact2(2*l-1) * fact2(2*m-1) * fact2(2*n-1) * math.Pow(math.Pi, 1.5)
	return math.Sqrt(num / den)
}

//normalize scales the contraction so <B|B>=1.
func (B *BasisFunction) normalize() {
	s := Overlap(B, B)
	f := 1 / math.Sqrt(s)
	for i := range B.Coeffs {
		B.Coeffs[i] *= f
	}
}

//fact2 is the double factorial, with fact2(-1)=1.
func fact2(n int) float64 {
	r := 1.0
	for ; n > 1; n -= 2 {
		r *= float64(n)
	}
	return r
}
