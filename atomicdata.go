/*
 * atomicdata.go, part of govqe.
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

package chem

import "strings"

//A map for assigning atomic numbers to elements.
//Only the first three periods are present.
var symbolZ = map[string]int{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
}

//CoreOrbitals returns the number of doubly-occupied core
//spatial orbitals for an atom with atomic number z.
//These are the orbitals removed by a frozen-core treatment.
func CoreOrbitals(z int) int {
	switch {
	case z <= 2:
		return 0
	case z <= 10:
		return 1 //1s
	case z <= 18:
		return 5 //1s 2s 2p
	default:
		return 9 //up to 3p, we don't have data for these anyway.
	}
}

//AtomicNumber returns the atomic number for the symbol, which is
//matched case-insensitively ("HE", "he" and "He" are all Helium).
//The second value is false if the element is not known.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := symbolZ[NormalizeSymbol(symbol)]
	return z, ok
}

//NormalizeSymbol puts an element symbol in the usual
//capitalization: first letter upper case, the rest lower case.
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return symbol
	}
	return strings.ToUpper(symbol[:1]) + strings.ToLower(symbol[1:])
}

//NewAtom returns an atom for the given symbol with the atomic number filled.
func NewAtom(symbol string) (*Atom, error) {
	sym := NormalizeSymbol(symbol)
	z, ok := symbolZ[sym]
	if !ok {
		return nil, CError{UnknownElement + ": " + symbol, []string{"NewAtom"}, true}
	}
	return &Atom{Symbol: sym, Z: z}, nil
}
