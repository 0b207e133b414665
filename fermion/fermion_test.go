/*
 * fermion_test.go, part of govqe.
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

package fermion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplify(Te *testing.T) {
	O := New(4)
	O.AddTerm(0.5, Create(0), Annihilate(1))
	O.AddTerm(0.25, Create(0), Annihilate(1))
	O.AddTerm(1, Create(2), Create(2))
	O.AddTerm(1e-14, Create(3), Annihilate(3))
	S := O.Simplify(1e-10)
	assert.Equal(Te, 1, S.Len())
	assert.Equal(Te, complex(0.75, 0), S.Terms()[0].Coeff)
	assert.Equal(Te, "+_0 -_1", S.Terms()[0].Label())
}

func TestAlgebra(Te *testing.T) {
	A := Number(2, 0)
	B := Number(2, 1).Scale(2)
	C := A.Add(B)
	assert.Equal(Te, 2, C.Len())
	assert.Equal(Te, 2, C.NumModes())
	P := A.Compose(B)
	assert.Equal(Te, 1, P.Len())
	assert.Equal(Te, "+_0 -_0 +_1 -_1", P.Terms()[0].Label())
	assert.Equal(Te, complex(2, 0), P.Terms()[0].Coeff)
	assert.Panics(Te, func() { A.AddTerm(1, Create(5)) })
}
