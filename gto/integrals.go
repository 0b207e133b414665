/*
 * integrals.go, part of govqe.
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
	"math"

	"gonum.org/v1/gonum/mathext"

	v3 "github.com/rmera/govqe/v3"
)

//The integrals are computed with the McMurchie-Davidson scheme: products of
//Gaussians are expanded in Hermite Gaussians (coefficients E) and the Coulomb
//integrals over Hermite Gaussians (R) are obtained by recursion from the Boys function.

//hermiteE returns the Hermite expansion coefficient E^{ij}_t for the product of two
//1D Gaussians with exponents a and b and angular momenta i and j, separated by qx=Ax-Bx.
func hermiteE(i, j, t int, qx, a, b float64) float64 {
	if t < 0 || i < 0 || j < 0 || t > i+j {
		return 0
	}
	p := a + b
	q := a * b / p
	if i == 0 && j == 0 && t == 0 {
		return math.Exp(-q * qx * qx)
	}
	tf := float64(t)
	if j == 0 {
		return (1/(2*p))*hermiteE(i-1, j, t-1, qx, a, b) -
			(q*qx/a)*hermiteE(i-1, j, t, qx, a, b) +
			(tf+1)*hermiteE(i-1, j, t+1, qx, a, b)
	}
	return (1/(2*p))*hermiteE(i, j-1, t-1, qx, a, b) +
		(q*qx/b)*hermiteE(i, j-1, t, qx, a, b) +
		(tf+1)*hermiteE(i, j-1, t+1, qx, a, b)
}

//Boys returns the Boys function F_n(x).
func Boys(n int, x float64) float64 {
	nf := float64(n)
	if x < 1e-12 {
		return 1/(2*nf+1) - x/(2*nf+3)
	}
	//F_n(x) = gamma(n+1/2) P(n+1/2,x) / (2 x^(n+1/2)), P being the regularized lower incomplete gamma.
	return math.Gamma(nf+0.5) * mathext.GammaIncReg(nf+0.5, x) / (2 * math.Pow(x, nf+0.5))
}

//hermiteR returns the Hermite Coulomb integral R^n_{tuv}.
func hermiteR(t, u, v, n int, p float64, pc [3]float64, rpc float64) float64 {
	if t < 0 || u < 0 || v < 0 {
		return 0
	}
	var val float64
	switch {
	case t == 0 && u == 0 && v == 0:
		val = math.Pow(-2*p, float64(n)) * Boys(n, p*rpc*rpc)
	case t == 0 && u == 0:
		if v > 1 {
			val += float64(v-1) * hermiteR(t, u, v-2, n+1, p, pc, rpc)
		}
		val += pc[2] * hermiteR(t, u, v-1, n+1, p, pc, rpc)
	case t == 0:
		if u > 1 {
			val += float64(u-1) * hermiteR(t, u-2, v, n+1, p, pc, rpc)
		}
		val += pc[1] * hermiteR(t, u-1, v, n+1, p, pc, rpc)
	default:
		if t > 1 {
			val += float64(t-1) * hermiteR(t-2, u, v, n+1, p, pc, rpc)
		}
		val += pc[0] * hermiteR(t-1, u, v, n+1, p, pc, rpc)
	}
	return val
}

func gaussianProduct(a float64, A [3]float64, b float64, B [3]float64) [3]float64 {
	p := a + b
	return [3]float64{(a*A[0] + b*B[0]) / p, (a*A[1] + b*B[1]) / p, (a*A[2] + b*B[2]) / p}
}

//primitive integrals

func overlapPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64) float64 {
	s := math.Pow(math.Pi/(a+b), 1.5)
	for k := 0; k < 3; k++ {
		s *= hermiteE(l1[k], l2[k], 0, A[k]-B[k], a, b)
		if s == 0 {
			return 0
		}
	}
	return s
}

func shifted(l [3]int, k, d int) [3]int {
	l[k] += d
	return l
}

func kineticPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64) float64 {
	L2 := float64(l2[0] + l2[1] + l2[2])
	t := b * (2*L2 + 3) * overlapPrim(a, l1, A, b, l2, B)
	for k := 0; k < 3; k++ {
		t -= 2 * b * b * overlapPrim(a, l1, A, b, shifted(l2, k, 2), B)
		if l2[k] > 1 {
			lk := float64(l2[k])
			t -= 0.5 * lk * (lk - 1) * overlapPrim(a, l1, A, b, shifted(l2, k, -2), B)
		}
	}
	return t
}

func nuclearPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64, C [3]float64) float64 {
	p := a + b
	P := gaussianProduct(a, A, b, B)
	pc := v3.Sub3(P, C)
	rpc := v3.Dist(P, C)
	var val float64
	for t := 0; t <= l1[0]+l2[0]; t++ {
		et := hermiteE(l1[0], l2[0], t, A[0]-B[0], a, b)
		for u := 0; u <= l1[1]+l2[1]; u++ {
			eu := hermiteE(l1[1], l2[1], u, A[1]-B[1], a, b)
			for v := 0; v <= l1[2]+l2[2]; v++ {
				ev := hermiteE(l1[2], l2[2], v, A[2]-B[2], a, b)
				val += et * eu * ev * hermiteR(t, u, v, 0, p, pc, rpc)
			}
		}
	}
	return 2 * math.Pi / p * val
}

func repulsionPrim(a float64, l1 [3]int, A [3]float64, b float64, l2 [3]int, B [3]float64,
	c float64, l3 [3]int, C [3]float64, d float64, l4 [3]int, D [3]float64) float64 {
	p := a + b
	q := c + d
	alpha := p * q / (p + q)
	P := gaussianProduct(a, A, b, B)
	Q := gaussianProduct(c, C, d, D)
	pq := v3.Sub3(P, Q)
	rpq := v3.Dist(P, Q)
	var val float64
	for t := 0; t <= l1[0]+l2[0]; t++ {
		e1 := hermiteE(l1[0], l2[0], t, A[0]-B[0], a, b)
		for u := 0; u <= l1[1]+l2[1]; u++ {
			e2 := hermiteE(l1[1], l2[1], u, A[1]-B[1], a, b)
			for v := 0; v <= l1[2]+l2[2]; v++ {
				e3 := hermiteE(l1[2], l2[2], v, A[2]-B[2], a, b)
				for tau := 0; tau <= l3[0]+l4[0]; tau++ {
					e4 := hermiteE(l3[0], l4[0], tau, C[0]-D[0], c, d)
					for nu := 0; nu <= l3[1]+l4[1]; nu++ {
						e5 := hermiteE(l3[1], l4[1], nu, C[1]-D[1], c, d)
						for phi := 0; phi <= l3[2]+l4[2]; phi++ {
							e6 := hermiteE(l3[2], l4[2], phi, C[2]-D[2], c, d)
							sign := 1.0
							if (tau+nu+phi)%2 == 1 {
								sign = -1
							}
							val += e1 * e2 * e3 * e4 * e5 * e6 * sign * hermiteR(t+tau, u+nu, v+phi, 0, alpha, pq, rpq)
						}
					}
				}
			}
		}
	}
	return 2 * math.Pow(math.Pi, 2.5) / (p * q * math.Sqrt(p+q)) * val
}

//contracted integrals

//Overlap returns <a|b>.
func Overlap(a, b *BasisFunction) float64 {
	var s float64
	for i, ea := range a.Exps {
		for j, eb := range b.Exps {
			s += a.Coeffs[i] * b.Coeffs[j] * overlapPrim(ea, a.LMN, a.Center, eb, b.LMN, b.Center)
		}
	}
	return s
}

//Kinetic returns <a|-1/2 nabla^2|b>.
func Kinetic(a, b *BasisFunction) float64 {
	var s float64
	for i, ea := range a.Exps {
		for j, eb := range b.Exps {
			s += a.Coeffs[i] * b.Coeffs[j] * kineticPrim(ea, a.LMN, a.Center, eb, b.LMN, b.Center)
		}
	}
	return s
}

//NuclearAttraction returns <a|-Z/|r-C||b>.
func NuclearAttraction(a, b *BasisFunction, C [3]float64, Z float64) float64 {
	var s float64
	for i, ea := range a.Exps {
		for j, eb := range b.Exps {
			s += a.Coeffs[i] * b.Coeffs[j] * nuclearPrim(ea, a.LMN, a.Center, eb, b.LMN, b.Center, C)
		}
	}
	return -Z * s
}

//Repulsion returns the electron repulsion integral (ab|cd), in chemists' notation.
func Repulsion(a, b, c, d *BasisFunction) float64 {
	var s float64
	for i, ea := range a.Exps {
		for j, eb := range b.Exps {
			cab := a.Coeffs[i] * b.Coeffs[j]
			for k, ec := range c.Exps {
				for l, ed := range d.Exps {
					s += cab * c.Coeffs[k] * d.Coeffs[l] * repulsionPrim(ea, a.LMN, a.Center, eb, b.LMN, b.Center,
						ec, c.LMN, c.Center, ed, d.LMN, d.Center)
				}
			}
		}
	}
	return s
}
