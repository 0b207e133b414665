/*
 * optimizer.go, part of govqe.
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

//Package optimizer contains the classical optimizers that drive the
//variational parameters.
package optimizer

import (
	"context"
	"math"
	"strings"
)

//Func is an objective function. It returns error if the evaluation fails.
type Func func(x []float64) (float64, error)

//Grad puts the gradient of an objective at x in dst.
type Grad func(x, dst []float64) error

//Optimizer minimizes objective functions.
type Optimizer interface {
	Name() string
	//Minimize minimizes f starting at x0. grad can be nil for derivative-free methods.
	Minimize(ctx context.Context, f Func, grad Grad, x0 []float64) (*Result, error)
}

//Result is the outcome of an optimization.
type Result struct {
	X           []float64 //best point found
	F           float64   //value at X
	Evaluations int       //objective evaluations made through f. Evaluations made by grad are not counted.
	History     *History
}

//History records every evaluation of an objective.
type History struct {
	Values []float64
	best   int
	points [][]float64
}

//Len returns the number of evaluations recorded.
func (H *History) Len() int { return len(H.Values) }

//Best returns the lowest value recorded and the point where it was obtained.
func (H *History) Best() (float64, []float64) {
	if len(H.Values) == 0 {
		return math.NaN(), nil
	}
	return H.Values[H.best], H.points[H.best]
}

func (H *History) add(x []float64, v float64) {
	H.Values = append(H.Values, v)
	H.points = append(H.points, append([]float64(nil), x...))
	if v < H.Values[H.best] {
		H.best = len(H.Values) - 1
	}
}

//recorder wraps an objective, recording its evaluations, checking the context
//and the evaluation budget.
type recorder struct {
	ctx    context.Context
	f      Func
	budget int //0 means no limit
	hist   *History
}

func (R *recorder) eval(x []float64) (float64, error) {
	if err := R.ctx.Err(); err != nil {
		return 0, Error{Cancelled + ": " + err.Error(), []string{"eval"}, true}
	}
	v, err := R.f(x)
	if err != nil {
		return 0, err
	}
	R.hist.add(x, v)
	return v, nil
}

//left returns the number of evaluations that can still be performed.
func (R *recorder) left() int {
	if R.budget <= 0 {
		return math.MaxInt
	}
	return R.budget - R.hist.Len()
}

func (R *recorder) result() *Result {
	f, x := R.hist.Best()
	return &Result{X: x, F: f, Evaluations: R.hist.Len(), History: R.hist}
}

//ParameterShift returns the gradient of an objective whose dependence on each parameter
//is sinusoidal with period 2π, as is the case for circuits where each parameter is the angle
//of a single Pauli rotation: df/dx_i = (f(x+π/2 e_i) - f(x-π/2 e_i))/2
func ParameterShift(f Func) Grad {
	return func(x, dst []float64) error {
		p := append([]float64(nil), x...)
		for i := range x {
			p[i] = x[i] + math.Pi/2
			fp, err := f(p)
			if err != nil {
				return err
			}
			p[i] = x[i] - math.Pi/2
			fm, err := f(p)
			if err != nil {
				return err
			}
			p[i] = x[i]
			dst[i] = (fp - fm) / 2
		}
		return nil
	}
}

//New returns the optimizer with the given name and evaluation cap:
//"nft" or one of the gonum methods (see Gonum).
func New(name string, maxIter int) (Optimizer, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "nft" {
		return &NFT{MaxIter: maxIter}, nil
	}
	if _, err := gonumMethod(n); err != nil {
		return nil, errDecorate(err, "New")
	}
	return &Gonum{Method: n, MaxIter: maxIter}, nil
}
