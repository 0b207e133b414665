/*
 * gonum.go, part of govqe.
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

package optimizer

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/optimize"
)

//Gonum minimizes with one of the methods of gonum's optimize package:
//"nelder-mead", "bfgs", "lbfgs", "cg" or "gradient-descent".
//The gradient-based methods need a Grad, usually ParameterShift.
type Gonum struct {
	Method  string
	MaxIter int //maximum number of objective evaluations. Gradient evaluations are capped so that each parameter-shift gradient counts as 2n evaluations.
}

func gonumMethod(name string) (optimize.Method, error) {
	switch name {
	case "nelder-mead", "neldermead", "nelder_mead":
		return &optimize.NelderMead{}, nil
	case "bfgs":
		return &optimize.BFGS{}, nil
	case "lbfgs", "l-bfgs":
		return &optimize.LBFGS{}, nil
	case "cg":
		return &optimize.CG{}, nil
	case "gradient-descent", "gd":
		return &optimize.GradientDescent{}, nil
	}
	return nil, Error{UnknownMethod + ": " + name, []string{"gonumMethod"}, true}
}

//Name returns the method's name.
func (G *Gonum) Name() string { return G.Method }

//Minimize minimizes f from x0.
func (G *Gonum) Minimize(ctx context.Context, f Func, grad Grad, x0 []float64) (*Result, error) {
	method, err := gonumMethod(G.Method)
	if err != nil {
		return nil, errDecorate(err, "Gonum.Minimize")
	}
	uses, err := method.Uses(optimize.Available{Grad: true})
	needsGrad := err == nil && uses.Grad
	if needsGrad && grad == nil {
		return nil, Error{NoGradient + ": " + G.Method, []string{"Gonum.Minimize"}, true}
	}
	rec := &recorder{ctx: ctx, f: f, budget: G.MaxIter, hist: &History{}}
	var ferr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if ferr != nil {
				return math.Inf(1)
			}
			v, err := rec.eval(x)
			if err != nil {
				ferr = err
				return math.Inf(1)
			}
			return v
		},
	}
	if grad != nil && needsGrad {
		problem.Grad = func(dst, x []float64) {
			if ferr != nil {
				return
			}
			if err := grad(x, dst); err != nil {
				ferr = err
			}
		}
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 50},
	}
	if G.MaxIter > 0 {
		settings.FuncEvaluations = G.MaxIter
		if needsGrad {
			//each parameter-shift gradient costs 2 evaluations per parameter.
			settings.GradEvaluations = max(1, G.MaxIter/(2*max(1, len(x0))))
		}
	}
	res, err := optimize.Minimize(problem, x0, settings, method)
	if ferr != nil {
		return nil, errDecorate(ferr, "Gonum.Minimize")
	}
	if err != nil {
		if rec.hist.Len() == 0 {
			return nil, Error{err.Error(), []string{"optimize.Minimize", "Gonum.Minimize"}, true}
		}
		log.Warnf("%s stopped early: %v", G.Method, err)
	}
	if res != nil {
		log.Debug("gonum optimization finished", "method", G.Method, "status", res.Status.String(), "evaluations", rec.hist.Len())
	}
	return rec.result(), nil
}
