/*
 * nft.go, part of govqe.
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
)

//NFT is the Nakanishi-Fujii-Todo sequential minimal optimizer. It exploits that
//the energy of a circuit where each parameter is the angle of one Pauli rotation
//is a sinusoid in each parameter: three evaluations fix the sinusoid, and the
//parameter is set to its minimum. Parameters are updated one at a time, cyclically.
type NFT struct {
	MaxIter       int     //maximum number of objective evaluations, 0 means no limit.
	Tol           float64 //stop when a full sweep lowers the energy less than this. Defaults to 1e-12.
	ResetInterval int     //re-evaluate, instead of predict, the current value every this many updates. Defaults to 32.
}

//Name returns "nft".
func (N *NFT) Name() string { return "nft" }

//Minimize minimizes f from x0. grad is not used.
func (N *NFT) Minimize(ctx context.Context, f Func, grad Grad, x0 []float64) (*Result, error) {
	tol := N.Tol
	if tol <= 0 {
		tol = 1e-12
	}
	reset := N.ResetInterval
	if reset <= 0 {
		reset = 32
	}
	rec := &recorder{ctx: ctx, f: f, budget: N.MaxIter, hist: &History{}}
	x := append([]float64(nil), x0...)
	z0, err := rec.eval(x)
	if err != nil {
		return nil, errDecorate(err, "NFT.Minimize")
	}
	if len(x) == 0 {
		return rec.result(), nil
	}
	sweepStart := z0
	for updates := 0; ; updates++ {
		idx := updates % len(x)
		if updates > 0 && updates%reset == 0 {
			if rec.left() < 1 {
				break
			}
			if z0, err = rec.eval(x); err != nil {
				return nil, errDecorate(err, "NFT.Minimize")
			}
		}
		if rec.left() < 2 {
			break
		}
		orig := x[idx]
		x[idx] = orig + math.Pi/2
		zp, err := rec.eval(x)
		if err != nil {
			return nil, errDecorate(err, "NFT.Minimize")
		}
		x[idx] = orig - math.Pi/2
		zm, err := rec.eval(x)
		if err != nil {
			return nil, errDecorate(err, "NFT.Minimize")
		}
		c := (zp + zm) / 2
		a := z0 - c
		b := (zp - zm) / 2
		x[idx] = math.Remainder(orig+math.Atan2(b, a)+math.Pi, 2*math.Pi)
		z0 = c - math.Hypot(a, b)
		if idx == len(x)-1 {
			log.Debug("NFT sweep", "evaluations", rec.hist.Len(), "energy", z0)
			if sweepStart-z0 < tol {
				break
			}
			sweepStart = z0
		}
	}
	//the last update is predicted, not evaluated.
	if rec.left() >= 1 {
		if _, err := rec.eval(x); err != nil {
			return nil, errDecorate(err, "NFT.Minimize")
		}
	}
	return rec.result(), nil
}
