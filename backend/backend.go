/*
 * backend.go, part of govqe.
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
	"strings"
	"time"
)

//Options select and configure a backend.
type Options struct {
	Name   string //statevector_simulator, qasm_simulator or remote
	Shots  int
	Seed   int64
	Remote RemoteConfig
}

//New returns the Estimator for the backend named in o. Only the remote backend
//reads credentials, and only when it is requested.
func New(o Options) (Estimator, error) {
	name := strings.ToLower(strings.TrimSpace(o.Name))
	switch name {
	case "", "statevector_simulator", "statevector", "aer_simulator_statevector":
		return Statevector{}, nil
	case "qasm_simulator", "aer_simulator", "shots":
		if o.Shots <= 0 {
			return nil, Error{BadShots, []string{"New"}, true}
		}
		return &ShotEstimator{Sampler: NewShotSimulator(o.Seed), Shots: o.Shots}, nil
	case "remote", "hardware":
		if o.Shots <= 0 {
			return nil, Error{BadShots, []string{"New"}, true}
		}
		if o.Remote.PollInterval == 0 {
			o.Remote.PollInterval = 2 * time.Second
		}
		r, err := NewRemote(o.Remote)
		if err != nil {
			return nil, errDecorate(err, "New")
		}
		return &ShotEstimator{Sampler: r, Shots: o.Shots}, nil
	default:
		return nil, Error{UnknownBackend + ": " + o.Name, []string{"New"}, true}
	}
}
