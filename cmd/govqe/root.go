/*
 * root.go, part of govqe.
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

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rmera/govqe/backend"
	"github.com/rmera/govqe/chemplot"
	"github.com/rmera/govqe/config"
	"github.com/rmera/govqe/optimizer"
	"github.com/rmera/govqe/problem"
	"github.com/rmera/govqe/qm"
	"github.com/rmera/govqe/qubit"
	"github.com/rmera/govqe/solver"
)

//flags holds the command line options. Only the ones explicitly set override
//the configuration file.
type flags struct {
	config            string
	atom              string
	basis             string
	charge            int
	spin              int
	maxIter           int
	optimizer         string
	backend           string
	solver            string
	mapper            string
	twoQubitReduction bool
	seed              int64
	logLevel          string
	report            bool
	plot              string
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "govqe",
		Short:         "Ground state energy of a molecule with the variational quantum eigensolver",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogger(cmd.ErrOrStderr(), f.logLevel); err != nil {
				return err
			}
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			P, conv, err := prepare(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			res, err := solve(cmd.Context(), cfg, P, conv)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calculated Ground State Energy (Simulator): %v Hartree\n", res.TotalEnergy())
			if f.report {
				fmt.Fprint(out, res.String())
			}
			if f.plot != "" {
				return plot(cmd.Context(), res, P, conv, f.plot)
			}
			return nil
		},
	}
	pf := root.Flags()
	pf.StringVar(&f.config, "config", "", "YAML configuration file")
	pf.StringVar(&f.atom, "atom", "", `geometry, as "Sym x y z; Sym x y z" in Angstrom`)
	pf.StringVar(&f.basis, "basis", "", "basis set")
	pf.IntVar(&f.charge, "charge", 0, "molecular charge")
	pf.IntVar(&f.spin, "spin", 0, "number of unpaired electrons (2S)")
	pf.IntVar(&f.maxIter, "maxiter", 0, "maximum number of energy evaluations")
	pf.StringVar(&f.optimizer, "optimizer", "", "nft, nelder-mead, bfgs, lbfgs, cg or gradient-descent")
	pf.StringVar(&f.backend, "backend", "", "statevector_simulator, qasm_simulator or remote")
	pf.StringVar(&f.solver, "solver", "", "vqe or exact")
	pf.StringVar(&f.mapper, "mapper", "", "parity or jordan_wigner")
	pf.BoolVar(&f.twoQubitReduction, "two-qubit-reduction", false, "remove two qubits using the electron number parities (parity mapping only)")
	pf.Int64Var(&f.seed, "seed", 0, "seed for the initial point and the shot simulator")
	pf.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	pf.BoolVar(&f.report, "report", false, "print the energy decomposition after the result")
	pf.StringVar(&f.plot, "plot", "", "write PNG plots of the VQE convergence to this file, and of its error to file_error.png")
	root.AddCommand(configCmd())
	return root
}

//configCmd prints the default configuration, to be used as a starting point for a file.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration in YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(config.Default()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

//setupLogger sends the logs to w with the given level, tagged with a run id.
func setupLogger(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("govqe: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "govqe",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	log.SetDefault(logger.With("run", uuid.NewString()))
	return nil
}

//resolve builds the configuration: defaults, then the file, then the flags that were set.
func (f *flags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	set := cmd.Flags().Changed
	if set("atom") {
		cfg.Molecule.Atom = f.atom
		cfg.Molecule.XYZ = ""
	}
	if set("basis") {
		cfg.Molecule.Basis = f.basis
	}
	if set("charge") {
		cfg.Molecule.Charge = f.charge
	}
	if set("spin") {
		cfg.Molecule.Spin = f.spin
	}
	if set("maxiter") {
		cfg.Optimizer.MaxIter = f.maxIter
	}
	if set("optimizer") {
		cfg.Optimizer.Kind = f.optimizer
	}
	if set("backend") {
		cfg.Backend.Name = f.backend
	}
	if set("solver") {
		cfg.Solver = f.solver
	}
	if set("mapper") {
		cfg.Mapper = f.mapper
	}
	if set("two-qubit-reduction") {
		cfg.TwoQubitReduction = f.twoQubitReduction
	}
	if set("seed") {
		cfg.Seed = f.seed
	}
	return cfg, cfg.Validate()
}

//prepare runs the SCF and builds the transformed problem and the qubit converter for it.
func prepare(ctx context.Context, cfg config.Config) (*problem.ElectronicStructureProblem, qubit.Converter, error) {
	var conv qubit.Converter
	mol, err := cfg.BuildMolecule()
	if err != nil {
		return nil, conv, err
	}
	h := qm.NewSCFHandle()
	if err := h.BuildInput(mol, cfg.QMCalc()); err != nil {
		return nil, conv, err
	}
	if err := h.Run(ctx); err != nil {
		return nil, conv, err
	}
	ints, err := h.Integrals()
	if err != nil {
		return nil, conv, err
	}
	P, err := problem.NewElectronicStructureProblem(ints)
	if err != nil {
		return nil, conv, err
	}
	if ts := cfg.BuildTransformers(); len(ts) > 0 {
		if P, err = P.Transform(ts...); err != nil {
			return nil, conv, err
		}
	}
	log.Debug("Problem ready", "spatial_orbitals", P.NumSpatialOrbitals, "alpha", P.NumAlpha, "beta", P.NumBeta, "transformers", P.Transformers())
	if conv, err = cfg.BuildConverter(); err != nil {
		return nil, conv, err
	}
	return P, conv, nil
}

//exactSolver returns the exact eigensolver restricted to the electron number of P.
func exactSolver(P *problem.ElectronicStructureProblem) *solver.Exact {
	na, nb := P.NumParticles()
	return &solver.Exact{Particles: na + nb, Filter: true}
}

//solve finds the ground state of P with the solver selected in cfg.
func solve(ctx context.Context, cfg config.Config, P *problem.ElectronicStructureProblem, conv qubit.Converter) (*solver.ElectronicStructureResult, error) {
	var ms solver.MinimumEigensolver
	switch strings.ToLower(cfg.Solver) {
	case "exact":
		ms = exactSolver(P)
	default:
		ansatz, err := solver.Ansatz(conv, P, cfg.AnsatzOptions())
		if err != nil {
			return nil, err
		}
		opt, err := optimizer.New(cfg.Optimizer.Kind, cfg.Optimizer.MaxIter)
		if err != nil {
			return nil, err
		}
		bo, err := cfg.BackendOptions()
		if err != nil {
			return nil, err
		}
		est, err := backend.New(bo)
		if err != nil {
			return nil, err
		}
		ms = &solver.VQE{Ansatz: ansatz, Optimizer: opt, Estimator: est, Seed: cfg.Seed}
	}
	gs := &solver.GroundStateEigensolver{Converter: conv, Solver: ms}
	res, err := gs.Solve(ctx, P)
	if err != nil {
		return nil, err
	}
	checkParticles(res, P)
	return res, nil
}

//checkParticles warns if the state found doesn't hold the electrons of the problem. The
//TwoLocal ansatz doesn't conserve the electron number, so for charged molecules the
//optimizer can end up in the sector of a different charge.
func checkParticles(res *solver.ElectronicStructureResult, P *problem.ElectronicStructureProblem) {
	n, ok := res.AuxValues[problem.ParticleNumber]
	if !ok {
		return
	}
	na, nb := P.NumParticles()
	if math.Abs(n-float64(na+nb)) > 1e-2 {
		log.Warn("The ground state found has a different particle number than the molecule, try the exact solver", "expected", na+nb, "found", n)
	}
}

//plot draws the convergence of the total energy, with the Hartree-Fock energy as reference,
//and, if the problem is small enough to be diagonalized, the error with respect to the
//exact ground state energy, in name_error.png.
func plot(ctx context.Context, res *solver.ElectronicStructureResult, P *problem.ElectronicStructureProblem, conv qubit.Converter, filename string) error {
	if res.Raw.History == nil {
		log.Warn("No optimization history to plot", "file", filename)
		return nil
	}
	offset := res.TotalEnergy() - res.ComputedEnergy
	ref := res.HartreeFockEnergy
	if ref == 0 {
		ref = math.NaN()
	}
	if err := chemplot.ConvergencePlot(res.Raw.History, offset, ref, "VQE convergence", filename); err != nil {
		return err
	}
	exact, err := (&solver.GroundStateEigensolver{Converter: conv, Solver: exactSolver(P)}).Solve(ctx, P)
	if err != nil {
		log.Warn("No exact reference for the error plot", "err", err)
		return nil
	}
	return chemplot.ErrorPlot(res.Raw.History, offset, exact.TotalEnergy(), "VQE error", errorPlotName(filename))
}

//errorPlotName returns name, without the .png extension, plus _error.png
func errorPlotName(name string) string {
	return strings.TrimSuffix(name, ".png") + "_error.png"
}
