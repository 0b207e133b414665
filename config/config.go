/*
 * config.go, part of govqe.
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

//Package config holds the settings of a govqe run. All of them have defaults that
//reproduce the H2 calculation, and can be read from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	chem "github.com/rmera/govqe"
	"github.com/rmera/govqe/backend"
	"github.com/rmera/govqe/circuit"
	"github.com/rmera/govqe/gto"
	"github.com/rmera/govqe/optimizer"
	"github.com/rmera/govqe/problem"
	"github.com/rmera/govqe/qm"
	"github.com/rmera/govqe/qubit"
	"github.com/rmera/govqe/solver"
)

//Config is the complete configuration of a run.
type Config struct {
	Molecule          MoleculeConfig    `yaml:"molecule"`
	Transformers      TransformerConfig `yaml:"transformers"`
	Mapper            string            `yaml:"mapper"`
	TwoQubitReduction bool              `yaml:"two_qubit_reduction"`
	Ansatz            AnsatzConfig      `yaml:"ansatz"`
	Optimizer         OptimizerConfig   `yaml:"optimizer"`
	Seed              int64             `yaml:"seed"`
	Backend           BackendConfig     `yaml:"backend"`
	Solver            string            `yaml:"solver"` //vqe or exact
}

//MoleculeConfig describes the molecule and the SCF calculation for it.
type MoleculeConfig struct {
	Atom   string `yaml:"atom"`
	XYZ    string `yaml:"xyz"` //if set, the geometry is read from this file instead of Atom.
	Unit   string `yaml:"unit"`
	Charge int    `yaml:"charge"`
	Spin   int    `yaml:"spin"` //2S, number of unpaired electrons
	Basis  string `yaml:"basis"`
	SCF    string `yaml:"scf"` //"", "tight" or "verytight"
}

//TransformerConfig selects the transformations of the electronic structure problem.
type TransformerConfig struct {
	FreezeCore     bool               `yaml:"freeze_core"`
	RemoveOrbitals []int              `yaml:"remove_orbitals,omitempty"`
	ActiveSpace    *ActiveSpaceConfig `yaml:"active_space,omitempty"`
}

//ActiveSpaceConfig is the size and, optionally, the orbitals of an active space.
type ActiveSpaceConfig struct {
	NumElectrons       int   `yaml:"num_electrons"`
	NumSpatialOrbitals int   `yaml:"num_spatial_orbitals"`
	ActiveOrbitals     []int `yaml:"active_orbitals,omitempty"`
}

//AnsatzConfig defines the TwoLocal ansatz.
type AnsatzConfig struct {
	RotationBlocks     []string `yaml:"rotation_blocks"`
	EntanglementBlocks []string `yaml:"entanglement_blocks"`
	Entanglement       string   `yaml:"entanglement"`
	Reps               int      `yaml:"reps"`
	InitialState       string   `yaml:"initial_state"` //zero or hartree_fock
}

//OptimizerConfig selects the classical optimizer.
type OptimizerConfig struct {
	Kind    string `yaml:"kind"`
	MaxIter int    `yaml:"max_iter"`
}

//BackendConfig selects the backend that evaluates the circuits.
type BackendConfig struct {
	Name   string       `yaml:"name"`
	Shots  int          `yaml:"shots"`
	Remote RemoteConfig `yaml:"remote"`
}

//RemoteConfig configures the remote backend. Durations are strings like "2s".
type RemoteConfig struct {
	BaseURL      string `yaml:"base_url"`
	Device       string `yaml:"device"`
	TokenEnv     string `yaml:"token_env"`
	EnvFile      string `yaml:"env_file"`
	PollInterval string `yaml:"poll_interval"`
	Timeout      string `yaml:"timeout"`
}

//Default returns the configuration of the reference H2 run.
func Default() Config {
	return Config{
		Molecule: MoleculeConfig{
			Atom:  "H .0 .0 .0; H .0 .0 0.735",
			Unit:  chem.Angstrom,
			Basis: "sto3g",
		},
		Transformers: TransformerConfig{FreezeCore: true},
		Mapper:       "parity",
		Ansatz: AnsatzConfig{
			RotationBlocks:     []string{"ry"},
			EntanglementBlocks: []string{"cz"},
			Entanglement:       circuit.Full,
			Reps:               3,
			InitialState:       "zero",
		},
		Optimizer: OptimizerConfig{Kind: "nft", MaxIter: 1000},
		Seed:      42,
		Backend: BackendConfig{
			Name:  "statevector_simulator",
			Shots: 1024,
			Remote: RemoteConfig{
				TokenEnv:     backend.DefaultTokenEnv,
				EnvFile:      ".env",
				PollInterval: "2s",
				Timeout:      "30s",
			},
		},
		Solver: "vqe",
	}
}

//LoadConfig reads a YAML file on top of the defaults, so only the values that
//differ from them need to be given. Environment variables referenced as ${VAR}
//or $VAR are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, Error{UnableToRead + ": " + err.Error(), []string{"os.ReadFile", "LoadConfig"}, true}
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return cfg, Error{BadYAML + ": " + err.Error(), []string{"yaml.Unmarshal", "LoadConfig"}, true}
	}
	return cfg, nil
}

//Write writes c as YAML to path.
func (c Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return Error{err.Error(), []string{"yaml.Marshal", "Write"}, true}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Error{err.Error(), []string{"os.WriteFile", "Write"}, true}
	}
	return nil
}

func invalid(format string, a ...interface{}) error {
	return Error{Invalid + ": " + fmt.Sprintf(format, a...), []string{"Validate"}, true}
}

//Validate checks the enumerated fields and the numeric limits of the configuration.
func (c Config) Validate() error {
	m := c.Molecule
	if m.Atom == "" && m.XYZ == "" {
		return invalid("no molecule given")
	}
	if !gto.Supported(m.Basis) {
		return invalid("unknown basis %q", m.Basis)
	}
	if m.Spin < 0 {
		return invalid("negative spin %d", m.Spin)
	}
	switch strings.ToLower(m.SCF) {
	case "", "tight", "verytight":
	default:
		return invalid("unknown scf convergence %q", m.SCF)
	}
	if _, err := qubit.NewMapper(c.Mapper); err != nil {
		return invalid("%s", err.Error())
	}
	a := c.Ansatz
	if a.Reps < 0 {
		return invalid("negative ansatz reps %d", a.Reps)
	}
	if len(a.RotationBlocks) == 0 {
		return invalid("no rotation blocks")
	}
	for _, g := range append(append([]string{}, a.RotationBlocks...), a.EntanglementBlocks...) {
		if !circuit.Known(g) {
			return invalid("unknown gate %q", g)
		}
	}
	if _, err := circuit.Pairs(a.Entanglement, 2); err != nil {
		return invalid("%s", err.Error())
	}
	switch strings.ToLower(a.InitialState) {
	case "", "zero", "hartree_fock", "hartree-fock", "hf":
	default:
		return invalid("unknown initial state %q", a.InitialState)
	}
	if c.Optimizer.MaxIter <= 0 {
		return invalid("max_iter must be positive, got %d", c.Optimizer.MaxIter)
	}
	if _, err := optimizer.New(c.Optimizer.Kind, c.Optimizer.MaxIter); err != nil {
		return invalid("%s", err.Error())
	}
	switch strings.ToLower(c.Solver) {
	case "vqe", "exact":
	default:
		return invalid("unknown solver %q", c.Solver)
	}
	switch strings.ToLower(c.Backend.Name) {
	case "", "statevector_simulator", "statevector", "aer_simulator_statevector":
	case "qasm_simulator", "aer_simulator", "shots":
		if c.Backend.Shots <= 0 {
			return invalid("shots must be positive, got %d", c.Backend.Shots)
		}
	case "remote", "hardware":
		if c.Backend.Shots <= 0 {
			return invalid("shots must be positive, got %d", c.Backend.Shots)
		}
		if c.Backend.Remote.BaseURL == "" {
			return invalid("the remote backend needs a base_url")
		}
		if _, _, err := c.Backend.Remote.durations(); err != nil {
			return invalid("%s", err.Error())
		}
	default:
		return invalid("unknown backend %q", c.Backend.Name)
	}
	return nil
}

func (r RemoteConfig) durations() (poll, timeout time.Duration, err error) {
	if r.PollInterval != "" {
		if poll, err = time.ParseDuration(r.PollInterval); err != nil {
			return 0, 0, err
		}
	}
	if r.Timeout != "" {
		if timeout, err = time.ParseDuration(r.Timeout); err != nil {
			return 0, 0, err
		}
	}
	return poll, timeout, nil
}

//BuildMolecule returns the molecule described in the configuration, with its
//charge and multiplicity (spin+1) set.
func (c Config) BuildMolecule() (*chem.Molecule, error) {
	var mol *chem.Molecule
	var err error
	if c.Molecule.XYZ != "" {
		mol, err = chem.XYZFileRead(c.Molecule.XYZ)
	} else {
		mol, err = chem.ParseAtomString(c.Molecule.Atom, c.Molecule.Unit)
	}
	if err != nil {
		return nil, Error{err.Error(), []string{"BuildMolecule"}, true}
	}
	mol.SetCharge(c.Molecule.Charge)
	mol.SetMulti(c.Molecule.Spin + 1)
	return mol, nil
}

//BuildTransformers returns the transformers to apply to the problem, in order.
func (c Config) BuildTransformers() []problem.Transformer {
	var ts []problem.Transformer
	t := c.Transformers
	if t.FreezeCore || len(t.RemoveOrbitals) > 0 {
		ts = append(ts, problem.FreezeCore{Freeze: t.FreezeCore, RemoveOrbitals: t.RemoveOrbitals})
	}
	if as := t.ActiveSpace; as != nil {
		ts = append(ts, problem.ActiveSpace{NumElectrons: as.NumElectrons, NumSpatialOrbitals: as.NumSpatialOrbitals, ActiveOrbitals: as.ActiveOrbitals})
	}
	return ts
}

//BuildConverter returns the fermion-to-qubit converter.
func (c Config) BuildConverter() (qubit.Converter, error) {
	m, err := qubit.NewMapper(c.Mapper)
	if err != nil {
		return qubit.Converter{}, Error{err.Error(), []string{"BuildConverter"}, true}
	}
	return qubit.Converter{Mapper: m, TwoQubitReduction: c.TwoQubitReduction}, nil
}

//AnsatzOptions returns the options for solver.Ansatz.
func (c Config) AnsatzOptions() solver.AnsatzOptions {
	a := c.Ansatz
	return solver.AnsatzOptions{
		TwoLocalOptions: circuit.TwoLocalOptions{
			Rotation:     a.RotationBlocks,
			Entanglement: a.EntanglementBlocks,
			Pattern:      a.Entanglement,
			Reps:         a.Reps,
		},
		InitialState: a.InitialState,
	}
}

//BackendOptions returns the options for backend.New.
func (c Config) BackendOptions() (backend.Options, error) {
	poll, timeout, err := c.Backend.Remote.durations()
	if err != nil {
		return backend.Options{}, Error{Invalid + ": " + err.Error(), []string{"BackendOptions"}, true}
	}
	r := c.Backend.Remote
	return backend.Options{
		Name:  c.Backend.Name,
		Shots: c.Backend.Shots,
		Seed:  c.Seed,
		Remote: backend.RemoteConfig{
			BaseURL:      r.BaseURL,
			Device:       r.Device,
			TokenEnv:     r.TokenEnv,
			EnvFile:      r.EnvFile,
			PollInterval: poll,
			Timeout:      timeout,
		},
	}, nil
}

//QMCalc returns the SCF settings.
func (c Config) QMCalc() *qm.Calc {
	Q := &qm.Calc{Method: "HF", Basis: c.Molecule.Basis}
	switch strings.ToLower(c.Molecule.SCF) {
	case "tight":
		Q.SCFTightness = 1
	case "verytight":
		Q.SCFTightness = 2
	}
	return Q
}
