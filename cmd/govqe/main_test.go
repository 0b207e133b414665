/*
 * main_test.go, part of govqe.
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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rmera/govqe/backend"
	"github.com/rmera/govqe/config"
)

const h2FCI = -1.137306

var resultLine = regexp.MustCompile(`^Calculated Ground State Energy \(Simulator\): (\S+) Hartree\n`)

func execute(Te *testing.T, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func energy(Te *testing.T, out string) float64 {
	m := resultLine.FindStringSubmatch(out)
	require.Len(Te, m, 2, out)
	e, err := strconv.ParseFloat(m[1], 64)
	require.NoError(Te, err)
	return e
}

func TestDefaultRun(Te *testing.T) {
	loads := backend.CredentialLoads()
	out, logs, err := execute(Te)
	require.NoError(Te, err)
	assert.Regexp(Te, `^Calculated Ground State Energy \(Simulator\): \S+ Hartree\n$`, out)
	e := energy(Te, out)
	assert.GreaterOrEqual(Te, e, h2FCI-1e-5)
	assert.InDelta(Te, h2FCI, e, 1e-4)
	assert.Contains(Te, logs, "run=")
	assert.NotContains(Te, logs, "different particle number")
	assert.Equal(Te, loads, backend.CredentialLoads())
	//same seed, same result
	out2, _, err := execute(Te, "--log-level", "error")
	require.NoError(Te, err)
	assert.Equal(Te, out, out2)
}

func TestExactRun(Te *testing.T) {
	out, _, err := execute(Te, "--solver", "exact", "--log-level", "error")
	require.NoError(Te, err)
	assert.InDelta(Te, h2FCI, energy(Te, out), 1e-4)
}

func TestChargedRun(Te *testing.T) {
	//H2 2+ has no electrons left, its energy is the nuclear repulsion.
	out, _, err := execute(Te, "--charge=2", "--solver", "exact", "--report", "--log-level", "error")
	require.NoError(Te, err)
	assert.InDelta(Te, 0.71997, energy(Te, out), 1e-5)
	assert.Regexp(Te, `# Particles: -?0\.000`, out)
	//the TwoLocal ansatz doesn't keep the 4 electrons of H2 2-.
	_, logs, err := execute(Te, "--charge=-2", "--log-level", "warn")
	require.NoError(Te, err)
	assert.Contains(Te, logs, "different particle number")
}

func TestReducedRun(Te *testing.T) {
	out, _, err := execute(Te, "--two-qubit-reduction", "--report", "--log-level", "warn")
	require.NoError(Te, err)
	assert.InDelta(Te, h2FCI, energy(Te, out), 2e-3)
	assert.Contains(Te, out, "=== GROUND STATE ENERGY ===")
}

func TestOneIteration(Te *testing.T) {
	out, _, err := execute(Te, "--maxiter", "1", "--log-level", "error")
	require.NoError(Te, err)
	energy(Te, out)
}

func TestPlot(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "conv.png")
	_, _, err := execute(Te, "--maxiter", "60", "--plot", name, "--log-level", "error")
	require.NoError(Te, err)
	_, err = os.Stat(name)
	assert.NoError(Te, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(name), "conv_error.png"))
	assert.NoError(Te, err)
}

func TestConfigFile(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "run.yaml")
	require.NoError(Te, os.WriteFile(path, []byte("solver: exact\nmapper: jordan_wigner\n"), 0o644))
	out, _, err := execute(Te, "--config", path, "--log-level", "error")
	require.NoError(Te, err)
	assert.InDelta(Te, h2FCI, energy(Te, out), 1e-4)
}

func TestErrors(Te *testing.T) {
	cases := [][]string{
		{"--basis", "6-311g"},
		{"--atom", "H 0 0; H 0 0 0.735"},
		{"--atom", "Xx 0 0 0; H 0 0 0.735"},
		{"--atom", "H 0 0 0; H 0 0 0"},
		{"--spin", "2"},
		{"--optimizer", "spsa"},
		{"--log-level", "chatty"},
		{"--config", "/nonexistent/govqe.yaml"},
		{"extra"},
	}
	for _, args := range cases {
		out, _, err := execute(Te, args...)
		assert.Error(Te, err, args)
		assert.Empty(Te, out, args)
	}
}

func TestConfigCmd(Te *testing.T) {
	out, _, err := execute(Te, "config")
	require.NoError(Te, err)
	c := config.Default()
	c.Seed = 0
	require.NoError(Te, yaml.Unmarshal([]byte(out), &c))
	assert.Equal(Te, config.Default(), c)
}
