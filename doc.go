/*
 * doc.go, part of govqe.
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
 */

/*Package chem is the main package of the govqe library. It provides the atom and molecule
structures, the parsers for geometries and the atomic data needed to set up an electronic
structure problem.



	**govqe Capabilities**


    Reads geometries as PySCF-style atom strings ("H 0 0 0; H 0 0 0.735") and from
	XYZ files, also gzip- or zstd-compressed.

    Computes one- and two-electron integrals over contracted Gaussian basis functions
	(package gto) and runs restricted Hartree-Fock calculations (package qm).

    Builds the second-quantized electronic Hamiltonian, with frozen-core and
	active-space reductions (packages problem and fermion).

    Maps fermionic operators to qubit operators with the parity or Jordan-Wigner
	mappings, optionally tapering the two parity qubits (package qubit).

    Simulates parametrized circuits (package circuit) on a state-vector or shot-based
	simulator, or sends them to remote quantum hardware (package backend).

    Finds ground-state energies with the variational quantum eigensolver or exact
	diagonalization (packages optimizer and solver).

    Plots the convergence of a variational run (package chemplot).

The Molecule coordinates are a v3.Matrix, based in gonum's mat.Dense. Each row
of a v3.Matrix represents one point in space.*/
package chem
