/*
 * doc.go, part of govqe.
 *
 * Copyright 2021 Raul Mera <rmeraatusachdotcl>
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
 * */

//Package qm provides the electronic structure calculations that
//feed the rest of the pipeline. The settings of a calculation (Calc)
//are kept separated from the program or method that performs it (Handle).
//The only Handle available is SCFHandle, an in-process restricted
//Hartree-Fock implementation that returns the one- and two-electron
//integrals in the basis of the canonical molecular orbitals.

package qm
