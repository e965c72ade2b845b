/*
 * doc.go, part of goaenet.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package aenet is the main package of the goaenet library. It provides the data
types and text serialization needed to drive the aenet suite of programs
(generate.x, train.x and predict.x, which must be obtained independently from
http://ann.atomistic.net) when fitting neural-network interatomic potentials
to reference electronic-structure data.


	**goaenet capabilities**

    Reads and writes periodic structures in the XSF format used by aenet,
	including reference total energies and atomic forces.

    Serializes Behler-Parrinello and Chebyshev descriptor setups to the
	.stp files read by generate.x.

    Builds the control files for all three aenet programs (generate.in,
	train.in, predict.in) from a single typed description of the fit.

    Runs the programs and recovers their results: the per-epoch training
	errors reported by train.x and the total energies reported by
	predict.x (package goaenet/calc).

    Bundles trained potentials, with checksums and their training history,
	into compressed archives, and writes the pair-style lines that load
	them into LAMMPS (package goaenet/potential).

    Writes LAMMPS data files and input scripts for molecular dynamics with
	the fitted potential (package goaenet/lammps).

    Keeps fitted potentials and their validation results in a SQLite
	database (package goaenet/store) and chains the whole fit from a TOML
	configuration file (package goaenet/workflow).


Coordinates, forces and lattice vectors are kept in gonum mat.Dense matrices,
one point per row.*/
package aenet
