/*
 * doc.go, part of idock.
 *
 * Copyright 2024 The idock developers
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

/*Package dock is the main package of the idock library. It docks flexible
small-molecule ligands into a rigid protein receptor.

	**Capabilities**

    Reads PDBQT receptors and ligands (AutoDock atom typing).

    Tabulates a semi-empirical five-term scoring function per atom-type
	pair on a fine r^2 grid, with analytic derivative-over-r.

    Buckets receptor heavy atoms into the cubic partitions of the search
	box so per-pose energy evaluation only scans nearby atoms.

    Searches ligand poses with randomized-restart Monte Carlo plus a
	quasi-Newton (BFGS) local optimizer under Wolfe line-search
	conditions, over position, orientation (unit quaternion) and
	active torsions.

    Keeps the K best mutually-diverse poses per ligand (RMSD clustering)
	and runs independent seeded tasks on a worker pool, reproducibly.

The subpackages provide a TOML run configuration (cfg), a compressed
stream of accepted poses (pose), potential-curve and energy-histogram
plots (profile), and a batch command line driver (cmd/idock).

Distances are in Angstroms and energies in kcal/mol throughout.
*/
package dock
