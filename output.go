/*
 * output.go, part of idock.
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

package dock

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

//WriteResults writes the docked poses of lig as PDBQT MODEL blocks,
//atoms in the original serial order, with the predicted energies as
//REMARKs.
func WriteResults(path string, lig *Ligand, results []*Result) error {
	f, err := os.Create(path)
	if err != nil {
		return Error{UnableToOpen + ": " + err.Error(), path, 0, []string{"WriteResults"}, false}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := writeResults(w, lig, results); err != nil {
		return errDecorate(err, "WriteResults")
	}
	return w.Flush()
}

type outAtom struct {
	serial int
	name   string
	ad     int
	coord  Vec3
}

func writeResults(w io.Writer, lig *Ligand, results []*Result) error {
	atoms := make([]outAtom, 0, len(lig.HeavyAtoms)+len(lig.Hydrogens))
	for m, r := range results {
		atoms = atoms[:0]
		for i := range lig.HeavyAtoms {
			a := &lig.HeavyAtoms[i]
			atoms = append(atoms, outAtom{a.Serial, a.Name, a.AD, r.HeavyAtoms[i]})
		}
		for i := range lig.Hydrogens {
			a := &lig.Hydrogens[i]
			atoms = append(atoms, outAtom{a.Serial, a.Name, a.AD, r.Hydrogens[i]})
		}
		sort.Slice(atoms, func(i, j int) bool { return atoms[i].serial < atoms[j].serial })

		fmt.Fprintf(w, "MODEL     %4d\n", m+1)
		fmt.Fprintf(w, "REMARK            FREE ENERGY PREDICTED BY IDOCK:%8.3f KCAL/MOL\n", r.E)
		fmt.Fprintf(w, "REMARK NORMALIZED FREE ENERGY PREDICTED BY IDOCK:%8.3f KCAL/MOL\n", r.ENd)
		for _, a := range atoms {
			_, err := fmt.Fprintf(w, "ATOM  %5d %-4s LIG A   1    %8.3f%8.3f%8.3f%6.2f%6.2f    %6.3f %-2s\n",
				a.serial, a.name, a.coord[0], a.coord[1], a.coord[2], 1.0, 0.0, 0.0, ADTypeString(a.ad))
			if err != nil {
				return Error{err.Error(), "", 0, []string{"writeResults"}, false}
			}
		}
		fmt.Fprintf(w, "ENDMDL\n")
	}
	return nil
}
