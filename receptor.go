/*
 * receptor.go, part of idock.
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
	"io"
	"os"
	"strconv"
	"strings"
)

//Receptor is the rigid protein: its heavy atoms and, per partition cell
//of the search box, the indices of the atoms close enough to matter for
//a pose in that cell. Immutable after construction; shared by all
//docking tasks without synchronization.
type Receptor struct {
	Atoms      []Atom
	Box        *Box
	partitions [][]int //flattened (x*ny + y)*nz + z
}

//NewReceptor parses the receptor PDBQT file at path and builds the
//partition index over the box b. An unrecognized AutoDock type is a
//critical error: the whole run must stop.
func NewReceptor(path string, b *Box) (*Receptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, 0, []string{"NewReceptor"}, true}
	}
	defer f.Close()
	rec, err := NewReceptorFromReader(f, path, b)
	if err != nil {
		return nil, errDecorate(err, "NewReceptor")
	}
	return rec, nil
}

//NewReceptorFromReader is NewReceptor on an io.Reader; name is only
//used in error messages.
func NewReceptorFromReader(r io.Reader, name string, b *Box) (*Receptor, error) {
	rec := &Receptor{Box: b}
	rec.Atoms = make([]Atom, 0, 5000) //a receptor typically has under 5000 heavy atoms

	residue := "XXXX" //tracks residue change; dummy start value
	residueStart := 0 //index of the first atom of the current residue
	numLines := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		numLines++
		if strings.HasPrefix(line, "TER") {
			residue = "XXXX"
			continue
		}
		if !strings.HasPrefix(line, "ATOM  ") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		serial, name4, coord, ad, err := parseAtomRecord(line, name, numLines, true)
		if err != nil {
			return nil, err
		}

		//Residue sequence lives at 1-based columns [23, 26].
		if res := line[22:26]; res != residue {
			residue = res
			residueStart = len(rec.Atoms)
		}

		a := NewAtom(serial, name4, coord, ad)
		switch {
		case ad == adTypeH:
			//Non-polar hydrogens are dropped.
			continue
		case ad == adTypeHD:
			//A polar hydrogen is not stored either, but the hetero
			//atom it is bonded to becomes a hydrogen bond donor.
			for i := len(rec.Atoms); i > residueStart; {
				i--
				h := &rec.Atoms[i]
				if h.IsHetero() && h.IsNeighbor(&a) {
					h.Donorize()
					break
				}
			}
			continue
		case a.IsHetero():
			//A hetero atom takes the hydrophobic role away from the
			//carbons it is bonded to within the residue.
			for i := len(rec.Atoms); i > residueStart; {
				i--
				h := &rec.Atoms[i]
				if !h.IsHetero() && h.IsNeighbor(&a) {
					h.Dehydrophobicize()
				}
			}
		default:
			//A carbon bonded to a previously seen hetero atom of the
			//residue is not hydrophobic.
			for i := len(rec.Atoms); i > residueStart; {
				i--
				h := &rec.Atoms[i]
				if h.IsHetero() && h.IsNeighbor(&a) {
					a.Dehydrophobicize()
					break
				}
			}
		}
		rec.Atoms = append(rec.Atoms, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), name, numLines, []string{"NewReceptorFromReader"}, true}
	}
	if len(rec.Atoms) == 0 {
		return nil, Error{NoHeavyAtoms, name, 0, []string{"NewReceptorFromReader"}, true}
	}
	rec.buildPartitions()
	return rec, nil
}

//parseAtomRecord pulls serial, atom name, coordinate and AutoDock type
//out of a fixed-column ATOM/HETATM line.
func parseAtomRecord(line, filename string, lineNo int, critical bool) (serial int, name string, coord Vec3, ad int, err error) {
	if len(line) < 79 {
		err = Error{MalformedRecord, filename, lineNo, []string{"parseAtomRecord"}, critical}
		return
	}
	serial, e := strconv.Atoi(strings.TrimSpace(line[6:11]))
	if e != nil {
		err = Error{MalformedRecord + ": " + e.Error(), filename, lineNo, []string{"parseAtomRecord"}, critical}
		return
	}
	name = strings.TrimSpace(line[12:16])
	for i, span := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
		v, e := strconv.ParseFloat(strings.TrimSpace(line[span[0]:span[1]]), 64)
		if e != nil {
			err = Error{BadCoordinate + ": " + e.Error(), filename, lineNo, []string{"parseAtomRecord"}, critical}
			return
		}
		coord[i] = v
	}
	if !coord.IsFinite() {
		err = Error{BadCoordinate, filename, lineNo, []string{"parseAtomRecord"}, critical}
		return
	}
	//The AutoDock type sits at 1-based columns [78, 79].
	adstr := strings.TrimSpace(line[77:79])
	ad, ok := ParseADType(adstr)
	if !ok {
		err = Error{UnknownADType + " " + strconv.Quote(adstr), filename, lineNo, []string{"parseAtomRecord"}, critical}
		return
	}
	return serial, name, coord, ad, nil
}

//buildPartitions fills the per-cell atom lists. An atom enters the list
//of cell (x, y, z) when its projection distance to the box AND to that
//cell are both under the scoring cutoff; the double filter keeps the
//lists tight so a pose only scans its own cell.
func (rec *Receptor) buildPartitions() {
	b := rec.Box
	nearby := make([]int, 0, len(rec.Atoms))
	for i := range rec.Atoms {
		if b.ProjectDistSqr(rec.Atoms[i].Coord) < CutoffSqr {
			nearby = append(nearby, i)
		}
	}
	nx, ny, nz := b.NumPartitions[0], b.NumPartitions[1], b.NumPartitions[2]
	rec.partitions = make([][]int, nx*ny*nz)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				corner1 := b.PartitionCorner1([3]int{x, y, z})
				corner2 := b.PartitionCorner1([3]int{x + 1, y + 1, z + 1})
				par := make([]int, 0, len(nearby))
				for _, i := range nearby {
					if b.ProjectDistSqrCell(corner1, corner2, rec.Atoms[i].Coord) < CutoffSqr {
						par = append(par, i)
					}
				}
				rec.partitions[(x*ny+y)*nz+z] = par
			}
		}
	}
}

//Partition returns the atom indices bucketed in cell (x, y, z).
func (rec *Receptor) Partition(x, y, z int) []int {
	ny, nz := rec.Box.NumPartitions[1], rec.Box.NumPartitions[2]
	return rec.partitions[(x*ny+y)*nz+z]
}

//PartitionFor returns the atom list of the cell containing the
//projection of p onto the box.
func (rec *Receptor) PartitionFor(p Vec3) []int {
	idx := rec.Box.PartitionIndex(p)
	return rec.Partition(idx[0], idx[1], idx[2])
}
