/*
 * ligand.go, part of idock.
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
	"log"
	"os"
	"strconv"
	"strings"
)

//A ligand is a tree of rigid frames connected by rotatable bonds, as a
//PDBQT file lays it out: the ROOT block is the root frame, every BRANCH
//block hangs a child frame off a rotor bond. Atom coordinates are kept
//relative to the owning frame so a conformation can be turned into
//cartesian coordinates by one forward pass over the tree.

//LigAtom is a ligand atom together with its frame assignment and its
//coordinate relative to the frame origin, in the reference orientation.
type LigAtom struct {
	Atom
	Frame int
	Rel   Vec3
}

//Frame is one rigid fragment of the ligand.
type Frame struct {
	Parent     int //frame index, -1 for the root
	RotorX     int //heavy-atom index the rotor bond starts at (in an ancestor frame); -1 for the root
	RotorY     int //heavy-atom index of this frame's origin
	Active     bool
	TorsionIdx int  //index into Conformation.Torsions, -1 if not Active
	YY         Vec3 //parent origin -> this origin, in the reference orientation
	Axis       Vec3 //unit rotor axis rotorX -> rotorY, reference orientation

	rotorXSerial, rotorYSerial int //only used while parsing
}

//InteractingPair is a pair of ligand heavy atoms whose interaction
//contributes to the intra-molecular energy, with the scoring-table
//index of its type pair.
type InteractingPair struct {
	I, J     int
	TypePair int
}

//Ligand is the flexible small molecule to dock. Immutable after
//construction; per-task scratch lives in the Evaluator.
type Ligand struct {
	Name              string
	HeavyAtoms        []LigAtom
	Hydrogens         []LigAtom
	Frames            []Frame
	Pairs             []InteractingPair
	NumActiveTorsions int
}

//NewLigand parses a ligand PDBQT file. Errors are non-critical: a bad
//ligand aborts only that ligand, not the run.
func NewLigand(path string) (*Ligand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, 0, []string{"NewLigand"}, false}
	}
	defer f.Close()
	lig, err := NewLigandFromReader(f, path)
	if err != nil {
		return nil, errDecorate(err, "NewLigand")
	}
	return lig, nil
}

//NewLigandFromReader is NewLigand on an io.Reader; name is only used in
//error messages.
func NewLigandFromReader(r io.Reader, name string) (*Ligand, error) {
	lig := &Ligand{Name: name}
	var stack []int //enclosing frames, innermost last
	torsdof := -1
	numLines := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		numLines++
		switch {
		case strings.HasPrefix(line, "ROOT"):
			if len(lig.Frames) > 0 {
				return nil, Error{UnmatchedBranch, name, numLines, []string{"NewLigandFromReader"}, false}
			}
			lig.Frames = append(lig.Frames, Frame{Parent: -1, RotorX: -1, TorsionIdx: -1})
			stack = append(stack, 0)
		case strings.HasPrefix(line, "BRANCH"):
			fields := strings.Fields(line)
			if len(lig.Frames) == 0 || len(fields) < 3 {
				return nil, Error{UnmatchedBranch, name, numLines, []string{"NewLigandFromReader"}, false}
			}
			x, err1 := strconv.Atoi(fields[1])
			y, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, Error{MalformedRecord, name, numLines, []string{"NewLigandFromReader"}, false}
			}
			lig.Frames = append(lig.Frames, Frame{
				Parent:       stack[len(stack)-1],
				TorsionIdx:   -1,
				rotorXSerial: x,
				rotorYSerial: y,
			})
			stack = append(stack, len(lig.Frames)-1)
		case strings.HasPrefix(line, "ENDBRANCH"):
			if len(stack) < 2 {
				return nil, Error{UnmatchedBranch, name, numLines, []string{"NewLigandFromReader"}, false}
			}
			stack = stack[:len(stack)-1]
		case strings.HasPrefix(line, "TORSDOF"):
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					torsdof = n
				}
			}
		case strings.HasPrefix(line, "ATOM  ") || strings.HasPrefix(line, "HETATM"):
			if len(stack) == 0 {
				return nil, Error{NoRootFrame, name, numLines, []string{"NewLigandFromReader"}, false}
			}
			serial, name4, coord, ad, err := parseAtomRecord(line, name, numLines, false)
			if err != nil {
				return nil, err
			}
			current := stack[len(stack)-1]
			a := LigAtom{Atom: NewAtom(serial, name4, coord, ad), Frame: current}
			if a.IsHydrogen() {
				if ad == adTypeHD {
					//The bonded heavy atom of the frame becomes a donor.
					for i := len(lig.HeavyAtoms); i > 0; {
						i--
						h := &lig.HeavyAtoms[i]
						if h.Frame == current && h.IsHetero() && h.IsNeighbor(&a.Atom) {
							h.Donorize()
							break
						}
					}
				}
				lig.Hydrogens = append(lig.Hydrogens, a)
				continue
			}
			lig.HeavyAtoms = append(lig.HeavyAtoms, a)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), name, numLines, []string{"NewLigandFromReader"}, false}
	}
	if len(lig.Frames) == 0 {
		return nil, Error{NoRootFrame, name, 0, []string{"NewLigandFromReader"}, false}
	}
	if len(lig.HeavyAtoms) == 0 || lig.HeavyAtoms[0].Frame != 0 {
		return nil, Error{NoHeavyAtoms, name, 0, []string{"NewLigandFromReader"}, false}
	}
	if err := lig.finish(torsdof); err != nil {
		return nil, errDecorate(err, "NewLigandFromReader")
	}
	return lig, nil
}

//finish resolves rotor atoms, frame geometry, activity, bonding and the
//interacting pair list, once all atoms are in.
func (lig *Ligand) finish(torsdof int) error {
	//Resolve rotor serials to heavy-atom indices.
	bySerial := make(map[int]int, len(lig.HeavyAtoms))
	for i := range lig.HeavyAtoms {
		bySerial[lig.HeavyAtoms[i].Serial] = i
	}
	lig.Frames[0].RotorY = 0 //the root origin is its first heavy atom
	hasChildren := make([]bool, len(lig.Frames))
	for i := 1; i < len(lig.Frames); i++ {
		f := &lig.Frames[i]
		hasChildren[f.Parent] = true
		var ok bool
		if f.RotorX, ok = bySerial[f.rotorXSerial]; !ok {
			return Error{UnknownRotor, lig.Name, 0, []string{"finish"}, false}
		}
		if f.RotorY, ok = bySerial[f.rotorYSerial]; !ok {
			return Error{UnknownRotor, lig.Name, 0, []string{"finish"}, false}
		}
	}

	//Per-frame activity and torsion slots. A frame whose rotation can
	//not move anything (a lone terminal heavy atom on the axis) gets no
	//torsion variable.
	numHeavy := make([]int, len(lig.Frames))
	numHydro := make([]int, len(lig.Frames))
	for i := range lig.HeavyAtoms {
		numHeavy[lig.HeavyAtoms[i].Frame]++
	}
	for i := range lig.Hydrogens {
		numHydro[lig.Hydrogens[i].Frame]++
	}
	for i := 1; i < len(lig.Frames); i++ {
		f := &lig.Frames[i]
		f.Active = numHeavy[i] > 1 || numHydro[i] > 0 || hasChildren[i]
		if f.Active {
			f.TorsionIdx = lig.NumActiveTorsions
			lig.NumActiveTorsions++
		}
	}
	if torsdof >= 0 && torsdof != lig.NumActiveTorsions {
		log.Printf("goDock: ligand %s declares TORSDOF %d but %d active torsions were found", lig.Name, torsdof, lig.NumActiveTorsions)
	}

	//Frame geometry in the reference orientation.
	origin := func(i int) Vec3 { return lig.HeavyAtoms[lig.Frames[i].RotorY].Coord }
	for i := 1; i < len(lig.Frames); i++ {
		f := &lig.Frames[i]
		f.YY = origin(i).Sub(origin(f.Parent))
		axis := origin(i).Sub(lig.HeavyAtoms[f.RotorX].Coord)
		n := axis.Norm()
		if n < 1e-6 {
			return Error{DegenerateRotor, lig.Name, 0, []string{"finish"}, false}
		}
		f.Axis = axis.Scale(1 / n)
	}
	for i := range lig.HeavyAtoms {
		a := &lig.HeavyAtoms[i]
		a.Rel = a.Coord.Sub(origin(a.Frame))
	}
	for i := range lig.Hydrogens {
		a := &lig.Hydrogens[i]
		a.Rel = a.Coord.Sub(origin(a.Frame))
	}

	//Bond perception over the heavy atoms. The rotor bonds come out of
	//this too, since bonded atoms are bonded no matter the frame.
	n := len(lig.HeavyAtoms)
	bonds := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if lig.HeavyAtoms[i].IsNeighbor(&lig.HeavyAtoms[j].Atom) {
				bonds[i] = append(bonds[i], j)
				bonds[j] = append(bonds[j], i)
			}
		}
	}
	//A carbon bonded to a hetero atom is not hydrophobic.
	for i := 0; i < n; i++ {
		a := &lig.HeavyAtoms[i]
		if a.IsHetero() {
			continue
		}
		for _, j := range bonds[i] {
			if lig.HeavyAtoms[j].IsHetero() {
				a.Dehydrophobicize()
				break
			}
		}
	}

	//Interacting pairs: heavy atoms in different frames more than three
	//bonds apart (1-2, 1-3 and 1-4 interactions are excluded).
	depth := make([]int, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		for k := range depth {
			depth[k] = -1
		}
		depth[i] = 0
		queue = append(queue[:0], i)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			if depth[u] == 3 {
				continue
			}
			for _, v := range bonds[u] {
				if depth[v] < 0 {
					depth[v] = depth[u] + 1
					queue = append(queue, v)
				}
			}
		}
		for j := i + 1; j < n; j++ {
			if depth[j] >= 0 {
				continue //within three bonds
			}
			if lig.HeavyAtoms[i].Frame == lig.HeavyAtoms[j].Frame {
				continue //rigidly fixed relative to each other
			}
			lig.Pairs = append(lig.Pairs, InteractingPair{
				I:        i,
				J:        j,
				TypePair: TriIndexPermissive(lig.HeavyAtoms[i].XS, lig.HeavyAtoms[j].XS),
			})
		}
	}
	return nil
}
