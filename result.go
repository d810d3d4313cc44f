/*
 * result.go, part of idock.
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

import "sort"

const (
	//DefaultCapacity is how many poses a merged result set keeps.
	DefaultCapacity = 20
	//DefaultRMSDTolSqr is the squared RMSD under which two poses count
	//as the same binding mode: (2 A)^2.
	DefaultRMSDTolSqr = 4.0
)

//Result is one docked pose: its free energy E, the inter-molecular part
//F, the normalized energy ENd (filled by the merge fold, for output
//only) and the cartesian coordinates of every atom in the original
//order.
type Result struct {
	E          float64
	F          float64
	ENd        float64
	HeavyAtoms []Vec3
	Hydrogens  []Vec3
}

//RMSDSqr returns the squared root-mean-square deviation between two
//poses of the same ligand: atom-order aligned squared distances
//averaged over the heavy atoms.
func RMSDSqr(a, b []Vec3) float64 {
	if len(a) != len(b) || len(a) == 0 {
		panic(ErrShape)
	}
	sum := 0.0
	for i := range a {
		sum += DistSqr(a[i], b[i])
	}
	return sum / float64(len(a))
}

//AddResult clusters r into results, keeping at most capacity poses that
//are mutually farther than tolSqr (squared RMSD) unless a closer pose
//strictly improves the energy of the member it shadows. The returned
//slice is sorted ascending by E.
//
//The rule, given the existing member nearest to r: if r is within
//tolSqr of it, r replaces it only when r has lower energy; otherwise r
//is appended while capacity lasts, or replaces the current worst member
//if it beats it.
func AddResult(results []*Result, r *Result, capacity int, tolSqr float64) []*Result {
	if len(results) == 0 {
		return append(results, r)
	}
	nearest := 0
	best := RMSDSqr(r.HeavyAtoms, results[0].HeavyAtoms)
	for i := 1; i < len(results); i++ {
		if d := RMSDSqr(r.HeavyAtoms, results[i].HeavyAtoms); d < best {
			nearest = i
			best = d
		}
	}
	if best < tolSqr {
		if r.E < results[nearest].E {
			results[nearest] = r
		}
	} else if len(results) < capacity {
		results = append(results, r)
	} else if r.E < results[len(results)-1].E {
		results[len(results)-1] = r
	}
	sort.Slice(results, func(i, j int) bool { return results[i].E < results[j].E })
	return results
}
