/*
 * triangular.go, part of idock.
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

//Packed storage for symmetric, index-by-unordered-pair tables such as
//the scoring table (one entry per atom-type pair). An n*n symmetric
//matrix packs its upper triangle into n*(n+1)/2 slots, element (i,j)
//with i <= j living at i + j*(j+1)/2.

//TriSize returns the packed length of the upper triangle of an n*n
//symmetric matrix.
func TriSize(n int) int {
	return n * (n + 1) / 2
}

//TriIndex returns the packed index of element (i, j). It panics unless
//i <= j; use TriIndexPermissive when the order of the pair is unknown.
func TriIndex(i, j int) int {
	if i > j {
		panic(ErrTriIndex)
	}
	return i + j*(j+1)/2
}

//TriIndexPermissive is TriIndex for unordered pairs.
func TriIndexPermissive(i, j int) int {
	if i <= j {
		return TriIndex(i, j)
	}
	return TriIndex(j, i)
}
