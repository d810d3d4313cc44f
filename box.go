/*
 * box.go, part of idock.
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

import "math"

const (
	//DefaultGranularity is the quantum of the search box dimensions, in
	//Angstroms. Spans are rounded up to a whole number of granules.
	DefaultGranularity = 0.15625
	//partitionEdge is the nominal edge of the cubic cells receptor
	//atoms are bucketed into. The actual per-axis edge is shrunk (never
	//above this value) so the cells exactly tile the box.
	partitionEdge = 3.0
)

//Box is the rectangular search region, discretised into cubic
//partitions for nearest-cell receptor lookup.
type Box struct {
	Center        Vec3
	Span          Vec3 //half-width per axis
	Granularity   float64
	NumPartitions [3]int
	corner1       Vec3 //low corner
	corner2       Vec3 //high corner
	partSize      Vec3 //partition edge per axis
	partSizeInv   Vec3
}

//NewBox builds a search box centered at center with half-widths span.
//A granularity of 0 selects DefaultGranularity. The half-widths are
//rounded up to whole granules. Panics on non-finite or non-positive
//dimensions.
func NewBox(center, span Vec3, granularity float64) *Box {
	if granularity == 0 {
		granularity = DefaultGranularity
	}
	if !center.IsFinite() || !span.IsFinite() || granularity <= 0 {
		panic(ErrShape)
	}
	b := new(Box)
	b.Center = center
	b.Granularity = granularity
	for i := 0; i < 3; i++ {
		if span[i] <= 0 {
			panic(ErrShape)
		}
		b.Span[i] = math.Ceil(span[i]/granularity) * granularity
		b.corner1[i] = center[i] - b.Span[i]
		b.corner2[i] = center[i] + b.Span[i]
		b.NumPartitions[i] = int(math.Ceil(2 * b.Span[i] / partitionEdge))
		b.partSize[i] = 2 * b.Span[i] / float64(b.NumPartitions[i])
		b.partSizeInv[i] = 1 / b.partSize[i]
	}
	return b
}

//Corner1 returns the low corner of the box.
func (b *Box) Corner1() Vec3 { return b.corner1 }

//Corner2 returns the high corner of the box.
func (b *Box) Corner2() Vec3 { return b.corner2 }

//Project clamps p componentwise into the box.
func (b *Box) Project(p Vec3) Vec3 {
	for i := 0; i < 3; i++ {
		if p[i] < b.corner1[i] {
			p[i] = b.corner1[i]
		} else if p[i] > b.corner2[i] {
			p[i] = b.corner2[i]
		}
	}
	return p
}

//ProjectDistSqr returns the squared distance from p to its projection
//onto the box, 0 if p is inside.
func (b *Box) ProjectDistSqr(p Vec3) float64 {
	return projectDistSqr(b.corner1, b.corner2, p)
}

//ProjectDistSqrCell returns the squared distance from p to the
//axis-aligned cell [c1, c2].
func (b *Box) ProjectDistSqrCell(c1, c2, p Vec3) float64 {
	return projectDistSqr(c1, c2, p)
}

func projectDistSqr(c1, c2, p Vec3) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		var d float64
		if p[i] < c1[i] {
			d = c1[i] - p[i]
		} else if p[i] > c2[i] {
			d = p[i] - c2[i]
		}
		sum += d * d
	}
	return sum
}

//PartitionIndex returns the (x, y, z) index of the cell containing
//Project(p).
func (b *Box) PartitionIndex(p Vec3) [3]int {
	p = b.Project(p)
	var idx [3]int
	for i := 0; i < 3; i++ {
		j := int((p[i] - b.corner1[i]) * b.partSizeInv[i])
		if j >= b.NumPartitions[i] { //p on the high face
			j = b.NumPartitions[i] - 1
		}
		idx[i] = j
	}
	return idx
}

//PartitionCorner1 returns the low corner of the cell idx. Passing an
//index one past the end on every axis yields Corner2, so the high
//corner of cell (x, y, z) is PartitionCorner1([3]int{x+1, y+1, z+1}).
func (b *Box) PartitionCorner1(idx [3]int) Vec3 {
	var c Vec3
	for i := 0; i < 3; i++ {
		c[i] = b.corner1[i] + float64(idx[i])*b.partSize[i]
	}
	return c
}
