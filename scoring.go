/*
 * scoring.go, part of idock.
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

//The scoring function: a semi-empirical weighted sum of five
//distance-dependent terms, tabulated per unordered XS-type pair on a
//uniform grid so that evaluation during the search is one array lookup.

const (
	//Cutoff is the maximum pairwise distance at which the potential is
	//evaluated, in Angstroms.
	Cutoff    = 8.0
	CutoffSqr = Cutoff * Cutoff
	//Factor is the sampling density of the table: lookup by squared
	//distance r2 is the entry at index floor(Factor*r2).
	Factor = 256.0
	//NumSamples is the number of tabulated samples per type pair.
	NumSamples = int(Factor*CutoffSqr) + 1
)

//Weights of the five terms, fixed at build time.
const (
	weightGauss1      = -0.035579
	weightGauss2      = -0.005156
	weightRepulsion   = 0.840245
	weightHydrophobic = -0.035069
	weightHBond       = -0.587439
)

//scoringEntry is one tabulated sample: the potential e and its
//derivative-over-r dor, so that dor times a separation component is the
//gradient of e with respect to that component.
type scoringEntry struct {
	e   float64
	dor float64
}

//ScoringFunction holds the tabulated potential for every XS type pair.
//Immutable after NewScoringFunction; safe for concurrent readers.
type ScoringFunction struct {
	entries [][]scoringEntry //indexed by TriIndexPermissive(t1, t2)
}

//Score returns the value of the scoring function for the XS types t1
//and t2 at the sampled abscissa r of the table grid. The five terms act
//on the surface distance d = r - (vdw(t1) + vdw(t2)).
func Score(t1, t2 int, r float64) float64 {
	d := r - (XSVdwRadius(t1) + XSVdwRadius(t2))

	e := weightGauss1 * math.Exp(-sqr(d*2))
	e += weightGauss2 * math.Exp(-sqr((d-3.0)*0.5))
	if d < 0 {
		e += weightRepulsion * d * d
	}
	if XSIsHydrophobic(t1) && XSIsHydrophobic(t2) {
		switch {
		case d <= 0.5:
			e += weightHydrophobic
		case d < 1.5:
			e += weightHydrophobic * (1.5 - d)
		}
	}
	if XSHBond(t1, t2) {
		switch {
		case d <= -0.7:
			e += weightHBond
		case d < 0:
			e += weightHBond * d * (-1.428571)
		}
	}
	return e
}

func sqr(x float64) float64 { return x * x }

//NewScoringFunction tabulates the potential for every unordered XS type
//pair: NumSamples values of (e, dor) on the grid rs[i] = i/Factor, with
//dor[i] = (e[i+1]-e[i]) / ((rs[i+1]-rs[i])*rs[i]) and the endpoints
//forced to zero.
func NewScoringFunction() *ScoringFunction {
	rs := make([]float64, NumSamples)
	for i := range rs {
		rs[i] = float64(i) / Factor
	}
	sf := new(ScoringFunction)
	sf.entries = make([][]scoringEntry, TriSize(XSTypeSize))
	for t1 := 0; t1 < XSTypeSize; t1++ {
		for t2 := t1; t2 < XSTypeSize; t2++ {
			sf.precalculate(t1, t2, rs)
		}
	}
	return sf
}

func (sf *ScoringFunction) precalculate(t1, t2 int, rs []float64) {
	p := make([]scoringEntry, NumSamples)
	for i := range p {
		p[i].e = Score(t1, t2, rs[i])
	}
	for i := 1; i < NumSamples-1; i++ {
		p[i].dor = (p[i+1].e - p[i].e) / ((rs[i+1] - rs[i]) * rs[i])
	}
	p[0].dor = 0
	p[NumSamples-1].dor = 0
	sf.entries[TriIndex(t1, t2)] = p
}

//Evaluate looks up the potential and its derivative-over-r for the
//packed type pair index at squared distance r2. r2 must not exceed
//CutoffSqr.
func (sf *ScoringFunction) Evaluate(typePair int, r2 float64) (e, dor float64) {
	if r2 > CutoffSqr {
		panic(ErrOutOfCutoff)
	}
	s := sf.entries[typePair][int(Factor*r2)]
	return s.e, s.dor
}
