package dock

import (
	"math"
	"sort"
	"testing"
)

//single-atom poses make the squared RMSD just the squared distance
func poseAt(e float64, p Vec3) *Result {
	return &Result{E: e, HeavyAtoms: []Vec3{p}}
}

func TestResultsFirstInsert(Te *testing.T) {
	var rs []*Result
	rs = AddResult(rs, poseAt(-5.0, Zero3), 20, 4.0)
	if len(rs) != 1 || rs[0].E != -5.0 {
		Te.Fatalf("first insertion: got %d poses, first energy %g", len(rs), rs[0].E)
	}
}

func TestResultsNearReplacement(Te *testing.T) {
	var rs []*Result
	rs = AddResult(rs, poseAt(-4.0, Zero3), 20, 4.0)
	//B is 1 A^2 away from A, so within the tolerance, and better
	rs = AddResult(rs, poseAt(-5.0, Vec3{1, 0, 0}), 20, 4.0)
	if len(rs) != 1 || rs[0].E != -5.0 {
		Te.Fatalf("near-duplicate replacement: got %d poses, first energy %g", len(rs), rs[0].E)
	}
	//a worse near-duplicate is dropped
	rs = AddResult(rs, poseAt(-4.5, Vec3{0.5, 0, 0}), 20, 4.0)
	if len(rs) != 1 || rs[0].E != -5.0 {
		Te.Fatalf("worse near-duplicate should be dropped: %d poses, first energy %g", len(rs), rs[0].E)
	}
}

func TestResultsDiverseAppend(Te *testing.T) {
	//three mutually distant poses fill a capacity-3 container; a
	//fourth distant one replaces the worst
	a := Vec3{0, 0, 0}
	b := Vec3{3, 0, 0}
	c := Vec3{1.5, 3 * math.Sqrt(3) / 2, 0}              //equilateral, side 3
	d := Vec3{1.5, math.Sqrt(3) / 2, math.Sqrt(6)} //3 away from all of a, b, c
	for _, p := range []Vec3{b, c} {
		if math.Abs(DistSqr(a, p)-9) > 1e-9 {
			Te.Fatalf("bad fixture: DistSqr = %g, want 9", DistSqr(a, p))
		}
	}
	for _, p := range []Vec3{a, b, c} {
		if math.Abs(DistSqr(d, p)-9) > 1e-9 {
			Te.Fatalf("bad fixture: DistSqr(d, %v) = %g, want 9", p, DistSqr(d, p))
		}
	}

	var rs []*Result
	rs = AddResult(rs, poseAt(-3.0, a), 3, 4.0)
	rs = AddResult(rs, poseAt(-5.0, b), 3, 4.0)
	rs = AddResult(rs, poseAt(-2.0, c), 3, 4.0)
	if len(rs) != 3 {
		Te.Fatalf("diverse append: got %d poses, want 3", len(rs))
	}
	for i, want := range []float64{-5.0, -3.0, -2.0} {
		if rs[i].E != want {
			Te.Fatalf("sorted energies wrong at %d: %g, want %g", i, rs[i].E, want)
		}
	}
	rs = AddResult(rs, poseAt(-4.0, d), 3, 4.0)
	if len(rs) != 3 {
		Te.Fatalf("full container grew to %d", len(rs))
	}
	for i, want := range []float64{-5.0, -4.0, -3.0} {
		if rs[i].E != want {
			Te.Fatalf("after worst replacement, energy at %d is %g, want %g", i, rs[i].E, want)
		}
	}
}

func TestResultsStaySortedAndDiverse(Te *testing.T) {
	var rs []*Result
	pts := []Vec3{{0, 0, 0}, {5, 0, 0}, {0.5, 0, 0}, {10, 0, 0}, {5.5, 0, 0}, {20, 0, 0}}
	es := []float64{-1, -2, -3, -1.5, -0.5, -4}
	for i := range pts {
		rs = AddResult(rs, poseAt(es[i], pts[i]), 4, 4.0)
		if !sort.SliceIsSorted(rs, func(a, b int) bool { return rs[a].E < rs[b].E }) {
			Te.Fatalf("container unsorted after insertion %d", i)
		}
	}
	//every surviving pair is either diverse or separated in energy by
	//a replacement, never both near and coexisting
	for i := range rs {
		for j := i + 1; j < len(rs); j++ {
			if RMSDSqr(rs[i].HeavyAtoms, rs[j].HeavyAtoms) < 4.0 {
				Te.Fatalf("poses %d and %d are closer than the tolerance", i, j)
			}
		}
	}
}

func TestRMSDSqr(Te *testing.T) {
	a := []Vec3{{0, 0, 0}, {1, 0, 0}}
	b := []Vec3{{0, 0, 1}, {1, 0, 1}}
	if got := RMSDSqr(a, b); math.Abs(got-1) > 1e-15 {
		Te.Fatalf("RMSDSqr = %g, want 1", got)
	}
}
