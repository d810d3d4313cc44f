package dock

import (
	"math"
	"testing"
)

func TestQtn4Identity(Te *testing.T) {
	q := NewQtn4Rotation(Zero3)
	if q != Qtn4id {
		Te.Fatalf("rotation by the zero vector should be the identity, got %v", q)
	}
	if !q.IsNormalized() {
		Te.Fatalf("the identity quaternion is not normalized?")
	}
}

func TestQtn4NormalizeIdempotent(Te *testing.T) {
	q := Qtn4{0.3, -1.2, 0.5, 2.0}.Normalize()
	if !q.IsNormalized() {
		Te.Fatalf("Normalize left a non-unit quaternion: %v", q)
	}
	q2 := q.Normalize()
	for i := range q {
		if math.Abs(q[i]-q2[i]) > 1e-15 {
			Te.Fatalf("Normalize is not idempotent: %v vs %v", q, q2)
		}
	}
}

func TestQtn4NormalizeZeroPanics(Te *testing.T) {
	defer func() {
		if recover() == nil {
			Te.Fatalf("normalizing a zero quaternion should panic")
		}
	}()
	Qtn4{0, 0, 0, 0}.Normalize()
}

func TestQtn4Rotation(Te *testing.T) {
	//a quarter turn about z maps x onto y
	q := NewQtn4Rotation(Vec3{0, 0, math.Pi / 2})
	got := q.RotMatrix().MulVec(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			Te.Fatalf("quarter turn about z: got %v want %v", got, want)
		}
	}
}

func TestQtn4MulComposes(Te *testing.T) {
	a := NewQtn4Rotation(Vec3{0.3, -0.2, 0.9})
	b := NewQtn4Rotation(Vec3{-1.1, 0.4, 0.2})
	v := Vec3{0.5, -1.5, 2.5}
	//applying b then a equals applying a*b
	want := a.RotMatrix().MulVec(b.RotMatrix().MulVec(v))
	got := a.Mul(b).RotMatrix().MulVec(v)
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			Te.Fatalf("Hamilton product does not compose rotations: got %v want %v", got, want)
		}
	}
	if !a.Mul(b).IsNormalized() {
		Te.Fatalf("product of unit quaternions is not normalized")
	}
}

func TestWrapAngle(Te *testing.T) {
	cases := [][2]float64{
		{0, 0},
		{math.Pi, -math.Pi}, //pi maps to the low end of [-pi, pi)
		{-math.Pi, -math.Pi},
		{3 * math.Pi, -math.Pi},
		{2 * math.Pi, 0},
		{math.Pi / 2, math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, c := range cases {
		if got := wrapAngle(c[0]); math.Abs(got-c[1]) > 1e-12 {
			Te.Fatalf("wrapAngle(%g) = %g, want %g", c[0], got, c[1])
		}
	}
}

func TestTriIndex(Te *testing.T) {
	//the packed upper triangle of a 3x3 walks 0..5
	want := [][3]int{{0, 0, 0}, {0, 1, 1}, {1, 1, 2}, {0, 2, 3}, {1, 2, 4}, {2, 2, 5}}
	for _, w := range want {
		if got := TriIndex(w[0], w[1]); got != w[2] {
			Te.Fatalf("TriIndex(%d, %d) = %d, want %d", w[0], w[1], got, w[2])
		}
		if got := TriIndexPermissive(w[1], w[0]); got != w[2] {
			Te.Fatalf("TriIndexPermissive(%d, %d) = %d, want %d", w[1], w[0], got, w[2])
		}
	}
	if TriSize(XSTypeSize) != 120 {
		Te.Fatalf("TriSize(%d) = %d, want 120", XSTypeSize, TriSize(XSTypeSize))
	}
}
