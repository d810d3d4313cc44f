package pose

import (
	"math"
	"path/filepath"
	"testing"

	dock "github.com/AspirinCode/idock"
)

func roundTrip(Te *testing.T, name string) {
	frames := []Frame{
		{Seed: 1, E: -5.25, Coords: []dock.Vec3{{0, 0, 0}, {1.5, 0, 0}, {2.9, -1.25, 3.75}}},
		{Seed: 1, E: -6.5, Coords: []dock.Vec3{{0.1, 0.2, 0.3}, {1.6, 0.1, -0.1}, {3.0, -1.3, 3.8}}},
		{Seed: 9, E: -4.0, Coords: []dock.Vec3{{-10, 20, -30}, {0, 0, 0}, {5, 5, 5}}},
	}
	w, err := NewWriter(name, 3)
	if err != nil {
		Te.Fatal(err)
	}
	for _, f := range frames {
		if err := w.WNext(f.Seed, f.E, f.Coords); err != nil {
			Te.Fatal(err)
		}
	}
	w.Close()

	r, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if r.Len() != 3 {
		Te.Fatalf("stream reports %d atoms, want 3", r.Len())
	}
	for k, want := range frames {
		got, err := r.Next()
		if err != nil {
			Te.Fatalf("frame %d: %v", k, err)
		}
		if got.Seed != want.Seed || math.Abs(got.E-want.E) > 1e-6 {
			Te.Fatalf("frame %d header: %d %g, want %d %g", k, got.Seed, got.E, want.Seed, want.E)
		}
		for i := range want.Coords {
			for j := 0; j < 3; j++ {
				if math.Abs(got.Coords[i][j]-want.Coords[i][j]) > 0.0005+1e-12 {
					Te.Fatalf("frame %d atom %d: %v, want %v", k, i, got.Coords[i], want.Coords[i])
				}
			}
		}
	}
	if _, err := r.Next(); err == nil {
		Te.Fatalf("reading past the end should fail")
	} else if perr, ok := err.(Error); !ok || perr.Critical() {
		Te.Fatalf("end of stream should be a non-critical Error, got %v", err)
	}
}

func TestRoundTripZstd(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "search.pose"))
}

func TestRoundTripGzip(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "search.pose.gz"))
}

func TestRoundTripFlate(Te *testing.T) {
	roundTrip(Te, filepath.Join(Te.TempDir(), "search.flate"))
}

func TestWriterShapeCheck(Te *testing.T) {
	w, err := NewWriter(filepath.Join(Te.TempDir(), "bad.pose"), 2)
	if err != nil {
		Te.Fatal(err)
	}
	defer w.Close()
	if err := w.WNext(1, 0, []dock.Vec3{{0, 0, 0}}); err == nil {
		Te.Fatalf("a frame with the wrong atom count should fail")
	}
}
