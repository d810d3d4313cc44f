package dock

import (
	"fmt"
	"strings"
	"sync"
)

//Helpers shared by the package tests: a tiny receptor/ligand pair that
//exercises typing, bonding, branching and the energy terms without
//needing files on disk.

//atomLine builds one fixed-column PDBQT ATOM record.
func atomLine(serial int, name string, resSeq int, x, y, z float64, ad string) string {
	return fmt.Sprintf("ATOM  %5d %-4s %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f    %6.3f %-2s",
		serial, name, "LIG", resSeq, x, y, z, 1.0, 0.0, 0.0, ad)
}

var (
	sfOnce sync.Once
	sfTest *ScoringFunction
)

//testSF tabulates the scoring function once for the whole test run.
func testSF() *ScoringFunction {
	sfOnce.Do(func() { sfTest = NewScoringFunction() })
	return sfTest
}

func testBox() *Box {
	return NewBox(Vec3{2, 0, 0}, Vec3{5, 5, 5}, 0)
}

//testReceptor is a single nitrogen acceptor near the test ligand.
func testReceptor(t interface{ Fatalf(string, ...interface{}) }) *Receptor {
	in := strings.Join([]string{
		atomLine(1, "N", 1, 5.0, 1.0, 0.0, "NA"),
	}, "\n")
	rec, err := NewReceptorFromReader(strings.NewReader(in), "test-receptor", testBox())
	if err != nil {
		t.Fatalf("test receptor: %v", err)
	}
	return rec
}

//testLigand is an ethanol-ish fragment: a two-carbon root and a branch
//frame holding a donorized oxygen, an off-axis carbon and one polar
//hydrogen. One active torsion about the C2-O3 bond (the x axis).
func testLigand(t interface{ Fatalf(string, ...interface{}) }) *Ligand {
	in := strings.Join([]string{
		"ROOT",
		atomLine(1, "C1", 1, 0.0, 0.0, 0.0, "C"),
		atomLine(2, "C2", 1, 1.5, 0.0, 0.0, "C"),
		"ENDROOT",
		"BRANCH   2   3",
		atomLine(3, "O3", 1, 2.9, 0.0, 0.0, "OA"),
		atomLine(4, "C4", 1, 3.6, 1.2, 0.0, "C"),
		atomLine(5, "H4", 1, 3.0, -0.6, 0.0, "HD"),
		"ENDBRANCH   2   3",
		"TORSDOF 1",
	}, "\n")
	lig, err := NewLigandFromReader(strings.NewReader(in), "test-ligand")
	if err != nil {
		t.Fatalf("test ligand: %v", err)
	}
	return lig
}
