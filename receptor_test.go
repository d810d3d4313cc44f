package dock

import (
	"fmt"
	"strings"
	"testing"
)

func recLine(serial int, name, res string, resSeq int, x, y, z float64, ad string) string {
	return fmt.Sprintf("ATOM  %5d %-4s %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f    %6.3f %-2s",
		serial, name, res, resSeq, x, y, z, 1.0, 0.0, 0.0, ad)
}

func TestReceptorTyping(Te *testing.T) {
	//One residue: a carbon bonded to an oxygen loses its hydrophobic
	//role, the polar hydrogen promotes the oxygen to a donor, and the
	//non-polar hydrogen never shows up. The far carbon keeps C_H.
	in := strings.Join([]string{
		recLine(1, "C", "SER", 1, 0.0, 0.0, 0.0, "C"),
		recLine(2, "OG", "SER", 1, 1.4, 0.0, 0.0, "OA"),
		recLine(3, "HG", "SER", 1, 1.7, 0.9, 0.0, "HD"),
		recLine(4, "H", "SER", 1, -0.5, 0.9, 0.0, "H"),
		recLine(5, "CB", "SER", 1, 0.0, 5.0, 0.0, "C"),
	}, "\n")
	rec, err := NewReceptorFromReader(strings.NewReader(in), "typing", NewBox(Vec3{0, 0, 0}, Vec3{8, 8, 8}, 0))
	if err != nil {
		Te.Fatal(err)
	}
	if len(rec.Atoms) != 3 {
		Te.Fatalf("expected 3 heavy atoms, got %d", len(rec.Atoms))
	}
	if rec.Atoms[0].XS != xsCP {
		Te.Fatalf("carbon bonded to oxygen has XS %s, want C_P", XSTypeString(rec.Atoms[0].XS))
	}
	if rec.Atoms[1].XS != xsODA {
		Te.Fatalf("hydroxyl oxygen has XS %s, want O_DA", XSTypeString(rec.Atoms[1].XS))
	}
	if rec.Atoms[2].XS != xsCH {
		Te.Fatalf("lone carbon has XS %s, want C_H", XSTypeString(rec.Atoms[2].XS))
	}
}

func TestReceptorResidueScoping(Te *testing.T) {
	//The hetero atom of residue 2 must not dehydrophobicize the carbon
	//of residue 1 even though they are close enough to look bonded.
	in := strings.Join([]string{
		recLine(1, "C", "ALA", 1, 0.0, 0.0, 0.0, "C"),
		recLine(2, "N", "GLY", 2, 1.4, 0.0, 0.0, "N"),
	}, "\n")
	rec, err := NewReceptorFromReader(strings.NewReader(in), "scoping", NewBox(Vec3{0, 0, 0}, Vec3{8, 8, 8}, 0))
	if err != nil {
		Te.Fatal(err)
	}
	if rec.Atoms[0].XS != xsCH {
		Te.Fatalf("carbon of the previous residue lost its hydrophobic role")
	}
}

func TestReceptorUnknownTypeIsCritical(Te *testing.T) {
	in := recLine(1, "X", "UNK", 1, 0.0, 0.0, 0.0, "Xx")
	_, err := NewReceptorFromReader(strings.NewReader(in), "unknown", NewBox(Vec3{0, 0, 0}, Vec3{8, 8, 8}, 0))
	if err == nil {
		Te.Fatalf("an unknown AutoDock type must fail the receptor")
	}
	derr, ok := err.(Error)
	if !ok {
		Te.Fatalf("expected a dock.Error, got %T", err)
	}
	if !derr.Critical() {
		Te.Fatalf("a receptor parse error must be critical")
	}
	if derr.Line() != 1 {
		Te.Fatalf("error points at line %d, want 1", derr.Line())
	}
}

func TestReceptorPartitionInvariant(Te *testing.T) {
	//Every atom listed in a cell really is within the cutoff of it.
	atoms := []string{}
	serial := 0
	for x := -10.0; x <= 10; x += 4 {
		for y := -10.0; y <= 10; y += 4 {
			serial++
			atoms = append(atoms, recLine(serial, "C", "ALA", serial, x, y, 0.5*x, "C"))
		}
	}
	b := NewBox(Vec3{0, 0, 0}, Vec3{6, 6, 6}, 0)
	rec, err := NewReceptorFromReader(strings.NewReader(strings.Join(atoms, "\n")), "grid", b)
	if err != nil {
		Te.Fatal(err)
	}
	for x := 0; x < b.NumPartitions[0]; x++ {
		for y := 0; y < b.NumPartitions[1]; y++ {
			for z := 0; z < b.NumPartitions[2]; z++ {
				c1 := b.PartitionCorner1([3]int{x, y, z})
				c2 := b.PartitionCorner1([3]int{x + 1, y + 1, z + 1})
				for _, i := range rec.Partition(x, y, z) {
					if d := b.ProjectDistSqrCell(c1, c2, rec.Atoms[i].Coord); d >= CutoffSqr {
						Te.Fatalf("cell (%d,%d,%d) lists atom %d at squared distance %g", x, y, z, i, d)
					}
				}
			}
		}
	}
	//and atoms within the cutoff of a cell are not missing from it
	for x := 0; x < b.NumPartitions[0]; x++ {
		for y := 0; y < b.NumPartitions[1]; y++ {
			for z := 0; z < b.NumPartitions[2]; z++ {
				c1 := b.PartitionCorner1([3]int{x, y, z})
				c2 := b.PartitionCorner1([3]int{x + 1, y + 1, z + 1})
				listed := map[int]bool{}
				for _, i := range rec.Partition(x, y, z) {
					listed[i] = true
				}
				for i := range rec.Atoms {
					inCell := b.ProjectDistSqrCell(c1, c2, rec.Atoms[i].Coord) < CutoffSqr
					inBox := b.ProjectDistSqr(rec.Atoms[i].Coord) < CutoffSqr
					if inCell && inBox && !listed[i] {
						Te.Fatalf("cell (%d,%d,%d) misses atom %d", x, y, z, i)
					}
				}
			}
		}
	}
}
