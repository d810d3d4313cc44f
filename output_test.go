package dock

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteResults(Te *testing.T) {
	lig := testLigand(Te)
	ev := NewEvaluator(lig, testSF(), testReceptor(Te))
	c := NewConformation(lig.NumActiveTorsions)
	c.Position = lig.HeavyAtoms[0].Coord
	r := ev.ComposeResult(-5.25, -5.0, c)
	r.ENd = r.E / float64(len(lig.HeavyAtoms))

	var buf bytes.Buffer
	if err := writeResults(&buf, lig, []*Result{r}); err != nil {
		Te.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	//MODEL, two REMARKs, five atoms, ENDMDL
	if len(lines) != 9 {
		Te.Fatalf("got %d lines, want 9:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "MODEL") || lines[len(lines)-1] != "ENDMDL" {
		Te.Fatalf("model framing is off:\n%s", out)
	}
	if !strings.Contains(lines[1], "-5.250") {
		Te.Fatalf("missing the predicted energy remark: %s", lines[1])
	}
	//atoms come out in serial order, hydrogens interleaved
	var serialCol []string
	for _, l := range lines[3:8] {
		if !strings.HasPrefix(l, "ATOM  ") || len(l) < 79 {
			Te.Fatalf("malformed output record %q", l)
		}
		serialCol = append(serialCol, strings.TrimSpace(l[6:11]))
	}
	if got := strings.Join(serialCol, ","); got != "1,2,3,4,5" {
		Te.Fatalf("atom serial order %s, want 1,2,3,4,5", got)
	}
	//an output record parses back with the same column layout the
	//ingestors use
	_, name, coord, ad, err := parseAtomRecord(lines[3], "roundtrip", 4, false)
	if err != nil {
		Te.Fatal(err)
	}
	if name != "C1" || ad != adTypeC || coord != lig.HeavyAtoms[0].Coord {
		Te.Fatalf("round-tripped atom is off: %s %v", name, coord)
	}
}
