//Package profile renders diagnostics of a docking run: the tabulated
//pairwise potential per atom-type pair, and the energy distribution of
//a batch of docked poses. Plots are saved as PNG files.
package profile

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	dock "github.com/AspirinCode/idock"
)

//PotentialPNG plots the tabulated potential of the XS type pair
//(t1, t2) against the squared distance, straight from the table the
//search evaluates, and saves it to path.
func PotentialPNG(sf *dock.ScoringFunction, t1, t2 int, path string) error {
	if sf == nil {
		return fmt.Errorf("goDock/profile: given a nil scoring function")
	}
	pair := dock.TriIndexPermissive(t1, t2)
	//every 16th sample is plenty for a plot
	pts := make(plotter.XYs, 0, dock.NumSamples/16+1)
	for i := 0; i < dock.NumSamples; i += 16 {
		r2 := float64(i) / dock.Factor
		e, _ := sf.Evaluate(pair, r2)
		pts = append(pts, plotter.XY{X: r2, Y: e})
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s pair potential", dock.XSTypeString(t1), dock.XSTypeString(t2))
	p.X.Label.Text = "r^2 (A^2)"
	p.Y.Label.Text = "e (kcal/mol)"
	p.Add(plotter.NewGrid())
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(l)
	return p.Save(5*vg.Inch, 4*vg.Inch, path)
}

//EnergyHistogramPNG plots the free-energy distribution of the docked
//poses and saves it to path.
func EnergyHistogramPNG(results []*dock.Result, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("goDock/profile: no results to plot")
	}
	vals := make(plotter.Values, len(results))
	raw := make([]float64, len(results))
	for i, r := range results {
		vals[i] = r.E
		raw[i] = r.E
	}
	p := plot.New()
	mean, sigma := stat.MeanStdDev(raw, nil)
	p.Title.Text = fmt.Sprintf("Docked energies (mean %.2f, sigma %.2f)", mean, sigma)
	p.X.Label.Text = "e (kcal/mol)"
	p.Y.Label.Text = "poses"
	bins := 16
	if len(results) < bins {
		bins = len(results)
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(5*vg.Inch, 4*vg.Inch, path)
}
