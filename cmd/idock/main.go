//The idock command docks every ligand of a run configuration into a
//rigid receptor and writes the best poses of each as PDBQT models.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	dock "github.com/AspirinCode/idock"
	"github.com/AspirinCode/idock/cfg"
	"github.com/AspirinCode/idock/pose"
	"github.com/AspirinCode/idock/profile"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) != 2 {
		logger.Fatal("one argument is needed: path of the configuration file")
	}

	c, err := cfg.New(os.Args[1])
	if err != nil {
		logger.Fatal(fmt.Errorf("cfg.New: %w", err))
	}

	box := dock.NewBox(
		dock.Vec3{c.Center[0], c.Center[1], c.Center[2]},
		dock.Vec3{c.Size[0] / 2, c.Size[1] / 2, c.Size[2] / 2},
		c.Granularity,
	)

	start := time.Now()
	sf := dock.NewScoringFunction()
	logger.Printf("scoring table built in %v", time.Since(start))

	start = time.Now()
	rec, err := dock.NewReceptor(c.Receptor, box)
	if err != nil {
		logger.Fatal(err) //a bad receptor aborts the run
	}
	logger.Printf("receptor %s: %d heavy atoms, indexed in %v", c.Receptor, len(rec.Atoms), time.Since(start))

	d := &dock.Docker{
		SF:         sf,
		Rec:        rec,
		Capacity:   c.Capacity,
		RMSDTolSqr: c.RMSDTol * c.RMSDTol,
		Workers:    c.Workers,
	}
	seeds := c.TaskSeeds()

	if err := os.MkdirAll(c.OutDir, 0755); err != nil {
		logger.Fatal(err)
	}

	if c.Plots {
		//one potential curve per XS type against itself
		for t := 0; t < dock.XSTypeSize; t++ {
			path := filepath.Join(c.OutDir, "potential_"+dock.XSTypeString(t)+".png")
			if err := profile.PotentialPNG(sf, t, t, path); err != nil {
				logger.Printf("can't plot the %s potential: %v", dock.XSTypeString(t), err)
			}
		}
	}

	for _, ligPath := range c.Ligands {
		start = time.Now()
		lig, err := dock.NewLigand(ligPath)
		if err != nil {
			logger.Printf("skipping ligand %s: %v", ligPath, err)
			continue
		}

		var pw *pose.Writer
		if c.PoseStream != "" {
			pw, err = pose.NewWriter(streamName(c.PoseStream, ligPath), len(lig.HeavyAtoms))
			if err != nil {
				logger.Printf("ligand %s: no pose stream: %v", ligPath, err)
			} else {
				d.Trace = pw.Trace()
			}
		}
		results, tasks := d.Dock(lig, seeds)
		d.Trace = nil
		pw.Close()

		aborted := 0
		empty := 0
		for i := range tasks {
			switch {
			case tasks[i].Err != nil:
				aborted++
				logger.Printf("ligand %s seed %d aborted: %v", ligPath, tasks[i].Seed, tasks[i].Err)
			case tasks[i].Result == nil:
				empty++
			}
		}
		if len(results) == 0 {
			logger.Printf("ligand %s: no pose below the energy ceiling (%d tasks aborted) in %v", ligPath, aborted, time.Since(start))
			continue
		}

		outPath := filepath.Join(c.OutDir, filepath.Base(ligPath))
		if err := dock.WriteResults(outPath, lig, results); err != nil {
			logger.Printf("ligand %s: can't write results: %v", ligPath, err)
			continue
		}
		logger.Printf("ligand %s: %d poses, best %.3f kcal/mol (%d torsions, %d tasks, %d aborted, %d empty) in %v",
			ligPath, len(results), results[0].E, lig.NumActiveTorsions, len(tasks), aborted, empty, time.Since(start))

		if c.Plots {
			histPath := outPath + ".energies.png"
			if err := profile.EnergyHistogramPNG(results, histPath); err != nil {
				logger.Printf("ligand %s: can't plot energies: %v", ligPath, err)
			}
		}
	}
}

//streamName derives a per-ligand pose stream name from the configured
//one, keeping its extension so the compression choice survives.
func streamName(stream, ligPath string) string {
	ext := filepath.Ext(stream)
	base := strings.TrimSuffix(stream, ext)
	ligBase := strings.TrimSuffix(filepath.Base(ligPath), filepath.Ext(ligPath))
	return base + "_" + ligBase + ext
}
