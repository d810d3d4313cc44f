//Package cfg holds the run configuration of the idock driver. A run is
//described by a TOML file naming the receptor, the ligands, the search
//box and the search effort.
package cfg

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

//Cfg is a docking run as read from the configuration file. Seeds, when
//given, override NumTasks; otherwise the tasks are seeded Seed,
//Seed+1, ... Seed+NumTasks-1.
type Cfg struct {
	Receptor    string    `toml:"receptor"`
	Ligands     []string  `toml:"ligands"`
	Center      []float64 `toml:"center"` //3 coordinates
	Size        []float64 `toml:"size"`   //3 full box widths, in Angstroms
	Granularity float64   `toml:"granularity"`
	NumTasks    int       `toml:"tasks"`
	Seed        int64     `toml:"seed"`
	Seeds       []int64   `toml:"seeds"`
	Workers     int       `toml:"workers"`
	Capacity    int       `toml:"capacity"`
	RMSDTol     float64   `toml:"rmsd"` //Angstroms, not squared
	OutDir      string    `toml:"out"`
	PoseStream  string    `toml:"pose_stream"`
	Plots       bool      `toml:"plots"`
}

//New reads and validates a configuration file. The file must use the
//TOML format.
func New(path string) (Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return Cfg{}, err
	}
	defer f.Close()

	cfg := Cfg{NumTasks: 32, Seed: 1, Capacity: 20, RMSDTol: 2.0, OutDir: "."}
	dec := toml.NewDecoder(f)
	err = dec.Decode(&cfg)
	if err != nil {
		return Cfg{}, err
	}
	if err := cfg.validate(); err != nil {
		return Cfg{}, err
	}
	return cfg, nil
}

func (c *Cfg) validate() error {
	if c.Receptor == "" {
		return fmt.Errorf("receptor: no receptor file given")
	}
	if len(c.Ligands) == 0 {
		return fmt.Errorf("ligands: no ligand files given")
	}
	if len(c.Size) != 3 {
		return fmt.Errorf("size: need exactly 3 box widths, got %d", len(c.Size))
	}
	if c.Center != nil && len(c.Center) != 3 {
		return fmt.Errorf("center: need exactly 3 coordinates, got %d", len(c.Center))
	}
	if c.Center == nil {
		c.Center = []float64{0, 0, 0}
	}
	for i := 0; i < 3; i++ {
		if c.Size[i] <= 0 {
			return fmt.Errorf("size: box widths must be positive (axis %d is %g)", i, c.Size[i])
		}
	}
	if c.Granularity < 0 {
		return fmt.Errorf("granularity: must be non-negative, got %g", c.Granularity)
	}
	if len(c.Seeds) == 0 && c.NumTasks <= 0 {
		return fmt.Errorf("tasks: need at least one task or an explicit seed list")
	}
	if c.RMSDTol <= 0 {
		return fmt.Errorf("rmsd: must be positive, got %g", c.RMSDTol)
	}
	return nil
}

//TaskSeeds returns the seed of every docking task of the run.
func (c *Cfg) TaskSeeds() []uint64 {
	if len(c.Seeds) > 0 {
		seeds := make([]uint64, len(c.Seeds))
		for i, s := range c.Seeds {
			seeds[i] = uint64(s)
		}
		return seeds
	}
	seeds := make([]uint64, c.NumTasks)
	for i := range seeds {
		seeds[i] = uint64(c.Seed) + uint64(i)
	}
	return seeds
}
