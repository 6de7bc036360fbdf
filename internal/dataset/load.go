package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source describes one posteriors file of a simulation.
type Source struct {
	Root       string
	Simulation string
	Model      string
	Type       ModelType
	Skills     int
	States     int
}

// Run is everything loaded for one (simulation, model) pair.
type Run struct {
	Simulation string
	Model      string
	Type       ModelType
	Skills     int
	States     int
	Questions  int

	// StudentIDs lists the profile row of every posterior row.
	StudentIDs []int
	// Observed holds the true profile of every posterior row.
	Observed [][]int
	// Posteriors is keyed by bound: Point for bayesian runs, Lower and
	// Upper for credal runs.
	Posteriors map[Bound]*Posterior
}

// Bounds returns the run's bounds in a stable order.
func (r *Run) Bounds() []Bound { return r.Type.Bounds() }

// SimulationDir is the directory holding a simulation's files.
func SimulationDir(root, sim string) string {
	return filepath.Join(root, sim)
}

// ProfilesPath is <root>/<sim>/<sim>.profiles.csv.
func ProfilesPath(root, sim string) string {
	return filepath.Join(root, sim, sim+".profiles.csv")
}

// PosteriorsPath is <root>/<sim>/<sim>.posteriors.<model>.csv.
func PosteriorsPath(root, sim, model string) string {
	return filepath.Join(root, sim, sim+".posteriors."+model+".csv")
}

// Load reads the profiles and posteriors of src.
func Load(src Source) (*Run, error) {
	mt, err := ParseModelType(string(src.Type))
	if err != nil {
		return nil, err
	}

	pf, err := os.Open(ProfilesPath(src.Root, src.Simulation))
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer pf.Close()
	profiles, err := ReadProfiles(pf, src.Skills)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", pf.Name(), err)
	}

	qf, err := os.Open(PosteriorsPath(src.Root, src.Simulation, src.Model))
	if err != nil {
		return nil, fmt.Errorf("open posteriors: %w", err)
	}
	defer qf.Close()

	run, err := ReadRun(profiles, qf, mt, src.Skills, src.States)
	if err != nil {
		return nil, fmt.Errorf("read posteriors %s: %w", qf.Name(), err)
	}
	run.Simulation = src.Simulation
	run.Model = src.Model
	return run, nil
}

// ReadProfiles reads integer skill levels and reshapes them to rows of
// length skills.
func ReadProfiles(r io.Reader, skills int) ([][]int, error) {
	if skills <= 0 {
		return nil, fmt.Errorf("skills must be positive, got %d", skills)
	}
	rows, err := readFloatRows(r)
	if err != nil {
		return nil, err
	}

	var flat []int
	for _, row := range rows {
		for _, v := range row {
			n, err := toInt(v)
			if err != nil {
				return nil, err
			}
			flat = append(flat, n)
		}
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("no profiles")
	}
	if len(flat)%skills != 0 {
		return nil, fmt.Errorf("%d values cannot be reshaped to rows of %d skills", len(flat), skills)
	}

	out := make([][]int, 0, len(flat)/skills)
	for i := 0; i < len(flat); i += skills {
		out = append(out, flat[i:i+skills:i+skills])
	}
	return out, nil
}

// ReadRun reads a posteriors file and pairs each row with its profile. The
// first column is the student id; the rest holds, per question and skill,
// either S probabilities or S lower then S upper bounds.
func ReadRun(profiles [][]int, r io.Reader, mt ModelType, skills, states int) (*Run, error) {
	mt, err := ParseModelType(string(mt))
	if err != nil {
		return nil, err
	}
	if skills <= 0 || states <= 0 {
		return nil, fmt.Errorf("skills and states must be positive, got %d and %d", skills, states)
	}

	rows, err := readFloatRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no posterior rows")
	}

	perQuestion := skills * mt.width(states)
	cols := len(rows[0]) - 1
	if cols <= 0 || cols%perQuestion != 0 {
		return nil, fmt.Errorf("%d posterior columns are not a multiple of %d (skills x values per skill)", cols, perQuestion)
	}
	questions := cols / perQuestion

	run := &Run{
		Type:       mt,
		Skills:     skills,
		States:     states,
		Questions:  questions,
		StudentIDs: make([]int, len(rows)),
		Observed:   make([][]int, len(rows)),
		Posteriors: make(map[Bound]*Posterior, 2),
	}

	raw := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		id, err := toInt(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d student id: %w", i+1, err)
		}
		if id < 0 || id >= len(profiles) {
			return nil, fmt.Errorf("row %d: student id %d outside %d profiles", i+1, id, len(profiles))
		}
		if len(profiles[id]) != skills {
			return nil, fmt.Errorf("profile %d has %d skills, want %d", id, len(profiles[id]), skills)
		}
		run.StudentIDs[i] = id
		run.Observed[i] = profiles[id]
		raw = append(raw, row[1:]...)
	}

	switch mt {
	case Bayesian:
		p, err := NewPosterior(raw, len(rows), questions, skills, states)
		if err != nil {
			return nil, err
		}
		run.Posteriors[Point] = p
	case Credal:
		lo, hi, err := splitCredal(raw, len(rows), questions, skills, states)
		if err != nil {
			return nil, err
		}
		run.Posteriors[Lower] = lo
		run.Posteriors[Upper] = hi
	}
	return run, nil
}
