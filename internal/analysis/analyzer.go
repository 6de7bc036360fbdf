package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/idsia/crema-analysis/internal/config"
	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/plot"
	"github.com/idsia/crema-analysis/internal/report"
)

// ProgressFunc is told after each model of a simulation is scored.
type ProgressFunc func(simulation string, done, total int)

// Analyzer runs every simulation of a config. It holds no per-run state;
// each call to Simulation builds its results from scratch.
type Analyzer struct {
	cfg      config.Config
	log      *slog.Logger
	formats  []plot.Format
	progress ProgressFunc
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// New validates cfg and returns an Analyzer.
func New(cfg config.Config, log *slog.Logger, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{cfg: cfg, log: log}
	for _, f := range cfg.ImageFormats {
		pf, err := plot.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		a.formats = append(a.formats, pf)
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// SimulationResult lists what one simulation produced.
type SimulationResult struct {
	Name        string
	Type        dataset.ModelType
	Evaluations []*Evaluation
	Files       []string
}

// Run analyses every configured simulation in order, stopping at the first
// error or when ctx is cancelled.
func (a *Analyzer) Run(ctx context.Context) ([]*SimulationResult, error) {
	results := make([]*SimulationResult, 0, len(a.cfg.Simulations))
	for _, sim := range a.cfg.Simulations {
		res, err := a.Simulation(ctx, sim)
		if err != nil {
			return results, fmt.Errorf("simulation %s: %w", sim.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// MetricsDir is <root>/<sim>/metrics.
func MetricsDir(root, sim string) string {
	return filepath.Join(dataset.SimulationDir(root, sim), "metrics")
}

// ImagesDir is <root>/<sim>/images.
func ImagesDir(root, sim string) string {
	return filepath.Join(dataset.SimulationDir(root, sim), "images")
}

// MetricsPath is metrics/<sim>.<table>.<model>[.<bound>].csv.
func MetricsPath(root, sim, table, model string, bound dataset.Bound) string {
	return filepath.Join(MetricsDir(root, sim), sim+"."+table+"."+model+bound.Suffix()+".csv")
}

// Simulation loads, scores and writes every model of sim.
func (a *Analyzer) Simulation(ctx context.Context, sim config.Simulation) (*SimulationResult, error) {
	mt, err := sim.Type()
	if err != nil {
		return nil, err
	}
	log := a.log.With(slog.String("simulation", sim.Name), slog.String("model_type", string(mt)))
	res := &SimulationResult{Name: sim.Name, Type: mt}

	for i, model := range sim.Models {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		run, err := dataset.Load(dataset.Source{
			Root:       a.cfg.OutputRoot,
			Simulation: sim.Name,
			Model:      model.Name,
			Type:       mt,
			Skills:     sim.Skills,
			States:     sim.States,
		})
		if err != nil {
			return res, fmt.Errorf("model %s: %w", model.Name, err)
		}
		log.Debug("loaded run", "model", model.Name, "students", len(run.Observed), "questions", run.Questions)

		for _, bound := range run.Bounds() {
			ev, err := Evaluate(run, bound, a.cfg.ConfusionQuestion)
			if err != nil {
				return res, fmt.Errorf("model %s %s: %w", model.Name, bound, err)
			}
			files, err := a.writeTables(ev)
			res.Files = append(res.Files, files...)
			if err != nil {
				return res, err
			}
			res.Evaluations = append(res.Evaluations, ev)

			log.Info("scored",
				"model", model.Name,
				"bound", bound.String(),
				"brier", ev.Average.Brier,
				"accuracy", ev.Average.Accuracy,
				"exact_match_ratio", ev.Average.ExactMatchRatio,
			)
		}

		if a.progress != nil {
			a.progress(sim.Name, i+1, len(sim.Models))
		}
	}

	if len(a.cfg.Exports) > 0 {
		files, err := a.export(sim, mt, res.Evaluations)
		res.Files = append(res.Files, files...)
		if err != nil {
			return res, err
		}
	}

	if a.cfg.Plots {
		files, err := a.drawFigures(sim, mt, res.Evaluations)
		res.Files = append(res.Files, files...)
		if err != nil {
			return res, err
		}
	}

	log.Info("simulation done", "files", len(res.Files))
	return res, nil
}

func (a *Analyzer) writeTables(ev *Evaluation) ([]string, error) {
	var files []string
	for _, t := range ev.Tables() {
		path := MetricsPath(a.cfg.OutputRoot, ev.Simulation, t.Name, ev.Model, ev.Bound)
		if err := report.SaveCSV(path, t); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func (a *Analyzer) export(sim config.Simulation, mt dataset.ModelType, evs []*Evaluation) ([]string, error) {
	var files []string
	base := filepath.Join(MetricsDir(a.cfg.OutputRoot, sim.Name), sim.Name+"."+string(mt))

	for _, kind := range a.cfg.Exports {
		switch kind {
		case "xlsx":
			wb := report.NewWorkbook("model", "bound")
			for _, ev := range evs {
				for _, t := range ev.Tables() {
					if err := wb.Append(t.Name, []string{ev.Model, string(ev.Bound)}, t); err != nil {
						return files, err
					}
				}
			}
			path := base + ".xlsx"
			if err := wb.SaveAs(path); err != nil {
				return files, err
			}
			files = append(files, path)

		case "parquet":
			var records []report.Record
			for _, ev := range evs {
				for _, t := range ev.Tables() {
					records = append(records, report.Records(ev.Simulation, ev.Model, string(ev.Bound), t)...)
				}
			}
			path := base + ".parquet"
			if err := report.SaveParquet(path, records); err != nil {
				return files, err
			}
			files = append(files, path)

		default:
			return files, fmt.Errorf("unknown export %q", kind)
		}
	}
	return files, nil
}
