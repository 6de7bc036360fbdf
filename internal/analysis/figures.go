package analysis

import (
	"fmt"

	"github.com/idsia/crema-analysis/internal/config"
	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/plot"
)

// questionMetric picks one per-question curve out of an evaluation.
type questionMetric struct {
	stem  string
	label string
	pick  func(*Evaluation) []float64
}

var questionMetrics = []questionMetric{
	{"accuracy_per_question", "Accuracy", func(ev *Evaluation) []float64 { return ev.Questions.Accuracy }},
	{"brier_per_question", "Brier score", func(ev *Evaluation) []float64 { return ev.Questions.Brier }},
	{"entropy_per_question", "Mean entropy", func(ev *Evaluation) []float64 { return ev.Questions.Entropy }},
}

// drawFigures renders, for each bound, the confusion grid, class-metric
// bars and the per-question curves of every model.
func (a *Analyzer) drawFigures(sim config.Simulation, mt dataset.ModelType, evs []*Evaluation) ([]string, error) {
	dir := ImagesDir(a.cfg.OutputRoot, sim.Name)
	var files []string

	save := func(name string, fig plot.Renderable) error {
		paths, err := plot.Save(dir, name, fig, a.formats...)
		files = append(files, paths...)
		return err
	}

	for _, bound := range mt.Bounds() {
		group := byBound(evs, bound)
		if len(group) == 0 {
			continue
		}
		suffix := bound.Suffix()

		panels := make([]plot.Panel, len(group))
		classes := make([]plot.ClassMetrics, len(group))
		for i, ev := range group {
			panels[i] = plot.Panel{Title: ev.Model, Matrix: ev.Confusion}
			classes[i] = plot.ClassMetrics{Model: ev.Model, Report: ev.Classes}
		}

		grid, err := plot.ConfusionMatrices(sim.Name, panels)
		if err != nil {
			return files, err
		}
		if err := save(sim.Name+".confusion_matrix"+suffix, grid); err != nil {
			return files, err
		}

		bars, err := plot.ClassMetricsBars(sim.Name, classes)
		if err != nil {
			return files, err
		}
		if err := save(sim.Name+".class_metrics"+suffix, bars); err != nil {
			return files, err
		}

		for _, qm := range questionMetrics {
			series, err := a.questionSeries(sim, group, qm)
			if err != nil {
				return files, err
			}
			ch, err := plot.MetricPerQuestion(sim.Name, qm.label, series)
			if err != nil {
				return files, fmt.Errorf("%s: %w", qm.stem, err)
			}
			if err := save(sim.Name+"."+qm.stem+"."+string(mt)+suffix, ch); err != nil {
				return files, err
			}
		}
	}
	return files, nil
}

func (a *Analyzer) questionSeries(sim config.Simulation, group []*Evaluation, qm questionMetric) ([]plot.Series, error) {
	styles := make(map[string]config.Model, len(sim.Models))
	for _, m := range sim.Models {
		styles[m.Name] = m
	}

	series := make([]plot.Series, len(group))
	for i, ev := range group {
		style := styles[ev.Model]
		marker := plot.DefaultMarkers[i%len(plot.DefaultMarkers)]
		if style.Marker != "" {
			m, err := plot.ParseMarker(style.Marker)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", ev.Model, err)
			}
			marker = m
		}
		series[i] = plot.Series{
			Name:     ev.Model,
			Values:   qm.pick(ev),
			Marker:   marker,
			Dashed:   style.Dashed,
			Annotate: style.Annotate,
		}
	}
	return series, nil
}

func byBound(evs []*Evaluation, bound dataset.Bound) []*Evaluation {
	var out []*Evaluation
	for _, ev := range evs {
		if ev.Bound == bound {
			out = append(out, ev)
		}
	}
	return out
}
