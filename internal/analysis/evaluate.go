// Package analysis turns loaded simulation runs into metric tables and
// figures.
package analysis

import (
	"fmt"
	"strconv"

	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/metrics"
	"github.com/idsia/crema-analysis/internal/report"
)

// StudentMetrics holds one value per student.
type StudentMetrics struct {
	Brier           []float64
	HammingLoss     []float64
	HammingDistance []float64
	Accuracy        []float64
}

// AverageMetrics are the run-level summaries.
type AverageMetrics struct {
	Brier           float64
	HammingLoss     float64
	HammingDistance float64
	Accuracy        float64
	ExactMatchRatio float64
	MacroPrecision  float64
	MacroRecall     float64
	MacroF1         float64
}

// QuestionMetrics holds one student-averaged value per question.
type QuestionMetrics struct {
	Accuracy []float64
	Brier    []float64
	Entropy  []float64
}

// Evaluation is the full set of metrics for one bound of one run.
type Evaluation struct {
	Simulation string
	Model      string
	Type       dataset.ModelType
	Bound      dataset.Bound
	States     int

	// ConfusionQuestion is the question whose predictions feed the
	// confusion matrix and per-class report.
	ConfusionQuestion int

	Students  StudentMetrics
	Average   AverageMetrics
	Questions QuestionMetrics
	Confusion *metrics.ConfusionMatrix
	Classes   metrics.ClassReport
}

// Evaluate scores one bound of run. Final predictions drive the student and
// average metrics; the confusion matrix uses predictions after
// confusionQuestion, clamped to the last question.
func Evaluate(run *dataset.Run, bound dataset.Bound, confusionQuestion int) (*Evaluation, error) {
	post, ok := run.Posteriors[bound]
	if !ok {
		return nil, fmt.Errorf("run %s/%s has no %s posterior", run.Simulation, run.Model, bound)
	}
	if len(run.Observed) != post.Students {
		return nil, &metrics.ErrShapeMismatch{Op: "observed students", Want: post.Students, Got: len(run.Observed)}
	}

	preds, err := post.Predictions()
	if err != nil {
		return nil, err
	}

	cq := confusionQuestion
	if cq < 0 {
		cq = 0
	}
	if cq >= post.Questions {
		cq = post.Questions - 1
	}

	ev := &Evaluation{
		Simulation:        run.Simulation,
		Model:             run.Model,
		Type:              run.Type,
		Bound:             bound,
		States:            post.States,
		ConfusionQuestion: cq,
	}

	final := make([][]int, post.Students)
	atConfusion := make([][]int, post.Students)
	for i := range preds {
		final[i] = preds[i][post.Questions-1]
		atConfusion[i] = preds[i][cq]
	}

	if err := ev.scoreStudents(run.Observed, final, post); err != nil {
		return nil, err
	}
	if err := ev.scoreQuestions(run.Observed, preds, post); err != nil {
		return nil, err
	}
	if err := ev.scoreClasses(run.Observed, final, atConfusion); err != nil {
		return nil, err
	}
	return ev, nil
}

func (ev *Evaluation) scoreStudents(observed, final [][]int, post *dataset.Posterior) error {
	n := len(observed)
	s := StudentMetrics{
		HammingLoss:     make([]float64, n),
		HammingDistance: make([]float64, n),
		Accuracy:        make([]float64, n),
	}
	for i := range observed {
		loss, dist, err := metrics.Hamming(observed[i], final[i])
		if err != nil {
			return fmt.Errorf("student %d: %w", i, err)
		}
		s.HammingLoss[i] = loss
		s.HammingDistance[i] = dist
		s.Accuracy[i] = 1 - loss
	}

	brier, err := metrics.Brier(observed, post.Final(), post.States)
	if err != nil {
		return fmt.Errorf("final brier: %w", err)
	}
	s.Brier = brier

	emr, err := metrics.ExactMatchRatio(observed, final)
	if err != nil {
		return err
	}

	ev.Students = s
	ev.Average = AverageMetrics{
		Brier:           metrics.Mean(s.Brier),
		HammingLoss:     metrics.Mean(s.HammingLoss),
		HammingDistance: metrics.Mean(s.HammingDistance),
		Accuracy:        metrics.Mean(s.Accuracy),
		ExactMatchRatio: emr,
	}
	return nil
}

func (ev *Evaluation) scoreQuestions(observed [][]int, preds [][][]int, post *dataset.Posterior) error {
	q := QuestionMetrics{
		Accuracy: make([]float64, post.Questions),
		Brier:    make([]float64, post.Questions),
		Entropy:  make([]float64, post.Questions),
	}
	for j := 0; j < post.Questions; j++ {
		acc := make([]float64, len(observed))
		for i := range observed {
			a, err := metrics.Accuracy(observed[i], preds[i][j])
			if err != nil {
				return fmt.Errorf("question %d student %d: %w", j, i, err)
			}
			acc[i] = a
		}
		q.Accuracy[j] = metrics.Mean(acc)

		dists := post.AtQuestion(j)
		brier, err := metrics.Brier(observed, dists, post.States)
		if err != nil {
			return fmt.Errorf("question %d brier: %w", j, err)
		}
		q.Brier[j] = metrics.Mean(brier)

		h := make([]float64, 0, post.Students*post.Skills)
		for i := range dists {
			for _, d := range dists[i] {
				h = append(h, metrics.Entropy(d))
			}
		}
		q.Entropy[j] = metrics.Mean(h)
	}
	ev.Questions = q
	return nil
}

func (ev *Evaluation) scoreClasses(observed, final, atConfusion [][]int) error {
	flatObserved := metrics.Flatten(observed)

	macro, err := metrics.NewConfusionMatrix(flatObserved, metrics.Flatten(final), ev.States)
	if err != nil {
		return fmt.Errorf("final confusion matrix: %w", err)
	}
	ev.Average.MacroPrecision, ev.Average.MacroRecall, ev.Average.MacroF1 = macro.Macro()

	cm, err := metrics.NewConfusionMatrix(flatObserved, metrics.Flatten(atConfusion), ev.States)
	if err != nil {
		return fmt.Errorf("confusion matrix at question %d: %w", ev.ConfusionQuestion, err)
	}
	ev.Confusion = cm
	ev.Classes = cm.Report()
	return nil
}

// Table names, also used as file-name stems and sheet names.
const (
	StudentMetricsTable  = "student_metrics"
	AverageMetricsTable  = "avg_metrics"
	ClassMetricsTable    = "skills_avg_metrics"
	QuestionMetricsTable = "question_metrics"
)

// StudentTable has one row per student.
func (ev *Evaluation) StudentTable() report.Table {
	t := report.Table{
		Name:   StudentMetricsTable,
		Header: []string{"student_brier_score", "student_hamming_loss", "student_hamming_distance", "student_accuracy"},
		Rows:   make([][]float64, len(ev.Students.Brier)),
	}
	for i := range t.Rows {
		t.Rows[i] = []float64{
			ev.Students.Brier[i],
			ev.Students.HammingLoss[i],
			ev.Students.HammingDistance[i],
			ev.Students.Accuracy[i],
		}
	}
	return t
}

// AverageTable is a single row of run-level summaries.
func (ev *Evaluation) AverageTable() report.Table {
	a := ev.Average
	return report.Table{
		Name: AverageMetricsTable,
		Header: []string{
			"brier_score", "hamming_losses", "hamming_distances", "accuracy_scores",
			"exact_match_ratio", "macroavg_precision", "macroavg_recall", "macroavg_f1_score",
		},
		Rows: [][]float64{{
			a.Brier, a.HammingLoss, a.HammingDistance, a.Accuracy,
			a.ExactMatchRatio, a.MacroPrecision, a.MacroRecall, a.MacroF1,
		}},
	}
}

// ClassTable is a single row: every class accuracy, then every precision,
// recall and F1.
func (ev *Evaluation) ClassTable() report.Table {
	groups := []struct {
		suffix string
		values []float64
	}{
		{"accuracy", ev.Classes.Accuracy},
		{"precision", ev.Classes.Precision},
		{"recall", ev.Classes.Recall},
		{"f1_score", ev.Classes.F1},
	}

	var header []string
	var row []float64
	for _, g := range groups {
		for c, v := range g.values {
			header = append(header, "skill_"+strconv.Itoa(c)+"_"+g.suffix)
			row = append(row, v)
		}
	}
	return report.Table{Name: ClassMetricsTable, Header: header, Rows: [][]float64{row}}
}

// QuestionTable has one row per question, numbered from 1.
func (ev *Evaluation) QuestionTable() report.Table {
	t := report.Table{
		Name:   QuestionMetricsTable,
		Header: []string{"question", "accuracy", "brier_score", "mean_entropy"},
		Rows:   make([][]float64, len(ev.Questions.Accuracy)),
	}
	for j := range t.Rows {
		t.Rows[j] = []float64{float64(j + 1), ev.Questions.Accuracy[j], ev.Questions.Brier[j], ev.Questions.Entropy[j]}
	}
	return t
}

// Tables returns every table of the evaluation in output order.
func (ev *Evaluation) Tables() []report.Table {
	return []report.Table{ev.StudentTable(), ev.AverageTable(), ev.ClassTable(), ev.QuestionTable()}
}
