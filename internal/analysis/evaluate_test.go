package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/plot"
)

// Two students, two skills, two states, two questions. Both students are
// classified correctly after the last question.
const (
	profilesCSV = "0,1\n1,1\n"
	bayesianCSV = "0,0.6,0.4,0.5,0.5,0.9,0.1,0.2,0.8\n" +
		"1,0.5,0.5,0.5,0.5,0.3,0.7,0.4,0.6\n"
	// Same numbers as lower bounds; upper bounds put all mass on state 0.
	credalCSV = "0,0.6,0.4,1,0,0.5,0.5,1,0,0.9,0.1,1,0,0.2,0.8,1,0\n" +
		"1,0.5,0.5,1,0,0.5,0.5,1,0,0.3,0.7,1,0,0.4,0.6,1,0\n"
)

func readRun(t *testing.T, posteriors string, mt dataset.ModelType) *dataset.Run {
	t.Helper()
	profiles, err := dataset.ReadProfiles(strings.NewReader(profilesCSV), 2)
	require.NoError(t, err)
	run, err := dataset.ReadRun(profiles, strings.NewReader(posteriors), mt, 2, 2)
	require.NoError(t, err)
	run.Simulation = "sim"
	run.Model = "m"
	return run
}

func TestEvaluateBayesian(t *testing.T) {
	ev, err := Evaluate(readRun(t, bayesianCSV, dataset.Bayesian), dataset.Point, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, ev.ConfusionQuestion, "clamped to the last question")
	assert.InDeltaSlice(t, []float64{0.025, 0.125}, ev.Students.Brier, 1e-12)
	assert.Equal(t, []float64{0, 0}, ev.Students.HammingLoss)
	assert.Equal(t, []float64{1, 1}, ev.Students.Accuracy)

	a := ev.Average
	assert.InDelta(t, 0.075, a.Brier, 1e-12)
	assert.Equal(t, 1.0, a.ExactMatchRatio)
	assert.Equal(t, 1.0, a.MacroPrecision)
	assert.Equal(t, 1.0, a.MacroRecall)
	assert.Equal(t, 1.0, a.MacroF1)

	assert.InDeltaSlice(t, []float64{0.25, 1}, ev.Questions.Accuracy, 1e-12)
	require.Len(t, ev.Questions.Brier, 2)
	assert.Greater(t, ev.Questions.Brier[0], ev.Questions.Brier[1])
	assert.Greater(t, ev.Questions.Entropy[0], ev.Questions.Entropy[1])
	assert.LessOrEqual(t, ev.Questions.Entropy[0], 1.0)

	assert.Equal(t, [][]int{{1, 0}, {0, 3}}, ev.Confusion.Counts)
}

func TestEvaluateEarlyConfusionQuestion(t *testing.T) {
	ev, err := Evaluate(readRun(t, bayesianCSV, dataset.Bayesian), dataset.Point, 0)
	require.NoError(t, err)

	// After the first question every skill is predicted as state 0.
	assert.Equal(t, [][]int{{1, 0}, {3, 0}}, ev.Confusion.Counts)
	assert.InDeltaSlice(t, []float64{1, 0}, ev.Classes.Recall, 1e-12)
	assert.InDeltaSlice(t, []float64{0.25, 0}, ev.Classes.Precision, 1e-12)
	// Macro scores still come from the final predictions.
	assert.Equal(t, 1.0, ev.Average.MacroF1)
}

func TestEvaluateCredalBounds(t *testing.T) {
	run := readRun(t, credalCSV, dataset.Credal)

	lower, err := Evaluate(run, dataset.Lower, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, lower.Average.ExactMatchRatio)
	assert.InDelta(t, 0.075, lower.Average.Brier, 1e-12)

	upper, err := Evaluate(run, dataset.Upper, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, upper.Average.ExactMatchRatio)
	assert.InDelta(t, 0.25, upper.Average.Accuracy, 1e-12)
	assert.InDelta(t, 0.75, upper.Average.HammingLoss, 1e-12)

	_, err = Evaluate(run, dataset.Point, 5)
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	ev, err := Evaluate(readRun(t, bayesianCSV, dataset.Bayesian), dataset.Point, 5)
	require.NoError(t, err)

	tables := ev.Tables()
	require.Len(t, tables, 4)
	for _, tbl := range tables {
		require.NoError(t, tbl.Validate(), tbl.Name)
	}

	assert.Equal(t,
		"student_brier_score, student_hamming_loss, student_hamming_distance, student_accuracy",
		ev.StudentTable().HeaderLine())
	assert.Equal(t,
		"brier_score, hamming_losses, hamming_distances, accuracy_scores, exact_match_ratio, macroavg_precision, macroavg_recall, macroavg_f1_score",
		ev.AverageTable().HeaderLine())
	assert.Equal(t,
		"skill_0_accuracy, skill_1_accuracy, skill_0_precision, skill_1_precision, skill_0_recall, skill_1_recall, skill_0_f1_score, skill_1_f1_score",
		ev.ClassTable().HeaderLine())
	assert.Equal(t, "question, accuracy, brier_score, mean_entropy", ev.QuestionTable().HeaderLine())

	assert.Len(t, ev.StudentTable().Rows, 2)
	assert.Equal(t, 2.0, ev.QuestionTable().Rows[1][0])
}

func TestUpperBoundCurvesFitThePlot(t *testing.T) {
	profiles, err := dataset.ReadProfiles(strings.NewReader("0\n"), 1)
	require.NoError(t, err)
	run, err := dataset.ReadRun(profiles, strings.NewReader("0,0.1,0.1,0.1,0.1,1,1,1,1\n"), dataset.Credal, 1, 4)
	require.NoError(t, err)
	run.Simulation, run.Model = "sim", "m"

	ev, err := Evaluate(run, dataset.Upper, 5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5}, ev.Questions.Brier, 1e-12)
	assert.InDeltaSlice(t, []float64{0}, ev.Questions.Entropy, 1e-12)

	ch, err := plot.MetricPerQuestion("sim", "Brier score", []plot.Series{{Name: "m", Values: ev.Questions.Brier}})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ch.YAxis.Range.GetMax(), 1.5)
}
