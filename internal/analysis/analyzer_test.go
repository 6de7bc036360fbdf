package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsia/crema-analysis/internal/config"
	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/logging"
)

func writeSimulation(t *testing.T, root, sim string, posteriors map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, sim), 0o755))
	require.NoError(t, os.WriteFile(dataset.ProfilesPath(root, sim), []byte(profilesCSV), 0o644))
	for model, body := range posteriors {
		require.NoError(t, os.WriteFile(dataset.PosteriorsPath(root, sim, model), []byte(body), 0o644))
	}
}

func testConfig(root string) config.Config {
	cfg := config.Defaults()
	cfg.OutputRoot = root
	cfg.ImageFormats = []string{"png"}
	cfg.Exports = []string{"xlsx", "parquet"}
	cfg.Simulations = []config.Simulation{
		{
			Name: "bayes", Skills: 2, States: 2, ModelType: "bayesian",
			Models: []config.Model{
				{Name: "bayesian-adaptive-entropy", Marker: "o", Annotate: true},
				{Name: "bayesian-non-adaptive", Marker: "x", Dashed: true},
			},
		},
		{
			Name: "credal", Skills: 2, States: 2, ModelType: "credal",
			Models: []config.Model{{Name: "credal-adaptive-mode"}},
		},
	}
	return cfg
}

func TestAnalyzerRun(t *testing.T) {
	root := t.TempDir()
	writeSimulation(t, root, "bayes", map[string]string{
		"bayesian-adaptive-entropy": bayesianCSV,
		"bayesian-non-adaptive":     bayesianCSV,
	})
	writeSimulation(t, root, "credal", map[string]string{"credal-adaptive-mode": credalCSV})

	var ticks []int
	a, err := New(testConfig(root), logging.Discard(), WithProgress(func(sim string, done, total int) {
		ticks = append(ticks, done)
	}))
	require.NoError(t, err)

	results, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []int{1, 2, 1}, ticks)

	assert.Len(t, results[0].Evaluations, 2)
	assert.Len(t, results[1].Evaluations, 2, "lower and upper")

	want := []string{
		MetricsPath(root, "bayes", "avg_metrics", "bayesian-adaptive-entropy", dataset.Point),
		MetricsPath(root, "bayes", "skills_avg_metrics", "bayesian-non-adaptive", dataset.Point),
		filepath.Join(root, "bayes", "metrics", "bayes.bayesian.xlsx"),
		filepath.Join(root, "bayes", "metrics", "bayes.bayesian.parquet"),
		filepath.Join(root, "bayes", "images", "bayes.confusion_matrix.png"),
		filepath.Join(root, "bayes", "images", "bayes.class_metrics.png"),
		filepath.Join(root, "bayes", "images", "bayes.accuracy_per_question.bayesian.png"),
		filepath.Join(root, "bayes", "images", "bayes.brier_per_question.bayesian.png"),
		filepath.Join(root, "bayes", "images", "bayes.entropy_per_question.bayesian.png"),
		MetricsPath(root, "credal", "student_metrics", "credal-adaptive-mode", dataset.Lower),
		MetricsPath(root, "credal", "question_metrics", "credal-adaptive-mode", dataset.Upper),
		filepath.Join(root, "credal", "images", "credal.confusion_matrix.upper.png"),
		filepath.Join(root, "credal", "images", "credal.accuracy_per_question.credal.lower.png"),
	}
	for _, p := range want {
		assert.FileExists(t, p)
	}
	assert.Contains(t, results[0].Files, want[0])

	avg, err := os.ReadFile(want[0])
	require.NoError(t, err)
	assert.Equal(t,
		"# brier_score, hamming_losses, hamming_distances, accuracy_scores, exact_match_ratio, macroavg_precision, macroavg_recall, macroavg_f1_score\n"+
			"0.075000,0.000000,0.000000,1.000000,1.000000,1.000000,1.000000,1.000000\n",
		string(avg))
}

func TestAnalyzerMissingPosteriors(t *testing.T) {
	root := t.TempDir()
	writeSimulation(t, root, "bayes", map[string]string{"bayesian-adaptive-entropy": bayesianCSV})

	cfg := testConfig(root)
	cfg.Simulations = cfg.Simulations[:1]
	a, err := New(cfg, logging.Discard())
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "bayesian-non-adaptive")
}

func TestAnalyzerCancelled(t *testing.T) {
	root := t.TempDir()
	a, err := New(testConfig(root), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsInvalidModelType(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Simulations[0].ModelType = "neural"

	_, err := New(cfg, logging.Discard())
	var invalid *dataset.ErrInvalidModelType
	assert.ErrorAs(t, err, &invalid)
}
