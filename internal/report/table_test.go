package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	tbl := Table{
		Name:   "student_metrics",
		Header: []string{"student_brier_score", "student_accuracy"},
		Rows:   [][]float64{{0.125, 1}, {0, 0.5}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t,
		"# student_brier_score, student_accuracy\n0.125000,1.000000\n0.000000,0.500000\n",
		buf.String())
}

func TestWriteCSVRejectsRaggedRows(t *testing.T) {
	tbl := Table{Name: "x", Header: []string{"a", "b"}, Rows: [][]float64{{1}}}
	assert.Error(t, WriteCSV(&bytes.Buffer{}, tbl))
}

func TestSaveCSVCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim", "metrics", "sim.avg_metrics.m.csv")
	require.NoError(t, SaveCSV(path, Table{Header: []string{"brier_score"}, Rows: [][]float64{{0.25}}}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# brier_score\n0.250000\n", string(got))
}

func TestSummary(t *testing.T) {
	out := Summary("Minimalistic1x2x9", Table{
		Name:   "avg_metrics",
		Header: []string{"brier_score", "accuracy_scores"},
		Rows:   [][]float64{{0.1, 0.75}},
	})
	assert.Contains(t, out, "Minimalistic1x2x9")
	assert.Contains(t, out, "avg_metrics")
	assert.Contains(t, out, "brier_score")
	assert.Contains(t, out, "0.7500")
}
