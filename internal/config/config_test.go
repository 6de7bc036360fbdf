package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsia/crema-analysis/internal/dataset"
)

const sample = `
output_root: ../../output
exports: [xlsx]
simulations:
  - name: Minimalistic1x2x9
    skills: 1
    states: 2
    model_type: credal
    models:
      - name: credal-adaptive-entropy
        marker: s
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "../../output", cfg.OutputRoot)
	assert.Equal(t, 5, cfg.ConfusionQuestion)
	assert.True(t, cfg.Plots)
	assert.Equal(t, []string{"png", "svg"}, cfg.ImageFormats)
	assert.Equal(t, []string{"xlsx"}, cfg.Exports)
	require.Len(t, cfg.Simulations, 1)

	mt, err := cfg.Simulations[0].Type()
	require.NoError(t, err)
	assert.Equal(t, dataset.Credal, mt)
	assert.Equal(t, "s", cfg.Simulations[0].Models[0].Marker)
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown key", "simulations: []\nverbose: true\n"},
		{"no simulations", "output_root: out\n"},
		{"states as string", `simulations: [{name: s, skills: 1, states: two, model_type: bayesian, models: [{name: m}]}]`},
		{"bad export", `exports: [pdf]
simulations: [{name: s, skills: 1, states: 2, model_type: bayesian, models: [{name: m}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var schemaErr *ErrSchema
			assert.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestValidateModelType(t *testing.T) {
	cfg := Example()
	cfg.Simulations[0].ModelType = "markov"

	err := cfg.Validate()
	var invalid *dataset.ErrInvalidModelType
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "markov", invalid.Value)
}

func TestValidateStructTags(t *testing.T) {
	cfg := Example()
	cfg.Simulations[0].States = 1
	assert.Error(t, cfg.Validate())

	cfg = Example()
	cfg.Simulations[0].Models[0].Marker = "*"
	assert.Error(t, cfg.Validate())

	cfg = Example()
	cfg.Simulations = append(cfg.Simulations, cfg.Simulations[0])
	assert.ErrorContains(t, cfg.Validate(), "listed twice")
}

func TestValidateLogLevelMatchesParser(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "warning", "WARNING", "error"} {
		cfg := Example()
		cfg.Log.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := Example()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "log.level")
}

func TestLoadAcceptsWarningFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, Write(path, Example()))
	t.Setenv(EnvLogLevel, "warning")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.Log.Level)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "experiment.yaml")
	require.NoError(t, Write(path, Example()))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example().Simulations, cfg.Simulations)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	t.Setenv(EnvOutputRoot, "/data/output")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/output", cfg.OutputRoot)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogSettings(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "")

	level, format := LogSettings("", "")
	assert.Equal(t, "debug", level)
	assert.Equal(t, "text", format)

	level, format = LogSettings("error", "json")
	assert.Equal(t, "error", level)
	assert.Equal(t, "json", format)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CREMA_OUTPUT_ROOT=/from/dotenv\n"), 0o644))

	t.Setenv(EnvOutputRoot, "")
	os.Unsetenv(EnvOutputRoot)
	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "/from/dotenv", os.Getenv(EnvOutputRoot))
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnvMalformed(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BAD-KEY=1\n"), 0o644))
	assert.ErrorContains(t, LoadDotEnv(envFile), "load .env")
}
