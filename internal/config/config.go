// Package config loads the experiment description that drives an analysis
// run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/logging"
)

// Config is the experiment file.
type Config struct {
	// OutputRoot holds one directory per simulation, as written by the
	// simulator. Metrics and images are written inside those directories.
	OutputRoot string `yaml:"output_root" validate:"required"`

	// ConfusionQuestion selects the question whose predictions feed the
	// confusion matrices and per-class metrics. Default: 5.
	ConfusionQuestion int `yaml:"confusion_question" validate:"gte=0"`

	Plots        bool     `yaml:"plots"`
	ImageFormats []string `yaml:"image_formats" validate:"dive,oneof=png svg"`
	Exports      []string `yaml:"exports" validate:"dive,oneof=xlsx parquet"`

	Log LogConfig `yaml:"log"`

	Simulations []Simulation `yaml:"simulations" validate:"required,min=1,dive"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Simulation is one simulator output directory and the models run on it.
type Simulation struct {
	Name      string  `yaml:"name" validate:"required"`
	Skills    int     `yaml:"skills" validate:"gte=1"`
	States    int     `yaml:"states" validate:"gte=2"`
	ModelType string  `yaml:"model_type" validate:"required"`
	Models    []Model `yaml:"models" validate:"required,min=1,dive"`
}

// Model is one adaptive-selection strategy and how its line is drawn.
type Model struct {
	Name     string `yaml:"name" validate:"required"`
	Marker   string `yaml:"marker,omitempty" validate:"omitempty,oneof=none o s ^ D x"`
	Dashed   bool   `yaml:"dashed,omitempty"`
	Annotate bool   `yaml:"annotate,omitempty"`
}

// Type parses the simulation's model type.
func (s Simulation) Type() (dataset.ModelType, error) {
	return dataset.ParseModelType(s.ModelType)
}

// Defaults returns a Config with every optional field set and no
// simulations.
func Defaults() Config {
	return Config{
		OutputRoot:        "output",
		ConfusionQuestion: 5,
		Plots:             true,
		ImageFormats:      []string{"png", "svg"},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Example returns the configuration written by "config init": the
// minimal 1-skill, 2-level simulation under the four Bayesian strategies.
func Example() Config {
	cfg := Defaults()
	cfg.Simulations = []Simulation{
		{
			Name:      "Minimalistic1x2x9",
			Skills:    1,
			States:    2,
			ModelType: string(dataset.Bayesian),
			Models: []Model{
				{Name: "bayesian-adaptive-entropy", Marker: "o", Annotate: true},
				{Name: "bayesian-adaptive-mode", Marker: "s", Annotate: true},
				{Name: "bayesian-adaptive-pright", Marker: "^", Annotate: true},
				{Name: "bayesian-non-adaptive", Marker: "x", Dashed: true, Annotate: true},
			},
		},
	}
	return cfg
}

// Parse decodes and validates a YAML document on top of Defaults.
func Parse(data []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Load reads path, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints, then that the log level, every model
// type and the simulation names are usable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid config: log.level: %w", err)
	}

	seen := make(map[string]bool, len(c.Simulations))
	for _, s := range c.Simulations {
		if _, err := s.Type(); err != nil {
			return fmt.Errorf("simulation %s: %w", s.Name, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("simulation %s listed twice", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Write saves c as YAML, creating parent directories.
func Write(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
