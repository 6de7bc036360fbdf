package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvOutputRoot = "CREMA_OUTPUT_ROOT"
	EnvLogLevel   = "CREMA_LOG_LEVEL"
	EnvLogFormat  = "CREMA_LOG_FORMAT"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win. A missing file is not an
// error; a malformed one is.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ApplyEnv overrides c with any CREMA_* variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvOutputRoot); v != "" {
		c.OutputRoot = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
}

// getEnv returns the variable's value or fallback when unset.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// LogSettings resolves the log level and format before any config file is
// read: flag values win, then the environment, then the defaults.
func LogSettings(flagLevel, flagFormat string) (level, format string) {
	d := Defaults().Log
	level, format = getEnv(EnvLogLevel, d.Level), getEnv(EnvLogFormat, d.Format)
	if flagLevel != "" {
		level = flagLevel
	}
	if flagFormat != "" {
		format = flagFormat
	}
	return level, format
}
