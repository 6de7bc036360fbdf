package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/idsia/crema-analysis/internal/config"
	"github.com/idsia/crema-analysis/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "crema-analysis",
	Short: "Score adaptive-testing simulation output",
	Long: "crema-analysis reads the profiles and posteriors written by the adaptive-testing simulator,\n" +
		"computes classification metrics per student, question and class, and renders comparison plots.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

// Execute runs the root command. Ctrl-C cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides CREMA_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides CREMA_LOG_FORMAT)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(splitAnswersCmd)
	rootCmd.AddCommand(parseDumpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging loads .env, then installs the slog handler chosen by flags,
// environment or defaults, in that order.
func setupLogging(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	level, format := config.LogSettings(logFlags(cmd))
	return installLogging(cmd, level, format)
}

// applyConfigLogging re-installs the handler from a config file's log
// section. Flags still win; the file's values already carry env overrides.
func applyConfigLogging(cmd *cobra.Command, lc config.LogConfig) error {
	d := config.Defaults().Log
	level, format := lc.Level, lc.Format
	if level == "" {
		level = d.Level
	}
	if format == "" {
		format = d.Format
	}
	flagLevel, flagFormat := logFlags(cmd)
	if flagLevel != "" {
		level = flagLevel
	}
	if flagFormat != "" {
		format = flagFormat
	}
	return installLogging(cmd, level, format)
}

func logFlags(cmd *cobra.Command) (level, format string) {
	level, _ = cmd.Flags().GetString("log-level")
	format, _ = cmd.Flags().GetString("log-format")
	return level, format
}

func installLogging(cmd *cobra.Command, level, format string) error {
	if err := logging.Init(level, format, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
