package cmd

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/idsia/crema-analysis/internal/analysis"
	"github.com/idsia/crema-analysis/internal/config"
	"github.com/idsia/crema-analysis/internal/logging"
	"github.com/idsia/crema-analysis/internal/report"
	"github.com/idsia/crema-analysis/internal/ui/components"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score every simulation listed in an experiment config",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		noPlots, _ := cmd.Flags().GetBool("no-plots")
		quiet, _ := cmd.Flags().GetBool("quiet")

		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := applyConfigLogging(cmd, cfg.Log); err != nil {
			return err
		}
		if noPlots {
			cfg.Plots = false
		}

		runID := uuid.NewString()
		log := logging.New("analyze").With(slog.String("run_id", runID))
		log.Info("starting analysis", "config", path, "simulations", len(cfg.Simulations), "output_root", cfg.OutputRoot)

		var opts []analysis.Option
		if !quiet {
			errOut := cmd.ErrOrStderr()
			opts = append(opts, analysis.WithProgress(func(sim string, done, total int) {
				fmt.Fprintln(errOut, components.NewProgressBar(sim, done, total, true, 60).View())
			}))
		}

		a, err := analysis.New(cfg, log, opts...)
		if err != nil {
			return fmt.Errorf("configure analysis: %w", err)
		}

		results, err := a.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, res := range results {
			tables := make([]report.Table, 0, len(res.Evaluations))
			for _, ev := range res.Evaluations {
				t := ev.AverageTable()
				t.Name = ev.Model + ev.Bound.Suffix()
				tables = append(tables, t)
			}
			title := fmt.Sprintf("%s (%s): %d files written", res.Name, res.Type, len(res.Files))
			fmt.Fprintln(out, report.Summary(title, tables...))
		}
		log.Info("analysis finished", "simulations", len(results))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringP("config", "c", "experiment.yaml", "Path to the experiment config")
	analyzeCmd.Flags().Bool("no-plots", false, "Skip rendering figures")
	analyzeCmd.Flags().BoolP("quiet", "q", false, "Do not print progress bars")
}
