package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idsia/crema-analysis/internal/analysis"
	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/logging"
	"github.com/idsia/crema-analysis/internal/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single posteriors file against its profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profilesPath, _ := cmd.Flags().GetString("profiles")
		posteriorsPath, _ := cmd.Flags().GetString("posteriors")
		skills, _ := cmd.Flags().GetInt("skills")
		states, _ := cmd.Flags().GetInt("states")
		modelType, _ := cmd.Flags().GetString("model-type")
		question, _ := cmd.Flags().GetInt("confusion-question")
		outDir, _ := cmd.Flags().GetString("out")

		mt, err := dataset.ParseModelType(modelType)
		if err != nil {
			return err
		}

		pf, err := os.Open(profilesPath)
		if err != nil {
			return fmt.Errorf("open profiles: %w", err)
		}
		defer pf.Close()
		profiles, err := dataset.ReadProfiles(pf, skills)
		if err != nil {
			return fmt.Errorf("read profiles: %w", err)
		}

		qf, err := os.Open(posteriorsPath)
		if err != nil {
			return fmt.Errorf("open posteriors: %w", err)
		}
		defer qf.Close()
		run, err := dataset.ReadRun(profiles, qf, mt, skills, states)
		if err != nil {
			return fmt.Errorf("read posteriors: %w", err)
		}
		run.Model = strings.TrimSuffix(filepath.Base(posteriorsPath), filepath.Ext(posteriorsPath))

		log := logging.New("score")
		log.Debug("loaded run", "students", len(run.Observed), "questions", run.Questions, "type", run.Type)

		out := cmd.OutOrStdout()
		for _, b := range run.Bounds() {
			ev, err := analysis.Evaluate(run, b, question)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", b, err)
			}

			if outDir != "" {
				for _, t := range ev.Tables() {
					path := filepath.Join(outDir, run.Model+"."+t.Name+b.Suffix()+".csv")
					if err := report.SaveCSV(path, t); err != nil {
						return err
					}
					log.Info("wrote table", "path", path)
				}
			}

			title := run.Model
			if b != dataset.Point {
				title += " (" + b.String() + ")"
			}
			fmt.Fprintln(out, report.Summary(title, ev.AverageTable(), ev.ClassTable()))
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().String("profiles", "", "Path to the profiles CSV")
	scoreCmd.Flags().String("posteriors", "", "Path to the posteriors CSV")
	scoreCmd.Flags().Int("skills", 0, "Number of skills per student")
	scoreCmd.Flags().Int("states", 0, "Number of states per skill")
	scoreCmd.Flags().String("model-type", string(dataset.Bayesian), "Model type: bayesian or credal")
	scoreCmd.Flags().Int("confusion-question", 5, "Question index used for the confusion matrix")
	scoreCmd.Flags().String("out", "", "Directory to write metric CSVs to (optional)")
	_ = scoreCmd.MarkFlagRequired("profiles")
	_ = scoreCmd.MarkFlagRequired("posteriors")
	_ = scoreCmd.MarkFlagRequired("skills")
	_ = scoreCmd.MarkFlagRequired("states")
}
