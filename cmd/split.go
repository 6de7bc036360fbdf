package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/logging"
	"github.com/idsia/crema-analysis/internal/report"
)

var splitAnswersCmd = &cobra.Command{
	Use:   "split-answers",
	Short: "Split an answers file into one CSV per skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		answersPath, _ := cmd.Flags().GetString("answers")
		keysPath, _ := cmd.Flags().GetString("keys")
		outDir, _ := cmd.Flags().GetString("out-dir")

		kf, err := os.Open(keysPath)
		if err != nil {
			return fmt.Errorf("open keys: %w", err)
		}
		defer kf.Close()
		keys, err := dataset.ReadKeys(kf)
		if err != nil {
			return fmt.Errorf("read keys: %w", err)
		}

		af, err := os.Open(answersPath)
		if err != nil {
			return fmt.Errorf("open answers: %w", err)
		}
		defer af.Close()
		answers, err := dataset.ReadAnswers(af)
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}

		split, err := dataset.SplitBySkill(answers, keys)
		if err != nil {
			return err
		}

		log := logging.New("split-answers")
		for _, sa := range split {
			path := filepath.Join(outDir, sa.Skill+".csv")
			t := report.Table{Name: sa.Skill, Header: sa.Header(), Rows: sa.Answers}
			if err := report.SaveCSV(path, t); err != nil {
				return err
			}
			log.Info("wrote skill answers", "skill", sa.Skill, "questions", len(sa.Questions), "path", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d skills written to %s\n", len(split), outDir)
		return nil
	},
}

func init() {
	splitAnswersCmd.Flags().String("answers", "", "Path to the answers file")
	splitAnswersCmd.Flags().String("keys", "", "Path to the question/skill keys file")
	splitAnswersCmd.Flags().String("out-dir", ".", "Directory for the per-skill CSVs")
	_ = splitAnswersCmd.MarkFlagRequired("answers")
	_ = splitAnswersCmd.MarkFlagRequired("keys")
}
