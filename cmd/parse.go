package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idsia/crema-analysis/internal/dataset"
	"github.com/idsia/crema-analysis/internal/report"
)

var parseDumpCmd = &cobra.Command{
	Use:   "parse-dump",
	Short: "Convert a brace-delimited text dump to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")

		kind, err := dataset.ParseDumpKind(kindFlag)
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if in != "" && in != "-" {
			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open dump: %w", err)
			}
			defer f.Close()
			r = f
		}

		lines, err := dataset.ParseDump(r, kind)
		if err != nil {
			return fmt.Errorf("parse dump: %w", err)
		}
		t, err := dumpTable(kind, lines)
		if err != nil {
			return err
		}

		if out == "" || out == "-" {
			return report.WriteCSV(cmd.OutOrStdout(), t)
		}
		return report.SaveCSV(out, t)
	},
}

func init() {
	parseDumpCmd.Flags().String("kind", string(dataset.DumpProbabilities), "Dump kind: probabilities or profiles")
	parseDumpCmd.Flags().String("in", "-", "Input dump (- for stdin)")
	parseDumpCmd.Flags().String("out", "-", "Output CSV (- for stdout)")
}

// dumpTable flattens every line's groups into one row. Column names follow
// the first line: "skill_<k>" for profiles, "skill_<k>_state_<s>" for
// probabilities.
func dumpTable(kind dataset.DumpKind, lines [][][]float64) (report.Table, error) {
	t := report.Table{Name: string(kind)}
	if len(lines) == 0 {
		return t, fmt.Errorf("dump is empty")
	}

	for g, group := range lines[0] {
		for s := range group {
			if kind == dataset.DumpProfiles {
				t.Header = append(t.Header, fmt.Sprintf("skill_%d", s))
			} else {
				t.Header = append(t.Header, fmt.Sprintf("skill_%d_state_%d", g, s))
			}
		}
	}

	t.Rows = make([][]float64, len(lines))
	for i, groups := range lines {
		var row []float64
		for _, g := range groups {
			row = append(row, g...)
		}
		t.Rows[i] = row
	}
	return t, t.Validate()
}
