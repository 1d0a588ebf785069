package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/gradecast/internal/gradebook"
	"github.com/dotcommander/gradecast/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [files...]",
	Short: "Show where every course stands",
	Long: `Summarise every course in the gradebooks: weight used and remaining,
marks earned so far, missed hurdles, and the score the remaining weight
needs to reach the passing line.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSummary(args); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := resolveGradebooks(args, cfg)
	if nothingChanged(err, cfg) {
		return nil
	}
	if err != nil {
		return err
	}

	lib, err := gradebook.LoadLibrary(paths)
	if err != nil {
		return err
	}

	var standings []report.Standing
	for _, doc := range lib.Documents {
		standings = append(standings, report.Standings(doc.Semester, cfg.Hurdle)...)
	}

	if err := newOutputter(cfg).Standings(standings); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}
