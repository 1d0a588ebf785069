package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/gradecast/internal/baseline"
	"github.com/dotcommander/gradecast/internal/report"
)

var (
	useBaseline    bool
	createBaseline bool
	baselinePath   string
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate gradebook files",
	Long: `Validate gradebooks against the gradebook schema and the cross-field rules.

SCHEMA RULES:
  semester, course and assignment names are 3 to 30 characters
  passingLine 1..100, weight 1..100, fullMark 1..500, scored 0..500,
  hurdle 0..100, and no unknown fields

CROSS-FIELD RULES:
  error    scored above fullMark
  error    course weights summing above 100
  error    duplicate course names within a semester
  warning  duplicate assignment names within a course
  warning  course without assignments

Exits 1 when an issue at or above --fail-on is found.

BASELINE:
  gradecast check --baseline-create   # Accept the current issues
  gradecast check --baseline          # Report only issues not in the baseline

The baseline is stored in .gradecastbaseline.json under --root.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&useBaseline, "baseline", false, "Ignore issues recorded in the baseline file")
	checkCmd.Flags().BoolVar(&createBaseline, "baseline-create", false, "Record the current issues as the baseline")
	checkCmd.Flags().StringVar(&baselinePath, "baseline-path", baseline.DefaultFile, "Baseline file, relative to --root")
}

func runCheck(args []string) error {
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

	checker, err := report.NewChecker()
	if err != nil {
		return fmt.Errorf("error loading schemas: %w", err)
	}

	summary, err := checker.CheckFiles(paths)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.Printf("Checked %d gradebooks: %d errors, %d warnings", summary.Files, summary.TotalErrors, summary.TotalWarnings)
	}

	baselineFile := baselinePath
	if !filepath.IsAbs(baselineFile) {
		baselineFile = filepath.Join(cfg.Root, baselineFile)
	}

	if createBaseline {
		b := baseline.CreateBaseline(summary.AllIssues(), cfg.Root)
		b.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := b.Save(baselineFile); err != nil {
			return fmt.Errorf("failed to save baseline: %w", err)
		}
		if !cfg.Quiet {
			fmt.Fprintf(stdout, "Baseline created: %s (%d issues)\n", baselineFile, len(b.Fingerprints))
		}
		return nil
	}

	var errorsIgnored, warningsIgnored int
	if useBaseline {
		if _, statErr := os.Stat(baselineFile); statErr == nil {
			b, err := baseline.LoadBaseline(baselineFile, cfg.Root)
			if err != nil {
				return err
			}
			errorsIgnored, warningsIgnored = summary.Ignore(b.IsKnown)
		} else if !cfg.Quiet {
			fmt.Fprintf(stderr, "Warning: no baseline at %s\n", baselineFile)
		}
	}

	if err := newOutputter(cfg).Check(summary); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	if ignored := errorsIgnored + warningsIgnored; ignored > 0 && !cfg.Quiet && cfg.Format == "console" {
		fmt.Fprintf(stdout, "\n%d baseline issues ignored (%d errors, %d warnings)\n", ignored, errorsIgnored, warningsIgnored)
	}

	if summary.Failed(cfg.FailOn) {
		exitFunc(1)
	}
	return nil
}
