package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/gradecast/internal/discovery"
	"github.com/dotcommander/gradecast/internal/format"
	"github.com/dotcommander/gradecast/internal/gradebook"
)

var (
	fmtCheck bool
	fmtWrite bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format gradebook files canonically",
	Long: `Format gradebooks with the canonical layout.

FORMATTING RULES:
  - Keys in the order semester, description, courses; name, passingLine,
    assignments; name, weight, fullMark, scored, hurdle
  - Two-space indentation, one trailing newline
  - Numbers without redundant decimals (30.0 becomes 30)

Files with fields gradecast does not know are left alone.

USAGE MODES:
  gradecast fmt                 # Print formatted gradebooks to stdout
  gradecast fmt --write         # Write changes in place
  gradecast fmt --diff s1.yaml  # Show a unified diff
  gradecast fmt --check         # Exit 1 if any file needs formatting (CI)`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFmt(args); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Exit 1 if files would change (for CI)")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write changes in place")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "Show diff of what would change")
}

func runFmt(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := resolveGradebooks(args, cfg)
	if nothingChanged(err, cfg) {
		return nil
	}
	if err != nil {
		return err
	}

	var needsFormatting []string
	for _, filePath := range files {
		if ft, err := discovery.DetectFileType(filePath); err != nil || ft != discovery.FileTypeGradebook {
			if !cfg.Quiet {
				fmt.Fprintf(stderr, "Skipping %s: not a gradebook\n", filePath)
			}
			continue
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(stderr, "Error reading %s: %v\n", filePath, err)
			}
			continue
		}

		formatter := format.NewGradebookFormatter(gradebook.FormatFor(filePath))
		formatted, err := formatter.Format(string(content))
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(stderr, "Skipping %s: %v\n", filePath, err)
			}
			continue
		}

		if string(content) == formatted {
			if cfg.Verbose {
				log.Printf("%s already formatted", filePath)
			}
			continue
		}
		needsFormatting = append(needsFormatting, filePath)

		switch {
		case fmtCheck:
			if !cfg.Quiet {
				fmt.Fprintf(stdout, "%s needs formatting\n", filePath)
			}
		case fmtDiff:
			diff, err := format.Diff(string(content), formatted, filePath)
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, diff)
		case fmtWrite:
			if err := os.WriteFile(filePath, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", filePath, err)
			}
			if !cfg.Quiet {
				fmt.Fprintf(stdout, "Formatted %s\n", filePath)
			}
		default:
			fmt.Fprint(stdout, formatted)
		}
	}

	if !cfg.Quiet && len(files) > 1 && (fmtCheck || fmtWrite) {
		switch {
		case len(needsFormatting) == 0:
			fmt.Fprintf(stdout, "\nAll %d files already formatted\n", len(files))
		case fmtWrite:
			fmt.Fprintf(stdout, "\nFormatted %d of %d files\n", len(needsFormatting), len(files))
		default:
			fmt.Fprintf(stdout, "\n%d of %d files need formatting\n", len(needsFormatting), len(files))
		}
	}

	if fmtCheck && len(needsFormatting) > 0 {
		exitFunc(1)
	}
	return nil
}
