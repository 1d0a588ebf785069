package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/gradecast/internal/discovery"
	"github.com/dotcommander/gradecast/internal/gradebook"
)

var importSemester string

var importCmd = &cobra.Command{
	Use:   "import TABLE",
	Short: "Convert a CSV or XLSX mark sheet into a gradebook",
	Long: `Convert a spreadsheet with one row per assignment into a YAML gradebook.

The first row is a header. Column names are matched ignoring case, spaces,
dashes and underscores:

  course, assignment, weight, fullMark, scored   required
  hurdle, passingLine                            optional

XLSX files are read from their first sheet. The gradebook is printed to
stdout unless --output names a file.

EXAMPLES:
  gradecast import marks.csv --semester "Semester 1 2026"
  gradecast import marks.xlsx -o gradebooks/s1.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(args[0], importSemester); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importSemester, "semester", "s", "", "Semester name (defaults to the table file name)")
}

func runImport(tablePath, semesterName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fileType, err := discovery.DetectFileType(tablePath)
	if err != nil {
		return err
	}
	if fileType != discovery.FileTypeTable {
		return fmt.Errorf("%s is a %s, expected a .csv or .xlsx table", tablePath, fileType)
	}

	if semesterName == "" {
		semesterName = strings.TrimSuffix(filepath.Base(tablePath), filepath.Ext(tablePath))
	}

	semester, err := gradebook.ImportTable(tablePath, semesterName)
	if err != nil {
		return fmt.Errorf("error importing %s: %w", tablePath, err)
	}

	format := gradebook.FormatYAML
	if cfg.Output != "" && gradebook.FormatFor(cfg.Output) == gradebook.FormatJSON {
		format = gradebook.FormatJSON
	}
	data, err := gradebook.Marshal(semester, format)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", cfg.Output, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(stdout, "Imported %d courses into %s\n", len(semester.Courses), cfg.Output)
	}
	return nil
}
