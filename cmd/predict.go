package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/gradecast/internal/gradebook"
	"github.com/dotcommander/gradecast/internal/grading"
	"github.com/dotcommander/gradecast/internal/report"
)

var (
	predictCourse  string
	predictName    string
	predictTargets []float64
	predictWeight  float64
	predictHurdle  float64
)

var predictCmd = &cobra.Command{
	Use:   "predict [files...] --course COURSE",
	Short: "Predict the score a future assessment needs",
	Long: `Predict the minimum score the next assessment of a course needs.

The course is looked up in the given gradebooks (or those discovered under
--root). Names are matched ignoring case; qualify them as "semester/course"
when several semesters share a course name.

DEFAULTS:
  --target   the course passing line (50 when the gradebook sets none)
  --weight   whatever weight the recorded assessments leave unused
  --hurdle   the configured hurdle (50 unless set in .gradecastrc)

A missed hurdle on any recorded assessment fails the course outright. A
requirement above 100% is reported as not achievable.

EXAMPLES:
  gradecast predict --course COMP1010
  gradecast predict s1.gradebook.yaml --course COMP1010 --target 65,75,85
  gradecast predict --course "Semester 1/COMP1010" --weight 40 --hurdle 40`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var in grading.ScenarioInput
		in.Name = predictName
		if cmd.Flags().Changed("weight") {
			in.Weight = grading.Float(predictWeight)
		}
		if cmd.Flags().Changed("hurdle") {
			in.HurdlePercent = grading.Float(predictHurdle)
		}
		if err := runPredict(args, predictCourse, predictTargets, in); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVarP(&predictCourse, "course", "c", "", "Course to predict (required)")
	predictCmd.Flags().StringVarP(&predictName, "name", "n", "", "Name of the future assessment")
	predictCmd.Flags().Float64SliceVarP(&predictTargets, "target", "t", nil, "Target course percentage; repeat or comma-separate for several")
	predictCmd.Flags().Float64VarP(&predictWeight, "weight", "w", 0, "Weight of the future assessment")
	predictCmd.Flags().Float64Var(&predictHurdle, "hurdle", 0, "Hurdle percentage of the future assessment")
	_ = predictCmd.MarkFlagRequired("course")
}

// runPredict evaluates one scenario per target. No targets means a single
// scenario aimed at the passing line.
func runPredict(args []string, courseName string, targets []float64, in grading.ScenarioInput) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if courseName == "" {
		return fmt.Errorf("--course is required")
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

	if in.HurdlePercent == nil {
		in.HurdlePercent = grading.Float(cfg.Hurdle)
	}
	predictions, err := predictCourseTargets(lib, courseName, targets, in)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		for _, p := range predictions {
			log.Printf("%s/%s target %g: %s", p.Semester, p.Course, p.Scenario.TargetScore, p.Status)
		}
	}
	return newOutputter(cfg).Predictions(predictions)
}

// predictCourseTargets looks the course up in src and evaluates in once per
// target.
func predictCourseTargets(src gradebook.Source, courseName string, targets []float64, in grading.ScenarioInput) ([]report.Prediction, error) {
	course, semester, err := src.Course(courseName)
	if errors.Is(err, gradebook.ErrCourseNotFound) {
		return nil, fmt.Errorf("%w (available: %s)", err, availableCourses(src))
	}
	if err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		targets = []float64{report.PassingLine(course)}
	}

	predictions := make([]report.Prediction, 0, len(targets))
	for _, target := range targets {
		scenario := in
		scenario.TargetScore = grading.Float(target)

		p, err := report.Predict(semester, course, scenario)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", semester.Name, course.Name, err)
		}
		predictions = append(predictions, *p)
	}
	return predictions, nil
}

func availableCourses(src gradebook.Source) string {
	refs := src.Courses()
	if len(refs) == 0 {
		return "none"
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.String())
	}
	return strings.Join(names, ", ")
}
