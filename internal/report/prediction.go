package report

import (
	"github.com/dotcommander/gradecast/internal/gradebook"
	"github.com/dotcommander/gradecast/internal/grading"
)

// DefaultPassingLine is the course target when a gradebook records none.
const DefaultPassingLine = 50.0

// Prediction is the outcome of one scenario against one course.
type Prediction struct {
	Semester       string                  `json:"semester"`
	Course         string                  `json:"course"`
	Scenario       grading.Scenario        `json:"scenario"`
	Result         grading.Result          `json:"result"`
	Status         Status                  `json:"status"`
	RequiredRaw    float64                 `json:"requiredRaw"`
	UsedWeight     float64                 `json:"usedWeight"`
	WeightedToDate float64                 `json:"weightedToDate"`
	Failures       []grading.HurdleFailure `json:"failures,omitempty"`
}

// PassingLine returns the course target, falling back to DefaultPassingLine.
func PassingLine(c *gradebook.Course) float64 {
	if c.PassingLine > 0 {
		return c.PassingLine
	}
	return DefaultPassingLine
}

// Predict evaluates a scenario for a course. A nil target takes the course
// passing line. Errors come from grading.Evaluate unchanged.
func Predict(semester *gradebook.Semester, course *gradebook.Course, in grading.ScenarioInput) (*Prediction, error) {
	if in.TargetScore == nil {
		in.TargetScore = grading.Float(PassingLine(course))
	}

	assignments := course.GradingAssignments()
	result, err := grading.Evaluate(assignments, in)
	if err != nil {
		return nil, err
	}

	scenario := grading.Resolve(assignments, in)
	raw := grading.RequiredRaw(assignments, scenario)

	return &Prediction{
		Semester:       semester.Name,
		Course:         course.Name,
		Scenario:       scenario,
		Result:         result,
		Status:         StatusFor(result, raw, scenario),
		RequiredRaw:    raw,
		UsedWeight:     grading.TotalWeight(assignments),
		WeightedToDate: grading.WeightedScoreToDate(assignments),
		Failures:       grading.FailedHurdles(assignments),
	}, nil
}
