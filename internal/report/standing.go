package report

import (
	"github.com/dotcommander/gradecast/internal/gradebook"
	"github.com/dotcommander/gradecast/internal/grading"
)

// Standing summarises where a course stands today.
type Standing struct {
	Semester        string                  `json:"semester"`
	Course          string                  `json:"course"`
	Assignments     int                     `json:"assignments"`
	UsedWeight      float64                 `json:"usedWeight"`
	RemainingWeight float64                 `json:"remainingWeight"`
	WeightedToDate  float64                 `json:"weightedToDate"`
	PassingLine     float64                 `json:"passingLine"`
	Failures        []grading.HurdleFailure `json:"failures,omitempty"`
	// Next is the requirement on the remaining weight to reach the passing
	// line. Nil when the course has no weight left or cannot be evaluated.
	Next *Prediction `json:"next,omitempty"`
	// Passed is set once no weight remains, from the final course total.
	Passed *bool `json:"passed,omitempty"`
	// Error is set when the records cannot be evaluated. The numeric
	// fields other than Assignments and PassingLine are then left zero.
	Error string `json:"error,omitempty"`
}

// Standings computes a standing for every course of a semester. hurdle is
// the minimum applied to the remaining assessment.
func Standings(semester *gradebook.Semester, hurdle float64) []Standing {
	standings := make([]Standing, 0, len(semester.Courses))
	for i := range semester.Courses {
		standings = append(standings, CourseStanding(semester, &semester.Courses[i], hurdle))
	}
	return standings
}

// CourseStanding computes the standing of one course.
func CourseStanding(semester *gradebook.Semester, course *gradebook.Course, hurdle float64) Standing {
	assignments := course.GradingAssignments()
	if err := grading.ValidateAssignments(assignments); err != nil {
		return Standing{
			Semester:    semester.Name,
			Course:      course.Name,
			Assignments: len(assignments),
			PassingLine: PassingLine(course),
			Error:       err.Error(),
		}
	}

	st := Standing{
		Semester:        semester.Name,
		Course:          course.Name,
		Assignments:     len(assignments),
		UsedWeight:      grading.TotalWeight(assignments),
		RemainingWeight: grading.RemainingWeight(assignments),
		WeightedToDate:  grading.WeightedScoreToDate(assignments),
		PassingLine:     PassingLine(course),
		Failures:        grading.FailedHurdles(assignments),
	}

	if st.RemainingWeight <= 0 {
		passed := len(st.Failures) == 0 && st.WeightedToDate >= st.PassingLine
		st.Passed = &passed
		return st
	}

	if next, err := Predict(semester, course, grading.ScenarioInput{
		Name:          "Remaining",
		HurdlePercent: grading.Float(hurdle),
	}); err == nil {
		st.Next = next
	}
	return st
}
