// Package report turns grading results into the records the formatters
// render: predictions, per-course standings and check summaries.
package report

import (
	"github.com/dotcommander/gradecast/internal/grading"
)

// Status classifies a prediction for display.
type Status string

const (
	StatusFailed        Status = "failed"
	StatusNotAchievable Status = "not-achievable"
	StatusSecured       Status = "secured"
	StatusHurdleBound   Status = "hurdle-bound"
	StatusAchievable    Status = "achievable"
)

// MaxScore is the highest percentage an assessment can award.
const MaxScore = 100.0

// StatusFor classifies a result. raw is the unfloored requirement from
// grading.RequiredRaw for the same scenario.
func StatusFor(result grading.Result, raw float64, scenario grading.Scenario) Status {
	value, ok := result.RequiredScore()
	switch {
	case !ok:
		return StatusFailed
	case value > MaxScore:
		return StatusNotAchievable
	case value <= 0:
		return StatusSecured
	case raw < scenario.HurdlePercent && value == scenario.HurdlePercent:
		return StatusHurdleBound
	default:
		return StatusAchievable
	}
}

// Label is the sentence shown next to a status.
func (s Status) Label() string {
	switch s {
	case StatusFailed:
		return "A hurdle has already been missed; the course cannot be passed."
	case StatusNotAchievable:
		return "This score is not achievable."
	case StatusSecured:
		return "The target is already secured."
	case StatusHurdleBound:
		return "The target is covered; the assessment hurdle sets the minimum."
	case StatusAchievable:
		return "The target is achievable."
	default:
		return string(s)
	}
}
