// Package grading evaluates recorded course assignments against a
// hypothetical future assessment.
//
// Every function in this package is pure: it reads its arguments, never
// mutates them, holds no state and performs no I/O. All percentages share
// the 0-100 scale.
package grading

// DefaultHurdle is the hurdle percentage applied when none is recorded.
const DefaultHurdle = 50.0

// FullWeight is the total weight a course distributes across its assessments.
const FullWeight = 100.0

// Assignment is a graded course component.
type Assignment struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight" validate:"finite"`
	FullMark float64  `json:"fullMark" validate:"finite,gt=0"`
	Scored   float64  `json:"scored" validate:"finite"`
	Hurdle   *float64 `json:"hurdle,omitempty" validate:"omitempty,finite"`
}

// HurdlePercent returns the effective hurdle, falling back to DefaultHurdle.
func (a Assignment) HurdlePercent() float64 {
	if a.Hurdle == nil {
		return DefaultHurdle
	}
	return *a.Hurdle
}

// Percent returns the achieved percentage of the full mark.
func (a Assignment) Percent() float64 {
	return a.Scored / a.FullMark * 100
}

// Contribution is the share of the course total this assignment has earned.
func (a Assignment) Contribution() float64 {
	return a.Weight * (a.Scored / a.FullMark)
}

// ScenarioInput describes a hypothetical assessment as requested by a caller.
// Nil fields take their defaults during Evaluate.
type ScenarioInput struct {
	Name          string   `json:"name"`
	Weight        *float64 `json:"weight,omitempty"`
	HurdlePercent *float64 `json:"hurdlePercent,omitempty"`
	TargetScore   *float64 `json:"targetScore" validate:"required"`
}

// Scenario is a fully resolved hypothetical assessment.
type Scenario struct {
	Name          string  `json:"name"`
	Weight        float64 `json:"weight" validate:"finite,gt=0"`
	HurdlePercent float64 `json:"hurdlePercent" validate:"finite"`
	TargetScore   float64 `json:"targetScore" validate:"finite"`
}

// Float returns a pointer to v, for populating optional fields.
func Float(v float64) *float64 {
	return &v
}
