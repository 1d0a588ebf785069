package grading

// Resolve applies the defaults for a scenario: the remaining course weight
// when no weight is given and DefaultHurdle when no hurdle is given. A nil
// target resolves to zero; Evaluate rejects that case before resolving.
func Resolve(assignments []Assignment, in ScenarioInput) Scenario {
	scenario := Scenario{
		Name:          in.Name,
		Weight:        RemainingWeight(assignments),
		HurdlePercent: DefaultHurdle,
	}
	if in.Weight != nil {
		scenario.Weight = *in.Weight
	}
	if in.HurdlePercent != nil {
		scenario.HurdlePercent = *in.HurdlePercent
	}
	if in.TargetScore != nil {
		scenario.TargetScore = *in.TargetScore
	}
	return scenario
}

// Evaluate is the single entry point for predictions. It resolves the
// scenario defaults, refuses inputs that would make the arithmetic
// undefined, and returns either the failure marker or the required score.
//
// Errors are always *InvalidInputError and match ErrInvalidInput.
func Evaluate(assignments []Assignment, in ScenarioInput) (Result, error) {
	if err := checkStruct(in, "scenario"); err != nil {
		return Result{}, err
	}
	// A non-finite weight would otherwise surface as a full-weight error.
	if err := ValidateAssignments(assignments); err != nil {
		return Result{}, err
	}

	scenario := Resolve(assignments, in)
	if in.Weight == nil && scenario.Weight <= 0 {
		return Result{}, &InvalidInputError{Fields: []FieldError{{
			Field:   "scenario.weight",
			Message: "recorded assignments already use the full course weight",
		}}}
	}

	if err := checkStruct(evaluation{Assignments: assignments, Scenario: scenario}, ""); err != nil {
		return Result{}, err
	}

	return RequiredScore(assignments, scenario), nil
}
