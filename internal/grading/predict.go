package grading

// WeightedScoreToDate is the course percentage already earned by the
// recorded assignments.
func WeightedScoreToDate(assignments []Assignment) float64 {
	var total float64
	for _, a := range assignments {
		total += a.Contribution()
	}
	return total
}

// RequiredRaw is the percentage the scenario needs so that its weighted
// contribution plus WeightedScoreToDate equals the target. scenario.Weight
// must be positive.
func RequiredRaw(assignments []Assignment, scenario Scenario) float64 {
	toDate := WeightedScoreToDate(assignments)
	return (scenario.TargetScore - toDate) / (scenario.Weight / 100)
}

// RequiredScore evaluates a resolved scenario. A missed hurdle on any
// recorded assignment yields the failure marker; otherwise the requirement
// is floored at the scenario's own hurdle. Callers must ensure
// scenario.Weight > 0 and every FullMark > 0; Evaluate enforces both.
func RequiredScore(assignments []Assignment, scenario Scenario) Result {
	if AnyHurdleFailed(assignments) {
		return Failure()
	}

	raw := RequiredRaw(assignments, scenario)
	if scenario.HurdlePercent > raw {
		return Required(scenario.HurdlePercent)
	}
	return Required(raw)
}
