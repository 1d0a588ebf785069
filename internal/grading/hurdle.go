package grading

// HurdleFailure reports an assignment scored below its hurdle.
type HurdleFailure struct {
	Name     string  `json:"name"`
	Achieved float64 `json:"achieved"`
	Required float64 `json:"required"`
}

// failsHurdle compares as ratios so that meeting the hurdle exactly passes.
func failsHurdle(a Assignment) bool {
	return a.Scored/a.FullMark < a.HurdlePercent()/100
}

// AnyHurdleFailed reports whether any assignment misses its hurdle.
func AnyHurdleFailed(assignments []Assignment) bool {
	for _, a := range assignments {
		if failsHurdle(a) {
			return true
		}
	}
	return false
}

// FailedHurdles returns every assignment that misses its hurdle, in input
// order. The result is empty exactly when AnyHurdleFailed is false.
func FailedHurdles(assignments []Assignment) []HurdleFailure {
	var failures []HurdleFailure
	for _, a := range assignments {
		if !failsHurdle(a) {
			continue
		}
		failures = append(failures, HurdleFailure{
			Name:     a.Name,
			Achieved: a.Percent(),
			Required: a.HurdlePercent(),
		})
	}
	return failures
}
