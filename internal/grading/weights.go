package grading

// TotalWeight sums the weight of every recorded assignment.
func TotalWeight(assignments []Assignment) float64 {
	var total float64
	for _, a := range assignments {
		total += a.Weight
	}
	return total
}

// RemainingWeight returns the course weight not yet claimed by recorded
// assignments. It never goes below zero.
func RemainingWeight(assignments []Assignment) float64 {
	remaining := FullWeight - TotalWeight(assignments)
	if remaining > 0 {
		return remaining
	}
	return 0
}
