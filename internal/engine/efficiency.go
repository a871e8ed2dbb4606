package engine

// StandardMinutesPerBatch sums the standard time of every assigned operation
// across all seats.
func StandardMinutesPerBatch(finalTimes []float64) float64 {
	var sum float64
	for _, t := range finalTimes {
		sum += t
	}
	return sum
}

// Efficiency = 100 * perBatch * checkouts / worked, 0 without checkouts or
// worked time.
func Efficiency(perBatch float64, checkouts int, workedMinutes float64) float64 {
	if checkouts <= 0 || workedMinutes <= 0 {
		return 0
	}
	return 100 * perBatch * float64(checkouts) / workedMinutes
}

// EfficiencyStatus buckets an efficiency percentage.
type EfficiencyStatus string

const (
	StatusGood     EfficiencyStatus = "good"
	StatusWarning  EfficiencyStatus = "warning"
	StatusCritical EfficiencyStatus = "critical"
)

// ClassifyEfficiency maps eff to good (>= target), warning (>= warning) or critical.
func ClassifyEfficiency(eff, target, warning float64) EfficiencyStatus {
	switch {
	case eff >= target:
		return StatusGood
	case eff >= warning:
		return StatusWarning
	default:
		return StatusCritical
	}
}
